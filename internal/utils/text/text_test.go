package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "ascii", in: "hello", want: 5},
		{name: "empty", in: "", want: 0},
		{name: "multibyte", in: "čeština", want: 7},
		{name: "mixed", in: "naïve café", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountRunes(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "short", Truncate("short", 100))
	})

	t.Run("exact limit unchanged", func(t *testing.T) {
		assert.Equal(t, "abcde", Truncate("abcde", 5))
	})

	t.Run("over limit gets ellipsis", func(t *testing.T) {
		got := Truncate(strings.Repeat("a", 10), 4)
		assert.Equal(t, "aaaa"+Ellipsis, got)
	})

	t.Run("multibyte cut at rune boundary", func(t *testing.T) {
		got := Truncate("ééééé", 3)
		assert.Equal(t, "ééé"+Ellipsis, got)
	})

	t.Run("non-positive limit disables truncation", func(t *testing.T) {
		assert.Equal(t, "anything", Truncate("anything", 0))
	})
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a\n\tb   c \n"))
	assert.Equal(t, "", CollapseWhitespace(" \n\t "))
	assert.Equal(t, "plain", CollapseWhitespace("plain"))
}
