package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StartsClosed(t *testing.T) {
	cb := New(SearchAPIConfig())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, "wiki-search", cb.Name())
}

func TestExecute_PassesThroughResult(t *testing.T) {
	cb := New(CompletionAPIConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "summary", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "summary", result)
}

func TestExecute_PassesThroughError(t *testing.T) {
	cb := New(ExtractAPIConfig())
	boom := errors.New("upstream down")

	_, err := cb.Execute(func() (interface{}, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestExecute_TripsAfterFailureThreshold(t *testing.T) {
	cb := New(Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      3,
	})

	boom := errors.New("down")
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() (interface{}, error) {
		t.Fatal("open breaker must not invoke fn")
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestConfigs_BelowMinRequestsStaysClosed(t *testing.T) {
	cb := New(SearchAPIConfig())
	boom := errors.New("down")

	// Fewer failures than MinRequests must not trip the circuit.
	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
