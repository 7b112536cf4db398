package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
)

const historyStoreKey = "history-store"

// DefaultHistoryMaxItems bounds the recency list.
const DefaultHistoryMaxItems = 10

// History keeps the most recent queries, newest first. Re-querying a topic
// moves it to the front instead of duplicating it; topics are compared
// case-insensitively. Safe for concurrent use.
type History struct {
	store    Store
	maxItems int

	// now and newID are swappable for tests.
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

// NewHistory creates a History with the default size limit on top of store.
func NewHistory(store Store) *History {
	return &History{
		store:    store,
		maxItems: DefaultHistoryMaxItems,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Add records a query at the front of the list. Any previous entry for the
// same topic (ignoring case) is dropped, and the list is trimmed to its
// size limit.
func (h *History) Add(topic string, length int) (entity.HistoryItem, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.load()
	if err != nil {
		return entity.HistoryItem{}, err
	}

	lowered := strings.ToLower(topic)
	kept := items[:0]
	for _, item := range items {
		if strings.ToLower(item.Topic) != lowered {
			kept = append(kept, item)
		}
	}

	entry := entity.HistoryItem{
		ID:        h.newID(),
		Topic:     topic,
		Length:    length,
		Timestamp: h.now(),
	}
	items = append([]entity.HistoryItem{entry}, kept...)
	if len(items) > h.maxItems {
		items = items[:h.maxItems]
	}

	if err := h.save(items); err != nil {
		return entity.HistoryItem{}, err
	}
	return entry, nil
}

// Items returns the history, newest first.
func (h *History) Items() ([]entity.HistoryItem, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load()
}

// Remove deletes the entry with the given id. Unknown ids are a no-op.
func (h *History) Remove(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.load()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return h.save(kept)
}

// Clear drops the whole history.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Delete(historyStoreKey)
}

func (h *History) load() ([]entity.HistoryItem, error) {
	raw, ok, err := h.store.Get(historyStoreKey)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var items []entity.HistoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil
	}
	return items, nil
}

func (h *History) save(items []entity.HistoryItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := h.store.Set(historyStoreKey, raw); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
