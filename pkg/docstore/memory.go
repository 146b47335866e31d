package docstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/record"
	"github.com/google/uuid"
)

// Memory is an in-process System. Collections keep insertion order.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	logger      *slog.Logger
	now         func() time.Time
}

type memoryCollection struct {
	order []string
	docs  map[string]record.Fields
}

// NewMemory creates an empty in-memory store.
func NewMemory(logger *slog.Logger) *Memory {
	return &Memory{
		collections: make(map[string]*memoryCollection),
		logger:      logger.With("system", "docstore", "driver", "memory"),
		now:         time.Now,
	}
}

func (m *Memory) Start(lc *lifecycle.Coordinator) error {
	m.logger.Info("starting document store")
	return nil
}

func (m *Memory) List(ctx context.Context, collection string) ([]record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[collection]
	if !ok {
		return []record.Record{}, nil
	}

	out := make([]record.Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, record.Record{ID: id, Fields: c.docs[id].Clone()})
	}
	return out, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[collection]
	if !ok {
		return record.Record{}, ErrNotFound
	}
	fields, ok := c.docs[id]
	if !ok {
		return record.Record{}, ErrNotFound
	}
	return record.Record{ID: id, Fields: fields.Clone()}, nil
}

func (m *Memory) Create(ctx context.Context, collection string, fields record.Fields) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)
	id := uuid.NewString()

	doc := fields.Clone()
	if _, ok := doc[record.FieldCreatedAt]; !ok {
		doc[record.FieldCreatedAt] = m.now()
	}

	c.order = append(c.order, id)
	c.docs[id] = doc
	return id, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields record.Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return ErrNotFound
	}
	existing, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	c.docs[id] = existing.Merge(fields)
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}

	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Put stores a record under a caller-chosen id, replacing any existing one.
// It is used for seeding fixtures with known ids.
func (m *Memory) Put(collection string, r record.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)
	if _, exists := c.docs[r.ID]; !exists {
		c.order = append(c.order, r.ID)
	}
	c.docs[r.ID] = r.Fields.Clone()
}

func (m *Memory) collection(name string) *memoryCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]record.Fields)}
		m.collections[name] = c
	}
	return c
}
