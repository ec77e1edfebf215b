package store

import (
	"context"
	"sort"
	"sync"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

// memCollection is the fallback-mode collection: an in-process ordered
// slice guarded by a mutex, optionally seeded on first use. It exists so
// the dashboard is demonstrable without a configured store, not as a
// production store under contention.
type memCollection[T any] struct {
	mu     sync.Mutex
	docs   []T
	fields func(T) Fields

	seedOnce sync.Once
	seed     func() []T
}

func newMemCollection[T any](fields func(T) Fields, seed func() []T) *memCollection[T] {
	return &memCollection[T]{fields: fields, seed: seed}
}

func (c *memCollection[T]) ensureSeeded() {
	c.seedOnce.Do(func() {
		if c.seed != nil {
			c.docs = c.seed()
		}
	})
}

func (c *memCollection[T]) Find(_ context.Context, filter Filter) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSeeded()

	matches := []T{}
	for _, doc := range c.docs {
		if filter.Matches(c.fields(doc)) {
			matches = append(matches, doc)
		}
	}
	return matches, nil
}

func (c *memCollection[T]) FindSorted(ctx context.Context, filter Filter, timeField string, limit int64) ([]T, error) {
	matches, err := c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return c.fields(matches[i]).Times[timeField].After(c.fields(matches[j]).Times[timeField])
	})
	if limit > 0 && int64(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (c *memCollection[T]) FindOne(_ context.Context, filter Filter) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSeeded()

	for _, doc := range c.docs {
		if filter.Matches(c.fields(doc)) {
			return doc, nil
		}
	}
	var zero T
	return zero, model.ErrNotFound
}

func (c *memCollection[T]) Insert(_ context.Context, doc T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSeeded()

	c.docs = append(c.docs, doc)
	return nil
}

func (c *memCollection[T]) ReplaceOne(_ context.Context, filter Filter, doc T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSeeded()

	for i, existing := range c.docs {
		if filter.Matches(c.fields(existing)) {
			c.docs[i] = doc
			return true, nil
		}
	}
	return false, nil
}

func (c *memCollection[T]) DeleteOne(_ context.Context, filter Filter) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSeeded()

	for i, existing := range c.docs {
		if filter.Matches(c.fields(existing)) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (c *memCollection[T]) DeleteMany(_ context.Context, filter Filter) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSeeded()

	kept := c.docs[:0]
	var deleted int64
	for _, existing := range c.docs {
		if filter.Matches(c.fields(existing)) {
			deleted++
			continue
		}
		kept = append(kept, existing)
	}
	c.docs = kept
	return deleted, nil
}

func (c *memCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	matches, err := c.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}
