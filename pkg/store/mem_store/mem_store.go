package mem_store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pmkol/linkx/pkg/link"
	"github.com/pmkol/linkx/pkg/store"
)

var errClosed = errors.New("mem store closed")

// MemStore is a bounded in-memory Backend. When it is full, saving a
// new key evicts the key that was saved least recently.
type MemStore struct {
	sync.Mutex
	maxSize int
	closed  bool

	order *link.Link[string] // oldest first
	m     map[string][]byte
}

func NewMemStore(maxSize int) *MemStore {
	if maxSize <= 0 {
		panic(fmt.Sprintf("MemStore: invalid max size: %d", maxSize))
	}
	return &MemStore{
		maxSize: maxSize,
		order:   link.New[string](),
		m:       make(map[string][]byte, maxSize),
	}
}

func (c *MemStore) Save(_ context.Context, key string, v []byte) error {
	buf := make([]byte, len(v))
	copy(buf, v)

	c.Lock()
	defer c.Unlock()
	if c.closed {
		return errClosed
	}

	if _, ok := c.m[key]; ok {
		removeKey(c.order, key)
	} else if len(c.m) >= c.maxSize {
		if oldest, ok := c.order.Pop(); ok {
			delete(c.m, oldest)
		}
	}
	c.order.PushBack(key)
	c.m[key] = buf
	return nil
}

func (c *MemStore) Load(_ context.Context, key string) ([]byte, error) {
	c.Lock()
	defer c.Unlock()
	if c.closed {
		return nil, errClosed
	}

	v, ok := c.m[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	buf := make([]byte, len(v))
	copy(buf, v)
	return buf, nil
}

// Keys returns the stored keys, oldest first.
func (c *MemStore) Keys() []string {
	c.Lock()
	defer c.Unlock()
	return c.order.Slice()
}

func (c *MemStore) Len() int {
	c.Lock()
	defer c.Unlock()
	return c.order.Len()
}

func (c *MemStore) Close() error {
	c.Lock()
	defer c.Unlock()
	c.closed = true
	c.order = link.New[string]()
	clear(c.m)
	return nil
}

// removeKey unlinks the first occurrence of key from l.
func removeKey(l *link.Link[string], key string) {
	if v, ok := l.Front(); ok && v == key {
		l.Pop()
		return
	}

	it := l.IterMut()
	defer it.Close()
	if _, ok := it.Next(); !ok {
		return
	}
	for {
		p, ok := it.PeekNext()
		if !ok {
			return
		}
		if *p == key {
			it.RemoveNext()
			return
		}
		it.Next()
	}
}
