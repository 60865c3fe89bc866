package storage

import (
	"context"
	"slices"
	"sync"

	"paymediator/pkg/platform/sentinel"
)

// MemoryBackend keeps every namespace in process memory. Iteration follows
// insertion order, which keeps tests deterministic; callers must not depend
// on it since other backends do not share the property.
type MemoryBackend struct {
	mu         sync.RWMutex
	namespaces map[string]*memoryNamespace
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{namespaces: make(map[string]*memoryNamespace)}
}

func (b *MemoryBackend) Namespace(name string) Namespace {
	b.mu.Lock()
	defer b.mu.Unlock()
	ns, ok := b.namespaces[name]
	if !ok {
		ns = &memoryNamespace{items: make(map[string][]byte)}
		b.namespaces[name] = ns
	}
	return ns
}

type memoryNamespace struct {
	mu    sync.RWMutex
	order []string
	items map[string][]byte
}

func (n *memoryNamespace) Get(_ context.Context, key string) ([]byte, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.items[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (n *memoryNamespace) Set(_ context.Context, key string, value []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.items[key]; !ok {
		n.order = append(n.order, key)
	}
	n.items[key] = slices.Clone(value)
	return nil
}

func (n *memoryNamespace) Remove(_ context.Context, key string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.items[key]; !ok {
		return nil
	}
	delete(n.items, key)
	n.order = slices.DeleteFunc(n.order, func(k string) bool { return k == key })
	return nil
}

func (n *memoryNamespace) Keys(_ context.Context) ([]string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.order), nil
}

func (n *memoryNamespace) Clear(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.order = nil
	n.items = make(map[string][]byte)
	return nil
}

// Iterate works on a snapshot so fn may call back into the namespace.
func (n *memoryNamespace) Iterate(ctx context.Context, fn func(key string, value []byte) error) error {
	n.mu.RLock()
	keys := slices.Clone(n.order)
	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = slices.Clone(n.items[k])
	}
	n.mu.RUnlock()

	for i, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(k, values[i]); err != nil {
			return err
		}
	}
	return nil
}
