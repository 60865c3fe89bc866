package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Namespace is a key-value area scoped to one logical owner (one origin's
// registry, one handler's instruments, one origin's permissions). Values are
// opaque bytes; callers usually go through the JSON helpers below.
//
// Iteration order is backend-defined and must not be relied on.
type Namespace interface {
	// Get returns sentinel.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove is a no-op for absent keys.
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	// Clear is a no-op for an empty namespace.
	Clear(ctx context.Context) error
	// Iterate stops at the first error returned by fn and returns it.
	Iterate(ctx context.Context, fn func(key string, value []byte) error) error
}

// Backend hands out namespaces. Namespaces are cheap handles; creating one
// does not touch the underlying store.
type Backend interface {
	Namespace(name string) Namespace
}

// Transactor is implemented by backends that can group writes atomically.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RunInTx runs fn atomically when backend supports it and directly otherwise.
func RunInTx(ctx context.Context, backend Backend, fn func(ctx context.Context) error) error {
	if t, ok := backend.(Transactor); ok {
		return t.RunInTx(ctx, fn)
	}
	return fn(ctx)
}

// GetJSON loads and decodes a value.
func GetJSON[T any](ctx context.Context, ns Namespace, key string) (*T, error) {
	raw, err := ns.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	return &v, nil
}

// SetJSON encodes and stores a value.
func SetJSON[T any](ctx context.Context, ns Namespace, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return ns.Set(ctx, key, raw)
}

// IterateJSON decodes every value in the namespace and hands it to fn.
func IterateJSON[T any](ctx context.Context, ns Namespace, fn func(key string, value *T) error) error {
	return ns.Iterate(ctx, func(key string, raw []byte) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		return fn(key, &v)
	})
}
