// Package kvstore is the JSON blob store the services keep their local state in:
// menu cache, favorites, cart, submitted order and history. The only contract is
// "read JSON or default; write JSON".
package kvstore

import (
	"context"
	"errors"
)

// ErrCorrupt is returned by Get when a stored value cannot be decoded into dst.
var ErrCorrupt = errors.New("stored value is not valid JSON for the requested type")

type Store interface {
	// Get decodes the value stored under key into dst. found is false (and dst is
	// left untouched) when the key does not exist.
	Get(ctx context.Context, key string, dst interface{}) (found bool, err error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// Namespaced prefixes every key with prefix + ":".
type Namespaced struct {
	Store  Store
	Prefix string
}

func WithPrefix(store Store, prefix string) *Namespaced {
	return &Namespaced{Store: store, Prefix: prefix}
}

func (n *Namespaced) key(k string) string {
	return n.Prefix + ":" + k
}

func (n *Namespaced) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	return n.Store.Get(ctx, n.key(key), dst)
}

func (n *Namespaced) Set(ctx context.Context, key string, value interface{}) error {
	return n.Store.Set(ctx, n.key(key), value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.Store.Delete(ctx, n.key(key))
}

var _ Store = (*Namespaced)(nil)
