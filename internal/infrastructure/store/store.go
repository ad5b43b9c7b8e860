// internal/infrastructure/store/store.go
package store

import (
	"context"
	"errors"
)

// Keys used by the cart engine and session guard. The store is scoped
// per browser session, so these stay fixed regardless of who is shopping.
const (
	CartItemsKey = "cartItems"
	UserAuthKey  = "userAuth"
	AdminAuthKey = "adminAuth"
	LastOrderKey = "lastOrder"
)

// ErrCorrupt is wrapped by Load when a stored value exists but cannot be
// decoded. Callers treat corrupt values as absent.
var ErrCorrupt = errors.New("store: corrupt value")

// Store is the persisted key-value collaborator. Values are JSON
// serialized. Load reports found=false when the key is absent.
type Store interface {
	Load(ctx context.Context, key string, dest interface{}) (bool, error)
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// prefixed namespaces every key of an underlying store.
type prefixed struct {
	inner  Store
	prefix string
}

// WithPrefix returns a view of s where every key is prefixed. Used to
// scope the shared store to a single session.
func WithPrefix(s Store, prefix string) Store {
	return &prefixed{inner: s, prefix: prefix}
}

func (p *prefixed) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	return p.inner.Load(ctx, p.prefix+key, dest)
}

func (p *prefixed) Save(ctx context.Context, key string, value interface{}) error {
	return p.inner.Save(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}
