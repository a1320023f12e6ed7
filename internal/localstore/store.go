// Package localstore persists the client's local session state: the active
// user record plus the cart and wishlist snapshots, each under a fixed key.
package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnminh/vshop/config"
)

// Keys under which the client persists its state
const (
	KeyUser     = "user"
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
)

var ErrNotFound = errors.New("localstore: key not found")

// Store is a small serialized-JSON key-value store. Values are marshalled on
// Set and unmarshalled into dst on Get; Get returns ErrNotFound for absent
// keys.
type Store interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the store selected by configuration
func Open(cfg *config.StateConfig, redisCfg *config.RedisConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file", "":
		return NewFileStore(cfg.Dir)
	case "redis":
		return NewRedisStore(redisCfg)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}
