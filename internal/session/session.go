// Package session holds the authenticated user and the session-owned cart
// and wishlist ledgers. A Session is an explicit, injectable object, never
// ambient global state, so tests can run isolated sessions side by side.
package session

import (
	"context"
	"errors"

	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/internal/cart"
	"github.com/dnminh/vshop/internal/localstore"
	"github.com/dnminh/vshop/internal/wishlist"
	"github.com/dnminh/vshop/pkg/logger"
)

var (
	ErrNoActiveUser           = errors.New("no active user")
	ErrUsernameAlreadyChanged = errors.New("username can only be changed once")
	ErrAddressNotFound        = errors.New("address not found")
)

// Syncer pushes local cart/wishlist state to the remote user record. The
// session treats every push as best-effort: failures are logged, never
// surfaced, and never roll local state back. Stricter implementations can
// add retry or reconciliation behind this interface without touching the
// session.
type Syncer interface {
	SyncCart(ctx context.Context, userID uint, c model.Cart) error
	SyncWishlist(ctx context.Context, userID uint, w model.Wishlist) error
}

// Session is the current client identity plus its mutable sub-records
type Session struct {
	user    *model.User
	cartLed *cart.Ledger
	wishLed *wishlist.Ledger
	store   localstore.Store
	syncer  Syncer
	users   UserWriter
}

// UserWriter writes a whole user record back to the backend. Profile and
// address edits go through it; unlike ledger sync these surface their errors
// so the caller can show a recoverable failure message.
type UserWriter interface {
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)
}

// New creates a session with empty ledgers and no active user
func New(store localstore.Store, syncer Syncer, users UserWriter) *Session {
	s := &Session{store: store, syncer: syncer, users: users}
	s.cartLed = cart.NewLedger(s.persistCart)
	s.wishLed = wishlist.NewLedger(s.persistWishlist)
	return s
}

// Cart returns the session-owned cart ledger
func (s *Session) Cart() *cart.Ledger {
	return s.cartLed
}

// Wishlist returns the session-owned wishlist ledger
func (s *Session) Wishlist() *wishlist.Ledger {
	return s.wishLed
}

// User returns the active user record, or nil for anonymous sessions
func (s *Session) User() *model.User {
	return s.user
}

// IsAdmin reports whether the active user holds the admin role
func (s *Session) IsAdmin() bool {
	return s.user.IsAdmin()
}

// Login sets the active user and swaps in the stored cart and wishlist from
// the user record. Any pre-existing anonymous cart or wishlist is
// overwritten, not merged.
func (s *Session) Login(ctx context.Context, user *model.User) {
	u := *user
	s.user = &u

	if err := s.store.Set(ctx, localstore.KeyUser, &u); err != nil {
		logger.Error("Failed to persist user record", err, map[string]interface{}{
			"user_id": u.ID,
		})
	}

	s.cartLed.Replace(u.Cart)
	s.wishLed.Replace(u.Wishlist)

	logger.Info("User logged in", map[string]interface{}{
		"user_id":    u.ID,
		"cart_items": len(u.Cart.Items),
		"role":       u.Role,
	})
}

// Logout clears the active user, the persisted state and both ledgers.
// Before dropping the user it asks the backend to reset the stored cart to
// empty; a failure there is logged and logout proceeds regardless. The
// stored wishlist is deliberately left untouched remotely so it is waiting
// on the next login.
func (s *Session) Logout(ctx context.Context) {
	if s.user != nil {
		if err := s.syncer.SyncCart(ctx, s.user.ID, model.Cart{}); err != nil {
			logger.Error("Failed to reset remote cart on logout", err, map[string]interface{}{
				"user_id": s.user.ID,
			})
		}
		logger.Info("User logged out", map[string]interface{}{
			"user_id": s.user.ID,
		})
	}

	s.user = nil
	s.cartLed.Clear()
	s.wishLed.Clear()

	for _, key := range []string{localstore.KeyUser, localstore.KeyCart, localstore.KeyWishlist} {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Error("Failed to clear persisted state", err, map[string]interface{}{
				"key": key,
			})
		}
	}
}

// Restore rehydrates a previously persisted session after a client restart.
func (s *Session) Restore(ctx context.Context) {
	var user model.User
	err := s.store.Get(ctx, localstore.KeyUser, &user)
	switch {
	case err == nil:
		s.user = &user
	case errors.Is(err, localstore.ErrNotFound):
		// anonymous session
	default:
		logger.Error("Failed to restore persisted user", err, nil)
	}

	var c model.Cart
	if err := s.store.Get(ctx, localstore.KeyCart, &c); err == nil {
		s.cartLed.Replace(c)
	}
	var w model.Wishlist
	if err := s.store.Get(ctx, localstore.KeyWishlist, &w); err == nil {
		s.wishLed.Replace(w)
	}
}

// UpdateUserCart merges a cart snapshot into the active user record and
// pushes it to the backend. The local copy stays updated even when the push
// fails; local and remote are allowed to diverge until the next successful
// push.
func (s *Session) UpdateUserCart(ctx context.Context, c model.Cart) {
	if s.user == nil {
		return
	}
	s.user.Cart = c
	if err := s.store.Set(ctx, localstore.KeyUser, s.user); err != nil {
		logger.Error("Failed to persist user record", err, map[string]interface{}{
			"user_id": s.user.ID,
		})
	}
	if err := s.syncer.SyncCart(ctx, s.user.ID, c); err != nil {
		logger.Error("Failed to sync cart to backend", err, map[string]interface{}{
			"user_id": s.user.ID,
		})
	}
}

// UpdateUserWishlist merges a wishlist snapshot into the active user record
// and pushes it to the backend, with the same no-rollback semantics as
// UpdateUserCart.
func (s *Session) UpdateUserWishlist(ctx context.Context, w model.Wishlist) {
	if s.user == nil {
		return
	}
	s.user.Wishlist = w
	if err := s.store.Set(ctx, localstore.KeyUser, s.user); err != nil {
		logger.Error("Failed to persist user record", err, map[string]interface{}{
			"user_id": s.user.ID,
		})
	}
	if err := s.syncer.SyncWishlist(ctx, s.user.ID, w); err != nil {
		logger.Error("Failed to sync wishlist to backend", err, map[string]interface{}{
			"user_id": s.user.ID,
		})
	}
}

// persistCart mirrors every ledger mutation into local persistence and,
// when a user is active, into the user record and the backend.
func (s *Session) persistCart(c model.Cart) {
	ctx := context.Background()
	if err := s.store.Set(ctx, localstore.KeyCart, &c); err != nil {
		logger.Error("Failed to persist cart", err, nil)
	}
	s.UpdateUserCart(ctx, c)
}

func (s *Session) persistWishlist(w model.Wishlist) {
	ctx := context.Background()
	if err := s.store.Set(ctx, localstore.KeyWishlist, &w); err != nil {
		logger.Error("Failed to persist wishlist", err, nil)
	}
	s.UpdateUserWishlist(ctx, w)
}
