// Package cart holds the in-memory cart ledger: an ordered sequence of line
// items plus a derived total, mutated only through the defined transitions.
// Transitions are pure functions over immutable snapshots; the Ledger type
// wraps them with current-state bookkeeping and change notification.
package cart

import (
	"errors"

	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/pkg/logger"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrItemNotFound    = errors.New("cart item not found")
)

// Add returns a snapshot with the product added. If a line item with the
// same product id exists its quantity is incremented by one, otherwise a new
// line item with quantity 1 is appended. The total is recomputed.
func Add(s model.Cart, product model.Product) model.Cart {
	next := clone(s)
	for i := range next.Items {
		if next.Items[i].ID == product.ID {
			next.Items[i].Quantity++
			next.Total = next.Sum()
			return next
		}
	}
	next.Items = append(next.Items, model.CartItem{Product: product, Quantity: 1})
	next.Total = next.Sum()
	return next
}

// Remove returns a snapshot with the matching line item deleted.
// Removing an absent product id is a no-op.
func Remove(s model.Cart, productID uint) model.Cart {
	next := model.Cart{Items: make([]model.CartItem, 0, len(s.Items))}
	for _, item := range s.Items {
		if item.ID != productID {
			next.Items = append(next.Items, item)
		}
	}
	next.Total = next.Sum()
	return next
}

// SetQuantity returns a snapshot with the line item's quantity replaced.
// Quantities below 1 are rejected with ErrInvalidQuantity and the snapshot
// is returned unchanged; clamping and remove-on-zero were considered and
// rejected so callers get an explicit signal instead of a silent rewrite.
func SetQuantity(s model.Cart, productID uint, quantity int) (model.Cart, error) {
	if quantity <= 0 {
		return s, ErrInvalidQuantity
	}
	for i := range s.Items {
		if s.Items[i].ID == productID {
			next := clone(s)
			next.Items[i].Quantity = quantity
			next.Total = next.Sum()
			return next, nil
		}
	}
	return s, ErrItemNotFound
}

func clone(s model.Cart) model.Cart {
	items := make([]model.CartItem, len(s.Items))
	copy(items, s.Items)
	return model.Cart{Items: items, Total: s.Total}
}

// Ledger holds the current cart snapshot and applies transitions to it.
// A Ledger is owned by a single session and is not safe for concurrent use.
type Ledger struct {
	current model.Cart
	onSave  func(model.Cart)
}

// NewLedger creates an empty ledger. onSave, if non-nil, is invoked with the
// new snapshot after every mutation (local persistence, remote sync).
func NewLedger(onSave func(model.Cart)) *Ledger {
	return &Ledger{onSave: onSave}
}

// Snapshot returns the current cart state
func (l *Ledger) Snapshot() model.Cart {
	return clone(l.current)
}

// Total returns the derived total of the current snapshot
func (l *Ledger) Total() float64 {
	return l.current.Total
}

// Add applies the add transition
func (l *Ledger) Add(product model.Product) {
	l.commit(Add(l.current, product))
	logger.Debug("Cart item added", map[string]interface{}{
		"product_id": product.ID,
		"total":      l.current.Total,
	})
}

// Remove applies the remove transition
func (l *Ledger) Remove(productID uint) {
	l.commit(Remove(l.current, productID))
	logger.Debug("Cart item removed", map[string]interface{}{
		"product_id": productID,
		"total":      l.current.Total,
	})
}

// SetQuantity applies the set-quantity transition
func (l *Ledger) SetQuantity(productID uint, quantity int) error {
	next, err := SetQuantity(l.current, productID, quantity)
	if err != nil {
		logger.Warn("Cart quantity update rejected", map[string]interface{}{
			"product_id": productID,
			"quantity":   quantity,
			"error":      err.Error(),
		})
		return err
	}
	l.commit(next)
	return nil
}

// Replace overwrites the whole cart, used when a login swaps in the
// authenticated user's stored cart. The total is recomputed rather than
// trusted from the incoming snapshot.
func (l *Ledger) Replace(snapshot model.Cart) {
	next := clone(snapshot)
	next.Total = next.Sum()
	l.commit(next)
}

// Clear resets the ledger to an empty cart, used on logout and after a
// successful checkout.
func (l *Ledger) Clear() {
	l.commit(model.Cart{})
}

func (l *Ledger) commit(next model.Cart) {
	l.current = next
	if l.onSave != nil {
		l.onSave(clone(next))
	}
}
