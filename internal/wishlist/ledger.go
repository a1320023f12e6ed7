// Package wishlist holds the in-memory wishlist ledger: a set of product
// snapshots unique by product id, with no quantities and no total.
package wishlist

import (
	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/pkg/logger"
)

// Add returns a snapshot with the product appended. Adding a product id that
// is already present returns the snapshot unchanged; uniqueness is enforced
// here, not at the call site.
func Add(s model.Wishlist, product model.Product) model.Wishlist {
	if s.Contains(product.ID) {
		return s
	}
	next := clone(s)
	next.Items = append(next.Items, product)
	return next
}

// Remove returns a snapshot with the matching product deleted.
// Removing an absent product id is a no-op.
func Remove(s model.Wishlist, productID uint) model.Wishlist {
	next := model.Wishlist{Items: make([]model.Product, 0, len(s.Items))}
	for _, p := range s.Items {
		if p.ID != productID {
			next.Items = append(next.Items, p)
		}
	}
	return next
}

func clone(s model.Wishlist) model.Wishlist {
	items := make([]model.Product, len(s.Items))
	copy(items, s.Items)
	return model.Wishlist{Items: items}
}

// Ledger holds the current wishlist snapshot. Owned by a single session,
// not safe for concurrent use.
type Ledger struct {
	current model.Wishlist
	onSave  func(model.Wishlist)
}

// NewLedger creates an empty ledger. onSave, if non-nil, is invoked with the
// new snapshot after every mutation.
func NewLedger(onSave func(model.Wishlist)) *Ledger {
	return &Ledger{onSave: onSave}
}

// Snapshot returns the current wishlist state
func (l *Ledger) Snapshot() model.Wishlist {
	return clone(l.current)
}

// Add applies the idempotent add transition
func (l *Ledger) Add(product model.Product) {
	next := Add(l.current, product)
	if len(next.Items) == len(l.current.Items) {
		logger.Debug("Product already in wishlist", map[string]interface{}{
			"product_id": product.ID,
		})
		return
	}
	l.commit(next)
}

// Remove applies the remove transition
func (l *Ledger) Remove(productID uint) {
	l.commit(Remove(l.current, productID))
}

// Replace overwrites the whole wishlist, used on login
func (l *Ledger) Replace(snapshot model.Wishlist) {
	l.commit(clone(snapshot))
}

// Clear resets the ledger to an empty wishlist, used on logout
func (l *Ledger) Clear() {
	l.commit(model.Wishlist{})
}

func (l *Ledger) commit(next model.Wishlist) {
	l.current = next
	if l.onSave != nil {
		l.onSave(clone(next))
	}
}
