package model

// Wishlist is a set of product snapshots, unique by product id.
// No quantities and no derived total.
type Wishlist struct {
	Items []Product `json:"items"`
}

// Contains reports whether a product id is already in the wishlist
func (w Wishlist) Contains(productID uint) bool {
	for _, p := range w.Items {
		if p.ID == productID {
			return true
		}
	}
	return false
}
