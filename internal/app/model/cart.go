package model

// CartItem is a product snapshot plus a quantity. The product fields are
// copied into the item when it enters the cart, so later product edits do
// not change what the customer sees priced.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns unit price times quantity for this line item
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice() * float64(i.Quantity)
}

// Cart is an ordered sequence of line items plus the derived total.
// Total always equals the sum of Subtotal over Items; every mutation in
// internal/cart recomputes it.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// Sum recomputes the items total without touching the stored Total
func (c Cart) Sum() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
