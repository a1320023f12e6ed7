package model

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentMethod selects how the customer pays at checkout
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

// ShippingAddress is the checkout form frozen at order time. It is a
// snapshot, not a reference into the user's address book.
type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

// Order is created once at checkout completion. Items carry the price and
// quantity frozen at purchase time; only Status and DeliveryDate are mutated
// afterwards, and only by admin action.
type Order struct {
	ID              string          `json:"id"`
	UserID          uint            `json:"userId"`
	Items           []CartItem      `json:"items"`
	Total           float64         `json:"total"`
	Status          OrderStatus     `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	DeliveryDate    *time.Time      `json:"deliveryDate"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
}

// OrderList is stored as a JSON document column on the user record
type OrderList []Order

// Find returns the order with the given id, or nil
func (l OrderList) Find(id string) *Order {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}
