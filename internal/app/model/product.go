package model

import (
	"time"
)

// Product is owned by the admin back-office; the storefront reads it.
// Price may arrive under either "price" or the legacy "basePrice" field,
// so consumers must go through UnitPrice.
type Product struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Price           float64   `json:"price,omitempty"`
	BasePrice       float64   `json:"basePrice,omitempty"`
	Description     string    `gorm:"type:text" json:"description"`
	Category        string    `gorm:"type:varchar(50);index" json:"category"`
	Image           string    `json:"image"`
	DiscountPercent float64   `json:"discountPercent,omitempty"`
	OriginalPrice   float64   `json:"originalPrice,omitempty"`
	Featured        bool      `gorm:"default:false;index" json:"featured,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// UnitPrice resolves the price under the price -> basePrice -> 0 fallback
// chain that legacy product records require.
func (p Product) UnitPrice() float64 {
	if p.Price != 0 {
		return p.Price
	}
	if p.BasePrice != 0 {
		return p.BasePrice
	}
	return 0
}
