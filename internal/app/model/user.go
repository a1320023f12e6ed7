package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User mirrors the remote users resource. The whole record travels as one
// JSON document: profile fields plus the embedded cart, wishlist, address
// and order sub-records ("read record, mutate copy, write back whole record"
// is the only update pattern the backend supports).
type User struct {
	ID                 uint        `gorm:"primarykey" json:"id"`
	Email              string      `gorm:"uniqueIndex;not null" json:"email"`
	Password           string      `gorm:"not null" json:"password"` // bcrypt hash
	Name               string      `gorm:"not null" json:"name"`
	Username           string      `gorm:"uniqueIndex;not null" json:"username"`
	HasChangedUsername bool        `gorm:"default:false" json:"hasChangedUsername"`
	Phone              string      `json:"phone"`
	Role               UserRole    `gorm:"type:varchar(20);default:'user'" json:"role"`
	Addresses          AddressList `gorm:"type:text" json:"addresses"`
	Cart               Cart        `gorm:"type:text" json:"cart"`
	Wishlist           Wishlist    `gorm:"type:text" json:"wishlist"`
	Orders             OrderList   `gorm:"type:text" json:"orders"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DefaultAddress returns the address flagged as default, or nil
func (u *User) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}
