package model

type AddressType string

const (
	AddressTypeHome   AddressType = "home"
	AddressTypeOffice AddressType = "office"
)

// Address is a delivery address with a three-level Vietnamese location
// reference. Codes are the authoritative values; names are denormalized for
// display so the storefront never has to re-resolve them.
type Address struct {
	ID           string      `json:"id"`
	UserID       uint        `json:"userId"`
	FullName     string      `json:"fullName"`
	Phone        string      `json:"phone"`
	ProvinceCode string      `json:"provinceCode"`
	ProvinceName string      `json:"provinceName"`
	DistrictCode string      `json:"districtCode"`
	DistrictName string      `json:"districtName"`
	WardCode     string      `json:"wardCode"`
	WardName     string      `json:"wardName"`
	Detail       string      `json:"detail"`
	Type         AddressType `json:"type"`
	IsDefault    bool        `json:"isDefault"`
}

// AddressList is stored as a JSON document column on the user record
type AddressList []Address

// Find returns the address with the given id, or nil
func (l AddressList) Find(id string) *Address {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

// SetDefault marks the address with the given id as the default and clears
// the flag on every other address. At most one address may be the default.
func (l AddressList) SetDefault(id string) {
	for i := range l {
		l[i].IsDefault = l[i].ID == id
	}
}
