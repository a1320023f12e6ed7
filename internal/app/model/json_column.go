package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The fixture API persists the document-valued user fields (cart, wishlist,
// addresses, orders) as serialized JSON in text columns, the same shape they
// travel over the wire in.

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}

func (c Cart) Value() (driver.Value, error) { return jsonValue(c) }
func (c *Cart) Scan(src interface{}) error  { return jsonScan(src, c) }

func (w Wishlist) Value() (driver.Value, error) { return jsonValue(w) }
func (w *Wishlist) Scan(src interface{}) error  { return jsonScan(src, w) }

func (l AddressList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *AddressList) Scan(src interface{}) error  { return jsonScan(src, l) }

func (l OrderList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *OrderList) Scan(src interface{}) error  { return jsonScan(src, l) }
