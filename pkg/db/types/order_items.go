package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderItem is a product snapshot taken when the order was placed.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

// OrderItems is persisted as a JSON array.
type OrderItems []OrderItem

// Total sums price times quantity across the items.
func (items OrderItems) Total() int64 {
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]OrderItem(items))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

func (items *OrderItems) Scan(src any) error {
	if src == nil {
		*items = OrderItems{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("OrderItems: unsupported Scan type %T", src)
	}

	out := OrderItems{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("OrderItems: decode: %w", err)
	}
	*items = out
	return nil
}
