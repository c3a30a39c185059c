package dbtypes

import "testing"

func TestOrderItemsTotal(t *testing.T) {
	items := OrderItems{
		{ProductID: 1, Name: "Banarasi", Price: 15999, Quantity: 2},
		{ProductID: 2, Name: "Chanderi", Price: 8999, Quantity: 1},
	}
	if got := items.Total(); got != 40997 {
		t.Fatalf("expected 40997 got %d", got)
	}
	if got := (OrderItems{}).Total(); got != 0 {
		t.Fatalf("expected empty total 0 got %d", got)
	}
}

func TestOrderItemsScanAcceptsTextAndBytes(t *testing.T) {
	raw := `[{"product_id":7,"name":"Patola","price":28999,"quantity":1,"image":"patola.jpg"}]`

	var fromString OrderItems
	if err := fromString.Scan(raw); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	var fromBytes OrderItems
	if err := fromBytes.Scan([]byte(raw)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if len(fromString) != 1 || fromString[0] != fromBytes[0] {
		t.Fatalf("unexpected scan results %v %v", fromString, fromBytes)
	}
	if fromString[0].ProductID != 7 || fromString[0].Price != 28999 {
		t.Fatalf("unexpected item %+v", fromString[0])
	}
}

func TestOrderItemsNilValueAndScan(t *testing.T) {
	var items OrderItems
	v, err := items.Value()
	if err != nil || v != "[]" {
		t.Fatalf("expected [] got %v err=%v", v, err)
	}
	if err := items.Scan(nil); err != nil || items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil items, got %v err=%v", items, err)
	}
	if err := items.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
