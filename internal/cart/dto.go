package cart

// AddItemInput adds one product to the caller's cart. Quantity defaults to 1.
type AddItemInput struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  *int  `json:"quantity" validate:"omitempty,gte=1"`
}

func (AddItemInput) ValidationMessage(field, _ string) string {
	if field == "product_id" {
		return "product_id is required"
	}
	return ""
}

func (in AddItemInput) quantity() int {
	if in.Quantity == nil {
		return 1
	}
	return *in.Quantity
}

// SetQuantityInput overwrites a line's quantity. Zero or less removes the line.
type SetQuantityInput struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  *int  `json:"quantity" validate:"required"`
}

func (SetQuantityInput) ValidationMessage(string, string) string {
	return "product_id and quantity are required"
}

type RemoveItemInput struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

func (RemoveItemInput) ValidationMessage(string, string) string {
	return "product_id is required"
}
