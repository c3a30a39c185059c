package orders

import "github.com/pariney/saree-storefront/pkg/enums"

// UpdateStatusInput moves an order to any of the known statuses.
type UpdateStatusInput struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,order_status"`
}

func (UpdateStatusInput) ValidationMessage(_, tag string) string {
	if tag == "order_status" {
		return "Invalid status"
	}
	return "id and status are required"
}

// ListFilter narrows the admin order listing. An empty status lists all.
type ListFilter struct {
	Status enums.OrderStatus
}
