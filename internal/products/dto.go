package products

import (
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Listing sentinels that mean "no category filter".
const (
	CategoryAll    = "All"
	CategoryLatest = "The Latest"
)

// ListFilter narrows the catalog listing. Empty fields do not filter.
type ListFilter struct {
	Category string
	Query    string
}

func (f ListFilter) normalized() ListFilter {
	f.Category = strings.TrimSpace(f.Category)
	if f.Category == CategoryAll || f.Category == CategoryLatest {
		f.Category = ""
	}
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	return f
}

const (
	requiredFieldsMessage = "name, brand, and price are required"
	originalPriceMessage  = "original_price must be at least price"
)

// CreateProductInput is the admin body for a new product.
type CreateProductInput struct {
	Name          string   `json:"name" validate:"required"`
	Brand         string   `json:"brand" validate:"required"`
	Price         int64    `json:"price" validate:"required,gt=0"`
	OriginalPrice int64    `json:"original_price" validate:"omitempty,gtefield=Price"`
	Discount      int      `json:"discount" validate:"gte=0,lte=100"`
	Image         string   `json:"image"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	Reviews       int      `json:"reviews" validate:"gte=0"`
	Tag           *string  `json:"tag"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Category      string   `json:"category"`
}

func (CreateProductInput) ValidationMessage(field, _ string) string {
	switch field {
	case "name", "brand", "price":
		return requiredFieldsMessage
	case "original_price":
		return originalPriceMessage
	case "rating":
		return "rating must be between 0 and 5"
	}
	return ""
}

// UpdateProductInput carries the id plus any subset of product fields.
type UpdateProductInput struct {
	ID            int64    `json:"id" validate:"required"`
	Name          *string  `json:"name" validate:"omitempty,min=1"`
	Brand         *string  `json:"brand" validate:"omitempty,min=1"`
	Price         *int64   `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice *int64   `json:"original_price" validate:"omitempty,gte=0"`
	Discount      *int     `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Image         *string  `json:"image"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews       *int     `json:"reviews" validate:"omitempty,gte=0"`
	Tag           *string  `json:"tag"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Category      *string  `json:"category"`
}

func (UpdateProductInput) ValidationMessage(field, _ string) string {
	switch field {
	case "id":
		return "Product id is required"
	case "rating":
		return "rating must be between 0 and 5"
	}
	return ""
}

// changes maps the provided fields to column updates.
func (in UpdateProductInput) changes() map[string]any {
	out := map[string]any{}
	if in.Name != nil {
		out["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Brand != nil {
		out["brand"] = strings.TrimSpace(*in.Brand)
	}
	if in.Price != nil {
		out["price"] = *in.Price
	}
	if in.OriginalPrice != nil {
		out["original_price"] = *in.OriginalPrice
	}
	if in.Discount != nil {
		out["discount"] = *in.Discount
	}
	if in.Image != nil {
		out["image"] = *in.Image
	}
	if in.Rating != nil {
		out["rating"] = ratingFromFloat(*in.Rating)
	}
	if in.Reviews != nil {
		out["reviews"] = *in.Reviews
	}
	if in.Tag != nil {
		out["tag"] = nullableTag(in.Tag)
	}
	if in.Sizes != nil {
		out["sizes"] = pq.StringArray(in.Sizes)
	}
	if in.Colors != nil {
		out["colors"] = pq.StringArray(in.Colors)
	}
	if in.Category != nil {
		out["category"] = strings.TrimSpace(*in.Category)
	}
	return out
}

// DeleteProductInput is the admin delete body.
type DeleteProductInput struct {
	ID int64 `json:"id" validate:"required"`
}

func (DeleteProductInput) ValidationMessage(string, string) string {
	return "Product id is required"
}

func ratingFromFloat(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(1)
}

func nullableTag(tag *string) *string {
	if tag == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*tag)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
