package categories

import "strings"

// CreateCategoryInput creates a category under an admin-chosen slug.
type CreateCategoryInput struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
	Count int    `json:"count" validate:"gte=0"`
}

func (CreateCategoryInput) ValidationMessage(field, _ string) string {
	switch field {
	case "id", "name":
		return "id and name are required"
	}
	return ""
}

// UpdateCategoryInput edits a category. The slug itself never changes.
type UpdateCategoryInput struct {
	ID    string  `json:"id" validate:"required"`
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Image *string `json:"image"`
	Count *int    `json:"count" validate:"omitempty,gte=0"`
}

func (UpdateCategoryInput) ValidationMessage(field, _ string) string {
	if field == "id" {
		return "Category id is required"
	}
	return ""
}

func (in UpdateCategoryInput) changes() map[string]any {
	out := map[string]any{}
	if in.Name != nil {
		out["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Image != nil {
		out["image"] = *in.Image
	}
	if in.Count != nil {
		out["count"] = *in.Count
	}
	return out
}

type DeleteCategoryInput struct {
	ID string `json:"id" validate:"required"`
}

func (DeleteCategoryInput) ValidationMessage(string, string) string {
	return "Category id is required"
}
