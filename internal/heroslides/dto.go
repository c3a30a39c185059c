package heroslides

// CreateSlideInput adds a banner slide. Only the title is required.
type CreateSlideInput struct {
	Image    string `json:"image"`
	Tag      string `json:"tag"`
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
	Time     string `json:"time"`
}

func (CreateSlideInput) ValidationMessage(field, _ string) string {
	if field == "title" {
		return "title is required"
	}
	return ""
}

type UpdateSlideInput struct {
	ID       int64   `json:"id" validate:"required"`
	Image    *string `json:"image"`
	Tag      *string `json:"tag"`
	Title    *string `json:"title" validate:"omitempty,min=1"`
	Subtitle *string `json:"subtitle"`
	Author   *string `json:"author"`
	Time     *string `json:"time"`
}

func (UpdateSlideInput) ValidationMessage(field, _ string) string {
	if field == "id" {
		return "Slide id is required"
	}
	return ""
}

func (in UpdateSlideInput) changes() map[string]any {
	out := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			out[column] = *value
		}
	}
	set("image", in.Image)
	set("tag", in.Tag)
	set("title", in.Title)
	set("subtitle", in.Subtitle)
	set("author", in.Author)
	set("time", in.Time)
	return out
}

type DeleteSlideInput struct {
	ID int64 `json:"id" validate:"required"`
}

func (DeleteSlideInput) ValidationMessage(string, string) string {
	return "Slide id is required"
}
