package models

// Category groups products by slug. Count is maintained by hand.
type Category struct {
	ID    string `gorm:"column:id;primaryKey" json:"id"`
	Name  string `gorm:"column:name;not null" json:"name"`
	Image string `gorm:"column:image;not null;default:''" json:"image"`
	Count int    `gorm:"column:count;not null;default:0" json:"count"`
}

func (Category) TableName() string { return "categories" }
