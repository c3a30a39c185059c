package models

// HeroSlide is one entry of the storefront banner carousel.
type HeroSlide struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Image    string `gorm:"column:image;not null;default:''" json:"image"`
	Tag      string `gorm:"column:tag;not null;default:''" json:"tag"`
	Title    string `gorm:"column:title;not null" json:"title"`
	Subtitle string `gorm:"column:subtitle;not null;default:''" json:"subtitle"`
	Author   string `gorm:"column:author;not null;default:''" json:"author"`
	Time     string `gorm:"column:time;not null;default:''" json:"time"`
}

func (HeroSlide) TableName() string { return "hero_slides" }
