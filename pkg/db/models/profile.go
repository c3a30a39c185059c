package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/pkg/enums"
)

// Profile shares its id with the identity user. Role gates admin routes.
type Profile struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName  *string           `gorm:"column:full_name" json:"full_name"`
	Role      enums.ProfileRole `gorm:"column:role;type:text;not null;default:'user'" json:"role"`
	AvatarURL *string           `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string { return "profiles" }
