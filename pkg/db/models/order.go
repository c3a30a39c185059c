package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/pariney/saree-storefront/pkg/db/types"
	"github.com/pariney/saree-storefront/pkg/enums"
	"gorm.io/gorm"
)

// Order is created from a cart. Items and Total are a snapshot and are never
// recomputed from live product rows.
type Order struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx" json:"user_id"`
	Items     dbtypes.OrderItems `gorm:"column:items;type:jsonb;not null;default:'[]'" json:"items"`
	Total     int64              `gorm:"column:total;not null" json:"total"`
	Status    enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
