package users

import (
	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/pkg/db/models"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{ID: u.ID, Email: u.Email}
}
