package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/internal/users"
)

const credentialsRequiredMessage = "Email and password are required"

// RegisterRequest creates an account and its profile.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name,omitempty"`
}

func (RegisterRequest) ValidationMessage(_, tag string) string {
	if tag == "email" {
		return "Invalid email address"
	}
	return credentialsRequiredMessage
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (LoginRequest) ValidationMessage(string, string) string {
	return credentialsRequiredMessage
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (RefreshRequest) ValidationMessage(string, string) string {
	return "refresh_token is required"
}

// Session is the bearer material handed to the client.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string         `json:"message"`
	User    *users.UserDTO `json:"user"`
	Session Session        `json:"session"`
}

// Identity is what the bearer token resolved to.
type Identity struct {
	UserID uuid.UUID
	Email  string
	JTI    string
}

// me merges the identity with profile fields when a profile exists.
func me(identity Identity, profile *profileView) map[string]any {
	out := map[string]any{
		"id":    identity.UserID,
		"email": identity.Email,
	}
	if profile == nil {
		return out
	}
	out["full_name"] = profile.FullName
	out["role"] = profile.Role
	out["avatar_url"] = profile.AvatarURL
	out["created_at"] = profile.CreatedAt
	return out
}

type profileView struct {
	FullName  *string
	Role      string
	AvatarURL *string
	CreatedAt time.Time
}
