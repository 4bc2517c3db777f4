package profile

import "github.com/aulago/aulago/internal/domain"

// LoginRequest is the credentials payload for the auth endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginResponse is the auth endpoint's success payload.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt int64          `json:"expires_at"` // unix seconds
	User      domain.Profile `json:"user"`
}

// UpdateProfileRequest edits the user's own profile fields.
type UpdateProfileRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	About     string `json:"about" validate:"max=500"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}
