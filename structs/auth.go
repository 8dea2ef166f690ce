package structs

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// AuthClaims is the decoded access token. Email is the caller's principal.
type AuthClaims struct {
	Sub   int64     `json:"sub"`
	Email string    `json:"email"`
	Roles []string  `json:"roles"`
	Iat   time.Time `json:"iat"`
	Exp   time.Time `json:"exp"`
	Jti   uuid.UUID `json:"jti"`
}

func (c *AuthClaims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=5,max=30"`
	Password    string `json:"password" validate:"required,min=8,max=100"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}
