package tables

import (
	"slices"
	"time"

	"github.com/uptrace/bun"
)

// Role names stored in users.roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `json:"id" bun:"id,pk,autoincrement"`
	Email         string    `json:"email" bun:"email,unique,notnull"`
	Name          string    `json:"name" bun:"name,notnull"`
	PhoneNumber   string    `json:"phone_number" bun:"phone_number,notnull"`
	PasswordHash  string    `json:"-" bun:"password_hash,notnull"`
	Active        bool      `json:"active" bun:"active,notnull"`
	Roles         []string  `json:"roles" bun:"roles,array"`
	CreatedAt     time.Time `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
