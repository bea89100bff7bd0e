package user

import "time"

// User is an account that can register, log in and have activity attributed
// to it. Password always holds the bcrypt hash, never the clear text, and is
// excluded from every JSON response.
type User struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`

	IsActive bool `json:"isActive" db:"is_active"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
