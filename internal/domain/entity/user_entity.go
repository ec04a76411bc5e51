package entity

import (
	"time"
)

// User is a back-office operator account. Password holds a bcrypt
// hash; plain passwords never reach the domain layer. Email and Phone
// are stored in the normalized form produced by their value types.
type User struct {
	ID         string
	Email      string
	Password   string
	Name       string
	Phone      string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
