package user

import "time"

// User is a staff account for the admin panel
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
