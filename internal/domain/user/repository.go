package user

import "context"

// UserRepository defines the interface for staff-account data access
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
