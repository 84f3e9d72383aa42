package auth

import "context"

// AuthService defines the interface for staff authentication
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(refreshToken string)
}
