package invite

import "errors"

var (
	ErrInviteNotFound   = errors.New("invite not found")
	ErrTokenInvalid     = errors.New("invite token is not recognized")
	ErrTokenRevoked     = errors.New("invite token has been revoked")
	ErrTokenExpired     = errors.New("invite token has expired")
	ErrTokenExhausted   = errors.New("invite token has already been used")
	ErrRecipientMissing = errors.New("invite has no recipient email")
)
