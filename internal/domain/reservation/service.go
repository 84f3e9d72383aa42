package reservation

import "context"

// ReservationService defines the interface for the intake workflow
type ReservationService interface {
	// Create runs the guest intake: rate limit, validation, then one
	// transaction covering invite consumption, the reservation row and the
	// host signature. inviteToken may be empty only for ungated forms.
	Create(ctx context.Context, sub Submission, inviteToken string) (CreateResponse, error)

	// GetByID returns a reservation with its signature summary
	GetByID(ctx context.Context, id string) (DetailResponse, error)

	// List returns reservations for the admin panel, newest first
	List(ctx context.Context, limit int) ([]DetailResponse, error)

	// UpdateStatus moves a reservation through its review states
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (DetailResponse, error)
}
