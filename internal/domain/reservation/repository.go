package reservation

import "context"

// ReservationRepository defines the interface for reservation data access
type ReservationRepository interface {
	// Create inserts a reservation row. The id is minted by the caller so
	// the invite consumption can bind to it inside the same transaction.
	Create(ctx context.Context, req ReservationRequest) (ReservationRequest, error)

	// GetByID retrieves a reservation by id
	GetByID(ctx context.Context, id string) (ReservationRequest, error)

	// List retrieves reservations, newest first
	List(ctx context.Context, limit int) ([]ReservationRequest, error)

	// UpdateStatus sets the review state and optional internal notes
	UpdateStatus(ctx context.Context, id string, status Status, notes *string) (ReservationRequest, error)

	// CreateSignature inserts a signature row for a reservation
	CreateSignature(ctx context.Context, sig Signature) (Signature, error)

	// ListSignatures retrieves the signatures attached to a reservation
	ListSignatures(ctx context.Context, reservationID string) ([]Signature, error)
}
