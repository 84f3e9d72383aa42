package reservation

import "time"

// Status represents the review state of a reservation request
type Status string

const (
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

// SignatureType distinguishes who signed the request
type SignatureType string

const (
	SignatureHost  SignatureType = "host"
	SignatureStaff SignatureType = "staff"
)

// ReservationRequest is a guest's intake submission. InviteID back-references
// the invite that admitted it and is nulled when that invite is deleted.
type ReservationRequest struct {
	ID                  string
	GuestName           string
	GuestEmail          string
	GuestPhone          string
	EventDate           time.Time
	EventType           string
	EventStartTime      string
	EventEndTime        string
	NumberOfGuests      int
	PaymentMethod       string
	Extras              []string
	PriceEstimate       *float64
	TotalPrice          *float64
	InternalResponsible *string
	InternalNotes       *string
	Status              Status
	InviteID            *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Signature is a captured signature image bound to a reservation
type Signature struct {
	ID            string
	ReservationID string
	Type          SignatureType
	ImageData     []byte
	CreatedAt     time.Time
}

// ValidStatus reports whether s is a known review state
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}
