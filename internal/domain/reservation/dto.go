package reservation

import (
	"time"

	"github.com/heidekoenig/reservation-backend-go/internal/pkg/validator"
)

// CreateResponse - POST /reservations
type CreateResponse struct {
	ReservationID string `json:"reservation_id"`
}

// UpdateStatusRequest - PATCH /reservations/{id}/status
type UpdateStatusRequest struct {
	Status Status  `json:"status"`
	Notes  *string `json:"notes"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of new, confirmed, declined, cancelled",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DetailResponse - GET /reservations/{id}
type DetailResponse struct {
	ID                  string    `json:"id"`
	GuestName           string    `json:"guest_name"`
	GuestEmail          string    `json:"guest_email"`
	GuestPhone          string    `json:"guest_phone"`
	EventDate           string    `json:"event_date"`
	EventType           string    `json:"event_type"`
	EventStartTime      string    `json:"event_start_time,omitempty"`
	EventEndTime        string    `json:"event_end_time,omitempty"`
	NumberOfGuests      int       `json:"number_of_guests"`
	PaymentMethod       string    `json:"payment_method,omitempty"`
	Extras              []string  `json:"extras,omitempty"`
	PriceEstimate       *float64  `json:"price_estimate,omitempty"`
	TotalPrice          *float64  `json:"total_price,omitempty"`
	InternalResponsible *string   `json:"internal_responsible,omitempty"`
	InternalNotes       *string   `json:"internal_notes,omitempty"`
	Status              Status    `json:"status"`
	InviteID            *string   `json:"invite_id,omitempty"`
	SignatureTypes      []string  `json:"signature_types,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewDetailResponse maps a reservation and its signatures to the admin view
func NewDetailResponse(req ReservationRequest, sigs []Signature) DetailResponse {
	var sigTypes []string
	for _, sig := range sigs {
		sigTypes = append(sigTypes, string(sig.Type))
	}
	return DetailResponse{
		ID:                  req.ID,
		GuestName:           req.GuestName,
		GuestEmail:          req.GuestEmail,
		GuestPhone:          req.GuestPhone,
		EventDate:           req.EventDate.Format("2006-01-02"),
		EventType:           req.EventType,
		EventStartTime:      req.EventStartTime,
		EventEndTime:        req.EventEndTime,
		NumberOfGuests:      req.NumberOfGuests,
		PaymentMethod:       req.PaymentMethod,
		Extras:              req.Extras,
		PriceEstimate:       req.PriceEstimate,
		TotalPrice:          req.TotalPrice,
		InternalResponsible: req.InternalResponsible,
		InternalNotes:       req.InternalNotes,
		Status:              req.Status,
		InviteID:            req.InviteID,
		SignatureTypes:      sigTypes,
		CreatedAt:           req.CreatedAt,
	}
}
