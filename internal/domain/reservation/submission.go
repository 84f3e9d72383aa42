package reservation

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/heidekoenig/reservation-backend-go/internal/pkg/validator"
)

// Submission is the normalized form payload after boundary decoding
type Submission struct {
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
	Signature           string
}

// newShapePayload is the current form wire format
type newShapePayload struct {
	GuestName           string   `json:"guest_name"`
	GuestEmail          string   `json:"guest_email"`
	GuestPhone          string   `json:"guest_phone"`
	EventDate           string   `json:"event_date"`
	EventType           string   `json:"event_type"`
	EventStartTime      string   `json:"event_start_time"`
	EventEndTime        string   `json:"event_end_time"`
	NumberOfGuests      int      `json:"number_of_guests"`
	PaymentMethod       string   `json:"payment_method"`
	Extras              []string `json:"extras"`
	PriceEstimate       *float64 `json:"price_estimate"`
	TotalPrice          *float64 `json:"total_price"`
	InternalResponsible *string  `json:"internal_responsible"`
	InternalNotes       *string  `json:"internal_notes"`
	Signature           string   `json:"signature"`
}

// legacyShapePayload is the old form wire format: flat field names, guest
// count and prices as strings, extras comma-joined.
type legacyShapePayload struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Date          string  `json:"date"`
	Type          string  `json:"type"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Guests        string  `json:"guests"`
	Payment       string  `json:"payment"`
	Extras        string  `json:"extras"`
	PriceEstimate string  `json:"price_estimate"`
	TotalPrice    string  `json:"total_price"`
	Responsible   *string `json:"responsible"`
	Notes         *string `json:"notes"`
	Signature     string  `json:"signature"`
}

// DecodeSubmission decodes a raw form payload, discriminating between the
// current and the legacy wire shape by field presence instead of probing
// untyped properties. Unknown shapes are rejected.
func DecodeSubmission(raw []byte) (Submission, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Submission{}, fmt.Errorf("malformed submission payload: %w", err)
	}

	_, hasNew := probe["guest_name"]
	_, hasLegacy := probe["name"]
	switch {
	case hasNew:
		return decodeNewShape(raw)
	case hasLegacy:
		return decodeLegacyShape(raw)
	}
	return Submission{}, ErrUnknownPayloadShape
}

func decodeNewShape(raw []byte) (Submission, error) {
	var p newShapePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Submission{}, fmt.Errorf("malformed submission payload: %w", err)
	}

	eventDate, _ := validator.IsValidDate(p.EventDate)

	return Submission{
		GuestName:           p.GuestName,
		GuestEmail:          p.GuestEmail,
		GuestPhone:          p.GuestPhone,
		EventDate:           eventDate,
		EventType:           p.EventType,
		EventStartTime:      p.EventStartTime,
		EventEndTime:        p.EventEndTime,
		NumberOfGuests:      p.NumberOfGuests,
		PaymentMethod:       p.PaymentMethod,
		Extras:              p.Extras,
		PriceEstimate:       normalizePrice(p.PriceEstimate),
		TotalPrice:          normalizePrice(p.TotalPrice),
		InternalResponsible: p.InternalResponsible,
		InternalNotes:       p.InternalNotes,
		Signature:           p.Signature,
	}, nil
}

func decodeLegacyShape(raw []byte) (Submission, error) {
	var p legacyShapePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Submission{}, fmt.Errorf("malformed submission payload: %w", err)
	}

	eventDate, _ := validator.IsValidDate(p.Date)
	guests, _ := strconv.Atoi(strings.TrimSpace(p.Guests))

	var extras []string
	for _, part := range strings.Split(p.Extras, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			extras = append(extras, trimmed)
		}
	}

	return Submission{
		GuestName:           p.Name,
		GuestEmail:          p.Email,
		GuestPhone:          p.Phone,
		EventDate:           eventDate,
		EventType:           p.Type,
		EventStartTime:      p.StartTime,
		EventEndTime:        p.EndTime,
		NumberOfGuests:      guests,
		PaymentMethod:       p.Payment,
		Extras:              extras,
		PriceEstimate:       parseLegacyPrice(p.PriceEstimate),
		TotalPrice:          parseLegacyPrice(p.TotalPrice),
		InternalResponsible: p.Responsible,
		InternalNotes:       p.Notes,
		Signature:           p.Signature,
	}, nil
}

func normalizePrice(v *float64) *float64 {
	if v == nil {
		return nil
	}
	value := *v
	if value < 0 {
		return nil
	}
	return &value
}

// parseLegacyPrice parses the legacy form's stringly prices, tolerating the
// decimal comma the old frontend emitted.
func parseLegacyPrice(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

func (s *Submission) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(s.GuestName) {
		errs = append(errs, validator.ValidationError{
			Field:   "guest_name",
			Message: "guest_name is required",
		})
	}

	if validator.IsEmpty(s.GuestEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "guest_email",
			Message: "guest_email is required",
		})
	} else if !validator.IsValidEmail(s.GuestEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "guest_email",
			Message: "guest_email format is invalid",
		})
	}

	if s.EventDate.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "event_date",
			Message: "event_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if s.EventStartTime != "" && !validator.IsValidTimeOfDay(s.EventStartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_start_time",
			Message: "event_start_time must be HH:MM",
		})
	}

	if s.EventEndTime != "" && !validator.IsValidTimeOfDay(s.EventEndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_end_time",
			Message: "event_end_time must be HH:MM",
		})
	}

	if s.NumberOfGuests < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "number_of_guests",
			Message: "number_of_guests must be at least 1",
		})
	}

	if validator.IsEmpty(s.Signature) {
		errs = append(errs, validator.ValidationError{
			Field:   "signature",
			Message: "signature is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

var signatureDataURLRegex = regexp.MustCompile(`^data:image/(png|jpeg);base64,`)

// DecodeSignatureDataURL extracts the raw image bytes from the signature
// pad's data URL
func DecodeSignatureDataURL(dataURL string) ([]byte, error) {
	loc := signatureDataURLRegex.FindStringIndex(dataURL)
	if loc == nil {
		return nil, ErrInvalidSignature
	}
	data, err := base64.StdEncoding.DecodeString(dataURL[loc[1]:])
	if err != nil {
		return nil, ErrInvalidSignature
	}
	return data, nil
}
