package invite

import (
	"time"

	"github.com/heidekoenig/reservation-backend-go/internal/pkg/validator"
)

// IssueRequest - staff request to mint a new invite link
type IssueRequest struct {
	FormKey        string  `json:"form_key"`
	RecipientEmail *string `json:"recipient_email"`
	// ExpiresInDays nil falls back to the configured default; an explicit
	// zero means the invite never expires.
	ExpiresInDays *int    `json:"expires_in_days"`
	Note          *string `json:"note"`
	MaxUses       int     `json:"max_uses"`
	// CreatedByUserID comes from the staff JWT, not the request body
	CreatedByUserID *string `json:"-"`
}

func (r *IssueRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FormKey) {
		errs = append(errs, validator.ValidationError{
			Field:   "form_key",
			Message: "form_key is required",
		})
	}

	if r.RecipientEmail != nil && !validator.IsValidEmail(*r.RecipientEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "recipient_email",
			Message: "recipient_email format is invalid",
		})
	}

	if r.MaxUses < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_uses",
			Message: "max_uses must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IssueResponse carries the minted invite back to the caller. Token is the
// plaintext bearer secret; it is embedded in Link and never stored.
type IssueResponse struct {
	InviteID string     `json:"invite_id"`
	Link     string     `json:"link"`
	Token    string     `json:"-"`
	Invite   InviteLink `json:"-"`
}

// Validation is the tagged result of the read-only token check
type Validation struct {
	Valid    bool
	Reason   Reason
	InviteID string
	FormKey  string
	UseCount int
	MaxUses  int
}

// ValidateResponse - GET /invites/validate (public surface)
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	FormKey string `json:"form_key,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// BulkDeleteRequest - DELETE /invites
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (r *BulkDeleteRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ids",
			Message: "ids must not be empty",
		})
	}
	for _, id := range r.IDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "ids",
				Message: "ids must be valid UUIDs",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListItem - admin panel listing with granular state
type ListItem struct {
	ID                  string     `json:"id"`
	FormKey             string     `json:"form_key"`
	RecipientEmail      *string    `json:"recipient_email,omitempty"`
	Note                *string    `json:"note,omitempty"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	MaxUses             int        `json:"max_uses"`
	UseCount            int        `json:"use_count"`
	UsedAt              *time.Time `json:"used_at,omitempty"`
	UsedByReservationID *string    `json:"used_by_reservation_id,omitempty"`
	IsRevoked           bool       `json:"is_revoked"`
	State               string     `json:"state"`
	CreatedAt           time.Time  `json:"created_at"`
}

// NewListItem maps an invite to its admin listing row
func NewListItem(link InviteLink, now time.Time) ListItem {
	state := "active"
	if reason := link.FailureReason(now); reason != "" {
		state = string(reason)
	}
	return ListItem{
		ID:                  link.ID,
		FormKey:             link.FormKey,
		RecipientEmail:      link.RecipientEmail,
		Note:                link.Note,
		ExpiresAt:           link.ExpiresAt,
		MaxUses:             link.MaxUses,
		UseCount:            link.UseCount,
		UsedAt:              link.UsedAt,
		UsedByReservationID: link.UsedByReservationID,
		IsRevoked:           link.IsRevoked,
		State:               state,
		CreatedAt:           link.CreatedAt,
	}
}
