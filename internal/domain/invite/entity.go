package invite

import "time"

// Reason classifies why a token failed validation
type Reason string

const (
	ReasonInvalid Reason = "invalid"
	ReasonRevoked Reason = "revoked"
	ReasonExpired Reason = "expired"
	ReasonUsed    Reason = "used"
)

// InviteLink is the capability record gating access to the public
// reservation form. Only the keyed hash of the bearer token is stored;
// the plaintext token is handed out once at issuance and never recoverable.
type InviteLink struct {
	ID                  string
	FormKey             string
	TokenHash           string
	CreatedByUserID     *string
	RecipientEmail      *string
	Note                *string
	ExpiresAt           *time.Time
	MaxUses             int
	UseCount            int
	UsedAt              *time.Time
	UsedByReservationID *string
	IsRevoked           bool
	CreatedAt           time.Time
}

// IsExpired checks if the invite has expired. A nil ExpiresAt never expires.
func (l *InviteLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// IsExhausted checks if the usage quota has been reached
func (l *InviteLink) IsExhausted() bool {
	return l.UseCount >= l.MaxUses
}

// FailureReason reports why the invite cannot be consumed, or "" when it is
// still active. Revocation is an explicit administrative override and is
// surfaced ahead of the time-based and quota-based explanations.
func (l *InviteLink) FailureReason(now time.Time) Reason {
	switch {
	case l.IsRevoked:
		return ReasonRevoked
	case l.IsExpired(now):
		return ReasonExpired
	case l.IsExhausted():
		return ReasonUsed
	}
	return ""
}
