package invite

import "context"

// InviteService defines the interface for invite lifecycle business logic
type InviteService interface {
	// Issue mints a token, persists its hash and returns the plaintext
	// token exactly once. When the request names a recipient the invite
	// link is mailed; delivery failure does not fail issuance.
	Issue(ctx context.Context, req IssueRequest) (IssueResponse, error)

	// Validate is the read-only check used by the public form and the
	// validate endpoint. It never consumes a use.
	Validate(ctx context.Context, token string) (Validation, error)

	// ConsumeForReservation redeems one use-unit of the token and binds it
	// to reservationID. It must be called inside the same transaction
	// context as the reservation insert it authorizes. Failures are typed:
	// ErrTokenInvalid, ErrTokenRevoked, ErrTokenExpired, ErrTokenExhausted.
	ConsumeForReservation(ctx context.Context, token, reservationID string) (InviteLink, error)

	// Resend mints a brand-new invite inheriting the original's form key,
	// note and quota, with the remaining TTL recomputed. The old invite is
	// left untouched.
	Resend(ctx context.Context, inviteID string) (IssueResponse, error)

	// Revoke marks an invite revoked. Idempotent.
	Revoke(ctx context.Context, inviteID string) error

	// BulkDelete removes invites and their dependent references
	BulkDelete(ctx context.Context, ids []string) (int64, error)

	// List returns invites for the admin panel, newest first
	List(ctx context.Context, limit int) ([]ListItem, error)
}
