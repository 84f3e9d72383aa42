package invite

import (
	"context"
	"time"
)

// InviteRepository defines the interface for invite-link data access
type InviteRepository interface {
	// Create inserts a new invite record (use_count 0, not revoked)
	Create(ctx context.Context, link InviteLink) (InviteLink, error)

	// GetByHash retrieves an invite by its token hash
	GetByHash(ctx context.Context, tokenHash string) (InviteLink, error)

	// GetByID retrieves an invite by id
	GetByID(ctx context.Context, id string) (InviteLink, error)

	// List retrieves invites, newest first
	List(ctx context.Context, limit int) ([]InviteLink, error)

	// Revoke marks an invite as revoked. Idempotent; revocation is one-way.
	Revoke(ctx context.Context, id string) error

	// DeleteMany removes invites and, in the same transaction, clears
	// reservation back-references and purges dependent mail-log rows.
	// Returns the number of invites deleted.
	DeleteMany(ctx context.Context, ids []string) (int64, error)

	// TryConsume atomically increments use_count and binds the consumption
	// to reservationID, but only while the invite is not revoked, not
	// expired at now, and below its usage quota. The conditional write is
	// the sole admission arbiter under concurrent redemption: it reports
	// whether a row was affected and never disambiguates the failure
	// reason. expectedMaxUses is the quota observed by the caller's
	// preceding read and participates in the guard as an optimistic check.
	TryConsume(ctx context.Context, id string, expectedMaxUses int, now time.Time, reservationID string) (bool, error)
}
