package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/heidekoenig/reservation-backend-go/internal/domain/invite"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type inviteRepositoryImpl struct {
	db *database.DB
}

// NewInviteRepository creates a new invite repository instance
func NewInviteRepository(db *database.DB) invite.InviteRepository {
	return &inviteRepositoryImpl{db: db}
}

const inviteColumns = `id, form_key, token_hash, created_by_user_id, recipient_email, note,
		expires_at, max_uses, use_count, used_at, used_by_reservation_id, is_revoked, created_at`

func scanInvite(row pgx.Row) (invite.InviteLink, error) {
	var link invite.InviteLink
	err := row.Scan(
		&link.ID, &link.FormKey, &link.TokenHash, &link.CreatedByUserID,
		&link.RecipientEmail, &link.Note, &link.ExpiresAt, &link.MaxUses,
		&link.UseCount, &link.UsedAt, &link.UsedByReservationID,
		&link.IsRevoked, &link.CreatedAt,
	)
	return link, err
}

// Create implements invite.InviteRepository.
func (r *inviteRepositoryImpl) Create(ctx context.Context, link invite.InviteLink) (invite.InviteLink, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invite_links (
			form_key, token_hash, created_by_user_id, recipient_email, note, expires_at, max_uses
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + inviteColumns

	created, err := scanInvite(q.QueryRow(ctx, query,
		link.FormKey, link.TokenHash, link.CreatedByUserID,
		link.RecipientEmail, link.Note, link.ExpiresAt, link.MaxUses,
	))
	if err != nil {
		return invite.InviteLink{}, fmt.Errorf("failed to create invite: %w", err)
	}

	return created, nil
}

// GetByHash implements invite.InviteRepository.
func (r *inviteRepositoryImpl) GetByHash(ctx context.Context, tokenHash string) (invite.InviteLink, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + inviteColumns + ` FROM invite_links WHERE token_hash = $1`

	link, err := scanInvite(q.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invite.InviteLink{}, invite.ErrInviteNotFound
		}
		return invite.InviteLink{}, fmt.Errorf("failed to get invite by hash: %w", err)
	}

	return link, nil
}

// GetByID implements invite.InviteRepository.
func (r *inviteRepositoryImpl) GetByID(ctx context.Context, id string) (invite.InviteLink, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + inviteColumns + ` FROM invite_links WHERE id = $1`

	link, err := scanInvite(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invite.InviteLink{}, invite.ErrInviteNotFound
		}
		return invite.InviteLink{}, fmt.Errorf("failed to get invite by id: %w", err)
	}

	return link, nil
}

// List implements invite.InviteRepository.
func (r *inviteRepositoryImpl) List(ctx context.Context, limit int) ([]invite.InviteLink, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + inviteColumns + ` FROM invite_links ORDER BY created_at DESC LIMIT $1`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var links []invite.InviteLink
	for rows.Next() {
		link, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return links, nil
}

// Revoke implements invite.InviteRepository. Revocation is one-way and
// idempotent; revoking an already-revoked or exhausted invite is a no-op.
func (r *inviteRepositoryImpl) Revoke(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE invite_links SET is_revoked = TRUE WHERE id = $1 RETURNING id`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invite.ErrInviteNotFound
		}
		return fmt.Errorf("failed to revoke invite: %w", err)
	}

	return nil
}

// DeleteMany implements invite.InviteRepository. Runs in its own transaction
// unless the context already carries one, so the back-reference cleanup and
// the deletes commit together.
func (r *inviteRepositoryImpl) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	run := func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		_, err := q.Exec(ctx, `UPDATE reservation_requests SET invite_id = NULL WHERE invite_id = ANY($1)`, ids)
		if err != nil {
			return fmt.Errorf("failed to clear reservation back-references: %w", err)
		}

		_, err = q.Exec(ctx, `DELETE FROM mail_logs WHERE invite_id = ANY($1)`, ids)
		if err != nil {
			return fmt.Errorf("failed to purge invite mail logs: %w", err)
		}

		tag, err := q.Exec(ctx, `DELETE FROM invite_links WHERE id = ANY($1)`, ids)
		if err != nil {
			return fmt.Errorf("failed to delete invites: %w", err)
		}
		deleted = tag.RowsAffected()
		return nil
	}

	if InTransaction(ctx) {
		if err := run(ctx); err != nil {
			return 0, err
		}
		return deleted, nil
	}
	if err := WithTransaction(ctx, r.db, run); err != nil {
		return 0, err
	}
	return deleted, nil
}

// TryConsume implements invite.InviteRepository. A single conditional UPDATE
// is the admission arbiter: under concurrent redemption of an invite with
// max_uses = N, at most N calls ever see a row affected. No read precedes
// the write, so there is no check-then-act window.
func (r *inviteRepositoryImpl) TryConsume(ctx context.Context, id string, expectedMaxUses int, now time.Time, reservationID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invite_links
		SET use_count = use_count + 1,
			used_by_reservation_id = $2,
			used_at = CASE WHEN use_count + 1 >= max_uses THEN $3 ELSE used_at END
		WHERE id = $1
			AND is_revoked = FALSE
			AND (expires_at IS NULL OR expires_at > $3)
			AND use_count < max_uses
			AND use_count < $4
	`

	tag, err := q.Exec(ctx, query, id, reservationID, now, expectedMaxUses)
	if err != nil {
		return false, fmt.Errorf("failed to consume invite: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
