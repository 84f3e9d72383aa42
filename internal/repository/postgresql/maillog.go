package postgresql

import (
	"context"
	"fmt"

	"github.com/heidekoenig/reservation-backend-go/internal/domain/maillog"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/database"
)

type mailLogRepositoryImpl struct {
	db *database.DB
}

// NewMailLogRepository creates a new mail-log repository instance
func NewMailLogRepository(db *database.DB) maillog.MailLogRepository {
	return &mailLogRepositoryImpl{db: db}
}

// Create implements maillog.MailLogRepository.
func (r *mailLogRepositoryImpl) Create(ctx context.Context, entry maillog.Entry) (maillog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO mail_logs (invite_id, reservation_id, recipient, subject, status, error)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, invite_id, reservation_id, recipient, subject, status, error, created_at
	`

	var created maillog.Entry
	err := q.QueryRow(ctx, query,
		entry.InviteID, entry.ReservationID, entry.To, entry.Subject, entry.Status, entry.Error,
	).Scan(
		&created.ID, &created.InviteID, &created.ReservationID, &created.To,
		&created.Subject, &created.Status, &created.Error, &created.CreatedAt,
	)
	if err != nil {
		return maillog.Entry{}, fmt.Errorf("failed to create mail log entry: %w", err)
	}

	return created, nil
}

// ListByInviteID implements maillog.MailLogRepository.
func (r *mailLogRepositoryImpl) ListByInviteID(ctx context.Context, inviteID string) ([]maillog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, invite_id, reservation_id, recipient, subject, status, error, created_at
		FROM mail_logs
		WHERE invite_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, inviteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mail logs: %w", err)
	}
	defer rows.Close()

	var entries []maillog.Entry
	for rows.Next() {
		var entry maillog.Entry
		err := rows.Scan(
			&entry.ID, &entry.InviteID, &entry.ReservationID, &entry.To,
			&entry.Subject, &entry.Status, &entry.Error, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mail log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}
