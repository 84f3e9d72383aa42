package postgresql

import (
	"context"
	"fmt"

	"github.com/heidekoenig/reservation-backend-go/internal/domain/reservation"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reservationRepositoryImpl struct {
	db *database.DB
}

// NewReservationRepository creates a new reservation repository instance
func NewReservationRepository(db *database.DB) reservation.ReservationRepository {
	return &reservationRepositoryImpl{db: db}
}

const reservationColumns = `id, guest_name, guest_email, guest_phone, event_date, event_type,
		event_start_time, event_end_time, number_of_guests, payment_method, extras,
		price_estimate, total_price, internal_responsible, internal_notes, status,
		invite_id, created_at, updated_at`

func scanReservation(row pgx.Row) (reservation.ReservationRequest, error) {
	var req reservation.ReservationRequest
	err := row.Scan(
		&req.ID, &req.GuestName, &req.GuestEmail, &req.GuestPhone,
		&req.EventDate, &req.EventType, &req.EventStartTime, &req.EventEndTime,
		&req.NumberOfGuests, &req.PaymentMethod, &req.Extras,
		&req.PriceEstimate, &req.TotalPrice, &req.InternalResponsible,
		&req.InternalNotes, &req.Status, &req.InviteID,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) Create(ctx context.Context, req reservation.ReservationRequest) (reservation.ReservationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reservation_requests (
			id, guest_name, guest_email, guest_phone, event_date, event_type,
			event_start_time, event_end_time, number_of_guests, payment_method,
			extras, price_estimate, total_price, internal_responsible,
			internal_notes, status, invite_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + reservationColumns

	created, err := scanReservation(q.QueryRow(ctx, query,
		req.ID, req.GuestName, req.GuestEmail, req.GuestPhone, req.EventDate,
		req.EventType, req.EventStartTime, req.EventEndTime, req.NumberOfGuests,
		req.PaymentMethod, req.Extras, req.PriceEstimate, req.TotalPrice,
		req.InternalResponsible, req.InternalNotes, req.Status, req.InviteID,
	))
	if err != nil {
		return reservation.ReservationRequest{}, fmt.Errorf("failed to create reservation: %w", err)
	}

	return created, nil
}

// GetByID implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) GetByID(ctx context.Context, id string) (reservation.ReservationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reservationColumns + ` FROM reservation_requests WHERE id = $1`

	req, err := scanReservation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return reservation.ReservationRequest{}, reservation.ErrReservationNotFound
		}
		return reservation.ReservationRequest{}, fmt.Errorf("failed to get reservation by id: %w", err)
	}

	return req, nil
}

// List implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) List(ctx context.Context, limit int) ([]reservation.ReservationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reservationColumns + ` FROM reservation_requests ORDER BY created_at DESC LIMIT $1`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reqs []reservation.ReservationRequest
	for rows.Next() {
		req, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reqs = append(reqs, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return reqs, nil
}

// UpdateStatus implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status reservation.Status, notes *string) (reservation.ReservationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reservation_requests
		SET status = $2, internal_notes = COALESCE($3, internal_notes), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reservationColumns

	updated, err := scanReservation(q.QueryRow(ctx, query, id, status, notes))
	if err != nil {
		if err == pgx.ErrNoRows {
			return reservation.ReservationRequest{}, reservation.ErrReservationNotFound
		}
		return reservation.ReservationRequest{}, fmt.Errorf("failed to update reservation status: %w", err)
	}

	return updated, nil
}

// CreateSignature implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) CreateSignature(ctx context.Context, sig reservation.Signature) (reservation.Signature, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO signatures (reservation_id, type, image_data)
		VALUES ($1, $2, $3)
		RETURNING id, reservation_id, type, image_data, created_at
	`

	var created reservation.Signature
	err := q.QueryRow(ctx, query, sig.ReservationID, sig.Type, sig.ImageData).Scan(
		&created.ID, &created.ReservationID, &created.Type,
		&created.ImageData, &created.CreatedAt,
	)
	if err != nil {
		return reservation.Signature{}, fmt.Errorf("failed to create signature: %w", err)
	}

	return created, nil
}

// ListSignatures implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) ListSignatures(ctx context.Context, reservationID string) ([]reservation.Signature, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, reservation_id, type, image_data, created_at
		FROM signatures
		WHERE reservation_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}
	defer rows.Close()

	var sigs []reservation.Signature
	for rows.Next() {
		var sig reservation.Signature
		err := rows.Scan(&sig.ID, &sig.ReservationID, &sig.Type, &sig.ImageData, &sig.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signature: %w", err)
		}
		sigs = append(sigs, sig)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sigs, nil
}
