package postgresql_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/reservation"
	"github.com/heidekoenig/reservation-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRepository_CreateAndGetByID(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewReservationRepository(testDB)

	req := newTestSubmissionRequest(uuid.NewString())
	created, err := repo.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, req.ID, created.ID)
	assert.Equal(t, reservation.StatusNew, created.Status)

	found, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Beispiel", found.GuestName)
	assert.Equal(t, 40, found.NumberOfGuests)
	assert.Equal(t, []string{"Dekoration", "DJ"}, found.Extras)
}

func TestReservationRepository_GetByID_NotFound(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewReservationRepository(testDB)

	_, err := repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewReservationRepository(testDB)

	req := newTestSubmissionRequest(uuid.NewString())
	_, err := repo.Create(ctx, req)
	require.NoError(t, err)

	notes := "Rücksprache mit Küche"
	updated, err := repo.UpdateStatus(ctx, req.ID, reservation.StatusConfirmed, &notes)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, updated.Status)
	require.NotNil(t, updated.InternalNotes)
	assert.Equal(t, notes, *updated.InternalNotes)

	// nil notes keep the previous value
	updated, err = repo.UpdateStatus(ctx, req.ID, reservation.StatusCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusCancelled, updated.Status)
	require.NotNil(t, updated.InternalNotes)
	assert.Equal(t, notes, *updated.InternalNotes)

	_, err = repo.UpdateStatus(ctx, uuid.NewString(), reservation.StatusConfirmed, nil)
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
}

func TestReservationRepository_Signatures(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewReservationRepository(testDB)

	req := newTestSubmissionRequest(uuid.NewString())
	_, err := repo.Create(ctx, req)
	require.NoError(t, err)

	sig, err := repo.CreateSignature(ctx, reservation.Signature{
		ReservationID: req.ID,
		Type:          reservation.SignatureHost,
		ImageData:     []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sig.ID)

	sigs, err := repo.ListSignatures(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, reservation.SignatureHost, sigs[0].Type)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, sigs[0].ImageData)
}

func TestReservationRepository_List_NewestFirst(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewReservationRepository(testDB)

	first := newTestSubmissionRequest(uuid.NewString())
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := newTestSubmissionRequest(uuid.NewString())
	second.GuestName = "Jonas Zweit"
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	results, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, second.ID, results[0].ID)
	assert.Equal(t, first.ID, results[1].ID)
}
