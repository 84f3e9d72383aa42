package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/invite"
	"github.com/heidekoenig/reservation-backend-go/internal/domain/maillog"
	"github.com/heidekoenig/reservation-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteRepository_CreateAndGetByHash(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewInviteRepository(testDB)

	_, hash := newTestToken(t)
	email := "guest@example.com"
	note := "Stammgast"
	expiresAt := time.Now().Add(7 * 24 * time.Hour)

	created, err := repo.Create(ctx, invite.InviteLink{
		FormKey:        "gesellschaften",
		TokenHash:      hash,
		RecipientEmail: &email,
		Note:           &note,
		ExpiresAt:      &expiresAt,
		MaxUses:        2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.UseCount)
	assert.False(t, created.IsRevoked)

	found, err := repo.GetByHash(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "gesellschaften", found.FormKey)
	assert.Equal(t, 2, found.MaxUses)
	require.NotNil(t, found.RecipientEmail)
	assert.Equal(t, email, *found.RecipientEmail)
}

func TestInviteRepository_GetByHash_NotFound(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewInviteRepository(testDB)

	_, err := repo.GetByHash(ctx, "deadbeef")
	assert.ErrorIs(t, err, invite.ErrInviteNotFound)
}

func TestInviteRepository_Revoke(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewInviteRepository(testDB)
	link := createTestInvite(t, ctx, repo, 1, nil)

	require.NoError(t, repo.Revoke(ctx, link.ID))

	found, err := repo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.True(t, found.IsRevoked)

	// idempotent
	require.NoError(t, repo.Revoke(ctx, link.ID))

	err = repo.Revoke(ctx, uuid.NewString())
	assert.ErrorIs(t, err, invite.ErrInviteNotFound)
}

func TestInviteRepository_TryConsume_SingleUse(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewInviteRepository(testDB)
	link := createTestInvite(t, ctx, repo, 1, nil)
	reservationID := uuid.NewString()

	ok, err := repo.TryConsume(ctx, link.ID, link.MaxUses, time.Now(), reservationID)
	require.NoError(t, err)
	assert.True(t, ok)

	consumed, err := repo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, consumed.UseCount)
	require.NotNil(t, consumed.UsedAt)
	require.NotNil(t, consumed.UsedByReservationID)
	assert.Equal(t, reservationID, *consumed.UsedByReservationID)

	ok, err = repo.TryConsume(ctx, link.ID, link.MaxUses, time.Now(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInviteRepository_TryConsume_RefusesRevokedAndExpired(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewInviteRepository(testDB)

	revoked := createTestInvite(t, ctx, repo, 1, nil)
	require.NoError(t, repo.Revoke(ctx, revoked.ID))
	ok, err := repo.TryConsume(ctx, revoked.ID, revoked.MaxUses, time.Now(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)

	past := time.Now().Add(-time.Hour)
	expired := createTestInvite(t, ctx, repo, 1, &past)
	ok, err = repo.TryConsume(ctx, expired.ID, expired.MaxUses, time.Now(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)

	// neither refusal may touch the counters
	for _, id := range []string{revoked.ID, expired.ID} {
		found, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, found.UseCount)
		assert.Nil(t, found.UsedAt)
	}
}

func TestInviteRepository_TryConsume_StaleQuotaSnapshot(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewInviteRepository(testDB)
	link := createTestInvite(t, ctx, repo, 5, nil)

	ok, err := repo.TryConsume(ctx, link.ID, link.MaxUses, time.Now(), uuid.NewString())
	require.NoError(t, err)
	assert.True(t, ok)

	// A caller whose snapshot predates the first consumption may not admit
	// past its own quota view.
	ok, err = repo.TryConsume(ctx, link.ID, 1, time.Now(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInviteRepository_TryConsume_ConcurrentQuota(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	repo := postgresql.NewInviteRepository(testDB)
	link := createTestInvite(t, ctx, repo, 3, nil)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]bool, attempts)
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.TryConsume(ctx, link.ID, link.MaxUses, time.Now(), uuid.NewString())
		}(i)
	}
	wg.Wait()

	var successes int
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		if results[i] {
			successes++
		}
	}
	assert.Equal(t, 3, successes, "exactly max_uses consumptions must win")

	final, err := repo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, final.UseCount)
	assert.NotNil(t, final.UsedAt)
}

func TestInviteRepository_DeleteMany_ClearsBackReferences(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	inviteRepo := postgresql.NewInviteRepository(testDB)
	reservationRepo := postgresql.NewReservationRepository(testDB)
	mailLogRepo := postgresql.NewMailLogRepository(testDB)

	link := createTestInvite(t, ctx, inviteRepo, 1, nil)
	keeper := createTestInvite(t, ctx, inviteRepo, 1, nil)

	req := newTestSubmissionRequest(uuid.NewString())
	req.InviteID = &link.ID
	created, err := reservationRepo.Create(ctx, req)
	require.NoError(t, err)

	_, err = mailLogRepo.Create(ctx, maillog.Entry{
		InviteID: &link.ID,
		To:       "guest@example.com",
		Subject:  "Einladung",
		Status:   maillog.StatusSent,
	})
	require.NoError(t, err)

	deleted, err := inviteRepo.DeleteMany(ctx, []string{link.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = inviteRepo.GetByID(ctx, link.ID)
	assert.ErrorIs(t, err, invite.ErrInviteNotFound)

	// the reservation survives with the back-reference cleared
	survivor, err := reservationRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.InviteID)

	// mail logs for the deleted invite are purged
	entries, err := mailLogRepo.ListByInviteID(ctx, link.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// unrelated invites are untouched
	_, err = inviteRepo.GetByID(ctx, keeper.ID)
	require.NoError(t, err)
}

func TestInviteRepository_ConsumeRollsBackWithReservation(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	inviteRepo := postgresql.NewInviteRepository(testDB)
	reservationRepo := postgresql.NewReservationRepository(testDB)

	link := createTestInvite(t, ctx, inviteRepo, 1, nil)
	reservationID := uuid.NewString()
	boom := errors.New("insert failed")

	err := postgresql.WithTransaction(ctx, testDB, func(txCtx context.Context) error {
		ok, err := inviteRepo.TryConsume(txCtx, link.ID, link.MaxUses, time.Now(), reservationID)
		require.NoError(t, err)
		require.True(t, ok)

		req := newTestSubmissionRequest(reservationID)
		req.InviteID = &link.ID
		if _, err := reservationRepo.Create(txCtx, req); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// the failed reservation must not have burned a use
	after, err := inviteRepo.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.UseCount)
	assert.Nil(t, after.UsedAt)
	assert.Nil(t, after.UsedByReservationID)

	_, err = reservationRepo.GetByID(ctx, reservationID)
	assert.Error(t, err)
}
