package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/wedding-planner/internal/migrations"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
				wait.ForListeningPort(nat.Port("5432/tcp")),
			).WithStartupTimeoutDefault(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, storage *Storage, status models.AccountStatus, trialEndsAt time.Time) string {
	t.Helper()
	uid, err := storage.RegisterUser(context.Background(), models.User{
		UID:           uuid.New().String(),
		Email:         uuid.New().String() + "@example.com",
		Username:      "u" + uuid.New().String()[:8],
		PasswordHash:  "hashedpassword",
		Role:          "user",
		AccountStatus: status,
		TrialEndsAt:   &trialEndsAt,
	})
	require.NoError(t, err)
	return uid
}

func createTestWedding(t *testing.T, storage *Storage, userUID string) string {
	t.Helper()
	id, err := storage.CreateWedding(context.Background(), models.Wedding{
		ID:           uuid.New().String(),
		UserUID:      userUID,
		Partner1Name: "Анна",
		Partner2Name: "Борис",
		WeddingDate:  time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC),
		GuestCount:   80,
		CeremonyType: "outdoor",
		TotalBudget:  500000,
	})
	require.NoError(t, err)
	return id
}

func TestStorage_AccountLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	trialEnd := time.Now().UTC().Add(-time.Hour)
	uid := createTestUser(t, storage, models.StatusTrialActive, trialEnd)

	// Пользователь с истёкшим пробным периодом попадает в выборку обхода.
	expired, err := storage.FindExpiredTrials(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, uid, expired[0].UID)

	deletionAt := time.Now().UTC().Add(30 * 24 * time.Hour)
	count, err := storage.UpdateAccountStatus(ctx, uid, models.StatusTrialExpired, &deletionAt)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	user, err := storage.GetUserByUID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTrialExpired, user.AccountStatus)
	require.NotNil(t, user.DeletionScheduledAt)

	// После перевода в trial_expired пользователь больше не в выборке.
	expired, err = storage.FindExpiredTrials(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, expired)

	// Пользователь в окне предупреждения об удалении.
	warned, err := storage.FindUsersInDeletionWindow(ctx, time.Now().UTC(), 31*24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, warned, 1)
}

func TestStorage_PurgeUserData(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	trialEnd := time.Now().UTC().Add(-time.Hour)
	uid := createTestUser(t, storage, models.StatusTrialExpired, trialEnd)
	weddingID := createTestWedding(t, storage, uid)

	_, err := storage.CreateGuest(ctx, models.Guest{
		ID:         uuid.New().String(),
		WeddingID:  weddingID,
		Name:       "Анна Иванова",
		RSVPStatus: "invited",
	})
	require.NoError(t, err)

	require.NoError(t, storage.PurgeUserData(ctx, uid))

	// Свадьба и гости удалены, аккаунт помечен deleted.
	_, err = storage.ReadWeddingByUserUID(ctx, uid)
	assert.ErrorIs(t, err, ErrWeddingNotFound)

	user, err := storage.GetUserByUID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, user.AccountStatus)
}

func TestStorage_GuestCRUD(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	uid := createTestUser(t, storage, models.StatusTrialActive, time.Now().UTC().Add(24*time.Hour))
	weddingID := createTestWedding(t, storage, uid)

	guest := models.Guest{
		ID:         uuid.New().String(),
		WeddingID:  weddingID,
		Name:       "Борис Петров",
		RSVPStatus: "planned",
	}
	id, err := storage.CreateGuest(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, id)

	guests, err := storage.ListGuests(ctx, weddingID)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Борис Петров", guests[0].Name)

	guest.RSVPStatus = "accepted"
	count, err := storage.UpdateGuest(ctx, guest, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.RemoveGuest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	guests, err = storage.ListGuests(ctx, weddingID)
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestStorage_TimelineOrdering(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	uid := createTestUser(t, storage, models.StatusTrialActive, time.Now().UTC().Add(24*time.Hour))
	weddingID := createTestWedding(t, storage, uid)

	var ids []string
	for _, title := range []string{"Церемония", "Банкет", "Танцы"} {
		id, err := storage.CreateTimelineBlock(ctx, models.TimelineBlock{
			ID:        uuid.New().String(),
			WeddingID: weddingID,
			Title:     title,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	blocks, err := storage.ListTimelineBlocks(ctx, weddingID)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, "Церемония", blocks[0].Title)

	// Обратный порядок.
	reversed := []string{ids[2], ids[1], ids[0]}
	require.NoError(t, storage.ReorderTimelineBlocks(ctx, weddingID, reversed))

	blocks, err = storage.ListTimelineBlocks(ctx, weddingID)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, "Танцы", blocks[0].Title)
	assert.Equal(t, "Церемония", blocks[2].Title)
}
