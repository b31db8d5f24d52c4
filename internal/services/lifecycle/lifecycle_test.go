package lifecycle_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateAccountStatus(ctx context.Context, userUID string,
	status models.AccountStatus, deletionScheduledAt *time.Time) (int, error) {
	args := m.Called(ctx, userUID, status, deletionScheduledAt)
	return args.Int(0), args.Error(1)
}

// Мок для ProfileNotifier
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) PublishProfileChanged(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestService_CheckTrialStatus(t *testing.T) {
	now := time.Now().UTC()
	in10Days := now.Add(9*24*time.Hour + time.Hour)
	anHourAgo := now.Add(-time.Hour)
	in5Days := now.Add(5 * 24 * time.Hour)

	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, n *NotifierMock)
		check      func(t *testing.T, st lifecycle.Status)
		wantErr    bool
	}{
		{
			name: "active trial has full access",
			setupMocks: func(r *UserRepoMock, _ *NotifierMock) {
				r.On("GetUserByUID", mock.Anything, "uid-1").Return(&models.User{
					UID:           "uid-1",
					AccountStatus: models.StatusTrialActive,
					TrialEndsAt:   &in10Days,
				}, nil).Once()
			},
			check: func(t *testing.T, st lifecycle.Status) {
				assert.Equal(t, models.StatusTrialActive, st.AccountStatus)
				assert.True(t, st.HasAccess)
				assert.False(t, st.IsReadOnly)
				assert.Equal(t, 10, st.DaysRemaining)
			},
		},
		{
			name: "expired trial moves to read-only on read",
			setupMocks: func(r *UserRepoMock, n *NotifierMock) {
				r.On("GetUserByUID", mock.Anything, "uid-1").Return(&models.User{
					UID:           "uid-1",
					AccountStatus: models.StatusTrialActive,
					TrialEndsAt:   &anHourAgo,
				}, nil).Once()
				r.On("UpdateAccountStatus", mock.Anything, "uid-1",
					models.StatusTrialExpired, mock.MatchedBy(func(at *time.Time) bool {
						return at != nil && at.After(time.Now().UTC().AddDate(0, 0, 29))
					})).Return(1, nil).Once()
				n.On("PublishProfileChanged", mock.Anything, "uid-1").Return(nil).Once()
			},
			check: func(t *testing.T, st lifecycle.Status) {
				assert.Equal(t, models.StatusTrialExpired, st.AccountStatus)
				assert.False(t, st.HasAccess)
				assert.True(t, st.IsReadOnly)
				// обратный отсчёт до удаления данных: весь льготный период
				assert.Equal(t, 30, st.DaysRemaining)
				assert.NotNil(t, st.DeletionScheduledAt)
			},
		},
		{
			name: "premium active has full access",
			setupMocks: func(r *UserRepoMock, _ *NotifierMock) {
				r.On("GetUserByUID", mock.Anything, "uid-1").Return(&models.User{
					UID:           "uid-1",
					AccountStatus: models.StatusPremiumActive,
				}, nil).Once()
			},
			check: func(t *testing.T, st lifecycle.Status) {
				assert.True(t, st.HasAccess)
				assert.False(t, st.IsReadOnly)
			},
		},
		{
			name: "premium cancelled is read-only with deletion date",
			setupMocks: func(r *UserRepoMock, _ *NotifierMock) {
				r.On("GetUserByUID", mock.Anything, "uid-1").Return(&models.User{
					UID:                 "uid-1",
					AccountStatus:       models.StatusPremiumCancelled,
					DeletionScheduledAt: &in5Days,
				}, nil).Once()
			},
			check: func(t *testing.T, st lifecycle.Status) {
				assert.False(t, st.HasAccess)
				assert.True(t, st.IsReadOnly)
				assert.Equal(t, 5, st.DaysRemaining)
				require.NotNil(t, st.DeletionScheduledAt)
				assert.True(t, st.DeletionScheduledAt.Equal(in5Days))
			},
		},
		{
			name: "suspended account has no access and is not read-only",
			setupMocks: func(r *UserRepoMock, _ *NotifierMock) {
				r.On("GetUserByUID", mock.Anything, "uid-1").Return(&models.User{
					UID:           "uid-1",
					AccountStatus: models.StatusSuspended,
				}, nil).Once()
			},
			check: func(t *testing.T, st lifecycle.Status) {
				assert.False(t, st.HasAccess)
				assert.False(t, st.IsReadOnly)
			},
		},
		{
			name: "deleted account has no access",
			setupMocks: func(r *UserRepoMock, _ *NotifierMock) {
				r.On("GetUserByUID", mock.Anything, "uid-1").Return(&models.User{
					UID:           "uid-1",
					AccountStatus: models.StatusDeleted,
				}, nil).Once()
			},
			check: func(t *testing.T, st lifecycle.Status) {
				assert.False(t, st.HasAccess)
				assert.False(t, st.IsReadOnly)
			},
		},
		{
			name: "storage error is propagated",
			setupMocks: func(r *UserRepoMock, _ *NotifierMock) {
				r.On("GetUserByUID", mock.Anything, "uid-1").
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			notifier := new(NotifierMock)
			tt.setupMocks(repo, notifier)

			svc := lifecycle.New(repo, notifier, discardLogger(), 30)

			st, err := svc.CheckTrialStatus(context.Background(), "uid-1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				tt.check(t, st)
				// доступ и режим «только чтение» несовместимы
				assert.False(t, st.HasAccess && st.IsReadOnly)
			}

			repo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestService_CheckTrialStatus_ReadOnlyCountsDownToDeletion(t *testing.T) {
	repo := new(UserRepoMock)
	notifier := new(NotifierMock)

	in3Days := time.Now().UTC().Add(3 * 24 * time.Hour)
	repo.On("GetUserByUID", mock.Anything, "uid-1").Return(&models.User{
		UID:                 "uid-1",
		AccountStatus:       models.StatusTrialExpired,
		DeletionScheduledAt: &in3Days,
	}, nil).Once()

	svc := lifecycle.New(repo, notifier, discardLogger(), 30)

	st, err := svc.CheckTrialStatus(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.True(t, st.IsReadOnly)
	assert.Equal(t, 3, st.DaysRemaining)

	repo.AssertExpectations(t)
}

func TestService_CheckTrialStatus_TrialEndingNowKeepsAccess(t *testing.T) {
	repo := new(UserRepoMock)
	notifier := new(NotifierMock)

	// дата окончания в будущем менее чем на сутки: остаётся ровно один день
	endsSoon := time.Now().UTC().Add(30 * time.Minute)
	repo.On("GetUserByUID", mock.Anything, "uid-1").Return(&models.User{
		UID:           "uid-1",
		AccountStatus: models.StatusTrialActive,
		TrialEndsAt:   &endsSoon,
	}, nil).Once()

	svc := lifecycle.New(repo, notifier, discardLogger(), 30)

	st, err := svc.CheckTrialStatus(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.True(t, st.HasAccess)
	assert.Equal(t, 1, st.DaysRemaining)

	repo.AssertExpectations(t)
}
