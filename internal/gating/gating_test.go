package gating_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/wedding-planner/internal/gating"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

func newService() *gating.Service {
	return gating.New(gating.NewSessionStore(), 7, 24*time.Hour)
}

func readOnlyStatus(deletionAt *time.Time) lifecycle.Status {
	return lifecycle.Status{
		AccountStatus:       models.StatusTrialExpired,
		IsReadOnly:          true,
		DeletionScheduledAt: deletionAt,
	}
}

func TestService_Resolve_OneAffordancePerStatus(t *testing.T) {
	in3Days := time.Now().UTC().Add(3 * 24 * time.Hour)

	tests := []struct {
		name     string
		status   lifecycle.Status
		wantKind gating.Kind
	}{
		{
			name: "trial active shows trial banner",
			status: lifecycle.Status{
				AccountStatus: models.StatusTrialActive,
				HasAccess:     true,
				DaysRemaining: 12,
			},
			wantKind: gating.KindTrialBanner,
		},
		{
			name: "premium active shows nothing",
			status: lifecycle.Status{
				AccountStatus: models.StatusPremiumActive,
				HasAccess:     true,
			},
			wantKind: gating.KindNone,
		},
		{
			name:     "trial expired inside warning window shows deletion warning",
			status:   readOnlyStatus(&in3Days),
			wantKind: gating.KindDeletionWarning,
		},
		{
			name: "premium cancelled inside warning window shows deletion warning",
			status: lifecycle.Status{
				AccountStatus:       models.StatusPremiumCancelled,
				IsReadOnly:          true,
				DeletionScheduledAt: &in3Days,
			},
			wantKind: gating.KindDeletionWarning,
		},
		{
			name:     "suspended shows nothing",
			status:   lifecycle.Status{AccountStatus: models.StatusSuspended},
			wantKind: gating.KindNone,
		},
		{
			name:     "deleted shows nothing",
			status:   lifecycle.Status{AccountStatus: models.StatusDeleted},
			wantKind: gating.KindNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService()
			got := svc.Resolve(tt.status, "uid-1", "session-1")
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestService_Resolve_TrialBannerCarriesDaysRemaining(t *testing.T) {
	svc := newService()
	got := svc.Resolve(lifecycle.Status{
		AccountStatus: models.StatusTrialActive,
		HasAccess:     true,
		DaysRemaining: 5,
	}, "uid-1", "session-1")

	assert.Equal(t, gating.KindTrialBanner, got.Kind)
	assert.Equal(t, 5, got.DaysRemaining)
}

func TestService_Resolve_WarningWindow(t *testing.T) {
	in8Days := time.Now().UTC().Add(8 * 24 * time.Hour)
	in7Days := time.Now().UTC().Add(7*24*time.Hour - time.Minute)
	anHourAgo := time.Now().UTC().Add(-time.Hour)

	t.Run("outside window shows read-only banner with countdown", func(t *testing.T) {
		svc := newService()
		got := svc.Resolve(readOnlyStatus(&in8Days), "uid-1", "session-1")
		assert.Equal(t, gating.KindReadOnlyBanner, got.Kind)
		assert.Equal(t, 8, got.DaysUntilDeletion)
	})

	t.Run("inside window shows deletion warning", func(t *testing.T) {
		svc := newService()
		got := svc.Resolve(readOnlyStatus(&in7Days), "uid-1", "session-1")
		assert.Equal(t, gating.KindDeletionWarning, got.Kind)
		assert.Equal(t, 7, got.DaysUntilDeletion)
	})

	t.Run("past deletion date falls back to read-only banner", func(t *testing.T) {
		svc := newService()
		got := svc.Resolve(readOnlyStatus(&anHourAgo), "uid-1", "session-1")
		assert.Equal(t, gating.KindReadOnlyBanner, got.Kind)
		assert.Equal(t, 0, got.DaysUntilDeletion)
	})

	t.Run("missing deletion date falls back to read-only banner", func(t *testing.T) {
		svc := newService()
		got := svc.Resolve(readOnlyStatus(nil), "uid-1", "session-1")
		assert.Equal(t, gating.KindReadOnlyBanner, got.Kind)
		assert.Equal(t, 0, got.DaysUntilDeletion)
	})
}

func TestService_Resolve_WarningShownOncePerDay(t *testing.T) {
	in3Days := time.Now().UTC().Add(3 * 24 * time.Hour)
	svc := newService()

	first := svc.Resolve(readOnlyStatus(&in3Days), "uid-1", "session-1")
	assert.Equal(t, gating.KindDeletionWarning, first.Kind)

	// повторный показ в пределах суток подавляется даже в новой сессии
	second := svc.Resolve(readOnlyStatus(&in3Days), "uid-1", "session-2")
	assert.Equal(t, gating.KindReadOnlyBanner, second.Kind)
}

func TestSessionStore_Prune(t *testing.T) {
	now := time.Now().UTC()
	store := gating.NewSessionStore()

	store.MarkWarned("uid-old", now.Add(-3*24*time.Hour))
	store.MarkWarned("uid-fresh", now)
	store.DismissWarning("session-fresh")

	store.Prune(48 * time.Hour)

	_, ok := store.LastWarnedAt("uid-old")
	assert.False(t, ok)
	_, ok = store.LastWarnedAt("uid-fresh")
	assert.True(t, ok)
	assert.True(t, store.IsDismissed("session-fresh"))
}

func TestService_Resolve_DismissSuppressesForSession(t *testing.T) {
	in3Days := time.Now().UTC().Add(3 * 24 * time.Hour)
	svc := gating.New(gating.NewSessionStore(), 7, 0)

	first := svc.Resolve(readOnlyStatus(&in3Days), "uid-1", "session-1")
	assert.Equal(t, gating.KindDeletionWarning, first.Kind)

	svc.Dismiss("session-1")

	// после закрытия в этой сессии остаётся только баннер
	again := svc.Resolve(readOnlyStatus(&in3Days), "uid-1", "session-1")
	assert.Equal(t, gating.KindReadOnlyBanner, again.Kind)

	// новая сессия снова получает предупреждение
	fresh := svc.Resolve(readOnlyStatus(&in3Days), "uid-1", "session-2")
	assert.Equal(t, gating.KindDeletionWarning, fresh.Kind)
}
