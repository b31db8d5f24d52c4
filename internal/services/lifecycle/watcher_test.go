package lifecycle_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

// checkerStub отдаёт заранее подготовленные снимки по очереди,
// последний снимок повторяется.
type checkerStub struct {
	mu       sync.Mutex
	statuses []lifecycle.Status
	errs     []error
	calls    int
}

func (c *checkerStub) CheckTrialStatus(_ context.Context, _ string) (lifecycle.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return lifecycle.Status{}, c.errs[i]
	}
	if i >= len(c.statuses) {
		i = len(c.statuses) - 1
	}
	return c.statuses[i], nil
}

func (c *checkerStub) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type subscriberStub struct {
	msgs chan *redis.Message
}

func (s *subscriberStub) SubscribeProfileChanged(_ context.Context, _ string) (<-chan *redis.Message, func() error) {
	return s.msgs, func() error { return nil }
}

func trialStatus(days int) lifecycle.Status {
	return lifecycle.Status{
		AccountStatus: models.StatusTrialActive,
		HasAccess:     true,
		DaysRemaining: days,
	}
}

func TestWatcher_SnapshotAfterStart(t *testing.T) {
	checker := &checkerStub{statuses: []lifecycle.Status{trialStatus(10)}}
	subscriber := &subscriberStub{msgs: make(chan *redis.Message)}

	w := lifecycle.NewWatcher(checker, subscriber, discardLogger(), "uid-1",
		time.Hour, 10*time.Millisecond)
	w.Start(context.Background())
	defer w.Close()

	require.Eventually(t, func() bool {
		_, ok := w.Snapshot()
		return ok
	}, time.Second, 5*time.Millisecond)

	st, ok := w.Snapshot()
	require.True(t, ok)
	assert.Equal(t, models.StatusTrialActive, st.AccountStatus)
	assert.Equal(t, 10, st.DaysRemaining)
}

func TestWatcher_PushTriggersRefreshAndNotifiesSubscribers(t *testing.T) {
	checker := &checkerStub{statuses: []lifecycle.Status{
		trialStatus(10),
		{AccountStatus: models.StatusTrialExpired, IsReadOnly: true},
	}}
	subscriber := &subscriberStub{msgs: make(chan *redis.Message, 1)}

	w := lifecycle.NewWatcher(checker, subscriber, discardLogger(), "uid-1",
		time.Hour, 10*time.Millisecond)
	w.Start(context.Background())
	defer w.Close()

	updates, unsubscribe := w.Subscribe()
	defer unsubscribe()

	require.Eventually(t, func() bool {
		_, ok := w.Snapshot()
		return ok
	}, time.Second, 5*time.Millisecond)

	// push-уведомление об изменении профиля
	subscriber.msgs <- &redis.Message{Channel: "user_profiles:changed:uid-1"}

	select {
	case st := <-updates:
		assert.Equal(t, models.StatusTrialExpired, st.AccountStatus)
		assert.True(t, st.IsReadOnly)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for status update")
	}
}

func TestWatcher_DebounceCollapsesBurstOfPushes(t *testing.T) {
	checker := &checkerStub{statuses: []lifecycle.Status{trialStatus(10)}}
	subscriber := &subscriberStub{msgs: make(chan *redis.Message, 10)}

	w := lifecycle.NewWatcher(checker, subscriber, discardLogger(), "uid-1",
		time.Hour, 50*time.Millisecond)
	w.Start(context.Background())
	defer w.Close()

	require.Eventually(t, func() bool {
		return checker.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		subscriber.msgs <- &redis.Message{}
	}

	// серия из пяти сигналов схлопывается в одно обновление
	require.Eventually(t, func() bool {
		return checker.callCount() == 2
	}, time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, checker.callCount())
}

func TestWatcher_KeepsLastSnapshotOnError(t *testing.T) {
	checker := &checkerStub{
		statuses: []lifecycle.Status{trialStatus(10)},
		errs:     []error{nil, errors.New("db down")},
	}
	subscriber := &subscriberStub{msgs: make(chan *redis.Message, 1)}

	w := lifecycle.NewWatcher(checker, subscriber, discardLogger(), "uid-1",
		time.Hour, 10*time.Millisecond)
	w.Start(context.Background())
	defer w.Close()

	require.Eventually(t, func() bool {
		_, ok := w.Snapshot()
		return ok
	}, time.Second, 5*time.Millisecond)

	subscriber.msgs <- &redis.Message{}

	require.Eventually(t, func() bool {
		return checker.callCount() == 2
	}, time.Second, 5*time.Millisecond)

	// ошибка чтения не затирает последний успешный снимок
	st, ok := w.Snapshot()
	require.True(t, ok)
	assert.Equal(t, models.StatusTrialActive, st.AccountStatus)
	assert.Equal(t, 10, st.DaysRemaining)
}
