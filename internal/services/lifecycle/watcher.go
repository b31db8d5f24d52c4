package lifecycle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
)

// DefaultPollInterval — период фонового опроса статуса подписки.
const DefaultPollInterval = 5 * time.Minute

// DefaultDebounce — пауза между push-уведомлением и повторным чтением
// статуса, чтобы серия быстрых изменений схлопнулась в одно обновление.
const DefaultDebounce = time.Second

// StatusChecker описывает источник снимков статуса подписки.
type StatusChecker interface {
	CheckTrialStatus(ctx context.Context, userUID string) (Status, error)
}

// ProfileSubscriber подписывает на push-канал изменений профиля пользователя.
type ProfileSubscriber interface {
	SubscribeProfileChanged(ctx context.Context, userUID string) (<-chan *redis.Message, func() error)
}

// Watcher наблюдает за статусом подписки одного пользователя.
//
// Снимок обновляется по таймеру опроса и по push-уведомлениям из Redis;
// push-сигналы схлопываются дебаунсом. При ошибке чтения последний
// успешно полученный снимок продолжает отдаваться из Snapshot.
type Watcher struct {
	checker  StatusChecker
	profiles ProfileSubscriber
	log      *slog.Logger
	userUID  string
	poll     time.Duration
	debounce time.Duration

	mu   sync.RWMutex
	last *Status
	subs map[chan Status]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher создает наблюдатель статуса для пользователя userUID.
func NewWatcher(checker StatusChecker, profiles ProfileSubscriber, log *slog.Logger,
	userUID string, poll, debounce time.Duration) *Watcher {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		checker:  checker,
		profiles: profiles,
		log:      log,
		userUID:  userUID,
		poll:     poll,
		debounce: debounce,
		subs:     make(map[chan Status]struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновый цикл наблюдения. Первый снимок читается сразу.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	msgs, unsubscribe := w.profiles.SubscribeProfileChanged(ctx, w.userUID)
	go w.run(ctx, msgs, unsubscribe)
}

func (w *Watcher) run(ctx context.Context, msgs <-chan *redis.Message, unsubscribe func() error) {
	defer close(w.done)
	defer func() {
		if err := unsubscribe(); err != nil {
			w.log.Warn("failed to unsubscribe from profile channel", sl.Err(err))
		}
	}()

	w.refresh(ctx)

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	debounce := time.NewTimer(w.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refresh(ctx)
		case _, ok := <-msgs:
			if !ok {
				msgs = nil
				continue
			}
			debounce.Reset(w.debounce)
		case <-debounce.C:
			w.refresh(ctx)
		}
	}
}

func (w *Watcher) refresh(ctx context.Context) {
	status, err := w.checker.CheckTrialStatus(ctx, w.userUID)
	if err != nil {
		w.log.Warn("failed to refresh subscription status, keeping last snapshot",
			slog.String("user_uid", w.userUID), sl.Err(err))
		return
	}

	w.mu.Lock()
	changed := w.last == nil || !w.last.Equal(status)
	w.last = &status
	var targets []chan Status
	if changed {
		for sub := range w.subs {
			targets = append(targets, sub)
		}
	}
	w.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub <- status:
		default:
			// подписчик не успевает читать, пропускаем обновление
		}
	}
}

// Snapshot возвращает последний успешно полученный снимок статуса.
// До первого успешного чтения возвращает false вторым значением.
func (w *Watcher) Snapshot() (Status, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.last == nil {
		return Status{}, false
	}
	return *w.last, true
}

// Subscribe регистрирует подписчика на изменения статуса.
// Возвращает канал обновлений и функцию отписки.
func (w *Watcher) Subscribe() (<-chan Status, func()) {
	ch := make(chan Status, 1)
	w.mu.Lock()
	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	unsubscribe := func() {
		w.mu.Lock()
		delete(w.subs, ch)
		w.mu.Unlock()
	}
	return ch, unsubscribe
}

// Close останавливает наблюдение и дожидается завершения фонового цикла.
func (w *Watcher) Close() {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
}
