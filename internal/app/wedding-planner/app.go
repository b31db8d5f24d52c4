// Package weddingplanner собирает и запускает основное HTTP-приложение
// планировщика свадеб.
package weddingplanner

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/wedding-planner/internal/cache"
	"github.com/magabrotheeeer/wedding-planner/internal/config"
	"github.com/magabrotheeeer/wedding-planner/internal/gating"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/jwt"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/smtp"
	"github.com/magabrotheeeer/wedding-planner/internal/migrations"
	authservice "github.com/magabrotheeeer/wedding-planner/internal/services/auth"
	budgetservice "github.com/magabrotheeeer/wedding-planner/internal/services/budget"
	dashboardservice "github.com/magabrotheeeer/wedding-planner/internal/services/dashboard"
	"github.com/magabrotheeeer/wedding-planner/internal/services/exporter"
	feedbackservice "github.com/magabrotheeeer/wedding-planner/internal/services/feedback"
	guestservice "github.com/magabrotheeeer/wedding-planner/internal/services/guest"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
	paymentservice "github.com/magabrotheeeer/wedding-planner/internal/services/payment"
	privacyservice "github.com/magabrotheeeer/wedding-planner/internal/services/privacy"
	supportservice "github.com/magabrotheeeer/wedding-planner/internal/services/support"
	taskservice "github.com/magabrotheeeer/wedding-planner/internal/services/task"
	timelineservice "github.com/magabrotheeeer/wedding-planner/internal/services/timeline"
	vendorservice "github.com/magabrotheeeer/wedding-planner/internal/services/vendor"
	weddingservice "github.com/magabrotheeeer/wedding-planner/internal/services/wedding"
	"github.com/magabrotheeeer/wedding-planner/internal/storage"
	"github.com/magabrotheeeer/wedding-planner/internal/stripe"

	"github.com/go-chi/chi"
)

// App — основное HTTP-приложение.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *storage.Storage
	sessions *gating.SessionStore
}

// New собирает все сервисы приложения и возвращает готовый к запуску App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, jwtMaker, cfg.TrialDays)

	lifecycleService := lifecycle.New(db, cacheRedis, logger, cfg.GraceDays)
	sessions := gating.NewSessionStore()
	gatingService := gating.New(sessions, cfg.WarningWindowDays, 24*time.Hour)

	weddingService := weddingservice.New(db, cacheRedis, logger)
	guestService := guestservice.New(db, db, cacheRedis, logger)
	taskService := taskservice.New(db, db, cacheRedis, logger)
	budgetService := budgetservice.New(db, db, cacheRedis, logger)
	vendorService := vendorservice.New(db, db, cacheRedis, logger)
	timelineService := timelineservice.New(db, db, cacheRedis, logger)

	dashboardService := dashboardservice.New(weddingService, guestService,
		taskService, budgetService, vendorService, timelineService, logger)

	exporterService := exporter.New(exporter.Source{
		Weddings: weddingService,
		Guests:   guestService,
		Tasks:    taskService,
		Budget:   budgetService,
		Vendors:  vendorService,
		Timeline: timelineService,
	})

	stripeClient := stripe.NewClient(cfg.Stripe.SecretKey)
	paymentService := paymentservice.New(stripeClient, db, cacheRedis, logger,
		cfg.Stripe.PriceID, paymentservice.URLs{
			Success:      cfg.Stripe.SuccessURL,
			Cancel:       cfg.Stripe.CancelURL,
			PortalReturn: cfg.Stripe.PortalReturnURL,
		}, cfg.GraceDays)

	privacyService := privacyservice.New(db, cacheRedis, logger)
	feedbackService := feedbackservice.New(db, logger)

	transport := smtp.NewTransport(cfg, logger)
	supportService := supportservice.New(transport, db, cfg.SupportEmail, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:      authService,
		Lifecycle: lifecycleService,
		Gating:    gatingService,
		Cache:     cacheRedis,
		Wedding:   weddingService,
		Guest:     guestService,
		Task:      taskService,
		Budget:    budgetService,
		Vendor:    vendorService,
		Timeline:  timelineService,
		Dashboard: dashboardService,
		Exporter:  exporterService,
		Payment:   paymentService,
		Privacy:   privacyService,
		Feedback:  feedbackService,
		Support:   supportService,
	}, cfg.Stripe.WebhookSecret)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	// Состояние показа баннеров живёт в памяти процесса: записи старше
	// двух суток уже ни на что не влияют и вычищаются по таймеру.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.sessions.Prune(48 * time.Hour)
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
