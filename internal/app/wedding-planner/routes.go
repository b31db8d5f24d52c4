// Package weddingplanner предоставляет маршруты для основного приложения.
package weddingplanner

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/wedding-planner/docs"
	"github.com/magabrotheeeer/wedding-planner/internal/cache"
	"github.com/magabrotheeeer/wedding-planner/internal/gating"
	accountbanner "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/account/banner"
	"github.com/magabrotheeeer/wedding-planner/internal/http/handlers/account/bannerdismiss"
	accountremove "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/account/remove"
	accountstatus "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/account/status"
	"github.com/magabrotheeeer/wedding-planner/internal/http/handlers/account/statusws"
	"github.com/magabrotheeeer/wedding-planner/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/wedding-planner/internal/http/handlers/auth/register"
	budgetcreate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/budgetitem/create"
	budgetlist "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/budgetitem/list"
	budgetremove "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/budgetitem/remove"
	budgetsummary "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/budgetitem/summary"
	budgetupdate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/budgetitem/update"
	dashboardhandler "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/dashboard"
	exportcsv "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/export/csv"
	exportfull "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/export/full"
	exportpdf "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/export/pdf"
	feedbackstatus "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/feedback/status"
	feedbacksubmit "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/feedback/submit"
	guestcreate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/guest/create"
	guestlist "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/guest/list"
	guestremove "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/guest/remove"
	guestupdate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/guest/update"
	"github.com/magabrotheeeer/wedding-planner/internal/http/handlers/health"
	paymentcheckout "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/payment/checkout"
	paymentportal "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/payment/portal"
	paymentwebhook "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/payment/webhook"
	supportsend "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/support/send"
	taskcreate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/task/create"
	tasklist "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/task/list"
	taskremove "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/task/remove"
	taskupdate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/task/update"
	timelinecreate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/timelineblock/create"
	timelinelist "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/timelineblock/list"
	timelinereorder "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/timelineblock/reorder"
	timelineremove "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/timelineblock/remove"
	timelineupdate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/timelineblock/update"
	vendorcreate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/vendorhandlers/create"
	vendorlist "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/vendorhandlers/list"
	vendorremove "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/vendorhandlers/remove"
	vendorupdate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/vendorhandlers/update"
	weddingcreate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/wedding/create"
	weddingread "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/wedding/read"
	weddingupdate "github.com/magabrotheeeer/wedding-planner/internal/http/handlers/wedding/update"
	"github.com/magabrotheeeer/wedding-planner/internal/http/middlewarectx"
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
)

// Services — набор сервисов, которыми пользуются обработчики.
type Services struct {
	Auth      *authservice.Service
	Lifecycle *lifecycle.Service
	Gating    *gating.Service
	Cache     *cache.Cache
	Wedding   *weddingservice.Service
	Guest     *guestservice.Service
	Task      *taskservice.Service
	Budget    *budgetservice.Service
	Vendor    *vendorservice.Service
	Timeline  *timelineservice.Service
	Dashboard *dashboardservice.Service
	Exporter  *exporter.Service
	Payment   *paymentservice.Service
	Privacy   *privacyservice.Service
	Feedback  *feedbackservice.Service
	Support   *supportservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, webhookSecret string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	newWatcher := func(userUID string) *lifecycle.Watcher {
		return lifecycle.NewWatcher(s.Lifecycle, s.Cache, logger, userUID, 0, 0)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Статус, баннеры и управление аккаунтом доступны в любом
			// состоянии аккаунта, иначе режим «только чтение» нельзя
			// было бы ни увидеть, ни оплатить.
			r.Get("/account/status", accountstatus.New(logger, s.Lifecycle).ServeHTTP)
			r.Get("/account/status/ws", statusws.New(logger, newWatcher).ServeHTTP)
			r.Get("/account/banner", accountbanner.New(logger, s.Lifecycle, s.Gating).ServeHTTP)
			r.Post("/account/banner/dismiss", bannerdismiss.New(logger, s.Gating).ServeHTTP)
			r.Delete("/account", accountremove.New(logger, s.Privacy).ServeHTTP)

			r.Post("/payment/checkout", paymentcheckout.New(logger, s.Payment).ServeHTTP)
			r.Post("/payment/portal", paymentportal.New(logger, s.Payment).ServeHTTP)

			// Выгрузки работают и в режиме «только чтение»: пользователь
			// должен иметь возможность забрать свои данные.
			r.Get("/export/csv", exportcsv.New(logger, s.Exporter).ServeHTTP)
			r.Get("/export/pdf", exportpdf.New(logger, s.Exporter).ServeHTTP)
			r.Get("/export/full", exportfull.New(logger, s.Exporter).ServeHTTP)

			r.Post("/feedback", feedbacksubmit.New(logger, s.Feedback).ServeHTTP)
			r.Get("/feedback/status", feedbackstatus.New(logger, s.Feedback).ServeHTTP)
			r.Post("/support", supportsend.New(logger, s.Support).ServeHTTP)

			// Разделы планирования: чтение доступно в режиме «только
			// чтение», изменения блокируются middleware.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AccountAccessMiddleware(logger, s.Lifecycle))

				r.Post("/wedding", weddingcreate.New(logger, s.Wedding).ServeHTTP)
				r.Get("/wedding", weddingread.New(logger, s.Wedding).ServeHTTP)
				r.Put("/wedding", weddingupdate.New(logger, s.Wedding).ServeHTTP)

				r.Get("/dashboard", dashboardhandler.New(logger, s.Dashboard).ServeHTTP)

				r.Post("/guests", guestcreate.New(logger, s.Guest).ServeHTTP)
				r.Get("/guests", guestlist.New(logger, s.Guest).ServeHTTP)
				r.Put("/guests/{id}", guestupdate.New(logger, s.Guest).ServeHTTP)
				r.Delete("/guests/{id}", guestremove.New(logger, s.Guest).ServeHTTP)

				r.Post("/tasks", taskcreate.New(logger, s.Task).ServeHTTP)
				r.Get("/tasks", tasklist.New(logger, s.Task).ServeHTTP)
				r.Put("/tasks/{id}", taskupdate.New(logger, s.Task).ServeHTTP)
				r.Delete("/tasks/{id}", taskremove.New(logger, s.Task).ServeHTTP)

				r.Post("/budget", budgetcreate.New(logger, s.Budget).ServeHTTP)
				r.Get("/budget", budgetlist.New(logger, s.Budget).ServeHTTP)
				r.Get("/budget/summary", budgetsummary.New(logger, s.Budget).ServeHTTP)
				r.Put("/budget/{id}", budgetupdate.New(logger, s.Budget).ServeHTTP)
				r.Delete("/budget/{id}", budgetremove.New(logger, s.Budget).ServeHTTP)

				r.Post("/vendors", vendorcreate.New(logger, s.Vendor).ServeHTTP)
				r.Get("/vendors", vendorlist.New(logger, s.Vendor).ServeHTTP)
				r.Put("/vendors/{id}", vendorupdate.New(logger, s.Vendor).ServeHTTP)
				r.Delete("/vendors/{id}", vendorremove.New(logger, s.Vendor).ServeHTTP)

				r.Post("/timeline", timelinecreate.New(logger, s.Timeline).ServeHTTP)
				r.Get("/timeline", timelinelist.New(logger, s.Timeline).ServeHTTP)
				r.Post("/timeline/reorder", timelinereorder.New(logger, s.Timeline).ServeHTTP)
				r.Put("/timeline/{id}", timelineupdate.New(logger, s.Timeline).ServeHTTP)
				r.Delete("/timeline/{id}", timelineremove.New(logger, s.Timeline).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/payment/webhook", paymentwebhook.New(logger, s.Payment, webhookSecret).ServeHTTP)
	})

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
