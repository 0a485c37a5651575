package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
)

// Handler carries the application service plus the readiness probes the
// health endpoints report on.
type Handler struct {
	service    *application.Service
	dbPinger   func() error
	cachePinger func() error
}

func NewHandler(service *application.Service, dbPinger, cachePinger func() error) *Handler {
	return &Handler{service: service, dbPinger: dbPinger, cachePinger: cachePinger}
}

func NewRouter(handler *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", handler.handleHealthz)
	r.Get("/readyz", handler.handleReadyz)

	r.Route("/functions/v1", func(r chi.Router) {
		r.Post("/admin-login", handler.handleAdminLogin)
		r.Post("/admin-validate-session", handler.handleAdminValidateSession)
		r.Post("/admin-logout", handler.handleAdminLogout)

		r.Post("/create-payment", handler.handleCreatePayment)
		r.Post("/handle-payment-success", handler.handlePaymentSuccess)
		r.Post("/get-product-download", handler.handleGetProductDownload)
		r.Post("/send-delivery-email", handler.handleSendDeliveryEmail)

		r.Post("/submit-review", handler.handleSubmitReview)
		r.Get("/reviews", handler.handleListPublicReviews)

		r.Post("/track-event", handler.handleTrackEvent)
		r.Post("/track-session", handler.handleTrackSession)
		r.Post("/track-performance", handler.handleTrackPerformance)
	})

	r.Route("/admin/v1", func(r chi.Router) {
		r.Use(handler.adminMiddleware)
		r.Get("/reviews", handler.handleModerationListReviews)
		r.Patch("/reviews/{reviewID}", handler.handleSetReviewStatus)
		r.Post("/reviews/bulk-status", handler.handleBulkReviewStatus)
		r.Get("/analytics/summary", handler.handleAnalyticsSummary)
	})

	return r
}
