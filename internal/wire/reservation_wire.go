package wire

import (
	"sauna-booking/internal/adaptor"
	"sauna-booking/pkg/middleware"
	"sauna-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	handler *adaptor.ReservationHandler,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	// ==================== RATE-LIMITED ROUTES ====================
	// The write-side booking endpoints are the abuse surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rdb, config.Redis, log))

		// POST /api/reservations - Submit a draft booking
		r.Post("/api/reservations", handler.CreateReservation)

		// GET /api/reservations/confirm/{token} - Follow the confirmation link
		r.Get("/api/reservations/confirm/{token}", handler.ConfirmReservation)

		// POST /api/reservations/lookup - Out-of-band lookup by phone
		r.Post("/api/reservations/lookup", handler.LookupReservations)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/availability - Check a (date, slot) pair
	r.Get("/api/availability", handler.CheckAvailability)

	// GET /api/options - Active add-ons for the booking form
	r.Get("/api/options", handler.ListOptions)

	// GET /api/reservations/{code} - Look up one reservation by code
	r.Get("/api/reservations/{code}", handler.GetReservation)

	// POST /api/reservations/{code}/cancel - Phone-verified self-service cancel
	r.Post("/api/reservations/{code}/cancel", handler.CancelReservation)
}
