package wire

import (
	"sauna-booking/internal/adaptor"
	"sauna-booking/pkg/middleware"
	"sauna-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminKey(config.Admin.KeyHash, log))

		// Reservations
		r.Get("/reservations", handler.ListReservations)
		r.Patch("/reservations/{code}", handler.ModifyReservation)
		r.Put("/reservations/{code}/cancel", handler.CancelReservation)

		// Blackout dates
		r.Get("/closures", handler.ListClosures)
		r.Post("/closures", handler.CreateClosure)
		r.Delete("/closures/{id}", handler.DeleteClosure)

		// Price table
		r.Get("/price-settings", handler.ListPriceSettings)
		r.Put("/price-settings/{guestCount}", handler.UpsertPriceSetting)

		// Add-on catalogue
		r.Get("/options", handler.ListOptions)
		r.Post("/options", handler.CreateOption)
		r.Patch("/options/{id}", handler.UpdateOption)
	})
}
