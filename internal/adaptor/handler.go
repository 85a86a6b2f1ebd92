package adaptor

import (
	"sauna-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation *ReservationHandler
	Admin       *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Reservation: NewReservationHandler(service.Reservation, service.Availability, service.Admin, log),
		Admin:       NewAdminHandler(service.Reservation, service.Admin, log),
	}
}
