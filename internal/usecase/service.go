package usecase

import (
	"time"

	"sauna-booking/internal/data/repository"
	"sauna-booking/internal/notifier"
	"sauna-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Pricing      PricingService
	Availability AvailabilityService
	Reservation  ReservationService
	Sweeper      SweeperService
	Admin        AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, notify notifier.Notifier, loc *time.Location, log *zap.Logger) *Service {
	pricing := NewPricingService(repo, log)
	availability := NewAvailabilityService(repo, time.Duration(config.Booking.LeadTimeHours)*time.Hour, loc, log)

	return &Service{
		Pricing:      pricing,
		Availability: availability,
		Reservation:  NewReservationService(repo, pricing, availability, notify, config, loc, log),
		Sweeper:      NewSweeperService(repo, notify, log),
		Admin:        NewAdminService(repo, config, loc, log),
	}
}
