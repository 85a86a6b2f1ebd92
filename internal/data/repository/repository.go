package repository

import (
	"sauna-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Reservation  ReservationRepository
	Option       OptionRepository
	PriceSetting PriceSettingRepository
	Closure      ClosureRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Reservation:  NewReservationRepository(db, log),
		Option:       NewOptionRepository(db, log),
		PriceSetting: NewPriceSettingRepository(db, log),
		Closure:      NewClosureRepository(db, log),
	}
}
