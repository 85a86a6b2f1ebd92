package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// CancelCause records why a cancelled reservation was cancelled. Expiry is a
// cancellation with its own cause, not a fourth status.
type CancelCause string

const (
	CancelCauseUser    CancelCause = "user"
	CancelCauseAdmin   CancelCause = "admin"
	CancelCauseExpired CancelCause = "expired"
)

type Reservation struct {
	Base
	Code              string            `db:"code"`
	ReservedDate      time.Time         `db:"reserved_date"`
	TimeSlot          TimeSlot          `db:"time_slot"`
	GuestName         string            `db:"guest_name"`
	GuestCount        int               `db:"guest_count"`
	Phone             string            `db:"phone"`
	Email             *string           `db:"email"`
	WaterTemperature  int               `db:"water_temperature"`
	TotalPrice        int               `db:"total_price"`
	Status            ReservationStatus `db:"status"`
	IsConfirmed       bool              `db:"is_confirmed"`
	CancelCause       *CancelCause      `db:"cancel_cause"`
	ConfirmationToken *string           `db:"confirmation_token"`
	ExpiresAt         *time.Time        `db:"expires_at"`
}

// IsActive reports whether the reservation occupies its slot.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// ReservationOption is one selected add-on bound to a reservation. UnitPrice
// snapshots the option price at booking time so later option edits do not
// rewrite history.
type ReservationOption struct {
	BaseSimple
	ReservationID uuid.UUID `db:"reservation_id"`
	OptionID      uuid.UUID `db:"option_id"`
	Quantity      int       `db:"quantity"`
	UnitPrice     int       `db:"unit_price"`
}
