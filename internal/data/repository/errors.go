package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSlotTaken is returned when an insert or slot move collides with the
// partial unique index over active (reserved_date, time_slot) rows. The index
// is the authoritative guard against double booking; callers translate this
// into their slot-unavailable result instead of treating it as a failure.
var ErrSlotTaken = errors.New("slot already taken")

const activeSlotIndex = "reservations_active_slot_idx"

func isActiveSlotViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == activeSlotIndex
}
