package entity

import "time"

// PriceSetting is one row of the editable per-guest-count base price table.
type PriceSetting struct {
	GuestCount     int       `db:"guest_count"`
	PricePerPerson int       `db:"price_per_person"`
	UpdatedAt      time.Time `db:"updated_at"`
}
