package entity

import "time"

// ShopClosure is a blackout date. Every slot on the date is unbookable no
// matter what reservations exist.
type ShopClosure struct {
	BaseSimple
	ClosedDate time.Time `db:"closed_date"`
	Reason     *string   `db:"reason"`
}
