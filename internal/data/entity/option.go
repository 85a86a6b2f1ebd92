package entity

type OptionPricingMode string

const (
	// OptionPricingFlat charges the price once regardless of party size.
	OptionPricingFlat OptionPricingMode = "flat"
	// OptionPricingPerPerson charges price * selected quantity.
	OptionPricingPerPerson OptionPricingMode = "per_person"
	// OptionPricingPerGuest charges price * guest count, ignoring quantity.
	OptionPricingPerGuest OptionPricingMode = "per_guest"
)

type Option struct {
	Base
	Name        string            `db:"name"`
	PricingMode OptionPricingMode `db:"pricing_mode"`
	Price       int               `db:"price"`
	IsActive    bool              `db:"is_active"`
}
