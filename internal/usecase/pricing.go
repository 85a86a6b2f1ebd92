package usecase

import (
	"context"
	"time"

	"sauna-booking/internal/data/entity"
	"sauna-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Built-in per-person schedule used when the price table has no row for the
// guest count.
const defaultPerPerson = 7500

// Promotional carve-out: bookings falling in this calendar month use a flat
// discounted per-person rate regardless of the price table.
const (
	promoYear      = 2024
	promoMonth     = time.November
	promoPerPerson = 5500
)

// SurchargeFunc computes the temperature surcharge for a booking. The current
// schedule is zero for every temperature; the hook stays in the price formula
// so reinstating it is a one-line change.
type SurchargeFunc func(waterTemperature int) int

func zeroSurcharge(int) int { return 0 }

// SelectedOption is one chosen add-on by ID.
type SelectedOption struct {
	OptionID uuid.UUID
	Quantity int
}

// QuoteLine is one priced add-on with its effective quantity.
type QuoteLine struct {
	Option   *entity.Option
	Quantity int
	Subtotal int
}

type Quote struct {
	PricePerPerson  int
	BasePrice       int
	OptionsSubtotal int
	Surcharge       int
	Total           int
	PerPersonShare  int
	Lines           []QuoteLine
}

type PricingService interface {
	Quote(ctx context.Context, guestCount, waterTemperature int, selected []SelectedOption, date time.Time) (*Quote, error)
}

type pricingService struct {
	repo      *repository.Repository
	surcharge SurchargeFunc
	log       *zap.Logger
}

func NewPricingService(repo *repository.Repository, log *zap.Logger) PricingService {
	return &pricingService{
		repo:      repo,
		surcharge: zeroSurcharge,
		log:       log.With(zap.String("service", "pricing")),
	}
}

// Quote loads the price table row and option rows, then prices the booking
// with the pure calculator. Unknown or inactive options are a validation
// failure, not a silent skip.
func (s *pricingService) Quote(ctx context.Context, guestCount, waterTemperature int, selected []SelectedOption, date time.Time) (*Quote, error) {
	setting, err := s.repo.PriceSetting.FindByGuestCount(ctx, guestCount)
	if err != nil {
		return nil, err
	}

	options := make(map[uuid.UUID]*entity.Option, len(selected))
	if len(selected) > 0 {
		ids := make([]uuid.UUID, len(selected))
		for i, sel := range selected {
			ids[i] = sel.OptionID
		}

		found, err := s.repo.Option.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, opt := range found {
			options[opt.ID] = opt
		}

		for _, sel := range selected {
			opt, ok := options[sel.OptionID]
			if !ok {
				return nil, validationErrorf("unknown option %s", sel.OptionID.String())
			}
			if !opt.IsActive {
				return nil, validationErrorf("option %s is not available", opt.Name)
			}
		}
	}

	quote := computeQuote(guestCount, waterTemperature, selected, options, setting, date, s.surcharge)

	s.log.Debug("Quote computed",
		zap.Int("guest_count", guestCount),
		zap.Int("base_price", quote.BasePrice),
		zap.Int("options_subtotal", quote.OptionsSubtotal),
		zap.Int("total", quote.Total),
	)

	return quote, nil
}

// computeQuote is the pure price calculation. Deterministic given its inputs;
// no I/O.
func computeQuote(
	guestCount, waterTemperature int,
	selected []SelectedOption,
	options map[uuid.UUID]*entity.Option,
	setting *entity.PriceSetting,
	date time.Time,
	surcharge SurchargeFunc,
) *Quote {
	perPerson := perPersonRate(setting, guestCount, date)
	basePrice := perPerson * guestCount

	var lines []QuoteLine
	optionsSubtotal := 0
	for _, sel := range selected {
		opt := options[sel.OptionID]
		if opt == nil {
			continue
		}
		quantity, subtotal := optionLine(opt, sel.Quantity, guestCount)
		lines = append(lines, QuoteLine{Option: opt, Quantity: quantity, Subtotal: subtotal})
		optionsSubtotal += subtotal
	}

	extra := surcharge(waterTemperature)
	total := basePrice + optionsSubtotal + extra

	return &Quote{
		PricePerPerson:  perPerson,
		BasePrice:       basePrice,
		OptionsSubtotal: optionsSubtotal,
		Surcharge:       extra,
		Total:           total,
		PerPersonShare:  roundDiv(total, guestCount),
		Lines:           lines,
	}
}

func perPersonRate(setting *entity.PriceSetting, guestCount int, date time.Time) int {
	if date.Year() == promoYear && date.Month() == promoMonth {
		return promoPerPerson
	}
	if setting != nil {
		return setting.PricePerPerson
	}
	switch guestCount {
	case 2:
		return 7500
	case 3, 4:
		return 7000
	case 5, 6:
		return 6000
	default:
		return defaultPerPerson
	}
}

func optionLine(opt *entity.Option, quantity, guestCount int) (int, int) {
	switch opt.PricingMode {
	case entity.OptionPricingFlat:
		return 1, opt.Price
	case entity.OptionPricingPerPerson:
		q := quantity
		if q < 1 {
			q = 1
		}
		if q > guestCount {
			q = guestCount
		}
		return q, opt.Price * q
	case entity.OptionPricingPerGuest:
		return guestCount, opt.Price * guestCount
	default:
		return 0, 0
	}
}

// roundDiv divides rounding to the nearest integer. Money stays integral, so
// truncation would lose a unit on odd splits.
func roundDiv(amount, by int) int {
	if by <= 0 {
		return amount
	}
	return (amount + by/2) / by
}
