package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"sauna-booking/internal/data/entity"

	"github.com/google/uuid"
)

func juneDate() time.Time {
	return time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
}

func TestComputeQuoteBasePrice(t *testing.T) {
	tests := []struct {
		name       string
		guestCount int
		setting    *entity.PriceSetting
		date       time.Time
		wantPer    int
		wantTotal  int
	}{
		{
			name:       "two guests default rate",
			guestCount: 2,
			date:       juneDate(),
			wantPer:    7500,
			wantTotal:  15000,
		},
		{
			name:       "three guests default rate",
			guestCount: 3,
			date:       juneDate(),
			wantPer:    7000,
			wantTotal:  21000,
		},
		{
			name:       "four guests default rate",
			guestCount: 4,
			date:       juneDate(),
			wantPer:    7000,
			wantTotal:  28000,
		},
		{
			name:       "five guests default rate",
			guestCount: 5,
			date:       juneDate(),
			wantPer:    6000,
			wantTotal:  30000,
		},
		{
			name:       "six guests default rate",
			guestCount: 6,
			date:       juneDate(),
			wantPer:    6000,
			wantTotal:  36000,
		},
		{
			name:       "single guest falls back to default rate",
			guestCount: 1,
			date:       juneDate(),
			wantPer:    7500,
			wantTotal:  7500,
		},
		{
			name:       "price table row overrides default",
			guestCount: 2,
			setting:    &entity.PriceSetting{GuestCount: 2, PricePerPerson: 8000},
			date:       juneDate(),
			wantPer:    8000,
			wantTotal:  16000,
		},
		{
			name:       "promo month flat rate beats price table",
			guestCount: 4,
			setting:    &entity.PriceSetting{GuestCount: 4, PricePerPerson: 9000},
			date:       time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
			wantPer:    5500,
			wantTotal:  22000,
		},
		{
			name:       "month after promo uses normal rates",
			guestCount: 2,
			date:       time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantPer:    7500,
			wantTotal:  15000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := computeQuote(tt.guestCount, 0, nil, nil, tt.setting, tt.date, zeroSurcharge)

			if quote.PricePerPerson != tt.wantPer {
				t.Errorf("PricePerPerson = %d, want %d", quote.PricePerPerson, tt.wantPer)
			}
			if quote.BasePrice != tt.wantTotal {
				t.Errorf("BasePrice = %d, want %d", quote.BasePrice, tt.wantTotal)
			}
			if quote.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", quote.Total, tt.wantTotal)
			}
			if quote.Surcharge != 0 {
				t.Errorf("Surcharge = %d, want 0", quote.Surcharge)
			}
		})
	}
}

func TestComputeQuoteOptionModes(t *testing.T) {
	flat := &entity.Option{
		Base:        entity.Base{ID: uuid.New()},
		Name:        "private room",
		PricingMode: entity.OptionPricingFlat,
		Price:       3000,
		IsActive:    true,
	}
	perPerson := &entity.Option{
		Base:        entity.Base{ID: uuid.New()},
		Name:        "towel set",
		PricingMode: entity.OptionPricingPerPerson,
		Price:       500,
		IsActive:    true,
	}
	perGuest := &entity.Option{
		Base:        entity.Base{ID: uuid.New()},
		Name:        "loyly ritual",
		PricingMode: entity.OptionPricingPerGuest,
		Price:       1200,
		IsActive:    true,
	}
	options := map[uuid.UUID]*entity.Option{
		flat.ID:      flat,
		perPerson.ID: perPerson,
		perGuest.ID:  perGuest,
	}

	tests := []struct {
		name         string
		selected     []SelectedOption
		guestCount   int
		wantSubtotal int
		wantQuantity int
	}{
		{
			name:         "flat charges once ignoring quantity",
			selected:     []SelectedOption{{OptionID: flat.ID, Quantity: 5}},
			guestCount:   2,
			wantSubtotal: 3000,
			wantQuantity: 1,
		},
		{
			name:         "per person multiplies by quantity",
			selected:     []SelectedOption{{OptionID: perPerson.ID, Quantity: 2}},
			guestCount:   3,
			wantSubtotal: 1000,
			wantQuantity: 2,
		},
		{
			name:         "per person quantity clamped to guest count",
			selected:     []SelectedOption{{OptionID: perPerson.ID, Quantity: 10}},
			guestCount:   2,
			wantSubtotal: 1000,
			wantQuantity: 2,
		},
		{
			name:         "per person quantity floored at one",
			selected:     []SelectedOption{{OptionID: perPerson.ID, Quantity: 0}},
			guestCount:   2,
			wantSubtotal: 500,
			wantQuantity: 1,
		},
		{
			name:         "per guest ignores quantity",
			selected:     []SelectedOption{{OptionID: perGuest.ID, Quantity: 1}},
			guestCount:   4,
			wantSubtotal: 4800,
			wantQuantity: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := computeQuote(tt.guestCount, 0, tt.selected, options, nil, juneDate(), zeroSurcharge)

			if quote.OptionsSubtotal != tt.wantSubtotal {
				t.Errorf("OptionsSubtotal = %d, want %d", quote.OptionsSubtotal, tt.wantSubtotal)
			}
			if len(quote.Lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(quote.Lines))
			}
			if quote.Lines[0].Quantity != tt.wantQuantity {
				t.Errorf("Quantity = %d, want %d", quote.Lines[0].Quantity, tt.wantQuantity)
			}
		})
	}
}

func TestComputeQuoteDeterministic(t *testing.T) {
	opt := &entity.Option{
		Base:        entity.Base{ID: uuid.New()},
		Name:        "towel set",
		PricingMode: entity.OptionPricingPerPerson,
		Price:       500,
		IsActive:    true,
	}
	options := map[uuid.UUID]*entity.Option{opt.ID: opt}
	selected := []SelectedOption{{OptionID: opt.ID, Quantity: 2}}

	first := computeQuote(3, 90, selected, options, nil, juneDate(), zeroSurcharge)
	second := computeQuote(3, 90, selected, options, nil, juneDate(), zeroSurcharge)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs produced different quotes: %+v vs %+v", first, second)
	}
}

func TestComputeQuotePerPersonShare(t *testing.T) {
	// 3 guests at 7000 plus a 1000 flat option: 22000 total does not split
	// evenly, the share rounds to nearest.
	opt := &entity.Option{
		Base:        entity.Base{ID: uuid.New()},
		Name:        "private room",
		PricingMode: entity.OptionPricingFlat,
		Price:       1000,
		IsActive:    true,
	}
	options := map[uuid.UUID]*entity.Option{opt.ID: opt}
	selected := []SelectedOption{{OptionID: opt.ID, Quantity: 1}}

	quote := computeQuote(3, 0, selected, options, nil, juneDate(), zeroSurcharge)

	if quote.Total != 22000 {
		t.Fatalf("Total = %d, want 22000", quote.Total)
	}
	if quote.PerPersonShare != 7333 {
		t.Errorf("PerPersonShare = %d, want 7333", quote.PerPersonShare)
	}
}

func TestRoundDiv(t *testing.T) {
	tests := []struct {
		amount, by, want int
	}{
		{15000, 2, 7500},
		{22000, 3, 7333},
		{7, 2, 4},
		{5, 3, 2},
		{0, 4, 0},
		{100, 0, 100},
	}

	for _, tt := range tests {
		if got := roundDiv(tt.amount, tt.by); got != tt.want {
			t.Errorf("roundDiv(%d, %d) = %d, want %d", tt.amount, tt.by, got, tt.want)
		}
	}
}

func TestQuoteRejectsUnknownOption(t *testing.T) {
	repo, _ := newTestRepo()
	service := newTestPricing(repo)

	_, err := service.Quote(context.Background(), 2, 0, []SelectedOption{{OptionID: uuid.New(), Quantity: 1}}, juneDate())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestQuoteRejectsInactiveOption(t *testing.T) {
	inactive := &entity.Option{
		Base:        entity.Base{ID: uuid.New()},
		Name:        "retired add-on",
		PricingMode: entity.OptionPricingFlat,
		Price:       1000,
		IsActive:    false,
	}

	repo, _ := newTestRepo()
	repo.Option = newFakeOptionRepo(inactive)
	service := newTestPricing(repo)

	_, err := service.Quote(context.Background(), 2, 0, []SelectedOption{{OptionID: inactive.ID, Quantity: 1}}, juneDate())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}
