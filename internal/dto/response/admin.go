package response

import (
	"time"

	"sauna-booking/internal/data/entity"
)

type OptionResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	PricingMode entity.OptionPricingMode `json:"pricing_mode"`
	Price       int                      `json:"price"`
	IsActive    bool                     `json:"is_active"`
}

func OptionToResponse(opt *entity.Option) OptionResponse {
	return OptionResponse{
		ID:          opt.ID.String(),
		Name:        opt.Name,
		PricingMode: opt.PricingMode,
		Price:       opt.Price,
		IsActive:    opt.IsActive,
	}
}

type PriceSettingResponse struct {
	GuestCount     int `json:"guest_count"`
	PricePerPerson int `json:"price_per_person"`
}

func PriceSettingToResponse(setting *entity.PriceSetting) PriceSettingResponse {
	return PriceSettingResponse{
		GuestCount:     setting.GuestCount,
		PricePerPerson: setting.PricePerPerson,
	}
}

type ClosureResponse struct {
	ID         string    `json:"id"`
	ClosedDate string    `json:"closed_date"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ClosureToResponse(closure *entity.ShopClosure) ClosureResponse {
	return ClosureResponse{
		ID:         closure.ID.String(),
		ClosedDate: closure.ClosedDate.Format("2006-01-02"),
		Reason:     closure.Reason,
		CreatedAt:  closure.CreatedAt,
	}
}
