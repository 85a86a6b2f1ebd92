package request

type CreateClosureRequest struct {
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Reason *string `json:"reason" validate:"omitempty,max=200"`
}

type UpsertPriceSettingRequest struct {
	PricePerPerson int `json:"price_per_person" validate:"required,min=0"`
}

type CreateOptionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	PricingMode string `json:"pricing_mode" validate:"required,oneof=flat per_person per_guest"`
	Price       int    `json:"price" validate:"min=0"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateOptionRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	PricingMode *string `json:"pricing_mode" validate:"omitempty,oneof=flat per_person per_guest"`
	Price       *int    `json:"price" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active"`
}
