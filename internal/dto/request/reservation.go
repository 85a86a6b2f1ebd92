package request

type SelectedOption struct {
	OptionID string `json:"option_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateReservationRequest struct {
	Date             string           `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot         string           `json:"time_slot" validate:"required,oneof=morning afternoon evening"`
	GuestName        string           `json:"guest_name" validate:"required,max=100"`
	GuestCount       int              `json:"guest_count" validate:"required,min=1"`
	Phone            string           `json:"phone" validate:"required,min=10,max=15"`
	Email            *string          `json:"email,omitempty" validate:"omitempty,email"`
	WaterTemperature int              `json:"water_temperature" validate:"omitempty,min=60,max=110"`
	Options          []SelectedOption `json:"options" validate:"omitempty,dive"`
}

type CancelReservationRequest struct {
	PhoneLastFour string `json:"phone_last_four" validate:"required,len=4,numeric"`
}

type LookupReservationsRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=15"`
}

// ModifyReservationRequest is a partial patch; nil fields stay unchanged.
type ModifyReservationRequest struct {
	Date             *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot         *string `json:"time_slot" validate:"omitempty,oneof=morning afternoon evening"`
	GuestName        *string `json:"guest_name" validate:"omitempty,max=100"`
	GuestCount       *int    `json:"guest_count" validate:"omitempty,min=1"`
	Phone            *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Email            *string `json:"email" validate:"omitempty,email"`
	WaterTemperature *int    `json:"water_temperature" validate:"omitempty,min=60,max=110"`
}
