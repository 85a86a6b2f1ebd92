package response

import (
	"time"

	"sauna-booking/internal/data/entity"
)

type CreateReservationResponse struct {
	Code              string    `json:"code"`
	ConfirmationToken string    `json:"confirmation_token"`
	ExpiresAt         time.Time `json:"expires_at"`
	TotalPrice        int       `json:"total_price"`
	PerPersonShare    int       `json:"per_person_share"`
}

type ConfirmReservationResponse struct {
	Code string `json:"code"`
}

type ReservationOptionResponse struct {
	OptionID  string `json:"option_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	Subtotal  int    `json:"subtotal"`
}

type ReservationResponse struct {
	ID               string                      `json:"id"`
	Code             string                      `json:"code"`
	Date             string                      `json:"date"`
	TimeSlot         entity.TimeSlot             `json:"time_slot"`
	GuestName        string                      `json:"guest_name"`
	GuestCount       int                         `json:"guest_count"`
	Phone            string                      `json:"phone"`
	Email            *string                     `json:"email,omitempty"`
	WaterTemperature int                         `json:"water_temperature,omitempty"`
	TotalPrice       int                         `json:"total_price"`
	Status           entity.ReservationStatus    `json:"status"`
	IsConfirmed      bool                        `json:"is_confirmed"`
	CancelCause      *entity.CancelCause         `json:"cancel_cause,omitempty"`
	ExpiresAt        *time.Time                  `json:"expires_at,omitempty"`
	Options          []ReservationOptionResponse `json:"options,omitempty"`
	CreatedAt        time.Time                   `json:"created_at"`
}

// ReservationToResponse converts the entity plus its selected options.
// optionNames maps option IDs to display names; missing entries degrade to an
// empty name rather than failing the read.
func ReservationToResponse(r *entity.Reservation, options []*entity.ReservationOption, optionNames map[string]string) *ReservationResponse {
	optionResponses := make([]ReservationOptionResponse, len(options))
	for i, opt := range options {
		optionResponses[i] = ReservationOptionResponse{
			OptionID:  opt.OptionID.String(),
			Name:      optionNames[opt.OptionID.String()],
			Quantity:  opt.Quantity,
			UnitPrice: opt.UnitPrice,
			Subtotal:  opt.UnitPrice * opt.Quantity,
		}
	}

	return &ReservationResponse{
		ID:               r.ID.String(),
		Code:             r.Code,
		Date:             r.ReservedDate.Format("2006-01-02"),
		TimeSlot:         r.TimeSlot,
		GuestName:        r.GuestName,
		GuestCount:       r.GuestCount,
		Phone:            r.Phone,
		Email:            r.Email,
		WaterTemperature: r.WaterTemperature,
		TotalPrice:       r.TotalPrice,
		Status:           r.Status,
		IsConfirmed:      r.IsConfirmed,
		CancelCause:      r.CancelCause,
		ExpiresAt:        r.ExpiresAt,
		Options:          optionResponses,
		CreatedAt:        r.CreatedAt,
	}
}
