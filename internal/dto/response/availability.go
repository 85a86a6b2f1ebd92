package response

import "sauna-booking/internal/data/entity"

type AvailabilityResponse struct {
	Date        string          `json:"date"`
	TimeSlot    entity.TimeSlot `json:"time_slot"`
	IsAvailable bool            `json:"is_available"`
}
