package entity

import "time"

type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

// slotWindows maps each slot to its fixed wall-clock window (venue local time).
var slotWindows = map[TimeSlot]struct{ StartHour, EndHour int }{
	TimeSlotMorning:   {10, 13},
	TimeSlotAfternoon: {14, 17},
	TimeSlotEvening:   {18, 21},
}

func (s TimeSlot) Valid() bool {
	_, ok := slotWindows[s]
	return ok
}

// StartAt returns the slot's opening time on the given calendar date.
func (s TimeSlot) StartAt(date time.Time) time.Time {
	w := slotWindows[s]
	return time.Date(date.Year(), date.Month(), date.Day(), w.StartHour, 0, 0, 0, date.Location())
}

// EndAt returns the slot's closing time on the given calendar date.
func (s TimeSlot) EndAt(date time.Time) time.Time {
	w := slotWindows[s]
	return time.Date(date.Year(), date.Month(), date.Day(), w.EndHour, 0, 0, 0, date.Location())
}

func AllTimeSlots() []TimeSlot {
	return []TimeSlot{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening}
}
