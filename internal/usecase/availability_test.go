package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"sauna-booking/internal/data/entity"

	"github.com/google/uuid"
)

func TestIsSlotAvailableLeadTime(t *testing.T) {
	day := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		slot entity.TimeSlot
		want bool
	}{
		{
			name: "same day slot starting within lead window",
			now:  time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC),
			slot: entity.TimeSlotMorning,
			want: false,
		},
		{
			name: "same day slot exactly at lead boundary",
			now:  time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC),
			slot: entity.TimeSlotMorning,
			want: true,
		},
		{
			name: "same day later slot outside lead window",
			now:  time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC),
			slot: entity.TimeSlotEvening,
			want: true,
		},
		{
			name: "slot already started",
			now:  time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC),
			slot: entity.TimeSlotAfternoon,
			want: false,
		},
		{
			name: "next day slot",
			now:  time.Date(2025, time.June, 9, 23, 0, 0, 0, time.UTC),
			slot: entity.TimeSlotMorning,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newTestRepo()
			service := newTestAvailability(repo, tt.now)

			got, err := service.IsSlotAvailable(context.Background(), day, tt.slot)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsSlotAvailable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSlotAvailableClosureWins(t *testing.T) {
	day := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	repo, _ := newTestRepo()
	repo.Closure = newFakeClosureRepo(day)
	service := newTestAvailability(repo, now)

	for _, slot := range entity.AllTimeSlots() {
		got, err := service.IsSlotAvailable(context.Background(), day, slot)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got {
			t.Errorf("slot %s on a closed date reported available", slot)
		}
	}
}

func TestIsSlotAvailableOccupied(t *testing.T) {
	day := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	repo, reservations := newTestRepo()
	token := "tok"
	expires := now.Add(20 * time.Minute)
	err := reservations.Create(context.Background(), &entity.Reservation{
		Base:              entity.Base{ID: uuid.New()},
		Code:              "RSV-20250610-000001",
		ReservedDate:      day,
		TimeSlot:          entity.TimeSlotMorning,
		Status:            entity.ReservationStatusPending,
		ConfirmationToken: &token,
		ExpiresAt:         &expires,
	}, nil)
	if err != nil {
		t.Fatalf("seed reservation: %v", err)
	}

	service := newTestAvailability(repo, now)

	got, err := service.IsSlotAvailable(context.Background(), day, entity.TimeSlotMorning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("occupied slot reported available")
	}

	// A different slot on the same day stays bookable.
	got, err = service.IsSlotAvailable(context.Background(), day, entity.TimeSlotAfternoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("free slot on the same day reported unavailable")
	}
}

func TestCheckRejectsBadInput(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo, _ := newTestRepo()
	service := newTestAvailability(repo, now)

	if _, err := service.Check(context.Background(), "not-a-date", "morning"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad date: got %v, want ErrValidation", err)
	}
	if _, err := service.Check(context.Background(), "2025-06-10", "midnight"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad slot: got %v, want ErrValidation", err)
	}
}

func TestCheckReportsAvailability(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo, _ := newTestRepo()
	service := newTestAvailability(repo, now)

	resp, err := service.Check(context.Background(), "2025-06-10", "evening")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsAvailable {
		t.Error("free future slot reported unavailable")
	}
	if resp.Date != "2025-06-10" || resp.TimeSlot != entity.TimeSlotEvening {
		t.Errorf("echoed inputs wrong: %+v", resp)
	}
}
