package usecase

import (
	"context"
	"time"

	"sauna-booking/internal/data/entity"
	"sauna-booking/internal/data/repository"
	"sauna-booking/internal/dto/response"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	// IsSlotAvailable reports whether the (date, slot) pair can still be
	// booked. Read-only fast path; the database constraint remains the
	// authority at insert time.
	IsSlotAvailable(ctx context.Context, date time.Time, slot entity.TimeSlot) (bool, error)

	// Check is the caller-facing variant taking wire-format inputs.
	Check(ctx context.Context, date, slot string) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo     *repository.Repository
	leadTime time.Duration
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, leadTime time.Duration, loc *time.Location, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:     repo,
		leadTime: leadTime,
		loc:      loc,
		now:      time.Now,
		log:      log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Check(ctx context.Context, dateStr, slotStr string) (*response.AvailabilityResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		return nil, validationErrorf("invalid date %s", dateStr)
	}

	slot := entity.TimeSlot(slotStr)
	if !slot.Valid() {
		return nil, validationErrorf("invalid time slot %s", slotStr)
	}

	available, err := s.IsSlotAvailable(ctx, date, slot)
	if err != nil {
		return nil, err
	}

	return &response.AvailabilityResponse{
		Date:        dateStr,
		TimeSlot:    slot,
		IsAvailable: available,
	}, nil
}

func (s *availabilityService) IsSlotAvailable(ctx context.Context, date time.Time, slot entity.TimeSlot) (bool, error) {
	// Closures win over everything else on the date.
	closed, err := s.repo.Closure.ExistsByDate(ctx, date)
	if err != nil {
		return false, err
	}
	if closed {
		return false, nil
	}

	// Last-minute bookings inside the lead window are refused even for a
	// free slot.
	if s.now().Add(s.leadTime).After(slot.StartAt(date)) {
		return false, nil
	}

	occupied, err := s.repo.Reservation.HasActiveBySlot(ctx, date, slot)
	if err != nil {
		return false, err
	}

	return !occupied, nil
}
