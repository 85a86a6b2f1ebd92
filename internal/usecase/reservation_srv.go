package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sauna-booking/internal/data/entity"
	"sauna-booking/internal/data/repository"
	"sauna-booking/internal/dto/request"
	"sauna-booking/internal/dto/response"
	"sauna-booking/internal/notifier"
	"sauna-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	Create(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error)
	Confirm(ctx context.Context, token string) (*response.ConfirmReservationResponse, error)
	Cancel(ctx context.Context, code, phoneLastFour string) error
	AdminCancel(ctx context.Context, code string) error
	Modify(ctx context.Context, code string, req *request.ModifyReservationRequest) (*response.ReservationResponse, error)
	GetByCode(ctx context.Context, code string) (*response.ReservationResponse, error)
	LookupByPhone(ctx context.Context, phone string) error
	ListByDate(ctx context.Context, date string) ([]*response.ReservationResponse, error)
}

type reservationService struct {
	repo         *repository.Repository
	pricing      PricingService
	availability AvailabilityService
	notify       notifier.Notifier
	hold         time.Duration
	maxGuests    int
	baseURL      string
	loc          *time.Location
	now          func() time.Time
	log          *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	pricing PricingService,
	availability AvailabilityService,
	notify notifier.Notifier,
	config *utils.Config,
	loc *time.Location,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:         repo,
		pricing:      pricing,
		availability: availability,
		notify:       notify,
		hold:         time.Duration(config.Booking.HoldMinutes) * time.Minute,
		maxGuests:    config.Booking.MaxGuestCount,
		baseURL:      config.App.BaseURL,
		loc:          loc,
		now:          time.Now,
		log:          log.With(zap.String("service", "reservation")),
	}
}

// Create drives the booking submission: validate, refuse closed dates before
// doing any pricing or availability work, fast-path availability, price,
// persist as pending with a fresh token and hold deadline. The insert is the
// authoritative double-booking check; a constraint collision is a normal
// slot-unavailable outcome, not a failure.
func (s *reservationService) Create(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	if req.GuestCount > s.maxGuests {
		return nil, validationErrorf("guest count must be at most %d", s.maxGuests)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, validationErrorf("invalid date %s", req.Date)
	}
	slot := entity.TimeSlot(req.TimeSlot)

	selected, err := parseSelectedOptions(req.Options)
	if err != nil {
		return nil, err
	}

	closed, err := s.repo.Closure.ExistsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check closure: %w", err)
	}
	if closed {
		return nil, ErrClosedDate
	}

	available, err := s.availability.IsSlotAvailable(ctx, date, slot)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	quote, err := s.pricing.Quote(ctx, req.GuestCount, req.WaterTemperature, selected, date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := utils.GenerateConfirmationToken()
	expiresAt := now.Add(s.hold)

	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:              utils.GenerateReservationCode(),
		ReservedDate:      date,
		TimeSlot:          slot,
		GuestName:         req.GuestName,
		GuestCount:        req.GuestCount,
		Phone:             req.Phone,
		Email:             req.Email,
		WaterTemperature:  req.WaterTemperature,
		TotalPrice:        quote.Total,
		Status:            entity.ReservationStatusPending,
		IsConfirmed:       false,
		ConfirmationToken: &token,
		ExpiresAt:         &expiresAt,
	}

	options := make([]*entity.ReservationOption, len(quote.Lines))
	for i, line := range quote.Lines {
		options[i] = &entity.ReservationOption{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			ReservationID: reservation.ID,
			OptionID:      line.Option.ID,
			Quantity:      line.Quantity,
			UnitPrice:     line.Option.Price,
		}
	}

	if err := s.repo.Reservation.Create(ctx, reservation, options); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("date", req.Date),
			zap.String("time_slot", req.TimeSlot),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("code", reservation.Code),
		zap.String("date", req.Date),
		zap.String("time_slot", req.TimeSlot),
		zap.Int("guest_count", req.GuestCount),
		zap.Int("total_price", quote.Total),
	)

	s.dispatch(notifier.KindPending, reservation, s.confirmLink(token))

	return &response.CreateReservationResponse{
		Code:              reservation.Code,
		ConfirmationToken: token,
		ExpiresAt:         expiresAt,
		TotalPrice:        quote.Total,
		PerPersonShare:    quote.PerPersonShare,
	}, nil
}

// Confirm attempts the conditional pending->confirmed transition. A token that
// matches nothing is indistinguishable from one that was already used or
// cancelled. A pending-but-expired row is transitioned to cancelled here
// rather than left dangling for the sweeper.
func (s *reservationService) Confirm(ctx context.Context, token string) (*response.ConfirmReservationResponse, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	now := s.now()
	reservation, err := s.repo.Reservation.ConfirmByToken(ctx, token, now)
	if err != nil {
		return nil, fmt.Errorf("confirm reservation: %w", err)
	}

	if reservation == nil {
		pending, err := s.repo.Reservation.FindPendingByToken(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("find pending reservation: %w", err)
		}
		if pending != nil && pending.ExpiresAt != nil && now.After(*pending.ExpiresAt) {
			// Implicit expiry: confirm arrived too late, release the slot now.
			if _, err := s.repo.Reservation.Cancel(ctx, pending.ID, entity.CancelCauseExpired); err != nil {
				s.log.Error("Failed to expire stale reservation on confirm",
					zap.Error(err),
					zap.String("code", pending.Code),
				)
			} else {
				s.log.Info("Reservation expired at confirmation attempt",
					zap.String("code", pending.Code))
				s.dispatch(notifier.KindExpired, pending, "")
			}
			return nil, ErrExpired
		}
		return nil, ErrInvalidToken
	}

	s.log.Info("Reservation confirmed", zap.String("code", reservation.Code))
	s.dispatch(notifier.KindConfirmed, reservation, "")

	return &response.ConfirmReservationResponse{Code: reservation.Code}, nil
}

// Cancel is the phone-verified self-service cancellation. The failure message
// never reveals which part of the verification mismatched.
func (s *reservationService) Cancel(ctx context.Context, code, phoneLastFour string) error {
	reservation, err := s.repo.Reservation.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return ErrNotFound
	}

	// Verification comes first so an unverified caller learns nothing about
	// the reservation's state.
	if utils.LastFourDigits(reservation.Phone) != phoneLastFour {
		s.log.Warn("Cancellation verification failed", zap.String("code", code))
		return ErrVerificationFailed
	}

	if reservation.Status == entity.ReservationStatusCancelled {
		return ErrAlreadyCancelled
	}

	return s.cancel(ctx, reservation, entity.CancelCauseUser)
}

// AdminCancel bypasses phone verification.
func (s *reservationService) AdminCancel(ctx context.Context, code string) error {
	reservation, err := s.repo.Reservation.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return ErrNotFound
	}
	if reservation.Status == entity.ReservationStatusCancelled {
		return ErrAlreadyCancelled
	}

	return s.cancel(ctx, reservation, entity.CancelCauseAdmin)
}

func (s *reservationService) cancel(ctx context.Context, reservation *entity.Reservation, cause entity.CancelCause) error {
	cancelled, err := s.repo.Reservation.Cancel(ctx, reservation.ID, cause)
	if err != nil {
		return fmt.Errorf("cancel reservation %s: %w", reservation.Code, err)
	}
	if !cancelled {
		return ErrAlreadyCancelled
	}

	s.log.Info("Reservation cancelled",
		zap.String("code", reservation.Code),
		zap.String("cause", string(cause)),
	)

	return nil
}

// Modify patches a non-cancelled reservation in place. A date or slot change
// re-checks availability for the new slot; the record is updated, not
// replaced, so the code and history stay intact. Moving a confirmed
// reservation is permitted.
func (s *reservationService) Modify(ctx context.Context, code string, req *request.ModifyReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Modify reservation validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}
	if req.GuestCount != nil && *req.GuestCount > s.maxGuests {
		return nil, validationErrorf("guest count must be at most %d", s.maxGuests)
	}

	reservation, err := s.repo.Reservation.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, ErrNotFound
	}
	if reservation.Status == entity.ReservationStatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	date := reservation.ReservedDate
	if req.Date != nil {
		date, err = time.ParseInLocation("2006-01-02", *req.Date, s.loc)
		if err != nil {
			return nil, validationErrorf("invalid date %s", *req.Date)
		}
	}
	slot := reservation.TimeSlot
	if req.TimeSlot != nil {
		slot = entity.TimeSlot(*req.TimeSlot)
	}

	// DATE columns scan as midnight UTC while patch dates parse in the venue
	// zone, so compare calendar dates, not instants: a patch echoing the
	// stored date is not a slot move.
	dateChanged := date.Format("2006-01-02") != reservation.ReservedDate.Format("2006-01-02")
	slotChanged := dateChanged || slot != reservation.TimeSlot
	if slotChanged {
		closed, err := s.repo.Closure.ExistsByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("check closure: %w", err)
		}
		if closed {
			return nil, ErrClosedDate
		}

		// Capacity check for the target slot; the reservation does not
		// occupy it yet, so no self-exclusion is needed.
		available, err := s.availability.IsSlotAvailable(ctx, date, slot)
		if err != nil {
			return nil, fmt.Errorf("check availability: %w", err)
		}
		if !available {
			return nil, ErrSlotUnavailable
		}
	}

	if dateChanged {
		reservation.ReservedDate = date
	}
	reservation.TimeSlot = slot
	if req.GuestName != nil {
		reservation.GuestName = *req.GuestName
	}
	if req.GuestCount != nil {
		reservation.GuestCount = *req.GuestCount
	}
	if req.Phone != nil {
		reservation.Phone = *req.Phone
	}
	if req.Email != nil {
		reservation.Email = req.Email
	}
	if req.WaterTemperature != nil {
		reservation.WaterTemperature = *req.WaterTemperature
	}

	// Reprice against the stored selection whenever an input of the price
	// formula moved.
	if slotChanged || req.GuestCount != nil || req.WaterTemperature != nil {
		stored, err := s.repo.Reservation.FindOptions(ctx, reservation.ID)
		if err != nil {
			return nil, fmt.Errorf("load reservation options: %w", err)
		}
		selected := make([]SelectedOption, len(stored))
		for i, opt := range stored {
			selected[i] = SelectedOption{OptionID: opt.OptionID, Quantity: opt.Quantity}
		}

		quote, err := s.pricing.Quote(ctx, reservation.GuestCount, reservation.WaterTemperature, selected, date)
		if err != nil {
			return nil, err
		}
		reservation.TotalPrice = quote.Total
	}

	reservation.UpdatedAt = s.now()

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("update reservation %s: %w", code, err)
	}

	s.log.Info("Reservation modified", zap.String("code", code))
	s.dispatch(notifier.KindUpdated, reservation, "")

	return s.buildResponse(ctx, reservation)
}

func (s *reservationService) GetByCode(ctx context.Context, code string) (*response.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, ErrNotFound
	}

	return s.buildResponse(ctx, reservation)
}

// LookupByPhone notifies the guest out of band with links to their
// reservations. Nothing is returned to the caller either way, so the endpoint
// leaks no reservation data.
func (s *reservationService) LookupByPhone(ctx context.Context, phone string) error {
	reservations, err := s.repo.Reservation.FindByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("find reservations by phone: %w", err)
	}

	for _, reservation := range reservations {
		if reservation.Status == entity.ReservationStatusCancelled {
			continue
		}
		s.dispatch(notifier.KindLookup, reservation, s.lookupLink(reservation.Code))
	}

	s.log.Info("Phone lookup processed", zap.Int("matches", len(reservations)))
	return nil
}

func (s *reservationService) ListByDate(ctx context.Context, dateStr string) ([]*response.ReservationResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		return nil, validationErrorf("invalid date %s", dateStr)
	}

	reservations, err := s.repo.Reservation.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find reservations by date: %w", err)
	}

	responses := make([]*response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		resp, err := s.buildResponse(ctx, reservation)
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}

	return responses, nil
}

// ==================== HELPER METHODS ====================

func (s *reservationService) buildResponse(ctx context.Context, reservation *entity.Reservation) (*response.ReservationResponse, error) {
	options, err := s.repo.Reservation.FindOptions(ctx, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("load reservation options: %w", err)
	}

	names := make(map[string]string, len(options))
	if len(options) > 0 {
		ids := make([]uuid.UUID, len(options))
		for i, opt := range options {
			ids[i] = opt.OptionID
		}
		found, err := s.repo.Option.FindByIDs(ctx, ids)
		if err == nil {
			for _, opt := range found {
				names[opt.ID.String()] = opt.Name
			}
		}
	}

	return response.ReservationToResponse(reservation, options, names), nil
}

// dispatch fires a notification without awaiting its outcome. Failures are
// logged and swallowed; a lifecycle transition never rolls back because a
// message did not go out.
func (s *reservationService) dispatch(kind notifier.Kind, reservation *entity.Reservation, link string) {
	snapshot := notifier.Snapshot{
		Code:       reservation.Code,
		Date:       reservation.ReservedDate.Format("2006-01-02"),
		TimeSlot:   string(reservation.TimeSlot),
		GuestName:  reservation.GuestName,
		GuestCount: reservation.GuestCount,
		Phone:      reservation.Phone,
		Email:      reservation.Email,
		TotalPrice: reservation.TotalPrice,
		Link:       link,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.notify.Notify(ctx, kind, snapshot); err != nil {
			s.log.Warn("Notification dispatch failed",
				zap.Error(err),
				zap.String("kind", string(kind)),
				zap.String("code", snapshot.Code),
			)
		}
	}()
}

func (s *reservationService) confirmLink(token string) string {
	return fmt.Sprintf("%s/api/reservations/confirm/%s", s.baseURL, token)
}

func (s *reservationService) lookupLink(code string) string {
	return fmt.Sprintf("%s/api/reservations/%s", s.baseURL, code)
}

func parseSelectedOptions(raw []request.SelectedOption) ([]SelectedOption, error) {
	selected := make([]SelectedOption, len(raw))
	for i, sel := range raw {
		id, err := uuid.Parse(sel.OptionID)
		if err != nil {
			return nil, validationErrorf("invalid option ID %s", sel.OptionID)
		}
		selected[i] = SelectedOption{OptionID: id, Quantity: sel.Quantity}
	}
	return selected, nil
}
