package usecase

import (
	"context"
	"fmt"
	"time"

	"sauna-booking/internal/data/repository"
	"sauna-booking/internal/notifier"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type SweeperService interface {
	// Sweep releases every pending reservation whose hold deadline passed.
	// Returns how many were released.
	Sweep(ctx context.Context) (int, error)
	// StartScheduler runs Sweep on the given cron spec until the returned
	// cron is stopped.
	StartScheduler(spec string) (*cron.Cron, error)
}

type sweeperService struct {
	repo   *repository.Repository
	notify notifier.Notifier
	now    func() time.Time
	log    *zap.Logger
}

func NewSweeperService(repo *repository.Repository, notify notifier.Notifier, log *zap.Logger) SweeperService {
	return &sweeperService{
		repo:   repo,
		notify: notify,
		now:    time.Now,
		log:    log.With(zap.String("service", "sweeper")),
	}
}

// Sweep is one conditional update: only rows still pending transition, so a
// confirm landing first simply removes its row from the sweep.
func (s *sweeperService) Sweep(ctx context.Context) (int, error) {
	expired, err := s.repo.Reservation.ExpireDue(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("sweep expired reservations: %w", err)
	}

	for _, reservation := range expired {
		s.log.Info("Reservation expired",
			zap.String("code", reservation.Code),
			zap.String("date", reservation.ReservedDate.Format("2006-01-02")),
			zap.String("time_slot", string(reservation.TimeSlot)),
		)

		snapshot := notifier.Snapshot{
			Code:       reservation.Code,
			Date:       reservation.ReservedDate.Format("2006-01-02"),
			TimeSlot:   string(reservation.TimeSlot),
			GuestName:  reservation.GuestName,
			GuestCount: reservation.GuestCount,
			Phone:      reservation.Phone,
			Email:      reservation.Email,
			TotalPrice: reservation.TotalPrice,
		}

		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := s.notify.Notify(notifyCtx, notifier.KindExpired, snapshot); err != nil {
				s.log.Warn("Expiry notification failed",
					zap.Error(err),
					zap.String("code", snapshot.Code),
				)
			}
		}()
	}

	return len(expired), nil
}

func (s *sweeperService) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		count, err := s.Sweep(ctx)
		if err != nil {
			s.log.Error("Sweep run failed", zap.Error(err))
			return
		}
		if count > 0 {
			s.log.Info("Sweep run completed", zap.Int("released", count))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule sweeper %q: %w", spec, err)
	}

	c.Start()
	s.log.Info("Sweeper scheduler started", zap.String("spec", spec))

	return c, nil
}
