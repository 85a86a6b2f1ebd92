package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"sauna-booking/internal/data/entity"
	"sauna-booking/internal/notifier"
)

func TestSweepReleasesOverdueHolds(t *testing.T) {
	repo, reservations := newTestRepo()
	notify := &recordingNotifier{}
	service := newTestReservationService(repo, notify, testNow)

	overdue, err := service.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A confirmed reservation and a pending one still inside its hold must
	// survive the sweep.
	confirmed := validCreateRequest()
	confirmed.Date = "2025-06-11"
	confirmedResp, err := service.Create(context.Background(), confirmed)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.Confirm(context.Background(), confirmedResp.ConfirmationToken); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	fresh := validCreateRequest()
	fresh.Date = "2025-06-12"
	later := newTestReservationService(repo, notify, testNow.Add(15*time.Minute))
	freshResp, err := later.Create(context.Background(), fresh)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 21 minutes after the first create: only the first hold is overdue.
	sweeper := newTestSweeper(repo, notify, testNow.Add(21*time.Minute))

	count, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if count != 1 {
		t.Errorf("released %d reservations, want 1", count)
	}

	stored, _ := reservations.FindByCode(context.Background(), overdue.Code)
	if stored.Status != entity.ReservationStatusCancelled {
		t.Errorf("overdue Status = %s, want cancelled", stored.Status)
	}
	if stored.CancelCause == nil || *stored.CancelCause != entity.CancelCauseExpired {
		t.Errorf("overdue CancelCause = %v, want expired", stored.CancelCause)
	}

	stored, _ = reservations.FindByCode(context.Background(), confirmedResp.Code)
	if stored.Status != entity.ReservationStatusConfirmed {
		t.Errorf("confirmed Status = %s, want confirmed", stored.Status)
	}

	stored, _ = reservations.FindByCode(context.Background(), freshResp.Code)
	if stored.Status != entity.ReservationStatusPending {
		t.Errorf("fresh Status = %s, want pending", stored.Status)
	}

	if !notify.waitFor(notifier.KindExpired, 1, time.Second) {
		t.Error("no expiry notification dispatched")
	}
}

func TestSweepReleasedSlotIsBookable(t *testing.T) {
	repo, _ := newTestRepo()
	notify := &recordingNotifier{}
	service := newTestReservationService(repo, notify, testNow)

	created, err := service.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	after := testNow.Add(21 * time.Minute)
	sweeper := newTestSweeper(repo, notify, after)
	if _, err := sweeper.Sweep(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	// The sweep released the slot; the original token can no longer win it
	// back.
	later := newTestReservationService(repo, notify, after)
	if _, err := later.Create(context.Background(), validCreateRequest()); err != nil {
		t.Errorf("rebooking released slot failed: %v", err)
	}
	if _, err := later.Confirm(context.Background(), created.ConfirmationToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("confirm after sweep: got %v, want ErrInvalidToken", err)
	}
}

func TestSweepNothingDue(t *testing.T) {
	repo, _ := newTestRepo()
	notify := &recordingNotifier{}
	sweeper := newTestSweeper(repo, notify, testNow)

	count, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if count != 0 {
		t.Errorf("released %d reservations on an empty store, want 0", count)
	}
}
