package usecase

import (
	"context"
	"sync"
	"time"

	"sauna-booking/internal/data/entity"
	"sauna-booking/internal/data/repository"
	"sauna-booking/internal/notifier"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repositories for service tests. The reservation fake enforces the
// same rules the database does: one active reservation per (date, slot) and
// conditional status transitions.

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*entity.Reservation
	options      map[uuid.UUID][]*entity.ReservationOption
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: make(map[uuid.UUID]*entity.Reservation),
		options:      make(map[uuid.UUID][]*entity.ReservationOption),
	}
}

func cloneReservation(r *entity.Reservation) *entity.Reservation {
	c := *r
	return &c
}

// sameCalendarDay matches dates the way a DATE column does: by calendar day,
// regardless of the time.Time's location.
func sameCalendarDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (f *fakeReservationRepo) slotTakenLocked(date time.Time, slot entity.TimeSlot, exclude uuid.UUID) bool {
	for _, r := range f.reservations {
		if r.ID == exclude {
			continue
		}
		if r.IsActive() && sameCalendarDay(r.ReservedDate, date) && r.TimeSlot == slot {
			return true
		}
	}
	return false
}

func (f *fakeReservationRepo) Create(ctx context.Context, reservation *entity.Reservation, options []*entity.ReservationOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if reservation.IsActive() && f.slotTakenLocked(reservation.ReservedDate, reservation.TimeSlot, reservation.ID) {
		return repository.ErrSlotTaken
	}

	f.reservations[reservation.ID] = cloneReservation(reservation)
	f.options[reservation.ID] = options
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r, ok := f.reservations[id]; ok {
		return cloneReservation(r), nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByCode(ctx context.Context, code string) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.reservations {
		if r.Code == code {
			return cloneReservation(r), nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByPhone(ctx context.Context, phone string) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Reservation
	for _, r := range f.reservations {
		if r.Phone == phone {
			out = append(out, cloneReservation(r))
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindByDate(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Reservation
	for _, r := range f.reservations {
		if sameCalendarDay(r.ReservedDate, date) {
			out = append(out, cloneReservation(r))
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindOptions(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.options[reservationID], nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if reservation.IsActive() && f.slotTakenLocked(reservation.ReservedDate, reservation.TimeSlot, reservation.ID) {
		return repository.ErrSlotTaken
	}

	f.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (f *fakeReservationRepo) HasActiveBySlot(ctx context.Context, date time.Time, slot entity.TimeSlot) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slotTakenLocked(date, slot, uuid.Nil), nil
}

func (f *fakeReservationRepo) FindPendingByToken(ctx context.Context, token string) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.reservations {
		if r.Status == entity.ReservationStatusPending && r.ConfirmationToken != nil && *r.ConfirmationToken == token {
			return cloneReservation(r), nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) ConfirmByToken(ctx context.Context, token string, now time.Time) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.reservations {
		if r.Status != entity.ReservationStatusPending || r.ConfirmationToken == nil || *r.ConfirmationToken != token {
			continue
		}
		if r.ExpiresAt == nil || r.ExpiresAt.Before(now) {
			return nil, nil
		}
		r.Status = entity.ReservationStatusConfirmed
		r.IsConfirmed = true
		r.ConfirmationToken = nil
		r.ExpiresAt = nil
		r.UpdatedAt = now
		return cloneReservation(r), nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) Cancel(ctx context.Context, id uuid.UUID, cause entity.CancelCause) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reservations[id]
	if !ok || r.Status == entity.ReservationStatusCancelled {
		return false, nil
	}
	r.Status = entity.ReservationStatusCancelled
	r.IsConfirmed = true
	r.CancelCause = &cause
	r.ConfirmationToken = nil
	r.ExpiresAt = nil
	return true, nil
}

func (f *fakeReservationRepo) ExpireDue(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var expired []*entity.Reservation
	for _, r := range f.reservations {
		if r.Status != entity.ReservationStatusPending || r.ExpiresAt == nil || !r.ExpiresAt.Before(now) {
			continue
		}
		cause := entity.CancelCauseExpired
		r.Status = entity.ReservationStatusCancelled
		r.IsConfirmed = true
		r.CancelCause = &cause
		r.ConfirmationToken = nil
		r.ExpiresAt = nil
		expired = append(expired, cloneReservation(r))
	}
	return expired, nil
}

type fakeOptionRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*entity.Option
}

func newFakeOptionRepo(options ...*entity.Option) *fakeOptionRepo {
	f := &fakeOptionRepo{byID: make(map[uuid.UUID]*entity.Option)}
	for _, opt := range options {
		f.byID[opt.ID] = opt
	}
	return f
}

func (f *fakeOptionRepo) Create(ctx context.Context, option *entity.Option) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[option.ID] = option
	return nil
}

func (f *fakeOptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeOptionRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Option
	for _, id := range ids {
		if opt, ok := f.byID[id]; ok {
			out = append(out, opt)
		}
	}
	return out, nil
}

func (f *fakeOptionRepo) FindAll(ctx context.Context) ([]*entity.Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Option
	for _, opt := range f.byID {
		out = append(out, opt)
	}
	return out, nil
}

func (f *fakeOptionRepo) FindAllActive(ctx context.Context) ([]*entity.Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Option
	for _, opt := range f.byID {
		if opt.IsActive {
			out = append(out, opt)
		}
	}
	return out, nil
}

func (f *fakeOptionRepo) Update(ctx context.Context, option *entity.Option) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[option.ID] = option
	return nil
}

type fakePriceSettingRepo struct {
	mu       sync.Mutex
	byGuests map[int]*entity.PriceSetting
}

func newFakePriceSettingRepo(settings ...*entity.PriceSetting) *fakePriceSettingRepo {
	f := &fakePriceSettingRepo{byGuests: make(map[int]*entity.PriceSetting)}
	for _, s := range settings {
		f.byGuests[s.GuestCount] = s
	}
	return f
}

func (f *fakePriceSettingRepo) FindByGuestCount(ctx context.Context, guestCount int) (*entity.PriceSetting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byGuests[guestCount], nil
}

func (f *fakePriceSettingRepo) FindAll(ctx context.Context) ([]*entity.PriceSetting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.PriceSetting
	for _, s := range f.byGuests {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakePriceSettingRepo) Upsert(ctx context.Context, setting *entity.PriceSetting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byGuests[setting.GuestCount] = setting
	return nil
}

type fakeClosureRepo struct {
	mu     sync.Mutex
	closed map[string]*entity.ShopClosure
}

func newFakeClosureRepo(dates ...time.Time) *fakeClosureRepo {
	f := &fakeClosureRepo{closed: make(map[string]*entity.ShopClosure)}
	for _, d := range dates {
		f.closed[d.Format("2006-01-02")] = &entity.ShopClosure{
			BaseSimple: entity.BaseSimple{ID: uuid.New()},
			ClosedDate: d,
		}
	}
	return f
}

func (f *fakeClosureRepo) Create(ctx context.Context, closure *entity.ShopClosure) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed[closure.ClosedDate.Format("2006-01-02")] = closure
	return nil
}

func (f *fakeClosureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key, c := range f.closed {
		if c.ID == id {
			delete(f.closed, key)
		}
	}
	return nil
}

func (f *fakeClosureRepo) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.closed[date.Format("2006-01-02")]
	return ok, nil
}

func (f *fakeClosureRepo) FindAll(ctx context.Context) ([]*entity.ShopClosure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.ShopClosure
	for _, c := range f.closed {
		out = append(out, c)
	}
	return out, nil
}

// recordingNotifier counts notifications by kind. Dispatches happen on
// goroutines, so assertions poll via waitFor.
type recordingNotifier struct {
	mu    sync.Mutex
	kinds []notifier.Kind
}

func (n *recordingNotifier) Notify(ctx context.Context, kind notifier.Kind, snapshot notifier.Snapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
	return nil
}

func (n *recordingNotifier) count(kind notifier.Kind) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := 0
	for _, k := range n.kinds {
		if k == kind {
			c++
		}
	}
	return c
}

func (n *recordingNotifier) waitFor(kind notifier.Kind, want int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if n.count(kind) >= want {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return n.count(kind) >= want
}

// ==================== TEST WIRING ====================

func newTestRepo() (*repository.Repository, *fakeReservationRepo) {
	reservations := newFakeReservationRepo()
	repo := &repository.Repository{
		Reservation:  reservations,
		Option:       newFakeOptionRepo(),
		PriceSetting: newFakePriceSettingRepo(),
		Closure:      newFakeClosureRepo(),
	}
	return repo, reservations
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestPricing(repo *repository.Repository) *pricingService {
	return &pricingService{
		repo:      repo,
		surcharge: zeroSurcharge,
		log:       zap.NewNop(),
	}
}

func newTestAvailability(repo *repository.Repository, now time.Time) *availabilityService {
	return &availabilityService{
		repo:     repo,
		leadTime: 2 * time.Hour,
		loc:      time.UTC,
		now:      fixedClock(now),
		log:      zap.NewNop(),
	}
}

func newTestReservationService(repo *repository.Repository, notify notifier.Notifier, now time.Time) *reservationService {
	return &reservationService{
		repo:         repo,
		pricing:      newTestPricing(repo),
		availability: newTestAvailability(repo, now),
		notify:       notify,
		hold:         20 * time.Minute,
		maxGuests:    6,
		baseURL:      "http://localhost:8080",
		loc:          time.UTC,
		now:          fixedClock(now),
		log:          zap.NewNop(),
	}
}

func newTestSweeper(repo *repository.Repository, notify notifier.Notifier, now time.Time) *sweeperService {
	return &sweeperService{
		repo:   repo,
		notify: notify,
		now:    fixedClock(now),
		log:    zap.NewNop(),
	}
}
