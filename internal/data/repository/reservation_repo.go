package repository

import (
	"context"
	"fmt"
	"time"

	"sauna-booking/internal/data/entity"
	"sauna-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation, options []*entity.ReservationOption) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByCode(ctx context.Context, code string) (*entity.Reservation, error)
	FindByPhone(ctx context.Context, phone string) ([]*entity.Reservation, error)
	FindByDate(ctx context.Context, date time.Time) ([]*entity.Reservation, error)
	FindOptions(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationOption, error)
	Update(ctx context.Context, reservation *entity.Reservation) error

	// Business queries
	HasActiveBySlot(ctx context.Context, date time.Time, slot entity.TimeSlot) (bool, error)
	FindPendingByToken(ctx context.Context, token string) (*entity.Reservation, error)
	ConfirmByToken(ctx context.Context, token string, now time.Time) (*entity.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID, cause entity.CancelCause) (bool, error)
	ExpireDue(ctx context.Context, now time.Time) ([]*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, code, reserved_date, time_slot, guest_name, guest_count, phone, email,
	water_temperature, total_price, status, is_confirmed, cancel_cause, confirmation_token, expires_at,
	created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var r entity.Reservation
	err := row.Scan(
		&r.ID,
		&r.Code,
		&r.ReservedDate,
		&r.TimeSlot,
		&r.GuestName,
		&r.GuestCount,
		&r.Phone,
		&r.Email,
		&r.WaterTemperature,
		&r.TotalPrice,
		&r.Status,
		&r.IsConfirmed,
		&r.CancelCause,
		&r.ConfirmationToken,
		&r.ExpiresAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts the reservation and its selected options in one transaction.
// A collision on the active-slot unique index comes back as ErrSlotTaken.
func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation, options []*entity.ReservationOption) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create reservation: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO reservations (id, code, reserved_date, time_slot, guest_name, guest_count, phone, email,
			water_temperature, total_price, status, is_confirmed, cancel_cause, confirmation_token, expires_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err = tx.Exec(ctx, query,
		reservation.ID,
		reservation.Code,
		reservation.ReservedDate,
		reservation.TimeSlot,
		reservation.GuestName,
		reservation.GuestCount,
		reservation.Phone,
		reservation.Email,
		reservation.WaterTemperature,
		reservation.TotalPrice,
		reservation.Status,
		reservation.IsConfirmed,
		reservation.CancelCause,
		reservation.ConfirmationToken,
		reservation.ExpiresAt,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		if isActiveSlotViolation(err) {
			r.log.Info("Slot taken at insert time",
				zap.String("date", reservation.ReservedDate.Format("2006-01-02")),
				zap.String("time_slot", string(reservation.TimeSlot)),
			)
			return ErrSlotTaken
		}
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("code", reservation.Code),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.Code, err)
	}

	for _, opt := range options {
		_, err = tx.Exec(ctx, `
			INSERT INTO reservation_options (id, reservation_id, option_id, quantity, unit_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			opt.ID,
			opt.ReservationID,
			opt.OptionID,
			opt.Quantity,
			opt.UnitPrice,
			opt.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create reservation option",
				zap.Error(err),
				zap.String("code", reservation.Code),
				zap.String("option_id", opt.OptionID.String()),
			)
			return fmt.Errorf("create reservation option: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isActiveSlotViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("commit create reservation %s: %w", reservation.Code, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByCode(ctx context.Context, code string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE code = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find reservation by code %s: %w", code, err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByPhone(ctx context.Context, phone string) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE phone = $1 ORDER BY reserved_date DESC`

	return r.queryMany(ctx, query, phone)
}

func (r *reservationRepository) FindByDate(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reserved_date = $1 ORDER BY time_slot, created_at`

	return r.queryMany(ctx, query, date)
}

func (r *reservationRepository) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query reservations", zap.Error(err))
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

func (r *reservationRepository) FindOptions(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationOption, error) {
	query := `
		SELECT id, reservation_id, option_id, quantity, unit_price, created_at
		FROM reservation_options
		WHERE reservation_id = $1
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find reservation options",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find reservation options %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	var options []*entity.ReservationOption
	for rows.Next() {
		var opt entity.ReservationOption
		err := rows.Scan(&opt.ID, &opt.ReservationID, &opt.OptionID, &opt.Quantity, &opt.UnitPrice, &opt.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan reservation option row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation option row: %w", err)
		}
		options = append(options, &opt)
	}

	return options, nil
}

// Update rewrites the mutable reservation fields in place. A slot move that
// collides with another active reservation comes back as ErrSlotTaken.
func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET reserved_date = $2, time_slot = $3, guest_name = $4, guest_count = $5, phone = $6,
		    email = $7, water_temperature = $8, total_price = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.ReservedDate,
		reservation.TimeSlot,
		reservation.GuestName,
		reservation.GuestCount,
		reservation.Phone,
		reservation.Email,
		reservation.WaterTemperature,
		reservation.TotalPrice,
		reservation.UpdatedAt,
	)
	if err != nil {
		if isActiveSlotViolation(err) {
			return ErrSlotTaken
		}
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) HasActiveBySlot(ctx context.Context, date time.Time, slot entity.TimeSlot) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE reserved_date = $1 AND time_slot = $2 AND status IN ('pending', 'confirmed')
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, date, slot).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check active reservation for slot",
			zap.Error(err),
			zap.String("date", date.Format("2006-01-02")),
			zap.String("time_slot", string(slot)),
		)
		return false, fmt.Errorf("check active reservation for slot: %w", err)
	}

	return exists, nil
}

func (r *reservationRepository) FindPendingByToken(ctx context.Context, token string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE confirmation_token = $1 AND status = 'pending'`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, token))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending reservation by token", zap.Error(err))
		return nil, fmt.Errorf("find pending reservation by token: %w", err)
	}

	return reservation, nil
}

// ConfirmByToken performs the conditional pending->confirmed transition. The
// update only lands while the row is still pending and unexpired, so a racing
// sweep cannot double-transition the same reservation. Returns nil when no row
// matched.
func (r *reservationRepository) ConfirmByToken(ctx context.Context, token string, now time.Time) (*entity.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'confirmed', is_confirmed = TRUE, confirmation_token = NULL, expires_at = NULL, updated_at = $2
		WHERE confirmation_token = $1 AND status = 'pending' AND expires_at >= $2
		RETURNING ` + reservationColumns

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, token, now))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to confirm reservation by token", zap.Error(err))
		return nil, fmt.Errorf("confirm reservation by token: %w", err)
	}

	return reservation, nil
}

// Cancel performs the conditional transition to cancelled. is_confirmed is
// forced true so the row never shows up in an expiry sweep again. Returns
// false when the reservation was already cancelled.
func (r *reservationRepository) Cancel(ctx context.Context, id uuid.UUID, cause entity.CancelCause) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'cancelled', is_confirmed = TRUE, cancel_cause = $2,
		    confirmation_token = NULL, expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
	`

	result, err := r.db.Exec(ctx, query, id, cause)
	if err != nil {
		r.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("cause", string(cause)),
		)
		return false, fmt.Errorf("cancel reservation %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// ExpireDue reaps every pending reservation whose hold deadline passed. The
// status condition makes it safe against concurrent confirms: whichever update
// lands first wins and the loser sees zero rows.
func (r *reservationRepository) ExpireDue(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'cancelled', is_confirmed = TRUE, cancel_cause = 'expired',
		    confirmation_token = NULL, expires_at = NULL, updated_at = $1
		WHERE status = 'pending' AND expires_at < $1
		RETURNING ` + reservationColumns

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to expire due reservations", zap.Error(err))
		return nil, fmt.Errorf("expire due reservations: %w", err)
	}
	defer rows.Close()

	var expired []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan expired reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan expired reservation row: %w", err)
		}
		expired = append(expired, reservation)
	}

	return expired, nil
}
