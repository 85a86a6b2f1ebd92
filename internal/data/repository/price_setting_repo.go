package repository

import (
	"context"
	"fmt"

	"sauna-booking/internal/data/entity"
	"sauna-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PriceSettingRepository interface {
	FindByGuestCount(ctx context.Context, guestCount int) (*entity.PriceSetting, error)
	FindAll(ctx context.Context) ([]*entity.PriceSetting, error)
	Upsert(ctx context.Context, setting *entity.PriceSetting) error
}

type priceSettingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPriceSettingRepository(db database.PgxIface, log *zap.Logger) PriceSettingRepository {
	return &priceSettingRepository{
		db:  db,
		log: log.With(zap.String("repository", "price_setting")),
	}
}

func (r *priceSettingRepository) FindByGuestCount(ctx context.Context, guestCount int) (*entity.PriceSetting, error) {
	query := `SELECT guest_count, price_per_person, updated_at FROM price_settings WHERE guest_count = $1`

	var setting entity.PriceSetting
	err := r.db.QueryRow(ctx, query, guestCount).Scan(
		&setting.GuestCount,
		&setting.PricePerPerson,
		&setting.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find price setting",
			zap.Error(err),
			zap.Int("guest_count", guestCount),
		)
		return nil, fmt.Errorf("find price setting for %d guests: %w", guestCount, err)
	}

	return &setting, nil
}

func (r *priceSettingRepository) FindAll(ctx context.Context) ([]*entity.PriceSetting, error) {
	query := `SELECT guest_count, price_per_person, updated_at FROM price_settings ORDER BY guest_count`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to query price settings", zap.Error(err))
		return nil, fmt.Errorf("query price settings: %w", err)
	}
	defer rows.Close()

	var settings []*entity.PriceSetting
	for rows.Next() {
		var setting entity.PriceSetting
		err := rows.Scan(&setting.GuestCount, &setting.PricePerPerson, &setting.UpdatedAt)
		if err != nil {
			r.log.Error("Failed to scan price setting row", zap.Error(err))
			return nil, fmt.Errorf("scan price setting row: %w", err)
		}
		settings = append(settings, &setting)
	}

	return settings, nil
}

func (r *priceSettingRepository) Upsert(ctx context.Context, setting *entity.PriceSetting) error {
	query := `
		INSERT INTO price_settings (guest_count, price_per_person, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (guest_count) DO UPDATE SET price_per_person = $2, updated_at = $3
	`

	_, err := r.db.Exec(ctx, query, setting.GuestCount, setting.PricePerPerson, setting.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to upsert price setting",
			zap.Error(err),
			zap.Int("guest_count", setting.GuestCount),
		)
		return fmt.Errorf("upsert price setting for %d guests: %w", setting.GuestCount, err)
	}

	return nil
}
