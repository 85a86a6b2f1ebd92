package repository

import (
	"context"
	"fmt"
	"time"

	"sauna-booking/internal/data/entity"
	"sauna-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClosureRepository interface {
	Create(ctx context.Context, closure *entity.ShopClosure) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByDate(ctx context.Context, date time.Time) (bool, error)
	FindAll(ctx context.Context) ([]*entity.ShopClosure, error)
}

type closureRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClosureRepository(db database.PgxIface, log *zap.Logger) ClosureRepository {
	return &closureRepository{
		db:  db,
		log: log.With(zap.String("repository", "closure")),
	}
}

func (r *closureRepository) Create(ctx context.Context, closure *entity.ShopClosure) error {
	query := `
		INSERT INTO shop_closures (id, closed_date, reason, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, closure.ID, closure.ClosedDate, closure.Reason, closure.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create shop closure",
			zap.Error(err),
			zap.String("closed_date", closure.ClosedDate.Format("2006-01-02")),
		)
		return fmt.Errorf("create shop closure: %w", err)
	}

	return nil
}

func (r *closureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM shop_closures WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete shop closure",
			zap.Error(err),
			zap.String("closure_id", id.String()),
		)
		return fmt.Errorf("delete shop closure %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("shop closure %s not found", id.String())
	}

	return nil
}

func (r *closureRepository) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM shop_closures WHERE closed_date = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, date).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check shop closure",
			zap.Error(err),
			zap.String("date", date.Format("2006-01-02")),
		)
		return false, fmt.Errorf("check shop closure: %w", err)
	}

	return exists, nil
}

func (r *closureRepository) FindAll(ctx context.Context) ([]*entity.ShopClosure, error) {
	query := `SELECT id, closed_date, reason, created_at FROM shop_closures ORDER BY closed_date`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to query shop closures", zap.Error(err))
		return nil, fmt.Errorf("query shop closures: %w", err)
	}
	defer rows.Close()

	var closures []*entity.ShopClosure
	for rows.Next() {
		var closure entity.ShopClosure
		err := rows.Scan(&closure.ID, &closure.ClosedDate, &closure.Reason, &closure.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan shop closure row", zap.Error(err))
			return nil, fmt.Errorf("scan shop closure row: %w", err)
		}
		closures = append(closures, &closure)
	}

	return closures, nil
}
