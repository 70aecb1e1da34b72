package forecast_mode

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetForYear(ctx context.Context, year int) ([]MonthMode, error)
	Store(ctx context.Context, mode MonthMode) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetForYear(ctx context.Context, year int) ([]MonthMode, error) {
	query := `SELECT year, month, is_final FROM forecast_mode WHERE year = $1 ORDER BY month`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		err := fmt.Errorf("could not query forecast modes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	modes := make([]MonthMode, 0, 12)
	for rows.Next() {
		var mode MonthMode
		if err := rows.Scan(&mode.Year, &mode.Month, &mode.Final); err != nil {
			err := fmt.Errorf("could not scan forecast mode: %w", err)
			log.Error(err)
			return nil, err
		}
		modes = append(modes, mode)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return modes, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, mode MonthMode) error {
	query := `INSERT INTO forecast_mode (year, month, is_final) VALUES ($1, $2, $3)
			  ON CONFLICT (year, month) DO UPDATE SET is_final = EXCLUDED.is_final`
	if _, err := r.db.Exec(ctx, query, mode.Year, mode.Month, mode.Final); err != nil {
		err := fmt.Errorf("could not store forecast mode: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
