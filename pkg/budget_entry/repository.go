package budget_entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("budget entry not found")

type Repository interface {
	ListForYear(ctx context.Context, year int) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	// Upsert stores the entry, replacing the one with the same category, year
	// and month if there is one. The stored entry is returned.
	Upsert(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const entryColumns = `id, category_id, year, month, quarter, budget_amount,
			actual_amount, reforecast_amount, adjustment_amount, notes`

func (r *RepositoryImpl) ListForYear(ctx context.Context, year int) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM budget_entry WHERE year = $1 ORDER BY month, category_id`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		err := fmt.Errorf("could not query budget entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, 64)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id string) (Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM budget_entry WHERE id = $1`
	entry, err := scanEntry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		err := fmt.Errorf("could not get budget entry %s: %w", id, err)
		log.Error(err)
		return Entry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) Upsert(ctx context.Context, entry Entry) (Entry, error) {
	query := `INSERT INTO budget_entry (` + entryColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  ON CONFLICT (category_id, year, month) DO UPDATE SET
			      quarter = EXCLUDED.quarter,
			      budget_amount = EXCLUDED.budget_amount,
			      actual_amount = EXCLUDED.actual_amount,
			      reforecast_amount = EXCLUDED.reforecast_amount,
			      adjustment_amount = EXCLUDED.adjustment_amount,
			      notes = EXCLUDED.notes
			  RETURNING ` + entryColumns
	stored, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.Id,
		entry.CategoryId,
		entry.Year,
		entry.Month,
		entry.Quarter,
		entry.Budget,
		entry.Actual.Ptr(),
		entry.Reforecast.Ptr(),
		entry.Adjustment.Ptr(),
		entry.Notes,
	))
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	return stored, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM budget_entry WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete budget entry: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanEntry(row pgx.Row) (Entry, error) {
	var (
		entry      Entry
		actual     *float64
		reforecast *float64
		adjustment *float64
	)
	err := row.Scan(
		&entry.Id,
		&entry.CategoryId,
		&entry.Year,
		&entry.Month,
		&entry.Quarter,
		&entry.Budget,
		&actual,
		&reforecast,
		&adjustment,
		&entry.Notes,
	)
	if err != nil {
		return Entry{}, err
	}
	entry.Actual = AmountFromPtr(actual)
	entry.Reforecast = AmountFromPtr(reforecast)
	entry.Adjustment = AmountFromPtr(adjustment)
	return entry, nil
}
