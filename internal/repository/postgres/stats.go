package postgres

import (
	"database/sql"

	"kodbot/internal/domain"
)

// StatsRepo implements repository.StatsRepository
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Increment bumps the counter in a single statement and returns the new value
func (r *StatsRepo) Increment(code string) (int, error) {
	var count int
	query := `
		INSERT INTO usage_stats (code, count)
		VALUES ($1, 1)
		ON CONFLICT (code)
		DO UPDATE SET count = usage_stats.count + 1
		RETURNING count
	`
	err := r.db.QueryRow(query, code).Scan(&count)
	return count, err
}

// GetCount returns the counter of code, zero when never delivered
func (r *StatsRepo) GetCount(code string) (int, error) {
	var count int
	query := `SELECT count FROM usage_stats WHERE code = $1`
	err := r.db.QueryRow(query, code).Scan(&count)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}

// TopCodes returns the most requested codes
func (r *StatsRepo) TopCodes(limit int) ([]domain.UsageStat, error) {
	query := `
		SELECT code, count
		FROM usage_stats
		ORDER BY count DESC, code ASC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.UsageStat
	for rows.Next() {
		var s domain.UsageStat
		if err := rows.Scan(&s.Code, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
