package postgresql

import (
	"context"

	"github.com/barberdesk/salon-backend-go/internal/domain/stats"
	"github.com/barberdesk/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type statisticRepositoryImpl struct {
	db *database.DB
}

func NewStatisticRepository(db *database.DB) stats.StatisticRepository {
	return &statisticRepositoryImpl{db: db}
}

const statisticColumns = `id, employee_id, period, date, revenue_ht, revenue_ttc, charges, commission, profit, clients_count, created_at`

// Create implements stats.StatisticRepository.
func (r *statisticRepositoryImpl) Create(ctx context.Context, s stats.Statistic) (stats.Statistic, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO statistics
			(id, employee_id, period, date, revenue_ht, revenue_ttc, charges, commission, profit, clients_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING ` + statisticColumns

	var created stats.Statistic
	err := q.QueryRow(ctx, insertQuery,
		s.ID, s.EmployeeID, s.Period, s.Date, s.RevenueHt, s.RevenueTtc, s.Charges, s.Commission, s.Profit, s.ClientsCount,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.Period,
		&created.Date,
		&created.RevenueHt,
		&created.RevenueTtc,
		&created.Charges,
		&created.Commission,
		&created.Profit,
		&created.ClientsCount,
		&created.CreatedAt,
	)
	if err != nil {
		return stats.Statistic{}, err
	}

	return created, nil
}

// ListByEmployeeAndPeriod implements stats.StatisticRepository.
func (r *statisticRepositoryImpl) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, period stats.Period, limit int) ([]stats.Statistic, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + statisticColumns + `
		FROM statistics
		WHERE employee_id = $1 AND period = $2
		ORDER BY date DESC, id DESC
		LIMIT $3`

	rows, err := q.Query(ctx, query, employeeID, period, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStatistics(rows)
}

// ListGlobalByPeriod implements stats.StatisticRepository.
func (r *statisticRepositoryImpl) ListGlobalByPeriod(ctx context.Context, period stats.Period, limit int) ([]stats.Statistic, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + statisticColumns + `
		FROM statistics
		WHERE employee_id IS NULL AND period = $1
		ORDER BY date DESC, id DESC
		LIMIT $2`

	rows, err := q.Query(ctx, query, period, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStatistics(rows)
}

func collectStatistics(rows pgx.Rows) ([]stats.Statistic, error) {
	var statistics []stats.Statistic
	for rows.Next() {
		var s stats.Statistic
		err := rows.Scan(
			&s.ID,
			&s.EmployeeID,
			&s.Period,
			&s.Date,
			&s.RevenueHt,
			&s.RevenueTtc,
			&s.Charges,
			&s.Commission,
			&s.Profit,
			&s.ClientsCount,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		statistics = append(statistics, s)
	}

	return statistics, rows.Err()
}
