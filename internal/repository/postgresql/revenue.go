package postgresql

import (
	"context"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/barberdesk/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type revenueRepositoryImpl struct {
	db *database.DB
}

func NewRevenueRepository(db *database.DB) revenue.RevenueRepository {
	return &revenueRepositoryImpl{db: db}
}

func scanRevenue(row pgx.Row) (revenue.Revenue, error) {
	var rev revenue.Revenue
	err := row.Scan(
		&rev.ID,
		&rev.EmployeeID,
		&rev.AmountHt,
		&rev.AmountTtc,
		&rev.Date,
		&rev.PackageID,
		&rev.CreatedAt,
	)
	return rev, err
}

func collectRevenues(rows pgx.Rows) ([]revenue.Revenue, error) {
	defer rows.Close()

	var revenues []revenue.Revenue
	for rows.Next() {
		rev, err := scanRevenue(rows)
		if err != nil {
			return nil, err
		}
		revenues = append(revenues, rev)
	}

	return revenues, rows.Err()
}

// Create implements revenue.RevenueRepository.
func (r *revenueRepositoryImpl) Create(ctx context.Context, rev revenue.Revenue) (revenue.Revenue, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO revenues (id, employee_id, amount_ht, amount_ttc, date, package_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, employee_id, amount_ht, amount_ttc, date, package_id, created_at`

	created, err := scanRevenue(q.QueryRow(ctx, insertQuery,
		rev.ID, rev.EmployeeID, rev.AmountHt, rev.AmountTtc, rev.Date, rev.PackageID))
	if err != nil {
		return revenue.Revenue{}, err
	}

	return created, nil
}

// ListByEmployeeAndRange implements revenue.RevenueRepository.
func (r *revenueRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]revenue.Revenue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount_ht, amount_ttc, date, package_id, created_at
		FROM revenues
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date DESC, id DESC`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	return collectRevenues(rows)
}

// ListByEmployee implements revenue.RevenueRepository. limit <= 0 returns
// the full history.
func (r *revenueRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]revenue.Revenue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount_ht, amount_ttc, date, package_id, created_at
		FROM revenues
		WHERE employee_id = $1
		ORDER BY date DESC, id DESC`

	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = q.Query(ctx, query+` LIMIT $2`, employeeID, limit)
	} else {
		rows, err = q.Query(ctx, query, employeeID)
	}
	if err != nil {
		return nil, err
	}

	return collectRevenues(rows)
}

// ListByScopeAndRange implements revenue.RevenueRepository. The scope covers
// employees created by the admin plus orphaned employees.
func (r *revenueRepositoryImpl) ListByScopeAndRange(ctx context.Context, adminID string, start, end time.Time) ([]revenue.Revenue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT rev.id, rev.employee_id, rev.amount_ht, rev.amount_ttc, rev.date, rev.package_id, rev.created_at
		FROM revenues rev
		JOIN employees e ON e.id = rev.employee_id
		WHERE (e.created_by = $1 OR e.created_by IS NULL)
		  AND rev.date >= $2 AND rev.date < $3
		ORDER BY rev.date DESC, rev.id DESC`

	rows, err := q.Query(ctx, query, adminID, start, end)
	if err != nil {
		return nil, err
	}

	return collectRevenues(rows)
}
