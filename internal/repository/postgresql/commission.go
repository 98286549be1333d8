package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type weeklyCommissionRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyCommissionRepository(db *database.DB) commission.WeeklyCommissionRepository {
	return &weeklyCommissionRepositoryImpl{db: db}
}

const commissionColumns = `id, employee_id, week_start, week_end, total_revenue_ht, total_commission,
	clients_count, validated, validated_at, paid, paid_at, created_at, updated_at`

func scanCommission(row pgx.Row) (commission.WeeklyCommission, error) {
	var c commission.WeeklyCommission
	err := row.Scan(
		&c.ID,
		&c.EmployeeID,
		&c.WeekStart,
		&c.WeekEnd,
		&c.TotalRevenueHt,
		&c.TotalCommission,
		&c.ClientsCount,
		&c.Validated,
		&c.ValidatedAt,
		&c.Paid,
		&c.PaidAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func collectCommissions(rows pgx.Rows) ([]commission.WeeklyCommission, error) {
	defer rows.Close()

	var commissions []commission.WeeklyCommission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, c)
	}

	return commissions, rows.Err()
}

// Upsert implements commission.WeeklyCommissionRepository. The unique
// constraint on (employee_id, week_start, week_end) turns a second insert
// for the same week into an in-place refresh of the totals; the row keeps
// its original id and its validation state.
func (r *weeklyCommissionRepositoryImpl) Upsert(ctx context.Context, c commission.WeeklyCommission) (commission.WeeklyCommission, bool, error) {
	q := GetQuerier(ctx, r.db)

	upsertQuery := `
		INSERT INTO weekly_commissions
			(id, employee_id, week_start, week_end, total_revenue_ht, total_commission, clients_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (employee_id, week_start, week_end) DO UPDATE
		SET total_revenue_ht = EXCLUDED.total_revenue_ht,
			total_commission = EXCLUDED.total_commission,
			clients_count = EXCLUDED.clients_count,
			updated_at = NOW()
		RETURNING ` + commissionColumns + `, (created_at = updated_at) AS inserted`

	var stored commission.WeeklyCommission
	var inserted bool
	err := q.QueryRow(ctx, upsertQuery,
		c.ID, c.EmployeeID, c.WeekStart, c.WeekEnd, c.TotalRevenueHt, c.TotalCommission, c.ClientsCount,
	).Scan(
		&stored.ID,
		&stored.EmployeeID,
		&stored.WeekStart,
		&stored.WeekEnd,
		&stored.TotalRevenueHt,
		&stored.TotalCommission,
		&stored.ClientsCount,
		&stored.Validated,
		&stored.ValidatedAt,
		&stored.Paid,
		&stored.PaidAt,
		&stored.CreatedAt,
		&stored.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return commission.WeeklyCommission{}, false, err
	}

	return stored, inserted, nil
}

// GetByID implements commission.WeeklyCommissionRepository.
func (r *weeklyCommissionRepositoryImpl) GetByID(ctx context.Context, id string) (commission.WeeklyCommission, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + commissionColumns + ` FROM weekly_commissions WHERE id = $1`

	found, err := scanCommission(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commission.WeeklyCommission{}, commission.ErrCommissionNotFound
		}
		return commission.WeeklyCommission{}, err
	}

	return found, nil
}

// FindByEmployeeAndWeek implements commission.WeeklyCommissionRepository.
// When historical duplicates exist for the week, the greatest id wins.
func (r *weeklyCommissionRepositoryImpl) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart, weekEnd time.Time) (commission.WeeklyCommission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + commissionColumns + `
		FROM weekly_commissions
		WHERE employee_id = $1 AND week_start = $2 AND week_end = $3
		ORDER BY id DESC
		LIMIT 1`

	found, err := scanCommission(q.QueryRow(ctx, query, employeeID, weekStart, weekEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commission.WeeklyCommission{}, commission.ErrCommissionNotFound
		}
		return commission.WeeklyCommission{}, err
	}

	return found, nil
}

// ListByEmployee implements commission.WeeklyCommissionRepository.
func (r *weeklyCommissionRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]commission.WeeklyCommission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + commissionColumns + `
		FROM weekly_commissions
		WHERE employee_id = $1
		ORDER BY week_start DESC, id DESC`

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

	return collectCommissions(rows)
}

// ListByEmployeeSince implements commission.WeeklyCommissionRepository.
func (r *weeklyCommissionRepositoryImpl) ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]commission.WeeklyCommission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + commissionColumns + `
		FROM weekly_commissions
		WHERE employee_id = $1 AND week_start >= $2
		ORDER BY week_start DESC, id DESC`

	rows, err := q.Query(ctx, query, employeeID, since)
	if err != nil {
		return nil, err
	}

	return collectCommissions(rows)
}

// ListValidatedByScopeSince implements commission.WeeklyCommissionRepository.
func (r *weeklyCommissionRepositoryImpl) ListValidatedByScopeSince(ctx context.Context, adminID string, since time.Time) ([]commission.WeeklyCommission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wc.id, wc.employee_id, wc.week_start, wc.week_end, wc.total_revenue_ht, wc.total_commission,
			wc.clients_count, wc.validated, wc.validated_at, wc.paid, wc.paid_at, wc.created_at, wc.updated_at
		FROM weekly_commissions wc
		JOIN employees e ON e.id = wc.employee_id
		WHERE (e.created_by = $1 OR e.created_by IS NULL)
		  AND wc.validated = TRUE
		  AND wc.week_start >= $2
		ORDER BY wc.week_start DESC, wc.id DESC`

	rows, err := q.Query(ctx, query, adminID, since)
	if err != nil {
		return nil, err
	}

	return collectCommissions(rows)
}

// MarkValidated implements commission.WeeklyCommissionRepository.
func (r *weeklyCommissionRepositoryImpl) MarkValidated(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE weekly_commissions
		SET validated = TRUE, validated_at = $1, updated_at = NOW()
		WHERE id = $2 AND validated = FALSE`

	tag, err := q.Exec(ctx, updateQuery, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return commission.ErrAlreadyValidated
	}

	return nil
}

// MarkPaid implements commission.WeeklyCommissionRepository.
func (r *weeklyCommissionRepositoryImpl) MarkPaid(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE weekly_commissions
		SET paid = TRUE, paid_at = $1, updated_at = NOW()
		WHERE id = $2 AND validated = TRUE AND paid = FALSE`

	tag, err := q.Exec(ctx, updateQuery, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return commission.ErrAlreadyPaid
	}

	return nil
}
