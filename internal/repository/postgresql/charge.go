package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/charge"
	"github.com/barberdesk/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type chargeRepositoryImpl struct {
	db *database.DB
}

func NewChargeRepository(db *database.DB) charge.ChargeRepository {
	return &chargeRepositoryImpl{db: db}
}

const chargeColumns = `id, employee_id, name, amount, date, description, created_at`

func scanCharge(row pgx.Row) (charge.Charge, error) {
	var c charge.Charge
	err := row.Scan(
		&c.ID,
		&c.EmployeeID,
		&c.Name,
		&c.Amount,
		&c.Date,
		&c.Description,
		&c.CreatedAt,
	)
	return c, err
}

func collectCharges(rows pgx.Rows) ([]charge.Charge, error) {
	defer rows.Close()

	var charges []charge.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}

	return charges, rows.Err()
}

// Create implements charge.ChargeRepository.
func (r *chargeRepositoryImpl) Create(ctx context.Context, c charge.Charge) (charge.Charge, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO charges (id, employee_id, name, amount, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + chargeColumns

	created, err := scanCharge(q.QueryRow(ctx, insertQuery,
		c.ID, c.EmployeeID, c.Name, c.Amount, c.Date, c.Description))
	if err != nil {
		return charge.Charge{}, err
	}

	return created, nil
}

// GetByID implements charge.ChargeRepository.
func (r *chargeRepositoryImpl) GetByID(ctx context.Context, id string) (charge.Charge, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + chargeColumns + ` FROM charges WHERE id = $1`

	found, err := scanCharge(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return charge.Charge{}, charge.ErrChargeNotFound
		}
		return charge.Charge{}, err
	}

	return found, nil
}

// ListByScope implements charge.ChargeRepository. Zero time bounds disable
// the date filter.
func (r *chargeRepositoryImpl) ListByScope(ctx context.Context, adminID string, start, end time.Time) ([]charge.Charge, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + chargeColumns + `
		FROM charges
		WHERE employee_id = $1`
	args := []any{adminID}

	if !start.IsZero() {
		args = append(args, start)
		query += ` AND date >= $2`
	}
	if !end.IsZero() {
		args = append(args, end)
		if len(args) == 3 {
			query += ` AND date < $3`
		} else {
			query += ` AND date < $2`
		}
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return collectCharges(rows)
}

// ListByRange implements charge.ChargeRepository.
func (r *chargeRepositoryImpl) ListByRange(ctx context.Context, start, end time.Time) ([]charge.Charge, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + chargeColumns + `
		FROM charges
		WHERE date >= $1 AND date < $2
		ORDER BY date DESC, id DESC`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}

	return collectCharges(rows)
}

// ListAll implements charge.ChargeRepository.
func (r *chargeRepositoryImpl) ListAll(ctx context.Context) ([]charge.Charge, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + chargeColumns + ` FROM charges ORDER BY date DESC, id DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return collectCharges(rows)
}

// Delete implements charge.ChargeRepository.
func (r *chargeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM charges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return charge.ErrChargeNotFound
	}

	return nil
}
