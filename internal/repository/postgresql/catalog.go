package postgresql

import (
	"context"
	"errors"

	"github.com/barberdesk/salon-backend-go/internal/domain/catalog"
	"github.com/barberdesk/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type packageRepositoryImpl struct {
	db *database.DB
}

func NewPackageRepository(db *database.DB) catalog.PackageRepository {
	return &packageRepositoryImpl{db: db}
}

const packageColumns = `id, name, price_ttc, created_by, created_at, updated_at`

func scanPackage(row pgx.Row) (catalog.Package, error) {
	var p catalog.Package
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PriceTtc,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements catalog.PackageRepository.
func (r *packageRepositoryImpl) Create(ctx context.Context, p catalog.Package) (catalog.Package, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO packages (id, name, price_ttc, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + packageColumns

	created, err := scanPackage(q.QueryRow(ctx, insertQuery, p.ID, p.Name, p.PriceTtc, p.CreatedBy))
	if err != nil {
		return catalog.Package{}, err
	}

	return created, nil
}

// GetByID implements catalog.PackageRepository.
func (r *packageRepositoryImpl) GetByID(ctx context.Context, id string) (catalog.Package, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`

	found, err := scanPackage(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Package{}, catalog.ErrPackageNotFound
		}
		return catalog.Package{}, err
	}

	return found, nil
}

// ListAll implements catalog.PackageRepository.
func (r *packageRepositoryImpl) ListAll(ctx context.Context) ([]catalog.Package, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + packageColumns + ` FROM packages ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []catalog.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}

	return packages, rows.Err()
}

// Update implements catalog.PackageRepository.
func (r *packageRepositoryImpl) Update(ctx context.Context, p catalog.Package) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE packages
		SET name = $1, price_ttc = $2, updated_at = NOW()
		WHERE id = $3`

	tag, err := q.Exec(ctx, updateQuery, p.Name, p.PriceTtc, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrPackageNotFound
	}

	return nil
}

// Delete implements catalog.PackageRepository.
func (r *packageRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrPackageNotFound
	}

	return nil
}
