package catalog

import "context"

type PackageRepository interface {
	Create(ctx context.Context, p Package) (Package, error)
	GetByID(ctx context.Context, id string) (Package, error)
	ListAll(ctx context.Context) ([]Package, error)
	Update(ctx context.Context, p Package) error
	Delete(ctx context.Context, id string) error
}
