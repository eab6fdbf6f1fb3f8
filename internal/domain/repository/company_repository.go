package repository

import (
	"context"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByBusinessNumber(ctx context.Context, number string) (*entity.Company, error)
	// GetNames devuelve id → nombre para los IDs pedidos; los inexistentes se omiten.
	GetNames(ctx context.Context, ids []string) (map[string]string, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error
}
