package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
	"github.com/jhoicas/facturas-api/pkg/bizno"
)

// CompanyUseCase aplica reglas de negocio para empresas (clientes y proveedores).
type CompanyUseCase struct {
	repo        repository.CompanyRepository
	invoiceRepo repository.InvoiceRepository
}

// NewCompanyUseCase construye el caso de uso con sus puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, invoiceRepo repository.InvoiceRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, invoiceRepo: invoiceRepo}
}

// Create crea una nueva empresa. El número de registro se valida y se guarda normalizado (XXX-XX-XXXXX).
// Devuelve domain.ErrDuplicate si el número ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if err := bizno.Validate(in.BusinessNumber); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	companyType, err := normalizeCompanyType(in.Type)
	if err != nil {
		return nil, err
	}
	number := bizno.Normalize(in.BusinessNumber)

	existing, err := uc.repo.GetByBusinessNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           name,
		BusinessNumber: number,
		Region:         in.Region,
		Type:           companyType,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza los campos enviados. El número de registro no se modifica.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
		}
		company.Name = name
	}
	if in.Type != nil {
		t, err := normalizeCompanyType(*in.Type)
		if err != nil {
			return nil, err
		}
		company.Type = t
	}
	if in.Region != nil {
		company.Region = *in.Region
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Status != nil {
		company.Status = *in.Status
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina la empresa. Con facturas asociadas devuelve domain.ErrConflict.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.invoiceRepo.CountByCompany(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la empresa tiene %d facturas", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CompanyUseCase) get(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func normalizeCompanyType(t string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "", entity.CompanyTypeCustomer:
		return entity.CompanyTypeCustomer, nil
	case entity.CompanyTypeSupplier:
		return entity.CompanyTypeSupplier, nil
	case entity.CompanyTypeBoth:
		return entity.CompanyTypeBoth, nil
	default:
		return "", fmt.Errorf("%w: tipo de empresa %q", domain.ErrInvalidInput, t)
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		BusinessNumber: c.BusinessNumber,
		Region:         c.Region,
		Type:           c.Type,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
