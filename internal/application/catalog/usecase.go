package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/techsolutions-api/internal/application/dto"
	"github.com/jhoicas/techsolutions-api/internal/application/validation"
	"github.com/jhoicas/techsolutions-api/internal/domain"
	"github.com/jhoicas/techsolutions-api/internal/domain/entity"
	"github.com/jhoicas/techsolutions-api/internal/domain/repository"
)

// Tamaño máximo de la columna features (JSON serializado).
const maxFeaturesLength = 1000

// NUMERIC(18,2) admite hasta 9999999999999999.99.
var maxPriceExclusive = decimal.New(1, 16)

// CatalogUseCase casos de uso del catálogo de servicios: CRUD con borrado lógico y búsqueda.
type CatalogUseCase struct {
	repo repository.ServiceRepository
	now  func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.ServiceRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza time.Now (tests).
func (uc *CatalogUseCase) WithClock(now func() time.Time) *CatalogUseCase {
	uc.now = now
	return uc
}

// List devuelve los servicios activos, más recientes primero.
func (uc *CatalogUseCase) List(ctx context.Context) ([]dto.ServiceResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar servicios: %w", err)
	}
	return toServiceResponses(list), nil
}

// GetByID obtiene un servicio activo. domain.ErrNotFound si no existe, está inactivo o el ID no es válido.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener servicio: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := toServiceResponse(s)
	return &out, nil
}

// Create crea un servicio activo a nombre de createdBy (ID del usuario del token).
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.ServiceRequest, createdBy string) (*dto.ServiceResponse, error) {
	s, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	s.ID = uuid.NewString()
	s.IsActive = true
	s.CreatedAt = now
	s.UpdatedAt = now
	s.CreatedBy = createdBy
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("crear servicio: %w", err)
	}
	out := toServiceResponse(s)
	return &out, nil
}

// Update reemplaza todos los campos editables de un servicio activo y refresca updatedAt.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	s, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.ID = id
	s.UpdatedAt = uc.now().UTC()
	ok, err = uc.repo.UpdateActive(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("actualizar servicio: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := toServiceResponse(s)
	return &out, nil
}

// Delete marca el servicio como inactivo. No exige que esté activo; domain.ErrNotFound si el ID no existe.
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar servicio: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Search busca por subcadena en nombre o categoría. Un término vacío o en blanco equivale a List.
func (uc *CatalogUseCase) Search(ctx context.Context, term string) ([]dto.ServiceResponse, error) {
	term = norm.NFC.String(strings.TrimSpace(term))
	if term == "" {
		return uc.List(ctx)
	}
	list, err := uc.repo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("buscar servicios: %w", err)
	}
	return toServiceResponses(list), nil
}

// parseID normaliza el ID a su forma canónica; un ID que no es UUID no puede existir.
func parseID(raw string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// fromRequest valida la entrada y construye la entidad con el texto normalizado (NFC).
func fromRequest(in dto.ServiceRequest) (*entity.Service, error) {
	in.Name = norm.NFC.String(strings.TrimSpace(in.Name))
	in.Category = norm.NFC.String(strings.TrimSpace(in.Category))
	in.Description = norm.NFC.String(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	var fields []domain.FieldError
	if err := validation.Struct(in); err != nil {
		ve, ok := err.(*domain.ValidationError)
		if !ok {
			return nil, err
		}
		fields = append(fields, ve.Fields...)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			fields = append(fields, domain.FieldError{Field: "price", Message: "debe ser mayor o igual a 0"})
		} else if in.Price.Cmp(maxPriceExclusive) >= 0 {
			fields = append(fields, domain.FieldError{Field: "price", Message: "debe ser menor a " + maxPriceExclusive.String()})
		} else if !in.Price.Equal(in.Price.Round(2)) {
			fields = append(fields, domain.FieldError{Field: "price", Message: "admite como máximo 2 decimales"})
		}
	}
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		features = append(features, norm.NFC.String(f))
	}
	encoded, err := entity.EncodeFeatures(features)
	if err != nil {
		fields = append(fields, domain.FieldError{Field: "features", Message: "no es válido"})
	} else if len(encoded) > maxFeaturesLength {
		fields = append(fields, domain.FieldError{Field: "features", Message: fmt.Sprintf("no puede superar %d caracteres serializado", maxFeaturesLength)})
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	return &entity.Service{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price.Round(2),
		Category:        in.Category,
		Stock:           in.Stock,
		InPromotion:     in.InPromotion,
		DiscountPercent: in.DiscountPercent,
		ImageURL:        in.ImageURL,
		Features:        features,
	}, nil
}

func toServiceResponses(list []*entity.Service) []dto.ServiceResponse {
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toServiceResponse(s))
	}
	return out
}

func toServiceResponse(s *entity.Service) dto.ServiceResponse {
	features := s.Features
	if features == nil {
		features = []string{}
	}
	return dto.ServiceResponse{
		ServiceID:       s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           dto.Money{Decimal: s.Price},
		Category:        s.Category,
		Stock:           s.Stock,
		InPromotion:     s.InPromotion,
		DiscountPercent: s.DiscountPercent,
		ImageURL:        s.ImageURL,
		Features:        features,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		CreatedBy:       s.CreatedBy,
	}
}
