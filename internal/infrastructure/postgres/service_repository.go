package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/techsolutions-api/internal/domain"
	"github.com/jhoicas/techsolutions-api/internal/domain/entity"
	"github.com/jhoicas/techsolutions-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

const serviceColumns = `id::text, name, description, price, category, stock, in_promotion, discount_percent,
	image_url, features, is_active, created_at, updated_at, COALESCE(created_by::text, '')`

// ServiceRepo implementación del puerto ServiceRepository sobre PostgreSQL.
// features se guarda como texto JSON (ver entity.EncodeFeatures).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador de persistencia del catálogo. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// ListActive lista los servicios activos, más recientes primero.
func (r *ServiceRepo) ListActive(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE is_active = TRUE ORDER BY created_at DESC`
	return r.list(ctx, "list services", query)
}

// GetActiveByID obtiene un servicio activo por ID.
func (r *ServiceRepo) GetActiveByID(ctx context.Context, id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND is_active = TRUE`
	s, err := scanService(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

// Create persiste un nuevo servicio.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	features, err := entity.EncodeFeatures(s.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	query := `
		INSERT INTO services (id, name, description, price, category, stock, in_promotion, discount_percent,
			image_url, features, is_active, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, '')::uuid)`
	_, err = r.q.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.Price, s.Category, s.Stock, s.InPromotion, s.DiscountPercent,
		s.ImageURL, features, s.IsActive, s.CreatedAt, s.UpdatedAt, s.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// UpdateActive reemplaza los campos editables de un servicio activo. created_at y created_by no cambian.
func (r *ServiceRepo) UpdateActive(ctx context.Context, s *entity.Service) (bool, error) {
	features, err := entity.EncodeFeatures(s.Features)
	if err != nil {
		return false, fmt.Errorf("encode features: %w", err)
	}
	query := `
		UPDATE services SET name = $2, description = $3, price = $4, category = $5, stock = $6,
			in_promotion = $7, discount_percent = $8, image_url = $9, features = $10, updated_at = $11
		WHERE id = $1 AND is_active = TRUE
		RETURNING is_active, created_at, COALESCE(created_by::text, '')`
	err = r.q.QueryRow(ctx, query,
		s.ID, s.Name, s.Description, s.Price, s.Category, s.Stock,
		s.InPromotion, s.DiscountPercent, s.ImageURL, features, s.UpdatedAt,
	).Scan(&s.IsActive, &s.CreatedAt, &s.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("update service: %w", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return true, nil
}

// SoftDelete marca el servicio como inactivo, esté activo o no.
func (r *ServiceRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE services SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete service: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Search filtra servicios activos cuyo nombre o categoría contienen el término (ILIKE).
func (r *ServiceRepo) Search(ctx context.Context, term string) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services
		WHERE is_active = TRUE AND (name ILIKE $1 ESCAPE '\' OR category ILIKE $1 ESCAPE '\')
		ORDER BY created_at DESC`
	return r.list(ctx, "search services", query, containsPattern(term))
}

func (r *ServiceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Service, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanService(row pgx.Row) (*entity.Service, error) {
	var (
		s        entity.Service
		features string
	)
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Category, &s.Stock, &s.InPromotion,
		&s.DiscountPercent, &s.ImageURL, &features, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy)
	if err != nil {
		return nil, err
	}
	s.Features = entity.DecodeFeatures(features)
	s.CreatedAt, s.UpdatedAt = s.CreatedAt.UTC(), s.UpdatedAt.UTC()
	return &s, nil
}
