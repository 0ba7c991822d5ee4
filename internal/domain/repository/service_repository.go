package repository

import (
	"context"

	"github.com/jhoicas/techsolutions-api/internal/domain/entity"
)

// ServiceRepository define el puerto de persistencia del catálogo (DIP).
// Todos los listados son sólo de servicios activos, ordenados por created_at descendente.
type ServiceRepository interface {
	ListActive(ctx context.Context) ([]*entity.Service, error)
	// GetActiveByID devuelve (nil, nil) si no existe o está inactivo.
	GetActiveByID(ctx context.Context, id string) (*entity.Service, error)
	Create(ctx context.Context, service *entity.Service) error
	// UpdateActive reemplaza los campos editables y updated_at; false si no existe o está inactivo.
	// Completa IsActive, CreatedAt y CreatedBy con lo persistido.
	UpdateActive(ctx context.Context, service *entity.Service) (bool, error)
	// SoftDelete marca is_active = false; false si el ID no existe (activo o no).
	SoftDelete(ctx context.Context, id string) (bool, error)
	// Search filtra por subcadena en nombre o categoría, sin distinguir mayúsculas.
	Search(ctx context.Context, term string) ([]*entity.Service, error)
}
