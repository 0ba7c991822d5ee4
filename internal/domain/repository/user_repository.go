package repository

import (
	"context"

	"github.com/jhoicas/techsolutions-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// FindActiveByEmail busca por email exacto entre usuarios activos. (nil, nil) si no existe.
	FindActiveByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByID obtiene un usuario sin filtrar por estado. (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// Upsert crea el usuario o actualiza hash, nombre, rol y estado si el email ya existe.
	Upsert(ctx context.Context, user *entity.User) error
}
