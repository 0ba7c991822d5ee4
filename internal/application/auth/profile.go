package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/techsolutions-api/internal/application/dto"
	"github.com/jhoicas/techsolutions-api/internal/domain"
	"github.com/jhoicas/techsolutions-api/internal/domain/repository"
)

// ProfileUseCase consulta explícita del usuario por ID (el token sólo trae su identificador).
type ProfileUseCase struct {
	repo repository.UserRepository
}

// NewProfileUseCase construye el caso de uso con el puerto de persistencia.
func NewProfileUseCase(repo repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{repo: repo}
}

// GetByID devuelve la vista pública del usuario.
// domain.ErrNotFound si no existe; domain.ErrUnauthorized si fue desactivado después de emitir el token.
func (uc *ProfileUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	out := ToUserResponse(user)
	return &out, nil
}
