package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/techsolutions-api/internal/application/dto"
	"github.com/jhoicas/techsolutions-api/internal/application/validation"
	"github.com/jhoicas/techsolutions-api/internal/domain"
	"github.com/jhoicas/techsolutions-api/internal/domain/entity"
	"github.com/jhoicas/techsolutions-api/internal/domain/repository"
	"github.com/jhoicas/techsolutions-api/pkg/password"
)

// TokenIssuer emite el token firmado para un usuario autenticado. Lo implementa *jwt.Issuer.
type TokenIssuer interface {
	Issue(userID, email, role string) (string, error)
}

// Outcome resultado observable de un intento de login (métricas y logs).
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeRejected Outcome = "rejected"
	OutcomeInvalid  Outcome = "invalid_input"
	OutcomeError    Outcome = "error"
)

// LoginObserver recibe el resultado de cada intento. Puede ser nil.
type LoginObserver interface {
	ObserveLogin(outcome Outcome)
}

// AuthUseCase caso de uso de autenticación: login con email y password.
type AuthUseCase struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
	observer LoginObserver
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, issuer TokenIssuer, observer LoginObserver) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, issuer: issuer, observer: observer}
}

// dummyHash se compara cuando el email no existe: ambos rechazos cuestan una comparación bcrypt
// con el mismo costo que los hashes sembrados. Se calcula al cargar el paquete.
var dummyHash = mustHash("techsolutions-no-such-user")

func mustHash(plain string) string {
	h, err := password.NewHasher(0).Hash(plain)
	if err != nil {
		panic("auth: hash de referencia: " + err.Error())
	}
	return h
}

// Login verifica email/password de un usuario activo y emite el token.
//
// Errores:
//   - *domain.ValidationError si falta email o password (no se consulta el repositorio).
//   - domain.ErrInvalidCredentials si el usuario no existe, está inactivo o el password no coincide.
//   - cualquier otro error es interno (repositorio o firma).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		uc.observe(OutcomeInvalid)
		return nil, err
	}

	user, err := uc.userRepo.FindActiveByEmail(ctx, in.Email)
	if err != nil {
		uc.observe(OutcomeError)
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		password.Verify(in.Password, dummyHash)
		uc.observe(OutcomeRejected)
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(in.Password, user.PasswordHash) {
		uc.observe(OutcomeRejected)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		uc.observe(OutcomeError)
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	uc.observe(OutcomeSuccess)
	return &dto.LoginResult{Token: token, User: ToUserResponse(user)}, nil
}

func (uc *AuthUseCase) observe(o Outcome) {
	if uc.observer != nil {
		uc.observer.ObserveLogin(o)
	}
}

// ToUserResponse vista pública del usuario (nunca incluye el hash).
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
