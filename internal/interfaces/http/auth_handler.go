package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techsolutions-api/internal/application/auth"
	"github.com/jhoicas/techsolutions-api/internal/application/dto"
	"github.com/jhoicas/techsolutions-api/internal/domain"
	"github.com/jhoicas/techsolutions-api/pkg/logger"
)

// AuthHandler maneja login, validación de token y perfil.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	profile *auth.ProfileUseCase
	log     *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, profile *auth.ProfileUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, profile: profile, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Mismo cuerpo 401 sea cual sea el motivo del rechazo.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Warn().Str("email", in.Email).Str("request_id", requestID(c)).Msg("login rechazado")
		}
		return respondError(c, h.log, err, failure{})
	}
	return c.JSON(dto.LoginResponse{
		Success: true,
		Message: "Login exitoso",
		Token:   out.Token,
		User:    out.User,
	})
}

// Validate godoc
// @Summary      Validar token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValidateTokenResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	return c.JSON(dto.ValidateTokenResponse{
		Success: true,
		Message: "Token válido",
		UserID:  GetUserID(c),
	})
}

// Me godoc
// @Summary      Usuario autenticado
// @Description  Consulta el usuario del token en la base.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.profile.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err, failure{notFound: "Usuario no encontrado"})
	}
	return c.JSON(dto.ProfileResponse{Success: true, Message: "Usuario autenticado", User: *user})
}
