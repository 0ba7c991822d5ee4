package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techsolutions-api/internal/application/dto"
	"github.com/jhoicas/techsolutions-api/internal/domain"
	"github.com/jhoicas/techsolutions-api/pkg/logger"
)

// Mensajes fijos de la API.
const (
	msgInvalidData        = "Datos inválidos"
	msgBadCredentials     = "Email o contraseña incorrectos"
	msgUnauthorized       = "No autorizado"
	msgInvalidToken       = "Token inválido o expirado"
	msgMissingToken       = "Token no proporcionado"
	msgUnknownUser        = "No se pudo identificar al usuario"
	msgNotFound           = "Recurso no encontrado"
	msgInternal           = "Error interno del servidor"
	msgInvalidRequestBody = "el cuerpo debe ser un JSON válido"
)

// failure describe cómo responder a un error de una operación concreta.
type failure struct {
	notFound string // mensaje del 404
	internal string // mensaje del 500
}

// respondError traduce err a la taxonomía HTTP: 400 validación, 401 autenticación, 404 inexistente, 500 el resto.
// Los 500 se registran con la causa antes de responder.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, f failure) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		body := dto.NewErrorResponse(msgInvalidData)
		body.Errors = ve.Messages()
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, domain.ErrInvalidInput):
		body := dto.NewErrorResponse(msgInvalidData)
		body.Errors = []string{err.Error()}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(msgBadCredentials))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(msgUnauthorized))
	case errors.Is(err, domain.ErrNotFound):
		msg := f.notFound
		if msg == "" {
			msg = msgNotFound
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.NewErrorResponse(msg))
	}

	msg := f.internal
	if msg == "" {
		msg = msgInternal
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg(msg)
	body := dto.NewErrorResponse(msg)
	body.Error = err.Error()
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// invalidBody respuesta 400 cuando el cuerpo no se puede decodificar.
func invalidBody(c *fiber.Ctx) error {
	body := dto.NewErrorResponse(msgInvalidData)
	body.Errors = []string{msgInvalidRequestBody}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// ErrorHandler último recurso de Fiber: rutas inexistentes, métodos no permitidos y panics recuperados
// mantienen el mismo envelope que el resto de la API.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(dto.NewErrorResponse(fe.Message))
		}
		return respondError(c, log, err, failure{})
	}
}
