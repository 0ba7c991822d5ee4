package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techsolutions-api/internal/application/catalog"
	"github.com/jhoicas/techsolutions-api/internal/application/dto"
	"github.com/jhoicas/techsolutions-api/pkg/logger"
)

// ServiceHandler maneja el catálogo de servicios.
type ServiceHandler struct {
	uc  *catalog.CatalogUseCase
	log *logger.Logger
}

// NewServiceHandler construye el handler del catálogo.
func NewServiceHandler(uc *catalog.CatalogUseCase, log *logger.Logger) *ServiceHandler {
	return &ServiceHandler{uc: uc, log: log}
}

func notFoundService(id string) string {
	return fmt.Sprintf("Servicio con ID %s no encontrado", id)
}

// List godoc
// @Summary      Listar servicios activos
// @Tags         services
// @Produce      json
// @Success      200  {object}  dto.ServiceListEnvelope
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, failure{internal: "Error al obtener servicios"})
	}
	return c.JSON(dto.ServiceListEnvelope{
		Success: true,
		Message: "Servicios obtenidos exitosamente",
		Data:    list,
		Count:   len(list),
	})
}

// GetByID godoc
// @Summary      Obtener servicio por ID
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  dto.ServiceEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [get]
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, failure{notFound: notFoundService(id), internal: "Error al obtener el servicio"})
	}
	return c.JSON(dto.ServiceEnvelope{Success: true, Message: "Servicio encontrado", Data: *out})
}

// Create godoc
// @Summary      Crear servicio
// @Description  Responde 201 con Location.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ServiceRequest  true  "Datos del servicio"
// @Success      201   {object}  dto.ServiceEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(msgUnknownUser))
	}
	var in dto.ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in, userID)
	if err != nil {
		return respondError(c, h.log, err, failure{internal: "Error al crear el servicio"})
	}
	c.Location("/api/services/" + out.ServiceID)
	return c.Status(fiber.StatusCreated).JSON(dto.ServiceEnvelope{
		Success: true,
		Message: "Servicio creado exitosamente",
		Data:    *out,
	})
}

// Update godoc
// @Summary      Actualizar servicio
// @Description  Reemplaza todos los campos.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Service ID"
// @Param        body  body  dto.ServiceRequest  true  "Datos del servicio"
// @Success      200   {object}  dto.ServiceEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services/{id} [put]
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err, failure{notFound: notFoundService(id), internal: "Error al actualizar el servicio"})
	}
	return c.JSON(dto.ServiceEnvelope{Success: true, Message: "Servicio actualizado exitosamente", Data: *out})
}

// Delete godoc
// @Summary      Eliminar servicio (borrado lógico)
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [delete]
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err, failure{notFound: notFoundService(id), internal: "Error al eliminar el servicio"})
	}
	return c.JSON(dto.Envelope{Success: true, Message: "Servicio eliminado exitosamente"})
}

// Search godoc
// @Summary      Buscar servicios por nombre o categoría
// @Tags         services
// @Produce      json
// @Param        term  query     string  false  "Término de búsqueda"
// @Success      200   {object}  dto.ServiceListEnvelope
// @Router       /api/services/search [get]
func (h *ServiceHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.Search(c.UserContext(), c.Query("term"))
	if err != nil {
		return respondError(c, h.log, err, failure{internal: "Error al buscar servicios"})
	}
	return c.JSON(dto.ServiceListEnvelope{
		Success: true,
		Message: "Búsqueda completada",
		Data:    list,
		Count:   len(list),
	})
}
