package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money serializa como número JSON con dos decimales (100.00), igual que NUMERIC(18,2).
type Money struct {
	decimal.Decimal
}

// MarshalJSON escribe el valor sin comillas.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// ServiceRequest cuerpo de POST y PUT /api/services. PUT reemplaza todos los campos.
type ServiceRequest struct {
	Name            string           `json:"name" validate:"required,max=255"`
	Description     string           `json:"description" validate:"max=1000"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	Category        string           `json:"category" validate:"required,max=100"`
	Stock           int              `json:"stock" validate:"min=0,max=2147483647"` // INTEGER
	InPromotion     bool             `json:"inPromotion"`
	DiscountPercent int              `json:"discountPercent" validate:"min=0,max=100"`
	ImageURL        string           `json:"imageUrl" validate:"max=500"`
	Features        []string         `json:"features"`
}

// ServiceResponse salida de un servicio del catálogo.
type ServiceResponse struct {
	ServiceID       string    `json:"serviceId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           Money     `json:"price"`
	Category        string    `json:"category"`
	Stock           int       `json:"stock"`
	InPromotion     bool      `json:"inPromotion"`
	DiscountPercent int       `json:"discountPercent"`
	ImageURL        string    `json:"imageUrl"`
	Features        []string  `json:"features"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	CreatedBy       string    `json:"createdBy,omitempty"`
}

// ServiceEnvelope respuesta con un servicio.
type ServiceEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    ServiceResponse `json:"data"`
}

// ServiceListEnvelope respuesta con lista de servicios y su conteo.
type ServiceListEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    []ServiceResponse `json:"data"`
	Count   int               `json:"count"`
}
