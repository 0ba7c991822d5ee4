package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa un servicio/producto del catálogo.
// CreatedBy es sólo el ID del usuario creador; no se hidrata el usuario.
type Service struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal // NUMERIC(18,2)
	Category        string
	Stock           int
	InPromotion     bool
	DiscountPercent int
	ImageURL        string
	Features        []string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string // vacío si el creador no se conoce
}
