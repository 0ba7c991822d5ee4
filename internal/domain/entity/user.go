package entity

import "time"

// Rol por defecto de los usuarios aprovisionados.
const RoleAdmin = "Admin"

// User representa un usuario administrador. Se crea por aprovisionamiento (no hay registro público).
type User struct {
	ID           string
	Email        string // único
	PasswordHash string // bcrypt, nunca se expone
	FullName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}
