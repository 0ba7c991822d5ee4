// Package password hashea y verifica contraseñas con bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Límite de bcrypt: los bytes a partir del 72 se ignorarían.
const MaxLength = 72

// Hasher hashea contraseñas con un costo fijo.
type Hasher struct {
	cost int
}

// NewHasher construye un hasher; un costo fuera de rango usa bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash devuelve el hash con sal embebida.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password: vacío")
	}
	if len(plain) > MaxLength {
		return "", fmt.Errorf("password: máximo %d bytes", MaxLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

// Verify compara usando el esquema de bcrypt. Un hash mal formado equivale a "no coincide".
func Verify(plain, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}
