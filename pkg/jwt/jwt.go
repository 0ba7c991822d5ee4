package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken agrupa cualquier motivo de rechazo: firma, algoritmo, issuer, audience o expiración.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Algoritmo único aceptado; cualquier otro (incluido "none") se rechaza.
var signingMethod = jwt.SigningMethodHS256

// Config datos de firma compartidos por emisor y validador.
type Config struct {
	Secret     []byte
	Issuer     string
	Audience   string
	ExpMinutes int
}

func (c Config) validate() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("jwt: secret vacío")
	}
	if c.Issuer == "" || c.Audience == "" {
		return fmt.Errorf("jwt: issuer y audience son requeridos")
	}
	return nil
}

// Claims incluye los claims estándar JWT más identidad y rol del usuario.
// Los nombres de los campos propios coinciden con los que emitían los clientes existentes.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"nameid"`
	Email  string `json:"email"`
	Name   string `json:"unique_name,omitempty"`
	Role   string `json:"role"`
}

// Option ajusta emisor o validador.
type Option func(*clock)

type clock struct {
	now func() time.Time
}

// WithClock reemplaza time.Now (tests de expiración).
func WithClock(now func() time.Time) Option {
	return func(c *clock) { c.now = now }
}

func newClock(opts []Option) clock {
	c := clock{now: time.Now}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Issuer firma tokens HS256 de vida limitada. No guarda estado de los tokens emitidos.
type Issuer struct {
	cfg   Config
	clock clock
}

// NewIssuer construye el emisor. ExpMinutes debe ser positivo.
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.ExpMinutes <= 0 {
		return nil, fmt.Errorf("jwt: expiración debe ser positiva")
	}
	return &Issuer{cfg: cfg, clock: newClock(opts)}, nil
}

// Issue genera el token para el usuario con un jti nuevo y exp = ahora + ExpMinutes.
func (i *Issuer) Issue(userID, email, role string) (string, error) {
	now := i.clock.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.cfg.Issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(i.cfg.ExpMinutes) * time.Minute)),
		},
		UserID: userID,
		Email:  email,
		Name:   email,
		Role:   role,
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Validator verifica firma, algoritmo, issuer, audience y expiración sin tolerancia de reloj.
type Validator struct {
	cfg   Config
	clock clock
}

// NewValidator construye el validador.
func NewValidator(cfg Config, opts ...Option) (*Validator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Validator{cfg: cfg, clock: newClock(opts)}, nil
}

// Validate devuelve los claims si el token es aceptable. Un token es válido sólo mientras now < exp.
func (v *Validator) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.clock.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: sin identificador de usuario", ErrInvalidToken)
	}
	return claims, nil
}

func (v *Validator) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
	}
	return v.cfg.Secret, nil
}
