// seed_admin crea o reactiva un usuario administrador. No existe registro público por HTTP:
// esta es la única vía de alta de usuarios.
//
// Uso: go run ./cmd/seed_admin -email admin@techsolutions.com -password '...' [-name "Administrador"] [-role Admin]
// El password también puede venir de SEED_ADMIN_PASSWORD. La conexión se toma de DATABASE_URL o DB_*.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/jhoicas/techsolutions-api/internal/domain/entity"
	"github.com/jhoicas/techsolutions-api/internal/domain/repository"
	"github.com/jhoicas/techsolutions-api/internal/infrastructure/postgres"
	"github.com/jhoicas/techsolutions-api/pkg/config"
	"github.com/jhoicas/techsolutions-api/pkg/logger"
	"github.com/jhoicas/techsolutions-api/pkg/password"
)

type seedInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

type seedOptions struct {
	seedInput
	Migrate bool
}

// openPool se reemplaza en tests.
var openPool = postgres.NewPool

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Argumentos: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Env: "development", Level: "info"})
	if err := run(context.Background(), opts, log); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (seedOptions, error) {
	var opts seedOptions
	flags := pflag.NewFlagSet("seed_admin", pflag.ContinueOnError)
	flags.StringVar(&opts.Email, "email", "", "email del administrador (requerido)")
	flags.StringVar(&opts.Password, "password", os.Getenv("SEED_ADMIN_PASSWORD"), "password en claro")
	flags.StringVar(&opts.FullName, "name", "Administrador", "nombre para mostrar")
	flags.StringVar(&opts.Role, "role", entity.RoleAdmin, "rol")
	flags.BoolVar(&opts.Migrate, "migrate", true, "aplicar migraciones antes de sembrar")
	if err := flags.Parse(args); err != nil {
		return seedOptions{}, err
	}
	return opts, nil
}

// run conecta, migra y siembra. Sólo main termina el proceso.
func run(ctx context.Context, opts seedOptions, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := openPool(ctx, config.LoadDB())
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if opts.Migrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			return fmt.Errorf("migraciones: %w", err)
		}
	}

	var user *entity.User
	err = postgres.NewTxRunner(pool).Run(ctx, func(users repository.UserRepository, _ repository.ServiceRepository) error {
		u, err := seedAdmin(ctx, users, password.NewHasher(0), opts.seedInput, time.Now)
		user = u
		return err
	})
	if err != nil {
		return fmt.Errorf("sembrar administrador: %w", err)
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("administrador listo")
	return nil
}

// seedAdmin valida la entrada, hashea el password y hace upsert por email.
// Relee el usuario como lo haría el login; si no queda activo devuelve error y la transacción se descarta.
func seedAdmin(ctx context.Context, repo repository.UserRepository, hasher *password.Hasher, in seedInput, now func() time.Time) (*entity.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, errors.New("email inválido")
	}
	if in.Role == "" {
		in.Role = entity.RoleAdmin
	}
	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now().UTC(),
	}
	if err := repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert: %w", err)
	}
	stored, err := repo.FindActiveByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("releer usuario: %w", err)
	}
	if stored == nil || stored.ID != user.ID {
		return nil, errors.New("el usuario no quedó activo tras el upsert")
	}
	return user, nil
}
