package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/techsolutions-api/internal/application/auth"
	"github.com/jhoicas/techsolutions-api/internal/application/catalog"
	"github.com/jhoicas/techsolutions-api/internal/domain/entity"
	"github.com/jhoicas/techsolutions-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/techsolutions-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/techsolutions-api/pkg/jwt"
	"github.com/jhoicas/techsolutions-api/pkg/logger"
	"github.com/jhoicas/techsolutions-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct {
	mu    sync.Mutex
	users []*entity.User
	err   error
}

func (r *memUsers) FindActiveByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUsers) Upsert(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, u)
	return nil
}

type memServices struct {
	mu   sync.Mutex
	rows map[string]entity.Service
	err  error
}

func (r *memServices) active(match func(entity.Service) bool) ([]*entity.Service, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*entity.Service, 0)
	for _, s := range r.rows {
		if s.IsActive && match(s) {
			c := s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memServices) ListActive(context.Context) ([]*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active(func(entity.Service) bool { return true })
}

func (r *memServices) GetActiveByID(_ context.Context, id string) (*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.rows[id]
	if !ok || !s.IsActive {
		return nil, nil
	}
	return &s, nil
}

func (r *memServices) Create(_ context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rows[s.ID] = *s
	return nil
}

func (r *memServices) UpdateActive(_ context.Context, s *entity.Service) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	cur, ok := r.rows[s.ID]
	if !ok || !cur.IsActive {
		return false, nil
	}
	s.IsActive, s.CreatedAt, s.CreatedBy = cur.IsActive, cur.CreatedAt, cur.CreatedBy
	r.rows[s.ID] = *s
	return true, nil
}

func (r *memServices) SoftDelete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	s, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	s.IsActive = false
	r.rows[id] = s
	return true, nil
}

func (r *memServices) Search(_ context.Context, term string) ([]*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := strings.ToLower(term)
	return r.active(func(s entity.Service) bool {
		return strings.Contains(strings.ToLower(s.Name), t) || strings.Contains(strings.ToLower(s.Category), t)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: app completa con repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID       = "00000000-0000-0000-0000-000000000001"
	adminEmail    = "admin@techsolutions.test"
	adminPassword = "Admin123!"
	inactiveEmail = "baja@techsolutions.test"
)

func jwtConfig() pkgjwt.Config {
	return pkgjwt.Config{
		Secret:     []byte("test-secret-key-for-unit-tests-0123456789"),
		Issuer:     "techsolutions-api",
		Audience:   "techsolutions-frontend",
		ExpMinutes: 60,
	}
}

type testEnv struct {
	app      *fiber.App
	users    *memUsers
	services *memServices
	issuer   *pkgjwt.Issuer
	registry *prometheus.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	hash, err := password.NewHasher(bcrypt.MinCost).Hash(adminPassword)
	require.NoError(t, err)

	users := &memUsers{users: []*entity.User{
		{ID: adminID, Email: adminEmail, PasswordHash: hash, FullName: "Administrador", Role: entity.RoleAdmin, IsActive: true},
		{ID: "00000000-0000-0000-0000-000000000009", Email: inactiveEmail, PasswordHash: hash, FullName: "Baja", Role: entity.RoleAdmin},
	}}
	services := &memServices{rows: map[string]entity.Service{}}

	issuer, err := pkgjwt.NewIssuer(jwtConfig())
	require.NoError(t, err)
	validator, err := pkgjwt.NewValidator(jwtConfig())
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	log := logger.Nop()

	app := apphttp.NewApp(apphttp.AppConfig{Name: "techsolutions-api", Metrics: collector}, log)
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:   "techsolutions-api",
		AuthUC:    auth.NewAuthUseCase(users, issuer, collector),
		ProfileUC: auth.NewProfileUseCase(users),
		CatalogUC: catalog.NewCatalogUseCase(services).WithClock(tickingClock()),
		Validator: validator,
		Gatherer:  reg,
		Log:       log,
	})
	return &testEnv{app: app, users: users, services: services, issuer: issuer, registry: reg}
}

func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func (e *testEnv) bearer(t *testing.T) string {
	t.Helper()
	tok, err := e.issuer.Issue(adminID, adminEmail, entity.RoleAdmin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do lanza la petición y devuelve estado, headers y cuerpo crudo.
func (e *testEnv) do(t *testing.T, method, path, body, authHeader string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}
