package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newTestViper(map[string]any{"JWT_SECRET": "s3cr3t"}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "techsolutions-api", cfg.JWT.Issuer)
	assert.Equal(t, "techsolutions-frontend", cfg.JWT.Audience)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestFromViper_LeeValoresComoTexto(t *testing.T) {
	cfg, err := FromViper(newTestViper(map[string]any{
		"JWT_SECRET":             "s3cr3t",
		"JWT_EXPIRATION_MINUTES": "15",
		"HTTP_PORT":              "9090",
		"DB_AUTO_MIGRATE":        "false",
		"CORS_ALLOWED_ORIGINS":   "https://a.example, https://b.example ,",
	}))
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.JWT.Expiration)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestFromViper_SinSecret_RetornaError(t *testing.T) {
	_, err := FromViper(newTestViper(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromViper_ExpiracionNoPositiva_RetornaError(t *testing.T) {
	_, err := FromViper(newTestViper(map[string]any{
		"JWT_SECRET":             "s3cr3t",
		"JWT_EXPIRATION_MINUTES": 0,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_EXPIRATION_MINUTES")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "catalog", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/catalog?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
