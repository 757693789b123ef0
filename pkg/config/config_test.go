package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, DriverMemory, cfg.Storage.SequenceDriver, "vacío hereda STORAGE_DRIVER")
	assert.Equal(t, "emart-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "emart-sequences", cfg.DynamoDB.SequenceTable)
	assert.True(t, cfg.Storage.AutoMigrate)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("SEQUENCE_DRIVER", "dynamodb")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("DB_MAX_CONNS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, DriverDynamoDB, cfg.Storage.SequenceDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Storage.AutoMigrate)
	assert.Equal(t, int32(8), cfg.DB.MaxConns)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MemoriaConSecuenciasPostgres(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SEQUENCE_DRIVER", "postgres")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "emart", Password: "p@ss:word", DBName: "emart", SSLMode: "disable"}
	assert.Equal(t, "postgres://emart:p%40ss%3Aword@db:5432/emart?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}

func TestLoad_PostgresConSecuenciasEnMemoria(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("SEQUENCE_DRIVER", "memory")
	_, err := Load()
	assert.Error(t, err, "un contador en proceso no puede respaldar tablas persistentes")
}
