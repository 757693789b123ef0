package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_JSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production", Level: "info", Service: "emart-api"}, &buf)

	l.Info().Str("user_id", "U1").Msg("compra registrada")

	out := buf.String()
	assert.Contains(t, out, `"service":"emart-api"`)
	assert.Contains(t, out, `"user_id":"U1"`)
	assert.Contains(t, out, `"message":"compra registrada"`)
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production", Level: "warn"}, &buf)

	l.Info().Msg("descartado")
	assert.Empty(t, buf.String())

	l.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production"}, &buf)

	c := l.Component("tasks")
	c.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"tasks"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}
