package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/pkg/jwt"
)

const secret = "s3cr3t"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate(secret, "U7", "ADMIN", "emart-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(secret, "emart-api", token)
	require.NoError(t, err)
	assert.Equal(t, "U7", userID)
	assert.Equal(t, "ADMIN", role)
}

func TestParse_Rechazos(t *testing.T) {
	valid, err := jwt.Generate(secret, "U1", "RESIDENT", "emart-api", 5)
	require.NoError(t, err)
	expired, err := jwt.Generate(secret, "U1", "RESIDENT", "emart-api", -5)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		issuer string
		token  string
	}{
		{"token expirado", secret, "emart-api", expired},
		{"firma con otro secret", "otro", "emart-api", valid},
		{"emisor distinto", secret, "otra-app", valid},
		{"token malformado", secret, "emart-api", "no.es.jwt"},
		{"secret vacío", "", "emart-api", valid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := jwt.Parse(tt.secret, tt.issuer, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestParse_SinEmisorNoValidaIssuer(t *testing.T) {
	token, err := jwt.Generate(secret, "U1", "RESIDENT", "cualquiera", 5)
	require.NoError(t, err)
	userID, _, err := jwt.Parse(secret, "", token)
	require.NoError(t, err)
	assert.Equal(t, "U1", userID)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "U1", "RESIDENT", "emart-api", 5)
	assert.Error(t, err)
}
