package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

const testSecret = "segredo-de-teste"

func signToken(t *testing.T, claims *domain.Claims, secret string, method jwt.SigningMethod) string {
	t.Helper()

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func validClaims() *domain.Claims {
	return &domain.Claims{
		UserID:   42,
		TenantID: "tenant_1",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newTestService() Authenticator {
	cfg := &config.Config{Auth: config.Auth{Secret: testSecret}}
	return NewService(cfg)
}

func TestValidateToken_TokenValido(t *testing.T) {
	service := newTestService()

	tokenString := signToken(t, validClaims(), testSecret, jwt.SigningMethodHS256)

	claims, err := service.ValidateToken(tokenString)

	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "tenant_1", claims.TenantID)
	assert.True(t, claims.IsAdmin())
}

func TestValidateToken_AssinaturaErrada(t *testing.T) {
	service := newTestService()

	tokenString := signToken(t, validClaims(), "outro-segredo", jwt.SigningMethodHS256)

	_, err := service.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_TokenExpirado(t *testing.T) {
	service := newTestService()

	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tokenString := signToken(t, claims, testSecret, jwt.SigningMethodHS256)

	_, err := service.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_SemTenant(t *testing.T) {
	service := newTestService()

	claims := validClaims()
	claims.TenantID = ""

	tokenString := signToken(t, claims, testSecret, jwt.SigningMethodHS256)

	_, err := service.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrMissingTenant)
}

func TestValidateToken_Lixo(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateToken("nao.e.um.token")
	assert.Error(t, err)
}
