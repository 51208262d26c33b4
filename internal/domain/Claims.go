package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as claims do token emitido pelo backend de autenticação externo.
// Este serviço apenas valida o token; a emissão fica fora daqui
type Claims struct {
	UserID   int    `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin retorna verdadeiro para tokens com o papel administrativo
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == "admin"
}
