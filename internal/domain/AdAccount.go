package domain

import (
	"time"
)

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusDisabled AdAccountStatus = "DISABLED"
)

// AdAccount representa uma conta de anúncios de um tenant, com o estado de
// rastreamento de falhas usado para suspender contas que falham repetidamente
type AdAccount struct {
	ID                string          `json:"id"`
	TenantID          string          `json:"tenant_id"`
	ExternalID        string          `json:"external_id"`
	Name              string          `json:"name"`
	Currency          string          `json:"currency"`
	AccessToken       string          `json:"-"` // Token descriptografado, nunca serializado
	Status            AdAccountStatus `json:"status"`
	ConsecutiveErrors int             `json:"consecutive_errors"`
	DisabledReason    *string         `json:"disabled_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// IsDisabled retorna verdadeiro se a conta foi suspensa por falhas upstream
func (a *AdAccount) IsDisabled() bool {
	return a != nil && a.Status == AdAccountStatusDisabled
}

type AdAccountResponse struct {
	ID                string          `json:"id"`
	ExternalID        string          `json:"external_id"`
	Name              string          `json:"name"`
	Currency          string          `json:"currency"`
	Status            AdAccountStatus `json:"status"`
	ConsecutiveErrors int             `json:"consecutive_errors"`
	DisabledReason    *string         `json:"disabled_reason,omitempty"`
}
