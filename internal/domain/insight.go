package domain

import (
	"fmt"
	"time"
)

type InsightLevel string

const (
	InsightLevelAccount InsightLevel = "account"
	InsightLevelAd      InsightLevel = "ad"
)

// InsightFilters define o recorte de uma busca de insights no upstream
type InsightFilters struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Level      InsightLevel
	Fields     []string
	Breakdowns []string

	// MaxPages limita a paginação como válvula de segurança; 0 esgota todos os
	// cursores. Quando o limite é atingido o resultado é um piso, não um total
	MaxPages int
}

// Validate garante que o filtro descreve um recorte coerente
func (f *InsightFilters) Validate() error {
	if f == nil || f.StartDate == nil || f.EndDate == nil {
		return fmt.Errorf("é necessário informar as datas de início e fim")
	}

	if f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}

	switch f.Level {
	case InsightLevelAccount, InsightLevelAd:
	default:
		return fmt.Errorf("nível de insights inválido: %s", f.Level)
	}

	return nil
}

// DefaultAdFields são as métricas solicitadas para buscas no nível de anúncio
var DefaultAdFields = []string{
	"ad_id", "ad_name", "account_id", "account_name", "campaign_name",
	"spend", "impressions", "clicks", "reach", "frequency",
	"actions", "action_values",
}
