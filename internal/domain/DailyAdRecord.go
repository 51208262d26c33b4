package domain

import (
	"time"
)

// DailyAdRecord é o registro canônico de um anúncio em um dia de calendário.
// Invariante: existe exatamente um registro por par (ad_id, date); novas buscas
// para o mesmo par sobrescrevem, nunca duplicam
type DailyAdRecord struct {
	AdID         string    `json:"ad_id"`
	AdName       string    `json:"ad_name"`
	AccountID    string    `json:"account_id"`
	AccountName  string    `json:"account_name"`
	CampaignName string    `json:"campaign_name"`
	Date         time.Time `json:"date"`

	Spend         float64 `json:"spend"`
	Impressions   int     `json:"impressions"`
	Clicks        int     `json:"clicks"`
	Reach         int     `json:"reach"`
	Frequency     float64 `json:"frequency"`
	Purchases     int     `json:"purchases"`
	PurchaseValue float64 `json:"purchase_value"`

	// Razões diárias calculadas apenas para inspeção; o agregador de períodos
	// sempre recalcula a partir dos totais somados
	CTR  float64 `json:"ctr"`
	CPM  float64 `json:"cpm"`
	CPA  float64 `json:"cpa"`
	ROAS float64 `json:"roas"`

	Format   FormatLabel `json:"format"`
	MediaURL *string     `json:"media_url,omitempty"`
}

// Key identifica unicamente o registro dentro do baseline
func (r *DailyAdRecord) Key() string {
	return r.AdID + "|" + r.Date.Format(time.DateOnly)
}
