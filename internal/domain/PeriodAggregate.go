package domain

// PeriodAggregate é o resultado da soma dos registros diários de um anúncio
// dentro de uma janela de relatório. Os campos aditivos são somas; ctr, cpm,
// cpa e roas são sempre recalculados a partir dos totais, nunca a média das
// razões diárias
type PeriodAggregate struct {
	AdID         string `json:"ad_id"`
	AdName       string `json:"ad_name"`
	AccountID    string `json:"account_id"`
	AccountName  string `json:"account_name"`
	CampaignName string `json:"campaign_name"`
	WindowDays   int    `json:"window_days"`
	DaysWithData int    `json:"days_with_data"`

	Spend         float64 `json:"spend"`
	Impressions   int     `json:"impressions"`
	Clicks        int     `json:"clicks"`
	Reach         int     `json:"reach"`
	Purchases     int     `json:"purchases"`
	PurchaseValue float64 `json:"purchase_value"`

	CTR  float64 `json:"ctr"`
	CPM  float64 `json:"cpm"`
	CPA  float64 `json:"cpa"`
	ROAS float64 `json:"roas"`

	Format   FormatLabel `json:"format"`
	MediaURL *string     `json:"media_url,omitempty"`
}
