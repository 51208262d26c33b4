package metadomain

// ActionEntry é uma tupla tipada de ação retornada pela Graph API; o valor vem
// como string, tanto para contagens quanto para valores monetários
type ActionEntry struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha crua da resposta do endpoint de insights. Os campos
// numéricos chegam como strings e são validados na normalização. Efêmera:
// existe apenas durante uma chamada de fetch
type InsightRow struct {
	AdID         string `json:"ad_id"`
	AdName       string `json:"ad_name"`
	AccountID    string `json:"account_id"`
	AccountName  string `json:"account_name"`
	CampaignName string `json:"campaign_name"`
	DateStart    string `json:"date_start"`
	DateStop     string `json:"date_stop"`

	Spend       string `json:"spend"`
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	Reach       string `json:"reach"`
	Frequency   string `json:"frequency"`

	Actions      []ActionEntry `json:"actions"`
	ActionValues []ActionEntry `json:"action_values"`
}

// Paging é o envelope de paginação das respostas de listagem da Graph API
type Paging struct {
	Cursors *PagingCursors `json:"cursors,omitempty"`
	Next    string         `json:"next,omitempty"`
}

type PagingCursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// InsightsPage é uma página da resposta do endpoint de insights
type InsightsPage struct {
	Data   []InsightRow `json:"data"`
	Paging *Paging      `json:"paging,omitempty"`
}

// FetchStats acompanha o resultado de uma busca paginada. Truncated indica que
// a válvula de limite de páginas interrompeu a enumeração e o resultado é um
// piso, não um total
type FetchStats struct {
	Pages     int  `json:"pages"`
	Rows      int  `json:"rows"`
	Truncated bool `json:"truncated"`
}
