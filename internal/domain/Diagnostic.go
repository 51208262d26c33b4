package domain

// KeyGrowth registra o crescimento percentual de uma chave presente nas duas janelas
type KeyGrowth struct {
	Key           string  `json:"key"`
	TotalA        float64 `json:"total_a"`
	TotalB        float64 `json:"total_b"`
	GrowthPercent float64 `json:"growth_percent"`
}

// DiagnosticReport é o resultado da comparação entre duas janelas agregadas.
// É apenas um relatório: nunca bloqueia o pipeline
type DiagnosticReport struct {
	WindowDaysA int `json:"window_days_a"`
	WindowDaysB int `json:"window_days_b"`

	OnlyInA []string    `json:"only_in_a"`
	OnlyInB []string    `json:"only_in_b"`
	Growth  []KeyGrowth `json:"growth"`

	SpendTotalA float64 `json:"spend_total_a"`
	SpendTotalB float64 `json:"spend_total_b"`

	// PossibleTruncation indica que o total da janela maior ficou abaixo da
	// expectativa linear escalada, sugerindo paginação truncada no upstream
	PossibleTruncation  bool    `json:"possible_truncation"`
	ExpectedLinearTotal float64 `json:"expected_linear_total"`
	TruncationRatio     float64 `json:"truncation_ratio"`
}

// HasFindings retorna verdadeiro quando o relatório contém alguma divergência
func (r *DiagnosticReport) HasFindings() bool {
	if r == nil {
		return false
	}
	return len(r.OnlyInA) > 0 || len(r.OnlyInB) > 0 || r.PossibleTruncation
}
