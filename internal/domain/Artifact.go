package domain

import (
	"time"
)

// ArtifactMetadata descreve o conteúdo de um artefato JSON persistido.
// Consumidores (dashboard, relatórios de CLI) dependem deste shape
type ArtifactMetadata struct {
	PipelineVersion string    `json:"pipeline_version,omitempty"`
	GeneratedAt     time.Time `json:"generated_at"`
	ReferenceDate   string    `json:"reference_date,omitempty"`
	WindowDays      int       `json:"window_days,omitempty"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	RowCount        int       `json:"row_count"`
	Truncated       bool      `json:"truncated"`
	RunID           string    `json:"run_id,omitempty"`
}

// BaselineArtifact é o artefato com os registros diários por anúncio
type BaselineArtifact struct {
	Metadata ArtifactMetadata `json:"metadata"`
	DailyAds []*DailyAdRecord `json:"daily_ads"`
}

// WindowArtifact é o artefato agregado de uma janela de relatório
type WindowArtifact struct {
	Metadata ArtifactMetadata   `json:"metadata"`
	Ads      []*PeriodAggregate `json:"ads"`
}
