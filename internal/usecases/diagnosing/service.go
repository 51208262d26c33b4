package diagnosing

import (
	"sort"

	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/pkg/utils"
)

const defaultTruncationThreshold = 0.60

type Service struct {
	truncationThreshold float64
}

func NewService(truncationThreshold float64) *Service {
	if truncationThreshold <= 0 || truncationThreshold >= 1 {
		truncationThreshold = defaultTruncationThreshold
	}

	return &Service{truncationThreshold: truncationThreshold}
}

// Diff compara duas janelas agregadas do mesmo baseline: chaves presentes em
// uma e ausentes na outra, crescimento percentual das chaves compartilhadas e
// um alerta de possível truncamento de paginação quando o total da janela
// maior fica abaixo da expectativa linear. Apenas relatório: nunca falha nem
// bloqueia o pipeline
func (s *Service) Diff(a, b []*domain.PeriodAggregate, windowDaysA, windowDaysB int) *domain.DiagnosticReport {
	report := &domain.DiagnosticReport{
		WindowDaysA: windowDaysA,
		WindowDaysB: windowDaysB,
		OnlyInA:     []string{},
		OnlyInB:     []string{},
		Growth:      []domain.KeyGrowth{},
	}

	spendA := make(map[string]float64, len(a))
	for _, aggregate := range a {
		spendA[aggregate.AdID] = aggregate.Spend
		report.SpendTotalA += aggregate.Spend
	}

	spendB := make(map[string]float64, len(b))
	for _, aggregate := range b {
		spendB[aggregate.AdID] = aggregate.Spend
		report.SpendTotalB += aggregate.Spend
	}

	report.SpendTotalA = utils.RoundWithTwoDecimalPlace(report.SpendTotalA)
	report.SpendTotalB = utils.RoundWithTwoDecimalPlace(report.SpendTotalB)

	for key, totalA := range spendA {
		totalB, shared := spendB[key]
		if !shared {
			report.OnlyInA = append(report.OnlyInA, key)
			continue
		}

		growth := 0.0
		if totalA > 0 {
			growth = utils.RoundWithTwoDecimalPlace((totalB - totalA) / totalA * 100)
		}

		report.Growth = append(report.Growth, domain.KeyGrowth{
			Key:           key,
			TotalA:        totalA,
			TotalB:        totalB,
			GrowthPercent: growth,
		})
	}

	for key := range spendB {
		if _, shared := spendA[key]; !shared {
			report.OnlyInB = append(report.OnlyInB, key)
		}
	}

	sort.Strings(report.OnlyInA)
	sort.Strings(report.OnlyInB)
	sort.Slice(report.Growth, func(i, j int) bool {
		return report.Growth[i].Key < report.Growth[j].Key
	})

	s.flagTruncation(report)

	return report
}

// flagTruncation compara o total de B com a expectativa linear escalada a
// partir de A. Uma janela de 90 dias com menos de 60% do triplo da janela de
// 30 dias sugere que a paginação do upstream foi truncada
func (s *Service) flagTruncation(report *domain.DiagnosticReport) {
	if report.WindowDaysA <= 0 || report.WindowDaysB <= report.WindowDaysA || report.SpendTotalA <= 0 {
		return
	}

	scale := float64(report.WindowDaysB) / float64(report.WindowDaysA)
	report.ExpectedLinearTotal = utils.RoundWithTwoDecimalPlace(report.SpendTotalA * scale)
	report.TruncationRatio = utils.RoundWithFourDecimalPlace(report.SpendTotalB / report.ExpectedLinearTotal)

	if report.SpendTotalB < report.ExpectedLinearTotal*s.truncationThreshold {
		report.PossibleTruncation = true
	}
}
