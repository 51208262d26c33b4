package normalizing

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/pkg/utils"
)

// Tipos de ação da Graph API que contam como compra
var purchaseActionTypes = map[string]struct{}{
	"purchase":      {},
	"omni_purchase": {},
}

type Normalizer interface {
	Normalize(row metadomain.InsightRow) (*domain.DailyAdRecord, error)
	NormalizeAll(rows []metadomain.InsightRow) []*domain.DailyAdRecord
}

type Service struct {
	cpaSanityCeiling float64
}

func NewService(cfg *config.Config) *Service {
	ceiling := cfg.Pipeline.CPASanityCeiling
	if ceiling <= 0 {
		ceiling = 10000
	}

	return &Service{cpaSanityCeiling: ceiling}
}

// Normalize converte uma linha crua da API no registro canônico por anúncio e
// dia. A mesma linha de entrada produz sempre o mesmo registro de saída
func (s *Service) Normalize(row metadomain.InsightRow) (*domain.DailyAdRecord, error) {
	if row.AdID == "" {
		return nil, errors.New("linha de insights sem ad_id")
	}

	date, err := time.Parse(time.DateOnly, row.DateStart)
	if err != nil {
		return nil, errors.Wrapf(err, "data inválida na linha de insights: %q", row.DateStart)
	}

	spend, err := parseFloat(row.Spend)
	if err != nil {
		return nil, errors.Wrap(err, "spend inválido")
	}

	impressions, err := parseInt(row.Impressions)
	if err != nil {
		return nil, errors.Wrap(err, "impressions inválido")
	}

	clicks, err := parseInt(row.Clicks)
	if err != nil {
		return nil, errors.Wrap(err, "clicks inválido")
	}

	reach, err := parseInt(row.Reach)
	if err != nil {
		return nil, errors.Wrap(err, "reach inválido")
	}

	frequency, err := parseFloat(row.Frequency)
	if err != nil {
		return nil, errors.Wrap(err, "frequency inválido")
	}

	purchases := sumActionCounts(row.Actions)
	purchaseValue := sumActionValues(row.ActionValues)

	record := &domain.DailyAdRecord{
		AdID:         row.AdID,
		AdName:       row.AdName,
		AccountID:    row.AccountID,
		AccountName:  row.AccountName,
		CampaignName: row.CampaignName,
		Date:         date,

		Spend:         spend,
		Impressions:   impressions,
		Clicks:        clicks,
		Reach:         reach,
		Frequency:     frequency,
		Purchases:     purchases,
		PurchaseValue: purchaseValue,

		Format: domain.FormatUnknown,
	}

	record.CTR = utils.RoundWithFourDecimalPlace(utils.SafeRatio(float64(clicks), float64(impressions)) * 100)
	record.CPM = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(spend, float64(impressions)) * 1000)
	record.ROAS = utils.RoundWithFourDecimalPlace(utils.SafeRatio(purchaseValue, spend))
	record.CPA = s.computeCPA(spend, purchases)

	return record, nil
}

// NormalizeAll normaliza um lote de linhas, descartando com warning as linhas
// inválidas em vez de abortar o lote
func (s *Service) NormalizeAll(rows []metadomain.InsightRow) []*domain.DailyAdRecord {
	records := make([]*domain.DailyAdRecord, 0, len(rows))

	for _, row := range rows {
		record, err := s.Normalize(row)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"ad_id": row.AdID,
				"date":  row.DateStart,
			}).Warn("normalize: linha de insights descartada")
			continue
		}
		records = append(records, record)
	}

	return records
}

// computeCPA calcula spend/purchases, zerado quando não há compras ou quando o
// resultado passa do teto de sanidade
func (s *Service) computeCPA(spend float64, purchases int) float64 {
	if purchases == 0 {
		return 0
	}

	cpa := spend / float64(purchases)
	if cpa > s.cpaSanityCeiling {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(cpa)
}

// sumActionCounts soma as contagens das ações de compra
func sumActionCounts(actions []metadomain.ActionEntry) int {
	total := 0
	for _, action := range actions {
		if _, ok := purchaseActionTypes[strings.ToLower(action.ActionType)]; !ok {
			continue
		}

		value, err := strconv.Atoi(action.Value)
		if err != nil {
			continue
		}
		total += value
	}
	return total
}

// sumActionValues soma os valores monetários das ações de compra
func sumActionValues(actionValues []metadomain.ActionEntry) float64 {
	total := 0.0
	for _, action := range actionValues {
		if _, ok := purchaseActionTypes[strings.ToLower(action.ActionType)]; !ok {
			continue
		}

		value, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			continue
		}
		total += value
	}
	return total
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
