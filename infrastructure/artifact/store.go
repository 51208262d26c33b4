package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const baselineFileName = "baseline.json"

// pipelineVersion marca o shape dos artefatos gerados. Incrementar quando o
// envelope mudar de forma incompatível para leitores
const pipelineVersion = "1"

// Store persiste os artefatos JSON de baseline e de janelas em disco, um
// diretório por conta dentro do diretório do tenant
type Store struct {
	rootDir string
}

func NewStore(cfg config.Artifact) *Store {
	return &Store{rootDir: cfg.RootDir}
}

func (s *Store) accountDir(tenantID, accountID string) string {
	return filepath.Join(s.rootDir, tenantID, accountID)
}

func windowFileName(windowDays int) string {
	return fmt.Sprintf("window_%dd.json", windowDays)
}

// LoadBaseline carrega o baseline da conta. Retorna (nil, nil) quando o
// artefato ainda não existe
func (s *Store) LoadBaseline(tenantID, accountID string) (*domain.BaselineArtifact, error) {
	path := filepath.Join(s.accountDir(tenantID, accountID), baselineFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao ler artefato de baseline")
	}

	var baseline domain.BaselineArtifact
	if err := json.Unmarshal(data, &baseline); err != nil {
		return nil, errors.Wrap(err, "artefato de baseline corrompido")
	}

	return &baseline, nil
}

// SaveBaseline persiste o baseline da conta de forma atômica
func (s *Store) SaveBaseline(tenantID, accountID string, baseline *domain.BaselineArtifact) error {
	dir := s.accountDir(tenantID, accountID)
	return s.writeArtifact(dir, baselineFileName, baseline)
}

// MergeBaseline sobrescreve no baseline existente os registros do refresh
// pela chave anúncio+dia e persiste o resultado. Dias reprocessados substituem
// o valor anterior; dias fora do intervalo do refresh permanecem intactos
func (s *Store) MergeBaseline(
	tenantID, accountID string,
	records []*domain.DailyAdRecord,
	metadata domain.ArtifactMetadata,
) (*domain.BaselineArtifact, error) {
	existing, err := s.LoadBaseline(tenantID, accountID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*domain.DailyAdRecord)
	if existing != nil {
		for _, record := range existing.DailyAds {
			merged[record.Key()] = record
		}
	}
	for _, record := range records {
		merged[record.Key()] = record
	}

	dailyAds := make([]*domain.DailyAdRecord, 0, len(merged))
	for _, record := range merged {
		dailyAds = append(dailyAds, record)
	}

	// Ordenação estável para diffs de artefato serem legíveis
	sort.Slice(dailyAds, func(i, j int) bool {
		return dailyAds[i].Key() < dailyAds[j].Key()
	})

	metadata.PipelineVersion = pipelineVersion
	metadata.RowCount = len(dailyAds)

	baseline := &domain.BaselineArtifact{
		Metadata: metadata,
		DailyAds: dailyAds,
	}

	if err := s.SaveBaseline(tenantID, accountID, baseline); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"tenant_id":  tenantID,
		"merged":     len(records),
		"total":      len(dailyAds),
	}).Debug("artifacts: baseline mesclado e salvo")

	return baseline, nil
}

// LoadWindow carrega o artefato de uma janela. Retorna (nil, nil) quando o
// artefato ainda não existe
func (s *Store) LoadWindow(tenantID, accountID string, windowDays int) (*domain.WindowArtifact, error) {
	path := filepath.Join(s.accountDir(tenantID, accountID), windowFileName(windowDays))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao ler artefato de janela")
	}

	var window domain.WindowArtifact
	if err := json.Unmarshal(data, &window); err != nil {
		return nil, errors.Wrap(err, "artefato de janela corrompido")
	}

	return &window, nil
}

// SaveWindow persiste o artefato de uma janela de forma atômica
func (s *Store) SaveWindow(tenantID, accountID string, window *domain.WindowArtifact) error {
	window.Metadata.PipelineVersion = pipelineVersion
	dir := s.accountDir(tenantID, accountID)
	return s.writeArtifact(dir, windowFileName(window.Metadata.WindowDays), window)
}

// writeArtifact serializa e grava o artefato em um arquivo temporário no
// mesmo diretório e o renomeia por cima do destino, para leitores nunca
// observarem um artefato parcialmente escrito
func (s *Store) writeArtifact(dir, fileName string, payload interface{}) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "erro ao criar diretório de artefatos")
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.Wrap(err, "erro ao serializar artefato")
	}

	tmp, err := os.CreateTemp(dir, fileName+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "erro ao criar arquivo temporário")
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "erro ao gravar artefato")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "erro ao fechar arquivo temporário")
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, fileName)); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "erro ao publicar artefato")
	}

	return nil
}
