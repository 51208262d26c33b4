package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/insights-pipeline/infrastructure/artifact"
	"github.com/vfg2006/insights-pipeline/infrastructure/crypto"
	"github.com/vfg2006/insights-pipeline/infrastructure/database/postgres"
	"github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta"
	"github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/insights-pipeline/infrastructure/repository"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/internal/usecases/aggregating"
	"github.com/vfg2006/insights-pipeline/internal/usecases/diagnosing"
	"github.com/vfg2006/insights-pipeline/internal/usecases/normalizing"
	"github.com/vfg2006/insights-pipeline/internal/usecases/refreshing"
	"github.com/vfg2006/insights-pipeline/pkg/utils"
)

// runtimeDeps agrupa as dependências compartilhadas pelos comandos da CLI
type runtimeDeps struct {
	cfg         *config.Config
	conn        *postgres.Connection
	accountRepo repository.AccountRepository
	store       *artifact.Store
	refresher   refreshing.Refresher
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	root := &cobra.Command{
		Use:   "pipeline",
		Short: "Operações do pipeline de insights de anúncios",
	}

	root.AddCommand(newRefreshCmd(), newAggregateCmd(), newDiffCmd())

	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// setup carrega a configuração e conecta as dependências da CLI
func setup(ctx context.Context) (*runtimeDeps, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar configuração")
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao conectar ao PostgreSQL")
	}

	cipher, err := crypto.NewTokenCipher(cfg.SecretKey)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "erro ao inicializar a cifra de tokens")
	}

	accountRepo := repository.NewAccountRepository(conn, cipher)

	tokenManager := metaclient.NewTokenManager(cfg)
	metaClient := metaclient.NewClient(cfg, tokenManager)
	metaIntegrator := meta.New(cfg, metaClient)

	store := artifact.NewStore(cfg.Artifact)
	normalizer := normalizing.NewService(cfg)
	refresher := refreshing.NewService(cfg, metaIntegrator, normalizer, store, accountRepo)

	return &runtimeDeps{
		cfg:         cfg,
		conn:        conn,
		accountRepo: accountRepo,
		store:       store,
		refresher:   refresher,
	}, nil
}

func (d *runtimeDeps) close() {
	if d.conn != nil {
		d.conn.Close()
	}
}

// resolveAccount busca a conta do tenant pelo ID externo informado na CLI
func (d *runtimeDeps) resolveAccount(tenantID, externalID string) (*domain.AdAccount, error) {
	account, err := d.accountRepo.GetAccountByExternalID(tenantID, externalID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar conta")
	}
	if account == nil {
		return nil, errors.Errorf("conta %s não encontrada no tenant %s", externalID, tenantID)
	}
	return account, nil
}

// parseWindow converte o intervalo dos flags em [since, until], ambos
// truncados para o dia. Sem --since/--until, usa lookback terminando ontem
func parseWindow(since, until string, lookbackDays int) (time.Time, time.Time, error) {
	if since != "" || until != "" {
		start, err := time.Parse(time.DateOnly, since)
		if err != nil {
			return time.Time{}, time.Time{}, errors.Wrap(err, "flag --since inválida")
		}
		end, err := time.Parse(time.DateOnly, until)
		if err != nil {
			return time.Time{}, time.Time{}, errors.Wrap(err, "flag --until inválida")
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, errors.New("--until não pode ser anterior a --since")
		}
		return start, end, nil
	}

	if lookbackDays <= 0 {
		lookbackDays = 7
	}

	end := utils.TruncateToDay(time.Now().AddDate(0, 0, -1))
	start := end.AddDate(0, 0, -(lookbackDays - 1))
	return start, end, nil
}

func newRefreshCmd() *cobra.Command {
	var (
		tenantID   string
		externalID string
		since      string
		until      string
		lookback   int
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Busca insights do Meta e atualiza os artefatos de baseline e janelas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			deps, err := setup(ctx)
			if err != nil {
				return err
			}
			defer deps.close()

			if tenantID == "" {
				tenantID = deps.cfg.App.TenantID
			}

			start, end, err := parseWindow(since, until, lookback)
			if err != nil {
				return err
			}

			if externalID != "" {
				account, err := deps.resolveAccount(tenantID, externalID)
				if err != nil {
					return err
				}

				result, err := deps.refresher.RefreshAccount(ctx, account, start, end)
				if err != nil {
					return errors.Wrapf(err, "refresh da conta %s falhou", externalID)
				}

				cmd.Println(utils.PrettyJson(result))
				return nil
			}

			summary, err := deps.refresher.RefreshAll(ctx, tenantID, start, end)
			if err != nil {
				return errors.Wrap(err, "refresh do tenant falhou")
			}

			cmd.Println(utils.PrettyJson(summary))

			if summary.Failed > 0 {
				return errors.Errorf("%d conta(s) falharam no refresh", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant das contas (padrão: tenant configurado)")
	cmd.Flags().StringVar(&externalID, "account", "", "ID externo de uma conta específica (padrão: todas as contas ativas)")
	cmd.Flags().StringVar(&since, "since", "", "Data inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Data final (YYYY-MM-DD)")
	cmd.Flags().IntVar(&lookback, "lookback", 0, "Dias retroativos terminando ontem, quando --since/--until não são informados")

	return cmd
}

func newAggregateCmd() *cobra.Command {
	var (
		tenantID   string
		externalID string
		reference  string
		windows    []int
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Recalcula os artefatos de janela a partir do baseline persistido",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			deps, err := setup(ctx)
			if err != nil {
				return err
			}
			defer deps.close()

			if tenantID == "" {
				tenantID = deps.cfg.App.TenantID
			}
			if externalID == "" {
				return errors.New("flag --account é obrigatória")
			}

			account, err := deps.resolveAccount(tenantID, externalID)
			if err != nil {
				return err
			}

			referenceDate := utils.TruncateToDay(time.Now().AddDate(0, 0, -1))
			if reference != "" {
				referenceDate, err = time.Parse(time.DateOnly, reference)
				if err != nil {
					return errors.Wrap(err, "flag --reference inválida")
				}
			}

			baseline, err := deps.store.LoadBaseline(account.TenantID, account.ID)
			if err != nil {
				return errors.Wrap(err, "erro ao carregar baseline")
			}
			if baseline == nil {
				return errors.Errorf("conta %s ainda não possui baseline; execute o refresh primeiro", externalID)
			}

			if len(windows) == 0 {
				windows = deps.cfg.Pipeline.WindowsDays
			}

			for _, windowDays := range windows {
				ads := aggregating.Aggregate(
					baseline.DailyAds,
					windowDays,
					referenceDate,
					deps.cfg.Pipeline.CPASanityCeiling,
				)

				window := &domain.WindowArtifact{
					Metadata: domain.ArtifactMetadata{
						GeneratedAt:   time.Now(),
						ReferenceDate: referenceDate.Format(time.DateOnly),
						WindowDays:    windowDays,
						StartDate:     referenceDate.AddDate(0, 0, -(windowDays - 1)).Format(time.DateOnly),
						EndDate:       referenceDate.Format(time.DateOnly),
						RowCount:      len(ads),
						Truncated:     baseline.Metadata.Truncated,
					},
					Ads: ads,
				}

				if err := deps.store.SaveWindow(account.TenantID, account.ID, window); err != nil {
					return errors.Wrapf(err, "erro ao salvar janela de %d dias", windowDays)
				}

				cmd.Printf("Janela de %d dias recalculada: %d anúncios\n", windowDays, len(ads))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant da conta (padrão: tenant configurado)")
	cmd.Flags().StringVar(&externalID, "account", "", "ID externo da conta")
	cmd.Flags().StringVar(&reference, "reference", "", "Data de referência da janela (YYYY-MM-DD, padrão: ontem)")
	cmd.Flags().IntSliceVar(&windows, "window", nil, "Janelas em dias a recalcular (padrão: janelas configuradas)")

	return cmd
}

func newDiffCmd() *cobra.Command {
	var (
		tenantID   string
		externalID string
		windowA    int
		windowB    int
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compara duas janelas agregadas e aponta divergências",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			deps, err := setup(ctx)
			if err != nil {
				return err
			}
			defer deps.close()

			if tenantID == "" {
				tenantID = deps.cfg.App.TenantID
			}
			if externalID == "" {
				return errors.New("flag --account é obrigatória")
			}
			if windowA <= 0 || windowB <= 0 {
				return errors.New("flags --windowA e --windowB são obrigatórias")
			}

			account, err := deps.resolveAccount(tenantID, externalID)
			if err != nil {
				return err
			}

			artifactA, err := deps.store.LoadWindow(account.TenantID, account.ID, windowA)
			if err != nil {
				return errors.Wrapf(err, "erro ao carregar janela de %d dias", windowA)
			}
			artifactB, err := deps.store.LoadWindow(account.TenantID, account.ID, windowB)
			if err != nil {
				return errors.Wrapf(err, "erro ao carregar janela de %d dias", windowB)
			}
			if artifactA == nil || artifactB == nil {
				return errors.New("uma das janelas ainda não foi gerada; execute o refresh ou o aggregate primeiro")
			}

			diagnoser := diagnosing.NewService(deps.cfg.Pipeline.TruncationThreshold)
			report := diagnoser.Diff(artifactA.Ads, artifactB.Ads, windowA, windowB)

			cmd.Println(utils.PrettyJson(report))

			if report.HasFindings() {
				cmd.Println("Divergências encontradas entre as janelas")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant da conta (padrão: tenant configurado)")
	cmd.Flags().StringVar(&externalID, "account", "", "ID externo da conta")
	cmd.Flags().IntVar(&windowA, "windowA", 0, "Janela base em dias")
	cmd.Flags().IntVar(&windowB, "windowB", 0, "Janela comparada em dias")

	return cmd
}
