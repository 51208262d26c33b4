package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-pipeline/infrastructure/artifact"
	"github.com/vfg2006/insights-pipeline/infrastructure/crypto"
	"github.com/vfg2006/insights-pipeline/infrastructure/database/postgres"
	"github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta"
	"github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/insights-pipeline/infrastructure/repository"
	"github.com/vfg2006/insights-pipeline/internal/api"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/scheduler"
	"github.com/vfg2006/insights-pipeline/internal/usecases/authenticating"
	"github.com/vfg2006/insights-pipeline/internal/usecases/diagnosing"
	"github.com/vfg2006/insights-pipeline/internal/usecases/normalizing"
	"github.com/vfg2006/insights-pipeline/internal/usecases/refreshing"
	"github.com/vfg2006/insights-pipeline/pkg/log"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	log.SetupFileRotation(log.RotationConfig{
		Filename:   cfg.App.LogFile,
		MaxSizeMB:  cfg.App.LogMaxSizeMB,
		MaxBackups: cfg.App.LogMaxBackups,
		MaxAgeDays: cfg.App.LogMaxAgeDays,
		Compress:   true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	cipher, err := crypto.NewTokenCipher(cfg.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a cifra de tokens")
	}

	accountRepo := repository.NewAccountRepository(pgConn, cipher)

	authenticator := authenticating.NewService(cfg)

	tokenManager := metaclient.NewTokenManager(cfg)
	go tokenManager.StartAutoRefresh()
	defer tokenManager.StopAutoRefresh()

	metaClient := metaclient.NewClient(cfg, tokenManager)
	metaIntegrator := meta.New(cfg, metaClient)

	store := artifact.NewStore(cfg.Artifact)
	normalizer := normalizing.NewService(cfg)
	diagnoser := diagnosing.NewService(cfg.Pipeline.TruncationThreshold)

	refresher := refreshing.NewService(cfg, metaIntegrator, normalizer, store, accountRepo)

	refreshSyncService := scheduler.NewRefreshSyncService(refresher, cfg)
	if err := refreshSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de refresh de insights")
	} else {
		logrus.Info("Agendador de refresh de insights iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		accountRepo,
		store,
		diagnoser,
		authenticator,
		refreshSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
