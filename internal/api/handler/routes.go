package handler

import (
	"net/http"

	"github.com/vfg2006/insights-pipeline/infrastructure/artifact"
	"github.com/vfg2006/insights-pipeline/infrastructure/repository"
	"github.com/vfg2006/insights-pipeline/internal/api/handler/router"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/usecases/diagnosing"
	"github.com/vfg2006/insights-pipeline/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func AdAccounts(accountRepo repository.AccountRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: AdAccountList(accountRepo),
		},
		{
			Path:        "/v1/accounts/:id/enable",
			Method:      http.MethodPost,
			Handler:     EnableAdAccount(accountRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Insights(
	cfg *config.Config,
	accountRepo repository.AccountRepository,
	store *artifact.Store,
	diagnoser *diagnosing.Service,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/insights",
			Method:  http.MethodGet,
			Handler: GetWindowInsights(cfg, accountRepo, store),
		},
		{
			Path:    "/v1/accounts/:id/diagnostics",
			Method:  http.MethodGet,
			Handler: GetDiagnostics(cfg, accountRepo, store, diagnoser),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/refresh",
			Method:      http.MethodPost,
			Handler:     RunRefreshJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
