package handler

import (
	"net/http"

	"github.com/vfg2006/subscription-insights-api/internal/api/handler/router"
	"github.com/vfg2006/subscription-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/subscription-insights-api/pkg/middleware"
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

// Insights expõe a geração anônima de insights, o probe e a consulta
func Insights(service insighting.Generator) []router.Route {
	return []router.Route{
		{
			Path:    "/insights/generate",
			Method:  http.MethodGet,
			Handler: GenerateInsights(service),
		},
		{
			Path:    "/insights/generate",
			Method:  http.MethodPost,
			Handler: GenerateInsights(service),
		},
		{
			Path:    "/insights/probe",
			Method:  http.MethodGet,
			Handler: ProbeInsights(service),
		},
		{
			Path:    "/insights",
			Method:  http.MethodGet,
			Handler: GetInsight(service),
		},
	}
}

func CronJobs(services CronJobServices, authSecret string) []router.Route {
	return []router.Route{
		{
			Path:        "/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(authSecret)},
		},
		{
			Path:        "/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(authSecret)},
		},
	}
}
