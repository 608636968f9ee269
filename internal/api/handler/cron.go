package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/subscription-insights-api/internal/scheduler"
	"github.com/vfg2006/subscription-insights-api/pkg/apiErrors"
	"github.com/vfg2006/subscription-insights-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeInsightTimer = "insight-timer"
)

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	InsightTimerService *scheduler.InsightTimerService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado")
			return
		}

		switch cronType {
		case CronJobTypeInsightTimer:
			if services.InsightTimerService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Timer de insights não disponível")
				return
			}

			if !services.InsightTimerService.TriggerManualSync() {
				writeJSON(w, http.StatusConflict, map[string]any{
					"message": "Cron job já está em andamento",
					"type":    cronType,
				})
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: insight-timer")
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.InsightTimerService != nil {
			status[CronJobTypeInsightTimer] = services.InsightTimerService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	})
}
