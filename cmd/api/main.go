package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/subscription-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai"
	"github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/subscription-insights-api/infrastructure/repository"
	"github.com/vfg2006/subscription-insights-api/internal/api"
	"github.com/vfg2006/subscription-insights-api/internal/config"
	"github.com/vfg2006/subscription-insights-api/internal/scheduler"
	"github.com/vfg2006/subscription-insights-api/internal/usecases/insighting"
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
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	// Configuração ausente não impede a subida: a falha aparece na invocação
	for _, warning := range cfg.Warnings() {
		logrus.Warn(warning)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Conexão aberta e fechada a cada invocação
	connector := postgres.NewConnector(cfg.Database)
	aiInsightRepo := repository.NewAIInsightRepository(connector)
	timerRunRepo := repository.NewTimerRunRepository(connector)

	openaiClient := openaiclient.NewClient(cfg)
	openaiIntegrator := openai.New(cfg, openaiClient)

	insightService := insighting.NewService(openaiIntegrator, aiInsightRepo)

	insightTimerService, err := scheduler.NewInsightTimerService(cfg, timerRunRepo)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o timer de insights")
	}

	if err := insightTimerService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o timer de insights")
	} else {
		logrus.Info("Timer de insights iniciado com sucesso")
	}

	server := api.New(cfg, insightService, insightTimerService)

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
