package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/subscription-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/subscription-insights-api/infrastructure/migration"
	"github.com/vfg2006/subscription-insights-api/internal/config"
)

func main() {
	direction := flag.String("direction", "up", "Direção da migração (up|down)")
	statusOnly := flag.Bool("status", false, "Exibe o estado das migrações e encerra")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := run(conn, strings.ToLower(strings.TrimSpace(*direction)), *statusOnly); err != nil {
		logrus.WithError(err).Fatal("Falha ao executar migrações")
	}

	logrus.Info("Migrações executadas com sucesso")
}

func run(conn *postgres.Connection, direction string, statusOnly bool) error {
	switch {
	case statusOnly:
		return migration.Status(conn.DB)
	case direction == "up":
		return migration.Up(conn.DB)
	case direction == "down":
		return migration.Down(conn.DB)
	default:
		return fmt.Errorf("direção %q não suportada (use up ou down)", direction)
	}
}
