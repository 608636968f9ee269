package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	OpenAI       OpenAI       `mapstructure:",squash"`
	InsightTimer InsightTimer `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host               string   `mapstructure:"host"`
	Port               string   `mapstructure:"port"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	ConnectionString string `mapstructure:"sql_connection_string"`
}

type OpenAI struct {
	APIKey         string        `mapstructure:"openai_api_key"`
	Model          string        `mapstructure:"openai_model"`
	BaseURL        string        `mapstructure:"openai_base_url"`
	InsightTimeout time.Duration `mapstructure:"openai_insight_timeout"`
	ProbeTimeout   time.Duration `mapstructure:"openai_probe_timeout"`
}

type InsightTimer struct {
	CronSchedule     string        `mapstructure:"insight_timer_cron"`
	Enabled          bool          `mapstructure:"insight_timer_enabled"`
	PastDueTolerance time.Duration `mapstructure:"insight_timer_past_due_tolerance"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	// Sem default: a ausência é erro de configuração no momento do uso
	v.SetDefault("SQL_CONNECTION_STRING", "")
	v.SetDefault("OPENAI_API_KEY", "")

	v.SetDefault("OPENAI_MODEL", "gpt-4.1-mini")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_INSIGHT_TIMEOUT", "60s")
	v.SetDefault("OPENAI_PROBE_TIMEOUT", "30s")

	v.SetDefault("INSIGHT_TIMER_CRON", "0 3 * * *") // Todos os dias às 3h (UTC)
	v.SetDefault("INSIGHT_TIMER_ENABLED", true)
	v.SetDefault("INSIGHT_TIMER_PAST_DUE_TOLERANCE", "1m")

	v.SetDefault("AUTH_SECRET", "")

	v.SetDefault("LOG_LEVEL", "info")
}

// NewConfig carrega a configuração uma única vez a partir do ambiente (e de um .env opcional)
func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	return Load(viper.New())
}

// Load lê as variáveis de ambiente através da instância de viper informada
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	SetDefaults(v)

	// Registra as chaves para que o AutomaticEnv as encontre no Unmarshal
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}
	v.AutomaticEnv()

	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.OpenAI.BaseURL = strings.TrimRight(config.OpenAI.BaseURL, "/")
	config.Server.CorsAllowedOrigins = compact(config.Server.CorsAllowedOrigins)

	return config, nil
}

// Warnings lista problemas de configuração que só falham quando a operação é executada
func (c *Config) Warnings() []string {
	var warnings []string
	if c.OpenAI.APIKey == "" {
		warnings = append(warnings, "OPENAI_API_KEY não configurada: a geração de insights irá falhar")
	}
	if c.Database.ConnectionString == "" {
		warnings = append(warnings, "SQL_CONNECTION_STRING não configurada: a persistência de insights irá falhar")
	}
	return warnings
}

func compact(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			result = append(result, value)
		}
	}
	return result
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
