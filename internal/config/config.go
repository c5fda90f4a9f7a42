package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Model sources.
const (
	ModelSourceBuiltin   = "builtin"
	ModelSourceFile      = "file"
	ModelSourceConfigMap = "configmap"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Database   DatabaseConfig
	Model      ModelConfig
	Kubernetes KubernetesConfig
	History    HistoryConfig
	Metrics    MetricsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type ModelConfig struct {
	Source string
	File   string
}

type KubernetesConfig struct {
	InCluster      bool
	KubeConfigPath string
	Namespace      string
	ConfigMapName  string
	ConfigMapKey   string
}

type HistoryConfig struct {
	Enabled    bool
	MaxRecords int
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "nomogram")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_NAME", "nomogram")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("MODEL_SOURCE", ModelSourceBuiltin)
	v.SetDefault("MODEL_FILE", "")

	v.SetDefault("KUBERNETES_IN_CLUSTER", false)
	v.SetDefault("KUBERNETES_KUBECONFIG", "")
	v.SetDefault("KUBERNETES_NAMESPACE", "default")
	v.SetDefault("KUBERNETES_CONFIGMAP_NAME", "nomogram-model")
	v.SetDefault("KUBERNETES_CONFIGMAP_KEY", "model.yaml")

	v.SetDefault("HISTORY_ENABLED", true)
	v.SetDefault("HISTORY_MAX_RECORDS", 1000)

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
		Model: ModelConfig{
			Source: v.GetString("MODEL_SOURCE"),
			File:   v.GetString("MODEL_FILE"),
		},
		Kubernetes: KubernetesConfig{
			InCluster:      v.GetBool("KUBERNETES_IN_CLUSTER"),
			KubeConfigPath: v.GetString("KUBERNETES_KUBECONFIG"),
			Namespace:      v.GetString("KUBERNETES_NAMESPACE"),
			ConfigMapName:  v.GetString("KUBERNETES_CONFIGMAP_NAME"),
			ConfigMapKey:   v.GetString("KUBERNETES_CONFIGMAP_KEY"),
		},
		History: HistoryConfig{
			Enabled:    v.GetBool("HISTORY_ENABLED"),
			MaxRecords: v.GetInt("HISTORY_MAX_RECORDS"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
	}

	switch cfg.Model.Source {
	case ModelSourceBuiltin, ModelSourceConfigMap:
	case ModelSourceFile:
		if cfg.Model.File == "" {
			return nil, fmt.Errorf("MODEL_FILE is required when MODEL_SOURCE=%s", ModelSourceFile)
		}
	default:
		return nil, fmt.Errorf("unknown MODEL_SOURCE %q", cfg.Model.Source)
	}

	return cfg, nil
}
