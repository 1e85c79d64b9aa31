package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "info"
	defaultConfigDir     = ".shopkeeper"
	defaultPhoneRegion   = "US"
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	ConfigDir     string `mapstructure:"config_dir"`
	SessionPath   string `mapstructure:"session_path"`
	DataPath      string `mapstructure:"data_path"`
	PhoneRegion   string `mapstructure:"phone_region"`
	SyncInterval  time.Duration
	ProbeTimeout  time.Duration
	HTTPTimeout   time.Duration
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	// .env ищем рядом с местом запуска, затем уровнем выше
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	cfg, err := Load(envPath)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

func Load(envPath string) (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("ENABLE_TLS", false)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("PHONE_REGION", defaultPhoneRegion)
	v.SetDefault("SYNC_INTERVAL_SECONDS", 30)
	v.SetDefault("PROBE_TIMEOUT_SECONDS", 3)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 15)

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	dataPath := v.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, "data.db")
	}

	logFile := v.GetString("LOG_FILE")
	if logFile == "" {
		logFile = filepath.Join(configDir, "client.log")
	}

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		ServerAddress: v.GetString("SERVER_ADDRESS"),
		EnableTLS:     v.GetBool("ENABLE_TLS"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFile:       logFile,
		ConfigDir:     configDir,
		SessionPath:   filepath.Join(configDir, "session.json"),
		DataPath:      dataPath,
		PhoneRegion:   v.GetString("PHONE_REGION"),
		SyncInterval:  time.Duration(v.GetInt("SYNC_INTERVAL_SECONDS")) * time.Second,
		ProbeTimeout:  time.Duration(v.GetInt("PROBE_TIMEOUT_SECONDS")) * time.Second,
		HTTPTimeout:   time.Duration(v.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("sync_interval_seconds должен быть положительным")
	}
	if c.ProbeTimeout <= 0 || c.HTTPTimeout <= 0 {
		return fmt.Errorf("таймауты должны быть положительными")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
