package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultMigrations = "file://migrations"
	defaultRegion     = "US"
)

type Config struct {
	Env    string
	DB     db
	Server server
	Logger logger
}

type db struct {
	DatabaseURI string `mapstructure:"database_uri"`
	Migrations  string `mapstructure:"migrations_path"`
}

type server struct {
	RunAddress string `mapstructure:"run_address"`
	// PhoneRegion - регион для разбора телефонов покупателей без кода страны
	PhoneRegion string `mapstructure:"phone_region"`
}

type logger struct {
	LogLevel string `mapstructure:"log_level"`
}

// MustLoad читает конфигурацию сервера из .env и переменных окружения
func MustLoad() *Config {
	cfg, err := Load(envPath)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load - то же, что MustLoad, но с ошибкой вместо паники
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("RUN_ADDRESS", defaultRunAddress)
	v.SetDefault("MIGRATIONS_PATH", defaultMigrations)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PHONE_REGION", defaultRegion)

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		DB: db{
			DatabaseURI: v.GetString("DATABASE_URI"),
			Migrations:  v.GetString("MIGRATIONS_PATH"),
		},
		Server: server{
			RunAddress:  v.GetString("RUN_ADDRESS"),
			PhoneRegion: v.GetString("PHONE_REGION"),
		},
		Logger: logger{LogLevel: v.GetString("LOG_LEVEL")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DB.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI не может быть пустым")
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("неизвестное окружение APP_ENV=%q", c.Env)
	}
	return nil
}
