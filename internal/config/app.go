package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Rates struct {
	Currencies      []string `mapstructure:"currencies"`
	Endpoints       []string `mapstructure:"endpoints"`
	ChartWindowDays int      `mapstructure:"chart_window_days"`
}

type Storage struct {
	Backend  string `mapstructure:"backend"` // "file" or "postgres"
	FilePath string `mapstructure:"file_path"`
}

type Scheduler struct {
	Cron string `mapstructure:"cron"`
}

type Telegram struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	ChatID  string `mapstructure:"chat_id"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Rates      Rates      `mapstructure:"rates"`
	Storage    Storage    `mapstructure:"storage"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Telegram   Telegram   `mapstructure:"telegram"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("http_client.timeout_seconds", 10)
	viper.SetDefault("rates.currencies", []string{"USD", "EUR"})
	viper.SetDefault("rates.endpoints", []string{"https://api.nbrb.by", "https://www.nbrb.by/api"})
	viper.SetDefault("rates.chart_window_days", 30)
	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.file_path", "data/rates.json")
	viper.SetDefault("scheduler.cron", "0 11 * * 1-5")
	viper.SetDefault("db_server.max_conns", 10)

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = viper.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// telegram secrets
	_ = viper.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	_ = viper.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
