package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server    Server    `toml:"server"`
	Database  Database  `toml:"database"`
	Logs      Logs      `toml:"logs"`
	Metrics   Metrics   `toml:"metrics"`
	Salon     Salon     `toml:"salon"`
	Admin     Admin     `toml:"admin"`
	SMS       SMS       `toml:"sms"`
	Images    Images    `toml:"images"`
	Redis     Redis     `toml:"redis"`
	RateLimit RateLimit `toml:"ratelimit"`
	Reminders Reminders `toml:"reminders"`
}

// Server настройки HTTP-сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки Prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Salon бизнес-настройки салона: часовой пояс, сетка слотов, окно бронирования
type Salon struct {
	// Timezone фиксированный часовой пояс салона (IANA),
	// например "America/Denver"
	Timezone string `toml:"timezone"`

	// OpenTime время первого бронируемого слота, "HH:MM"
	OpenTime string `toml:"open_time"`

	// LastStartTime время последнего бронируемого слота, "HH:MM"
	LastStartTime string `toml:"last_start_time"`

	// PublicLastStartTime последний слот, показываемый в публичной форме
	// записи; используется только для отображения, не для расчетов
	PublicLastStartTime string `toml:"public_last_start_time"`

	// MinNoticeMinutes минимальное время до начала слота при записи
	// на сегодня
	MinNoticeMinutes int `toml:"min_notice_minutes"`

	// WindowDays длина скользящего окна календаря в днях
	WindowDays int `toml:"window_days"`
}

// Location загружает локацию часового пояса салона
func (s Salon) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Open возвращает время открытия как TimeString
func (s Salon) Open() (types.TimeString, error) {
	return types.NewTimeStringFromString(s.OpenTime)
}

// LastStart возвращает время последнего слота как TimeString
func (s Salon) LastStart() (types.TimeString, error) {
	return types.NewTimeStringFromString(s.LastStartTime)
}

// PublicLastStart возвращает последний публично показываемый слот
func (s Salon) PublicLastStart() (types.TimeString, error) {
	return types.NewTimeStringFromString(s.PublicLastStartTime)
}

// Admin настройки доступа оператора
type Admin struct {
	Token string `toml:"token"`
}

// SMS настройки SMS-шлюза
type SMS struct {
	URL        string `toml:"url"`
	APIKey     string `toml:"api_key"`
	FromNumber string `toml:"from_number"`
	Timeout    int    `toml:"timeout"`
}

// Images настройки сервиса хранения изображений
type Images struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// Redis настройки Redis (rate limiter)
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimit настройки ограничения частоты создания бронирований
type RateLimit struct {
	Enabled       bool `toml:"enabled"`
	MaxPerWindow  int  `toml:"max_per_window"`
	WindowMinutes int  `toml:"window_minutes"`
}

// Reminders настройки рассылки SMS-напоминаний
type Reminders struct {
	Enabled bool `toml:"enabled"`
	// Schedule cron-выражение запуска рассылки, например "0 18 * * *"
	Schedule string `toml:"schedule"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Salon.Timezone == "" {
		return fmt.Errorf("config: salon.timezone is required")
	}
	if _, err := c.Salon.Location(); err != nil {
		return fmt.Errorf("config: salon.timezone: %w", err)
	}
	times := []struct {
		name  string
		value string
	}{
		{"salon.open_time", c.Salon.OpenTime},
		{"salon.last_start_time", c.Salon.LastStartTime},
		{"salon.public_last_start_time", c.Salon.PublicLastStartTime},
	}
	for _, t := range times {
		if _, err := types.NewTimeStringFromString(t.value); err != nil {
			return fmt.Errorf("config: %s: %w", t.name, err)
		}
	}
	if c.Salon.MinNoticeMinutes < 0 {
		return fmt.Errorf("config: salon.min_notice_minutes must not be negative")
	}
	if c.Salon.WindowDays <= 0 {
		return fmt.Errorf("config: salon.window_days must be positive")
	}
	return nil
}
