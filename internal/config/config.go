package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// API agrupa la configuración necesaria para correr el servidor del catálogo.
type API struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	LogMode        string        `envconfig:"LOG_MODE" default:"development"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// Fotos subidas desde el panel.
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	PublicBaseURL  string `envconfig:"PUBLIC_BASE_URL"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`

	// Reenvío de solicitudes del formulario público.
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `envconfig:"TELEGRAM_CHAT_ID"`
}

// Admin es la configuración de la herramienta de administración (cmd/admin).
type Admin struct {
	CatalogURL       string        `envconfig:"CATALOG_API_URL" default:"http://localhost:8080/products"`
	UploadURL        string        `envconfig:"UPLOAD_URL" default:"http://localhost:8080/upload"`
	OperationTimeout time.Duration `envconfig:"OPERATION_TIMEOUT" default:"30s"`
	LogMode          string        `envconfig:"LOG_MODE" default:"production"`
}

// LoadDotEnv carga un archivo .env si existe. Que no exista no es un error.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadAPI lee variables de entorno y valida lo mínimo indispensable.
func LoadAPI() (API, error) {
	var cfg API
	if err := envconfig.Process("", &cfg); err != nil {
		return API{}, fmt.Errorf("process env: %w", err)
	}

	// envconfig no aplica el default si la variable existe vacía.
	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	// Normalizamos por si alguien manda ":8080"
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")

	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.DatabaseURL == "" {
		return API{}, fmt.Errorf("missing required env var: DATABASE_URL")
	}

	cfg.UploadDir = strings.TrimSpace(cfg.UploadDir)
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")

	if cfg.MaxUploadBytes <= 0 {
		return API{}, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	return cfg, nil
}

// TelegramEnabled indica si hay credenciales para reenviar solicitudes.
func (cfg API) TelegramEnabled() bool {
	return cfg.TelegramBotToken != "" && cfg.TelegramChatID != ""
}

// LoadAdmin lee la configuración del cliente de administración.
func LoadAdmin() (Admin, error) {
	var cfg Admin
	if err := envconfig.Process("", &cfg); err != nil {
		return Admin{}, fmt.Errorf("process env: %w", err)
	}

	catalogURL, err := normalizeURL("CATALOG_API_URL", cfg.CatalogURL)
	if err != nil {
		return Admin{}, err
	}
	cfg.CatalogURL = catalogURL

	uploadURL, err := normalizeURL("UPLOAD_URL", cfg.UploadURL)
	if err != nil {
		return Admin{}, err
	}
	cfg.UploadURL = uploadURL

	if cfg.OperationTimeout <= 0 {
		return Admin{}, fmt.Errorf("OPERATION_TIMEOUT must be positive")
	}

	return cfg, nil
}

func normalizeURL(key, raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%s must be an absolute http(s) URL", key)
	}
	return raw, nil
}
