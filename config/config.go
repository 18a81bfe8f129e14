package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Contact ContactConfig
	EmailJS EmailJSConfig
	SMTP    SMTPConfig
	Storage StorageConfig
	Admin   AdminConfig
	Diagram DiagramConfig
	Tracing TracingConfig
	UI      UIConfig
	App     AppConfig
}

type ServerConfig struct {
	Port        string
	AssetsDir   string
	CVPath      string
	CatalogFile string
	CORSOrigins []string
	SessionTTL  time.Duration
}

type ContactConfig struct {
	Provider  string // emailjs|smtp
	Timeout   time.Duration
	PerMinute float64
	Burst     int
}

type EmailJSConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

type StorageConfig struct {
	SQLitePath    string
	PrefsBackend  string // sqlite|redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Retention     time.Duration
}

type AdminConfig struct {
	Username string
	Password string
}

type DiagramConfig struct {
	MermaidBin string
}

type TracingConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

type UIConfig struct {
	PageSize           int
	WebBreakpoint      int
	TerminalBreakpoint int
}

type AppConfig struct {
	Environment string
	Version     string
}

func (a AppConfig) IsDevelopment() bool { return a.Environment == "development" }

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			AssetsDir:   getEnv("ASSETS_DIR", "./assets"),
			CVPath:      getEnv("CV_PATH", "assets/ADESU_CV.pdf"),
			CatalogFile: getEnv("CATALOG_FILE", ""),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
			SessionTTL:  getEnvAsDuration("SESSION_TTL", 2*time.Hour),
		},
		Contact: ContactConfig{
			Provider:  getEnv("CONTACT_PROVIDER", "emailjs"),
			Timeout:   getEnvAsDuration("CONTACT_TIMEOUT", 20*time.Second),
			PerMinute: float64(getEnvAsInt("CONTACT_PER_MINUTE", 10)),
			Burst:     getEnvAsInt("CONTACT_BURST", 5),
		},
		EmailJS: EmailJSConfig{
			Endpoint:   getEnv("EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
			ServiceID:  getEnv("EMAILJS_SERVICE_ID", "service_petyfkl"),
			TemplateID: getEnv("EMAILJS_TEMPLATE_ID", "template_vjwqkum"),
			PublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
			PrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port: getEnv("SMTP_PORT", "587"),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASS", ""),
			To:   getEnv("TO_EMAIL", "k.francoisadesu@gmail.com"),
		},
		Storage: StorageConfig{
			SQLitePath:    getEnv("SQLITE_PATH", "data/portfolio.db"),
			PrefsBackend:  getEnv("PREFS_BACKEND", "sqlite"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			Retention:     getEnvAsDuration("VISITOR_RETENTION", 365*24*time.Hour),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Diagram: DiagramConfig{
			MermaidBin: getEnv("MERMAID_BIN", "mmdc"),
		},
		Tracing: TracingConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "portfolio"),
		},
		UI: UIConfig{
			PageSize:           getEnvAsInt("PAGE_SIZE", 6),
			WebBreakpoint:      getEnvAsInt("SIDEBAR_BREAKPOINT_PX", 768),
			TerminalBreakpoint: getEnvAsInt("SIDEBAR_BREAKPOINT_COLS", 100),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.Contact.Provider {
	case "emailjs", "smtp":
	default:
		return fmt.Errorf("CONTACT_PROVIDER must be emailjs or smtp, got %q", c.Contact.Provider)
	}
	switch c.Storage.PrefsBackend {
	case "sqlite", "redis":
	default:
		return fmt.Errorf("PREFS_BACKEND must be sqlite or redis, got %q", c.Storage.PrefsBackend)
	}
	if c.Storage.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
