package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Google   GoogleConfig   `mapstructure:"google"`
	Invoice  InvoiceConfig  `mapstructure:"invoice"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type GoogleConfig struct {
	CalendarID   string        `mapstructure:"calendar_id"`
	TimeZone     string        `mapstructure:"timezone"`
	EventColorID string        `mapstructure:"event_color_id"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryCount   int           `mapstructure:"retry_count"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
}

type InvoiceConfig struct {
	Issuer  PartyConfig `mapstructure:"issuer"`
	BillTo  PartyConfig `mapstructure:"bill_to"`
	Service string      `mapstructure:"service"`
	VATNote string      `mapstructure:"vat_note"`
}

type PartyConfig struct {
	Name    string `mapstructure:"name"`
	Company string `mapstructure:"company"`
	Siret   string `mapstructure:"siret"`
	Address string `mapstructure:"address"`
	City    string `mapstructure:"city"`
	Phone   string `mapstructure:"phone"`
}

type StorageConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"access_key"`
	SecretKey string        `mapstructure:"secret_key"`
	Bucket    string        `mapstructure:"bucket"`
	Region    string        `mapstructure:"region"`
	UseSSL    bool          `mapstructure:"use_ssl"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Pretty  bool   `mapstructure:"pretty"`
	NoColor bool   `mapstructure:"no_color"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "10s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "invox_user")
	viper.SetDefault("database.password", "invox_password")
	viper.SetDefault("database.name", "invox_db")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")

	viper.SetDefault("google.calendar_id", "primary")
	viper.SetDefault("google.timezone", "Europe/Paris")
	viper.SetDefault("google.event_color_id", "11")
	viper.SetDefault("google.timeout", "30s")
	viper.SetDefault("google.retry_count", 3)
	viper.SetDefault("google.retry_delay", "100ms")

	viper.SetDefault("invoice.issuer.name", "Invox Tutoring")
	viper.SetDefault("invoice.issuer.siret", "00000000000000")
	viper.SetDefault("invoice.issuer.address", "1 Rue de la République")
	viper.SetDefault("invoice.issuer.city", "69001, Lyon")
	viper.SetDefault("invoice.issuer.phone", "00 00 00 00 00")
	viper.SetDefault("invoice.bill_to.name", "")
	viper.SetDefault("invoice.bill_to.company", "")
	viper.SetDefault("invoice.bill_to.address", "")
	viper.SetDefault("invoice.bill_to.city", "")
	viper.SetDefault("invoice.bill_to.phone", "")
	viper.SetDefault("invoice.service", "Cours particuliers")
	viper.SetDefault("invoice.vat_note", "TVA non applicable, art. 293 B du CGI")

	viper.SetDefault("storage.enabled", false)
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.access_key", "minioadmin")
	viper.SetDefault("storage.secret_key", "minioadmin")
	viper.SetDefault("storage.bucket", "invox-invoices")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.use_ssl", false)
	viper.SetDefault("storage.timeout", "30s")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", false)
	viper.SetDefault("logging.no_color", false)

	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"})
	viper.SetDefault("cors.exposed_headers", []string{"Link", "Content-Disposition"})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 300)
}
