package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Posting strategies understood by the ledger service.
const (
	StrategyRPC = "rpc"
	StrategyTx  = "tx"
)

type LedgerConfig struct {
	PostingStrategy        string
	PlaceholderDescription string
	CurrencyMarkers        []string
	IdempotencyTTL         time.Duration
	MaxDescriptionLength   int
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Init wires the .env file and environment variables into viper.
// Missing .env is not an error; defaults and the environment still apply.
func Init() error {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	bindings := map[string]string{
		"database.host":         "DATABASE_HOST",
		"database.port":         "DATABASE_PORT",
		"database.user":         "DATABASE_USER",
		"database.password":     "DATABASE_PASSWORD",
		"database.name":         "DATABASE_NAME",
		"database.ssl_mode":     "DATABASE_SSL_MODE",
		"database.apply_schema": "DATABASE_APPLY_SCHEMA",

		"redis.host":     "REDIS_HOST",
		"redis.port":     "REDIS_PORT",
		"redis.password": "REDIS_PASSWORD",
		"redis.db":       "REDIS_DB",

		"jwt.secret_key": "JWT_SECRET_KEY",

		"server.port":            "PORT",
		"server.allowed_origins": "ALLOWED_ORIGINS",
		"server.static_dir":      "STATIC_DIR",
		"swagger.host":           "SWAGGER_HOST",

		"log.level":  "LOG_LEVEL",
		"log.pretty": "LOG_PRETTY",

		"ledger.posting_strategy":        "LEDGER_POSTING_STRATEGY",
		"ledger.placeholder_description": "LEDGER_PLACEHOLDER_DESCRIPTION",
		"ledger.currency_markers":        "LEDGER_CURRENCY_MARKERS",
		"ledger.idempotency_ttl":         "LEDGER_IDEMPOTENCY_TTL",
		"ledger.max_description_length":  "LEDGER_MAX_DESCRIPTION_LENGTH",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}

	return viper.ReadInConfig()
}

func LoadLedgerConfig() *LedgerConfig {
	viper.SetDefault("ledger.posting_strategy", StrategyRPC)
	viper.SetDefault("ledger.placeholder_description", "Lançamento manual")
	viper.SetDefault("ledger.currency_markers", []string{"R$"})
	viper.SetDefault("ledger.idempotency_ttl", 24*time.Hour)
	viper.SetDefault("ledger.max_description_length", 500)

	strategy := viper.GetString("ledger.posting_strategy")
	if strategy != StrategyTx {
		strategy = StrategyRPC
	}

	return &LedgerConfig{
		PostingStrategy:        strategy,
		PlaceholderDescription: viper.GetString("ledger.placeholder_description"),
		CurrencyMarkers:        stringList("ledger.currency_markers"),
		IdempotencyTTL:         viper.GetDuration("ledger.idempotency_ttl"),
		MaxDescriptionLength:   viper.GetInt("ledger.max_description_length"),
	}
}

func LoadServerConfig() *ServerConfig {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("server.idle_timeout", 60*time.Second)
	viper.SetDefault("server.request_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 30*time.Second)
	// No origins means no CORS: the web client is served from the same origin.
	viper.SetDefault("server.allowed_origins", []string{})

	return &ServerConfig{
		Port:            viper.GetString("server.port"),
		ReadTimeout:     viper.GetDuration("server.read_timeout"),
		WriteTimeout:    viper.GetDuration("server.write_timeout"),
		IdleTimeout:     viper.GetDuration("server.idle_timeout"),
		RequestTimeout:  viper.GetDuration("server.request_timeout"),
		ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		AllowedOrigins:  stringList("server.allowed_origins"),
	}
}

func LoadLogConfig() *LogConfig {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)

	return &LogConfig{
		Level:  viper.GetString("log.level"),
		Pretty: viper.GetBool("log.pretty"),
	}
}

// stringList reads a list setting. Environment values are comma separated,
// e.g. ALLOWED_ORIGINS="https://a.example,https://b.example".
func stringList(key string) []string {
	var out []string
	for _, item := range viper.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
