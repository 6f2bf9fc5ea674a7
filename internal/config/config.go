package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Redis Redis

	Cache Cache `validate:"required"`

	Gateway Gateway `validate:"required"`

	Payment Payment `validate:"required"`

	Archive Archive

	Telemetry Telemetry
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Kafka struct {
	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`
	Topic   string   `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`

	MigrateOnStart bool
}

type Redis struct {
	Addr     string `validate:"required,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`
	Enabled  bool

	// Общий префикс пространства имен, ключи доменов добавляются к нему.
	KeyPrefix string
}

type Cache struct {
	Driver   string        `validate:"required,oneof=memory redis"`
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

// Gateway - параметры мерчанта VNPay.
type Gateway struct {
	TmnCode    string `validate:"required"`
	HashSecret string `validate:"required"`
	PayURL     string `validate:"required,url"`
	Version    string `validate:"required"`
	Command    string `validate:"required"`
	Locale     string `validate:"required,oneof=vn en"`
	OrderType  string `validate:"required"`
	TimeZone   string `validate:"required,timezone"`
}

type Payment struct {
	Timeout         time.Duration `validate:"gt=0"`
	DefaultCurrency string        `validate:"required,len=3"`
}

type Archive struct {
	Enabled bool
	Root    string `validate:"required_if=Enabled true"`
}

type Telemetry struct {
	Enabled      bool
	ServiceName  string `validate:"required"`
	OTLPEndpoint string `validate:"required_if=Enabled true"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			GroupID: env("KAFKA_GROUP_ID", "marketplace-core"),
			Topic:   env("KAFKA_TOPIC", "marketplace.events"),
			Brokers: strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "marketplace"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),

			MigrateOnStart: envBool("POSTGRES_MIGRATE", true),
		},

		Redis: Redis{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
			Enabled:  env("CACHE_DRIVER", "memory") == "redis",

			KeyPrefix: env("REDIS_KEY_PREFIX", "marketplace:"),
		},

		Cache: Cache{
			Driver:   env("CACHE_DRIVER", "memory"),
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 5*time.Minute),
		},

		Gateway: Gateway{
			TmnCode:    env("VNPAY_TMN_CODE", ""),
			HashSecret: env("VNPAY_HASH_SECRET", ""),
			PayURL:     env("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			Version:    env("VNPAY_VERSION", "2.1.0"),
			Command:    env("VNPAY_COMMAND", "pay"),
			Locale:     env("VNPAY_LOCALE", "vn"),
			OrderType:  env("VNPAY_ORDER_TYPE", "other"),
			TimeZone:   env("VNPAY_TIMEZONE", "Asia/Ho_Chi_Minh"),
		},

		Payment: Payment{
			Timeout:         envDuration("PAYMENT_TIMEOUT", 15*time.Minute),
			DefaultCurrency: env("PAYMENT_CURRENCY", "VND"),
		},

		Archive: Archive{
			Enabled: envBool("ARCHIVE_ENABLED", false),
			Root:    env("ARCHIVE_ROOT", "./archive"),
		},

		Telemetry: Telemetry{
			Enabled:      envBool("OTEL_ENABLED", false),
			ServiceName:  env("OTEL_SERVICE_NAME", "marketplace-core"),
			OTLPEndpoint: env("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
