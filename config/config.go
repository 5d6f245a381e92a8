package config

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"strings"
	"time"

	"tiemnuoc/pkg/kvstore"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	AppEnv    string
	PublicURL string

	Sheets   SheetsConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Ports    PortsConfig
	Gateway  GatewayConfig
}

type SheetsConfig struct {
	URL             string
	Timeout         time.Duration
	PollInterval    time.Duration
	RefreshInterval time.Duration
}

// StoreConfig selects the kvstore driver: memory, redis or postgres.
type StoreConfig struct {
	Driver string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers     []string
	OrderTopic  string
	AggGroupID  string
	PublishWait time.Duration
}

type PortsConfig struct {
	Gateway string
	Menu    string
	Order   string
	Staff   string
}

type GatewayConfig struct {
	MenuSvcURL  string
	OrderSvcURL string
	StaffSvcURL string
	StaticDir   string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		PublicURL: getEnv("PUBLIC_URL", "http://localhost:8080"),
		Sheets: SheetsConfig{
			URL:             getEnv("SHEETS_URL", ""),
			Timeout:         getEnvDuration("SHEETS_TIMEOUT", 15*time.Second),
			PollInterval:    getEnvDuration("ORDER_POLL_INTERVAL", 10*time.Second),
			RefreshInterval: getEnvDuration("MENU_REFRESH_INTERVAL", 30*time.Second),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", "memory"),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "tiemnuoc"),
			Password: getEnv("DB_PASSWORD", "tiemnuoc"),
			DBName:   getEnv("DB_NAME", "tiemnuoc"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:     getEnvSlice("KAFKA_BROKERS", nil),
			OrderTopic:  getEnv("KAFKA_TOPIC_ORDERS", "order-events"),
			AggGroupID:  getEnv("KAFKA_GROUP_AGG", "agg-svc-consumer"),
			PublishWait: getEnvDuration("KAFKA_PUBLISH_TIMEOUT", 5*time.Second),
		},
		Ports: PortsConfig{
			Gateway: getEnv("GATEWAY_PORT", "8080"),
			Menu:    getEnv("MENU_SVC_PORT", "8081"),
			Order:   getEnv("ORDER_SVC_PORT", "8082"),
			Staff:   getEnv("STAFF_SVC_PORT", "8083"),
		},
		Gateway: GatewayConfig{
			MenuSvcURL:  getEnv("MENU_SVC_URL", "http://localhost:8081"),
			OrderSvcURL: getEnv("ORDER_SVC_URL", "http://localhost:8082"),
			StaffSvcURL: getEnv("STAFF_SVC_URL", "http://localhost:8083"),
			StaticDir:   getEnv("STATIC_DIR", "./frontend"),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func MustInitPostgres(cfg PostgresConfig) *sql.DB {
	connStr := "host=" + cfg.Host + " port=" + cfg.Port + " user=" + cfg.User +
		" password=" + cfg.Password + " dbname=" + cfg.DBName + " sslmode=" + cfg.SSLMode

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("Failed to connect to Redis")
	}

	return client
}

func NewKafkaReader(cfg KafkaConfig, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.OrderTopic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrderTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: cfg.PublishWait,
	}
}

// MustOpenStore builds the kvstore selected by STORE_DRIVER. Unknown drivers
// fall back to memory.
func MustOpenStore(cfg *Config) kvstore.Store {
	switch cfg.Store.Driver {
	case "redis":
		return kvstore.NewRedisStore(MustInitRedis(cfg.Redis), 0)
	case "postgres":
		store := kvstore.NewPostgresStore(MustInitPostgres(cfg.Postgres))
		if err := store.EnsureSchema(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to create kv_store table")
		}
		return store
	case "memory":
	default:
		log.Warn().Str("driver", cfg.Store.Driver).Msg("Unknown store driver, using memory")
	}
	return kvstore.NewMemoryStore()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		// zero or negative intervals would panic the tickers that use them
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
