package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// RedisConfig настройки подключения к общему кэшу
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
	PoolSize int    `env:"POOL_SIZE"`
}

// ResolverConfig параметры чтения ссылок через кэш
type ResolverConfig struct {
	MaxCodeLength int           `env:"MAX_CODE_LENGTH"`
	TombstoneTTL  time.Duration `env:"TOMBSTONE_TTL"`
	LockTTL       time.Duration `env:"LOCK_TTL"`
	WaitInterval  time.Duration `env:"WAIT_INTERVAL"`
	WaitRounds    int           `env:"WAIT_ROUNDS"`
	// WaitFallbackToStore после исчерпания ожидания идти в БД вместо ответа "не найдено"
	WaitFallbackToStore bool `env:"WAIT_FALLBACK_TO_STORE"`
}

// QueueConfig параметры очереди заполнения кэша
type QueueConfig struct {
	WorkerID          string        `env:"WORKER_ID"`
	BatchSize         int           `env:"BATCH_SIZE"`
	PollInterval      time.Duration `env:"POLL_INTERVAL"`
	VisibilityTimeout time.Duration `env:"VISIBILITY_TIMEOUT"`
	MaxAttempts       int           `env:"MAX_ATTEMPTS"`
	BackoffBase       time.Duration `env:"BACKOFF_BASE"`
	BackoffCap        time.Duration `env:"BACKOFF_CAP"`
}

// SweeperConfig параметры периодической очистки истекших ссылок
type SweeperConfig struct {
	Interval time.Duration `env:"INTERVAL"`
	LockTTL  time.Duration `env:"LOCK_TTL"`
}

// UsageConfig параметры журнала использования ссылок
type UsageConfig struct {
	Sink         string        `env:"SINK"`
	BufferSize   int           `env:"BUFFER_SIZE"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`
	KafkaBrokers []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string        `env:"KAFKA_TOPIC"`
}

// PolicyConfig правила проверки адресов назначения
type PolicyConfig struct {
	MaxLength             int    `env:"MAX_LENGTH"`
	AllowNonStandardPorts bool   `env:"ALLOW_NON_STANDARD_PORTS"`
	StripTrackingParams   bool   `env:"STRIP_TRACKING_PARAMS"`
	ShortDomain           string `env:"SHORT_DOMAIN"`
}

const (
	UsageSinkPostgres = "postgres"
	UsageSinkKafka    = "kafka"
	UsageSinkNone     = "none"
)

// Config содержит конфигурацию приложения
type Config struct {
	ServerAddress  NetworkAddress `env:"SERVER_ADDRESS"`
	GRPCAddress    NetworkAddress `env:"GRPC_ADDRESS"`
	BaseURL        URLPrefix      `env:"BASE_URL"`
	DatabaseDSN    string         `env:"DATABASE_DSN"`
	JWTSecret      string         `env:"JWT_SECRET"`
	DefaultLinkTTL time.Duration  `env:"DEFAULT_LINK_TTL"`
	CodeMinLength  int            `env:"CODE_MIN_LENGTH"`

	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Resolver ResolverConfig `envPrefix:"RESOLVER_"`
	Queue    QueueConfig    `envPrefix:"QUEUE_"`
	Sweeper  SweeperConfig  `envPrefix:"SWEEPER_"`
	Usage    UsageConfig    `envPrefix:"USAGE_"`
	Policy   PolicyConfig   `envPrefix:"URL_"`
}

// NewDefaultConfig создает конфигурацию со значениями по умолчанию
func NewDefaultConfig() *Config {
	return &Config{
		ServerAddress:  NetworkAddress{Host: "localhost", Port: 8080},
		GRPCAddress:    NetworkAddress{Host: "localhost", Port: 9090},
		BaseURL:        URLPrefix("http://localhost:8080"),
		JWTSecret:      "change-me",
		DefaultLinkTTL: 30 * 24 * time.Hour,
		CodeMinLength:  5,
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 100,
		},
		Resolver: ResolverConfig{
			MaxCodeLength: 64,
			TombstoneTTL:  60 * time.Second,
			LockTTL:       3 * time.Second,
			WaitInterval:  80 * time.Millisecond,
			WaitRounds:    2,
		},
		Queue: QueueConfig{
			WorkerID:          defaultWorkerID(),
			BatchSize:         100,
			PollInterval:      30 * time.Second,
			VisibilityTimeout: 5 * time.Minute,
			MaxAttempts:       5,
			BackoffBase:       60 * time.Second,
			BackoffCap:        time.Hour,
		},
		Sweeper: SweeperConfig{
			Interval: 24 * time.Hour,
			LockTTL:  10 * time.Minute,
		},
		Usage: UsageConfig{
			Sink:         UsageSinkPostgres,
			BufferSize:   1024,
			WriteTimeout: 2 * time.Second,
			KafkaTopic:   "link-usage",
		},
		Policy: PolicyConfig{
			MaxLength:           2048,
			StripTrackingParams: true,
		},
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем флаги, затем переменные окружения
func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	return LoadFromArgs(os.Args[1:])
}

// LoadFromArgs загружает конфигурацию из переданных аргументов командной строки и окружения
func LoadFromArgs(args []string) (*Config, error) {
	cfg := NewDefaultConfig()

	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fs.Var(&cfg.ServerAddress, "a", "address to run HTTP server")
	fs.Var(&cfg.GRPCAddress, "g", "address to run gRPC health server")
	fs.Var(&cfg.BaseURL, "b", "base URL for shortened URL")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.Redis.Addr, "r", cfg.Redis.Addr, "redis address")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Policy.ShortDomain == "" {
		cfg.Policy.ShortDomain = cfg.BaseURL.Hostname()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	if c.Resolver.MaxCodeLength <= 0 {
		errs = append(errs, errors.New("resolver max code length must be positive"))
	}
	if c.Resolver.TombstoneTTL <= 0 || c.Resolver.LockTTL <= 0 {
		errs = append(errs, errors.New("resolver TTLs must be positive"))
	}
	if c.Resolver.WaitRounds < 0 || c.Resolver.WaitInterval < 0 {
		errs = append(errs, errors.New("resolver wait settings must not be negative"))
	}
	if c.Queue.BatchSize <= 0 {
		errs = append(errs, errors.New("queue batch size must be positive"))
	}
	if c.Queue.MaxAttempts <= 0 {
		errs = append(errs, errors.New("queue max attempts must be positive"))
	}
	if c.Queue.BackoffBase <= 0 || c.Queue.BackoffCap < c.Queue.BackoffBase {
		errs = append(errs, errors.New("queue backoff must satisfy 0 < base <= cap"))
	}
	if c.Queue.VisibilityTimeout <= 0 || c.Queue.PollInterval <= 0 {
		errs = append(errs, errors.New("queue timeouts must be positive"))
	}
	if c.DefaultLinkTTL <= 0 {
		errs = append(errs, errors.New("default link TTL must be positive"))
	}
	if c.CodeMinLength <= 0 {
		errs = append(errs, errors.New("code min length must be positive"))
	}

	switch c.Usage.Sink {
	case UsageSinkPostgres, UsageSinkNone:
	case UsageSinkKafka:
		if len(c.Usage.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("kafka usage sink requires USAGE_KAFKA_BROKERS"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown usage sink %q", c.Usage.Sink))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return nil
}

func defaultWorkerID() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "worker-1"
}
