package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Socket   SocketConfig
	Game     GameConfig
	Jackpot  JackpotConfig
	Worker   WorkerConfig
	Log      LogConfig
}
type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// SeedDemo creates an admin, an agent and a player on an empty memory store.
	SeedDemo bool `env:"SERVER_SEED_DEMO" envDefault:"false"`
}
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name            string        `env:"DB_NAME" envDefault:"fishtable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
}
type RedisConfig struct {
	// Addr empty keeps sessions and login attempts in process and disables pool snapshots to redis.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Prefix   string `env:"REDIS_PREFIX" envDefault:"fishtable:"`
}
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"fishtable.events"`
	Workers int      `env:"KAFKA_WORKERS" envDefault:"4"`
	Buffer  int      `env:"KAFKA_BUFFER" envDefault:"1024"`
}
type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"change-me"`
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW" envDefault:"15m"`
}
type SocketConfig struct {
	PingInterval   time.Duration `env:"WS_PING_INTERVAL" envDefault:"25s"`
	PongTimeout    time.Duration `env:"WS_PONG_TIMEOUT" envDefault:"60s"`
	WriteTimeout   time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"10s"`
	MaxMessageSize int64         `env:"WS_MAX_MESSAGE_SIZE" envDefault:"4096"`
	SendBuffer     int           `env:"WS_SEND_BUFFER" envDefault:"64"`
	AllowedOrigins []string      `env:"WS_ALLOWED_ORIGINS" envSeparator:","`
	SessionTTL     time.Duration `env:"WS_SESSION_TTL" envDefault:"2h"`
}
type GameConfig struct {
	Tables           int             `env:"GAME_TABLES" envDefault:"10"`
	Seats            int             `env:"GAME_SEATS" envDefault:"4"`
	Paths            int             `env:"GAME_PATHS" envDefault:"32"`
	SpawnInterval    time.Duration   `env:"GAME_SPAWN_INTERVAL" envDefault:"2s"`
	SpawnPerTick     int             `env:"GAME_SPAWN_PER_TICK" envDefault:"1"`
	FishLifetime     time.Duration   `env:"GAME_FISH_LIFETIME" envDefault:"30s"`
	Bets             []string        `env:"GAME_BETS" envSeparator:"," envDefault:"1,5,10,20,30,50,100"`
	MaxCredit        decimal.Decimal `env:"GAME_MAX_CREDIT" envDefault:"1000000"`
	BigFishThreshold float64         `env:"GAME_BIG_FISH_THRESHOLD" envDefault:"0.97"`
	TargetRTP        float64         `env:"GAME_TARGET_RTP" envDefault:"0.95"`
	// Seed zero seeds the random source from the clock.
	Seed uint64 `env:"GAME_SEED" envDefault:"0"`
}
type JackpotConfig struct {
	Contribution decimal.Decimal `env:"JACKPOT_CONTRIBUTION" envDefault:"0.01"`
	TargetRTP    float64         `env:"JACKPOT_TARGET_RTP" envDefault:"0.96"`
	Scaling      float64         `env:"JACKPOT_SCALING" envDefault:"1000000"`
	RollInterval time.Duration   `env:"JACKPOT_ROLL_INTERVAL" envDefault:"30s"`
	Seed         decimal.Decimal `env:"JACKPOT_SEED" envDefault:"0"`
	FeedSchedule string          `env:"JACKPOT_FEED_SCHEDULE" envDefault:"@every 2s"`
}
type WorkerConfig struct {
	SweepInterval time.Duration `env:"WORKER_SWEEP_INTERVAL" envDefault:"1m"`
	StaleStakeAge time.Duration `env:"WORKER_STALE_STAKE_AGE" envDefault:"5m"`
	SweepBatch    int           `env:"WORKER_SWEEP_BATCH" envDefault:"100"`
}
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"true"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Driver != "postgres" && c.Database.Driver != "memory" {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or memory, got %q", c.Database.Driver))
	}
	if c.Game.Tables <= 0 || c.Game.Seats <= 0 || c.Game.Paths <= 0 {
		errs = append(errs, errors.New("GAME_TABLES, GAME_SEATS and GAME_PATHS must be positive"))
	}
	if c.Game.SpawnInterval <= 0 {
		errs = append(errs, errors.New("GAME_SPAWN_INTERVAL must be positive"))
	}
	if _, err := c.Game.BetValues(); err != nil {
		errs = append(errs, err)
	}
	if !c.Game.MaxCredit.IsPositive() {
		errs = append(errs, errors.New("GAME_MAX_CREDIT must be positive"))
	}
	if c.Jackpot.Contribution.IsNegative() || c.Jackpot.Contribution.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		errs = append(errs, errors.New("JACKPOT_CONTRIBUTION must be in [0, 1)"))
	}
	if c.Auth.LoginMaxAttempts <= 0 {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS must be positive"))
	}
	return errors.Join(errs...)
}

// BetValues parses GAME_BETS. Each bet must be a positive decimal.
func (g GameConfig) BetValues() ([]decimal.Decimal, error) {
	if len(g.Bets) == 0 {
		return nil, errors.New("GAME_BETS must not be empty")
	}
	bets := make([]decimal.Decimal, 0, len(g.Bets))
	for _, raw := range g.Bets {
		bet, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("GAME_BETS: %q is not a number", raw)
		}
		if !bet.IsPositive() {
			return nil, fmt.Errorf("GAME_BETS: %q must be positive", raw)
		}
		bets = append(bets, bet)
	}
	return bets, nil
}
