package main

import (
	"context"
	"fmt"
	"time"

	"fishtable/internal/auth"
	"fishtable/internal/config"
	"fishtable/internal/database"
	"fishtable/internal/events"
	"fishtable/internal/jackpot"
	"fishtable/internal/model"
	"fishtable/internal/repository"
	"fishtable/internal/repository/memory"
	"fishtable/internal/repository/postgres"
	"fishtable/internal/session"
	"fishtable/migrations"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type storage struct {
	db        repository.DBManager
	users     repository.UserRepository
	wallets   repository.WalletRepository
	quotas    repository.QuotaRepository
	entries   repository.LedgerRepository
	stakes    repository.StakeRepository
	credits   repository.CreditRepository
	fishTypes repository.FishTypeRepository
	jackpots  repository.JackpotRepository
	memory    *memory.Store
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Database.Driver == "memory" {
		store := memory.NewStore()
		log.Warn().Msg("using in-memory storage, balances are lost on restart")
		return &storage{
			db: store, users: store, wallets: store, quotas: store, entries: store,
			stakes: store, credits: store, fishTypes: store, jackpots: store,
			memory: store,
			close:  func() {},
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx, pool, migrations.FS, log); err != nil {
		pool.Close()
		return nil, err
	}

	return &storage{
		db:        postgres.NewTransactionManager(pool),
		users:     postgres.NewUserRepository(pool),
		wallets:   postgres.NewWalletRepository(pool),
		quotas:    postgres.NewQuotaRepository(pool),
		entries:   postgres.NewLedgerRepository(pool),
		stakes:    postgres.NewStakeRepository(pool),
		credits:   postgres.NewCreditRepository(pool),
		fishTypes: postgres.NewFishTypeRepository(pool),
		jackpots:  postgres.NewJackpotRepository(pool),
		close:     pool.Close,
	}, nil
}

type cache struct {
	sessions  session.Store
	attempts  session.AttemptTracker
	poolStore jackpot.PoolStore
	close     func()
}

// openCache falls back to in-process stores when redis is not configured or
// not reachable.
func openCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) *cache {
	inProcess := &cache{
		sessions:  session.NewMemoryStore(),
		attempts:  session.NewMemoryAttempts(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginAttemptWindow),
		poolStore: jackpot.NewMemoryPoolStore(),
		close:     func() {},
	}
	if cfg.Redis.Addr == "" {
		return inProcess
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, using in-process session store")
		_ = client.Close()
		return inProcess
	}

	return &cache{
		sessions:  session.NewRedisStore(client, cfg.Redis.Prefix+"session:", cfg.Socket.SessionTTL),
		attempts:  session.NewRedisAttempts(client, cfg.Redis.Prefix+"login:", cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginAttemptWindow),
		poolStore: jackpot.NewRedisPoolStore(client, cfg.Redis.Prefix+"jackpot:"),
		close: func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close redis client")
			}
		},
	}
}

func openPublisher(cfg *config.Config, log zerolog.Logger) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.Nop{}
	}
	return events.NewKafkaPublisher(events.KafkaConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		Workers: cfg.Kafka.Workers,
		Buffer:  cfg.Kafka.Buffer,
	}, log.With().Str("component", "events").Logger())
}

// seedDemo creates an admin, an agent and one managed player on the memory
// store and logs a connection token for each.
func seedDemo(s *storage, secret string, log zerolog.Logger) {
	if s.memory == nil {
		log.Warn().Msg("demo seeding needs DB_DRIVER=memory, skipped")
		return
	}

	admin := s.memory.CreateUser("admin", model.RoleAdmin, nil, decimal.Zero)
	agent := s.memory.CreateUser("agent", model.RoleAgent, nil, decimal.Zero)
	s.memory.SetQuota(agent.ID, decimal.NewFromInt(100_000))
	player := s.memory.CreateUser("player", model.RolePlayer, &agent.ID, decimal.NewFromInt(1_000))

	for _, u := range []*model.User{admin, agent, player} {
		token, err := auth.GenerateToken(secret, model.Principal{UserID: u.ID, Role: u.Role}, 24*time.Hour)
		if err != nil {
			log.Error().Err(err).Str("username", u.Username).Msg("failed to sign demo token")
			continue
		}
		log.Info().Str("username", u.Username).Str("user_id", u.ID.String()).Str("token", token).Msg("demo user")
	}
}
