package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/skillcheck-ai/skillcheck-api/internal/auth"
	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"github.com/skillcheck-ai/skillcheck-api/internal/gateway"
	"github.com/skillcheck-ai/skillcheck-api/internal/ingestion"
	"github.com/skillcheck-ai/skillcheck-api/internal/quiz"
	"github.com/skillcheck-ai/skillcheck-api/internal/results"
	"github.com/skillcheck-ai/skillcheck-api/internal/store"
	"github.com/skillcheck-ai/skillcheck-api/internal/user"
)

type Container struct {
	UserContainer      *user.Container
	IngestionContainer *ingestion.Container
	QuizContainer      *quiz.Container
	ResultsContainer   *results.Container
}

// New wires the whole application from config. Postgres and Redis are
// optional; without them the service runs on in-memory stores, which is
// enough for a demo but forfeits all data on restart.
func New(ctx context.Context, cfg config.Config) (*Container, error) {
	config.Init()
	auth.Init()
	config.InitCrypto()

	var userRepo user.Repository
	var resultsRepo results.Repository
	if cfg.Database.DSN != "" {
		if err := config.Connect(ctx, cfg.Database.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		userRepo = user.NewRepository(config.DB)
		resultsRepo = results.NewRepository(config.DB)
	} else {
		logrus.Warn("DATABASE_DSN not set, users and results are in-memory only")
		userRepo = user.NewMemoryRepository()
		resultsRepo = results.NewMemoryRepository()
	}

	var kv store.KV
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		kv = store.NewRedisKV(client)
	} else {
		logrus.Warn("REDIS_ADDR not set, resume and latest-result storage is in-memory only")
		kv = store.NewMemoryKV()
	}

	provider, err := gateway.New(ctx, cfg.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to build AI provider: %w", err)
	}

	mode := quiz.Mode(cfg.Quiz.Mode)
	if !mode.IsValid() {
		return nil, fmt.Errorf("unknown quiz mode %q", cfg.Quiz.Mode)
	}

	resultsContainer := results.NewContainer(resultsRepo, kv)
	quizContainer := quiz.NewContainer(
		kv,
		provider,
		resultsContainer.Service,
		mode,
		cfg.Quiz.Questions,
		cfg.Quiz.SecondsPerQuestion,
	)

	return &Container{
		UserContainer:      user.NewContainer(userRepo, cfg.Auth.AdminEmails, cfg.TokenTTLDuration()),
		IngestionContainer: ingestion.NewContainer(provider, kv),
		QuizContainer:      quizContainer,
		ResultsContainer:   resultsContainer,
	}, nil
}
