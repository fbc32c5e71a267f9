package publisher

import (
	"context"
	"fmt"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/entity"
	"market-briefing/pkg/common"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/redis"
	"market-briefing/pkg/telegram"
)

// Publisher hands a finished briefing to its destination and reports success.
type Publisher interface {
	Publish(ctx context.Context, briefing entity.Briefing) bool
}

// New builds the publisher selected by publisher.kind.
func New(cfg *config.Config, log *logger.Logger) (Publisher, error) {
	switch cfg.Publisher.Kind {
	case "", common.PublisherKindLog:
		return NewLogPublisher(log), nil
	case common.PublisherKindTelegram:
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to create telegram client: %w", err)
		}
		return NewTelegramPublisher(log, notifier), nil
	case common.PublisherKindRedis:
		client, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewStreamPublisher(log, client, cfg.Publisher.Stream, cfg.Redis.StreamMaxLen), nil
	default:
		return nil, fmt.Errorf("unknown publisher kind %q", cfg.Publisher.Kind)
	}
}

type logPublisher struct {
	log *logger.Logger
}

// NewLogPublisher returns a Publisher that writes the briefing to the log.
func NewLogPublisher(log *logger.Logger) Publisher {
	return &logPublisher{log: log}
}

func (p *logPublisher) Publish(ctx context.Context, briefing entity.Briefing) bool {
	p.log.InfoContext(ctx, "Briefing ready",
		logger.StringField("title", briefing.Title),
		logger.Field("tags", briefing.Tags),
		logger.Field("fallback", briefing.Fallback),
		logger.StringField("body", briefing.Body),
	)
	return true
}
