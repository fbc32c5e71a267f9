package publisher

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"market-briefing/internal/briefing/dto"
	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/redis"
)

type streamPublisher struct {
	log    *logger.Logger
	client *redis.Client
	stream string
	maxLen int64
}

// NewStreamPublisher returns a Publisher that appends the briefing to a Redis stream.
func NewStreamPublisher(log *logger.Logger, client *redis.Client, stream string, maxLen int64) Publisher {
	return &streamPublisher{log: log, client: client, stream: stream, maxLen: maxLen}
}

func (p *streamPublisher) Publish(ctx context.Context, briefing entity.Briefing) bool {
	payload, err := json.Marshal(dto.StreamDataBriefing{
		RunID:       logger.RunID(ctx),
		Title:       briefing.Title,
		Body:        briefing.Body,
		Tags:        briefing.Tags,
		Fallback:    briefing.Fallback,
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to marshal briefing", logger.ErrorField(err))
		return false
	}

	args := &goredis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{"payload": payload},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to publish briefing to stream", logger.StringField("stream", p.stream), logger.ErrorField(err))
		return false
	}

	p.log.InfoContext(ctx, "Briefing published to stream", logger.StringField("stream", p.stream), logger.StringField("message_id", id))
	return true
}
