package publisher

import (
	"context"

	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/telegram"
)

type telegramPublisher struct {
	log      *logger.Logger
	notifier telegram.Notifier
}

// NewTelegramPublisher returns a Publisher that sends the briefing as Telegram messages.
func NewTelegramPublisher(log *logger.Logger, notifier telegram.Notifier) Publisher {
	return &telegramPublisher{log: log, notifier: notifier}
}

func (p *telegramPublisher) Publish(ctx context.Context, briefing entity.Briefing) bool {
	messages := telegram.FormatBriefing(briefing)
	for i, msg := range messages {
		if err := p.notifier.SendMessage(msg); err != nil {
			p.log.ErrorContext(ctx, "Failed to send telegram message",
				logger.IntField("part", i+1),
				logger.IntField("parts", len(messages)),
				logger.ErrorField(err),
			)
			return false
		}
	}
	p.log.InfoContext(ctx, "Briefing sent to telegram", logger.IntField("parts", len(messages)))
	return true
}
