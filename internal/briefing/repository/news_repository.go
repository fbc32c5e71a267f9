package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
)

type newsRepository struct {
	cfg *config.Config
	log *logger.Logger
}

// NewNewsRepository creates a NewsRepository reading the configured RSS feed.
func NewNewsRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &newsRepository{cfg: cfg, log: log}
}

func (r *newsRepository) FetchHeadlines(ctx context.Context, limit int) ([]entity.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.News.RequestTimeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.UserAgent = r.cfg.Market.UserAgent
	fp.Client = &http.Client{Timeout: r.cfg.News.RequestTimeout}

	feed, err := fp.ParseURLWithContext(r.cfg.News.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	items := make([]entity.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if limit > 0 && len(items) >= limit {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		date := item.Published
		if item.PublishedParsed != nil {
			date = item.PublishedParsed.Format("2006-01-02 15:04")
		}
		items = append(items, entity.NewsItem{Title: title, Date: date})
	}

	r.log.DebugContext(ctx, "Fetched news headlines", logger.IntField("count", len(items)))
	return items, nil
}
