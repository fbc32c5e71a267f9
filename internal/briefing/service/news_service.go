package service

import (
	"context"
	"sort"
	"strings"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/briefing/repository"
	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
)

// Keyword tiers checked in order; the first tier with a match wins.
var (
	highImportanceKeywords   = []string{"tariff", "trade", "fed", "interest rate", "inflation", "economy", "market"}
	mediumImportanceKeywords = []string{"earnings", "stock", "company", "industry"}
)

// ClassifyImportance assigns the importance tier of a headline.
func ClassifyImportance(title string) entity.Importance {
	lower := strings.ToLower(title)
	for _, kw := range highImportanceKeywords {
		if strings.Contains(lower, kw) {
			return entity.ImportanceHigh
		}
	}
	for _, kw := range mediumImportanceKeywords {
		if strings.Contains(lower, kw) {
			return entity.ImportanceMedium
		}
	}
	return entity.ImportanceLow
}

// SortByImportance stable-sorts items high first, keeping feed order within a tier.
func SortByImportance(items []entity.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Importance.Rank() < items[j].Importance.Rank()
	})
}

// NewsService collects prioritized headlines.
type NewsService interface {
	Collect(ctx context.Context) []entity.NewsItem
}

type newsService struct {
	cfg      *config.Config
	log      *logger.Logger
	newsRepo repository.NewsRepository
}

// NewNewsService creates a NewsService.
func NewNewsService(cfg *config.Config, log *logger.Logger, newsRepo repository.NewsRepository) NewsService {
	return &newsService{cfg: cfg, log: log, newsRepo: newsRepo}
}

// Collect returns an empty list when the feed cannot be read.
func (s *newsService) Collect(ctx context.Context) []entity.NewsItem {
	items, err := s.newsRepo.FetchHeadlines(ctx, s.cfg.News.MaxItems)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to collect news, continuing without it", logger.ErrorField(err))
		return []entity.NewsItem{}
	}

	for i := range items {
		items[i].Importance = ClassifyImportance(items[i].Title)
	}
	SortByImportance(items)

	s.log.InfoContext(ctx, "Collected news", logger.IntField("count", len(items)))
	return items
}
