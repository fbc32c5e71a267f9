package service

import (
	"context"
	"errors"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/briefing/repository"
	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
)

// ErrNoMarketData is returned when every category came back empty.
var ErrNoMarketData = errors.New("no market data collected")

// MarketDataService collects one snapshot per configured category.
type MarketDataService interface {
	Collect(ctx context.Context) entity.MarketData
}

type marketDataService struct {
	cfg      *config.Config
	log      *logger.Logger
	pageRepo repository.MarketPageRepository
}

// NewMarketDataService creates a MarketDataService.
func NewMarketDataService(cfg *config.Config, log *logger.Logger, pageRepo repository.MarketPageRepository) MarketDataService {
	return &marketDataService{cfg: cfg, log: log, pageRepo: pageRepo}
}

// Collect never fails as a whole: a category that cannot be fetched or normalized
// becomes an empty snapshot.
func (s *marketDataService) Collect(ctx context.Context) entity.MarketData {
	data := make(entity.MarketData)
	for _, category := range s.cfg.Market.CategoryOrder() {
		snapshot := entity.CategorySnapshot{Category: category}

		quotes, err := s.collectCategory(ctx, category)
		if err != nil {
			s.log.WarnContext(ctx, "Category collection failed, using empty snapshot",
				logger.StringField("category", string(category)),
				logger.ErrorField(err),
			)
		} else {
			snapshot.Quotes = quotes
		}

		s.log.InfoContext(ctx, "Collected category snapshot",
			logger.StringField("category", string(category)),
			logger.IntField("rows", len(snapshot.Quotes)),
		)
		data[category] = snapshot
	}
	return data
}

func (s *marketDataService) collectCategory(ctx context.Context, category entity.Category) ([]entity.Quote, error) {
	page, err := s.pageRepo.FetchPage(ctx, category)
	if err != nil {
		return nil, &entity.DataSourceError{Category: category, Reason: err}
	}
	return NormalizeTable(category, page)
}
