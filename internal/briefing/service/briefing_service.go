package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/briefing/publisher"
	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/utils"
)

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	RunID     string
	Briefing  entity.Briefing
	Analysis  *entity.AnalysisResult
	Published bool
}

// BriefingService runs the pipeline: collection, scoring, narrative, tagging and publishing.
type BriefingService interface {
	Run(ctx context.Context, publish bool) (*RunResult, error)
}

type briefingService struct {
	cfg            *config.Config
	log            *logger.Logger
	marketData     MarketDataService
	news           NewsService
	recommendation RecommendationService
	narrative      NarrativeService
	publisher      publisher.Publisher
	now            func() time.Time
}

// NewBriefingService creates a BriefingService.
func NewBriefingService(
	cfg *config.Config,
	log *logger.Logger,
	marketData MarketDataService,
	news NewsService,
	recommendation RecommendationService,
	narrative NarrativeService,
	publisher publisher.Publisher,
) BriefingService {
	return &briefingService{
		cfg:            cfg,
		log:            log,
		marketData:     marketData,
		news:           news,
		recommendation: recommendation,
		narrative:      narrative,
		publisher:      publisher,
		now: func() time.Time {
			return utils.TimeNowIn(cfg.Schedule.TimeZone)
		},
	}
}

// Run executes the stages strictly in order. It fails only with ErrNoMarketData,
// before any text-generation call; every other failure degrades locally.
func (s *briefingService) Run(ctx context.Context, publish bool) (*RunResult, error) {
	runID := logger.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logger.WithRunID(ctx, runID)
	}
	start := time.Now()
	s.log.InfoContext(ctx, "Briefing run started")

	data := s.marketData.Collect(ctx)
	if data.TotalQuotes() == 0 {
		s.log.ErrorContext(ctx, "No market data collected in any category", logger.ErrorField(ErrNoMarketData))
		return nil, ErrNoMarketData
	}

	news := s.news.Collect(ctx)
	recs := s.recommendation.Recommend(ctx, data)
	analysis := BuildAnalysis(data, news, recs)

	briefing := s.narrative.Compose(ctx, analysis)
	briefing.Tags = GenerateTags(briefing.Body, analysis.Recommendations, s.now())

	result := &RunResult{RunID: runID, Briefing: briefing, Analysis: analysis}
	if publish && s.publisher != nil {
		result.Published = s.publisher.Publish(ctx, briefing)
	}

	s.log.InfoContext(ctx, "Briefing run finished",
		logger.StringField("title", briefing.Title),
		logger.IntField("news", len(analysis.News)),
		logger.IntField("recommendations", len(analysis.Recommendations)),
		logger.IntField("tags", len(briefing.Tags)),
		logger.Field("fallback", briefing.Fallback),
		logger.Field("published", result.Published),
		logger.DurationField("elapsed", time.Since(start)),
	)
	return result, nil
}
