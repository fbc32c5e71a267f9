package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/briefing/publisher"
	"market-briefing/internal/briefing/repository"
	"market-briefing/internal/briefing/service"
	"market-briefing/pkg/common"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/utils"
)

type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	briefing service.BriefingService
}

func newApp(ctx context.Context) *app {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	generator, err := newTextGenerator(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize text generator", logger.ErrorField(err))
	}

	pub, err := publisher.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize publisher", logger.ErrorField(err))
	}

	marketDataSvc := service.NewMarketDataService(cfg, appLogger, repository.NewMarketPageRepository(cfg, appLogger))
	newsSvc := service.NewNewsService(cfg, appLogger, repository.NewNewsRepository(cfg, appLogger))
	recommendationSvc := service.NewRecommendationService(cfg, appLogger, repository.NewYahooFinanceRepository(cfg, appLogger))
	narrativeSvc := service.NewNarrativeService(cfg, appLogger, generator, service.WithClock(func() time.Time {
		return utils.TimeNowIn(cfg.Schedule.TimeZone)
	}))

	return &app{
		cfg:      cfg,
		logger:   appLogger,
		briefing: service.NewBriefingService(cfg, appLogger, marketDataSvc, newsSvc, recommendationSvc, narrativeSvc, pub),
	}
}

func newTextGenerator(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (repository.TextGenerator, error) {
	switch cfg.AI.Provider {
	case common.AIProviderGemini:
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", err)
		}
		return repository.NewGeminiAIRepository(cfg, appLogger, genAiClient), nil
	case common.AIProviderOpenAI, "":
		return repository.NewOpenAIRepository(cfg, appLogger), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}
