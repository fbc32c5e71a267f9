package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
)

type marketPageRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewMarketPageRepository creates a repository that downloads the configured category pages.
func NewMarketPageRepository(cfg *config.Config, log *logger.Logger) MarketPageRepository {
	return &marketPageRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Market.RequestTimeout,
		},
		requestLimiter: newRequestLimiter(cfg.Market.MaxRequestPerMinute),
	}
}

func (r *marketPageRepository) FetchPage(ctx context.Context, category entity.Category) (string, error) {
	url, ok := r.cfg.Market.Categories[string(category)]
	if !ok || url == "" {
		return "", fmt.Errorf("no url configured for category %s", category)
	}

	fields := []zap.Field{
		zap.String("category", string(category)),
		zap.String("url", url),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", append(fields, zap.Error(err))...)
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.Market.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to fetch market page", append(fields, zap.Error(err))...)
		return "", fmt.Errorf("failed to fetch market page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from market page", append(fields, zap.Int("status_code", resp.StatusCode))...)
		return "", &StatusError{Service: "market page", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read market page body: %w", err)
	}

	r.log.DebugContext(ctx, "Fetched market page", append(fields, zap.Int("bytes", len(body)))...)
	return string(body), nil
}
