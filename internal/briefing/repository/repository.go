package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"market-briefing/internal/entity"
)

// MarketPageRepository fetches the raw HTML page of a market-movers category.
type MarketPageRepository interface {
	FetchPage(ctx context.Context, category entity.Category) (string, error)
}

// PriceHistoryRepository provides daily price series and static company fields.
type PriceHistoryRepository interface {
	GetHistory(ctx context.Context, symbol string) (*entity.PriceHistory, error)
	GetProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error)
}

// NewsRepository fetches recent market headlines, newest feed order preserved.
type NewsRepository interface {
	FetchHeadlines(ctx context.Context, limit int) ([]entity.NewsItem, error)
}

// TextGenerator sends a single user prompt to a text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyCompletion means the service answered 2xx without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received non-OK response from %s: %d - %s", e.Service, e.StatusCode, e.Body)
}

func newRequestLimiter(maxRequestPerMinute int) *rate.Limiter {
	if maxRequestPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	secondsPerRequest := time.Minute / time.Duration(maxRequestPerMinute)
	return rate.NewLimiter(rate.Every(secondsPerRequest), 1)
}
