package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/briefing/dto"
	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
)

const crumbCacheKey = "yahoo:crumb"

// ErrNoChartData means the chart API returned no usable series for the symbol.
var ErrNoChartData = errors.New("no chart data")

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	inmemoryCache  *cache.Cache
}

// NewYahooFinanceRepository creates a PriceHistoryRepository backed by the Yahoo chart
// and quoteSummary endpoints.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) PriceHistoryRepository {
	jar, _ := cookiejar.New(nil)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: cfg.YahooFinance.RequestTimeout,
		},
		requestLimiter: newRequestLimiter(cfg.YahooFinance.MaxRequestPerMinute),
		inmemoryCache:  cache.New(cfg.YahooFinance.ProfileCacheTTL, 2*cfg.YahooFinance.ProfileCacheTTL),
	}
}

func (r *yahooFinanceRepository) GetHistory(ctx context.Context, symbol string) (*entity.PriceHistory, error) {
	params := url.Values{}
	params.Set("range", r.cfg.YahooFinance.HistoryRange)
	params.Set("interval", r.cfg.YahooFinance.HistoryInterval)
	if crumb, err := r.getCrumb(ctx); err == nil {
		params.Set("crumb", crumb)
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", r.cfg.YahooFinance.BaseURL, url.PathEscape(symbol), params.Encode())
	body, err := r.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp dto.YahooChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoChartData, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoChartData
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	history := &entity.PriceHistory{Symbol: symbol}
	for i, ts := range result.Timestamp {
		closePrice := valueAt(quote.Close, i)
		if closePrice == nil {
			continue
		}
		bar := entity.PriceBar{Timestamp: ts, Close: *closePrice}
		if v := valueAt(quote.Open, i); v != nil {
			bar.Open = *v
		}
		if v := valueAt(quote.High, i); v != nil {
			bar.High = *v
		}
		if v := valueAt(quote.Low, i); v != nil {
			bar.Low = *v
		}
		if v := valueAt(quote.Volume, i); v != nil {
			bar.Volume = *v
		}
		history.Bars = append(history.Bars, bar)
	}

	if len(history.Bars) == 0 {
		return nil, ErrNoChartData
	}

	return history, nil
}

func (r *yahooFinanceRepository) GetProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error) {
	cacheKey := "yahoo:profile:" + symbol
	if cached, ok := r.inmemoryCache.Get(cacheKey); ok {
		return cached.(*entity.CompanyProfile), nil
	}

	crumb, err := r.getCrumb(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("modules", "assetProfile,price")
	params.Set("crumb", crumb)
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", r.cfg.YahooFinance.BaseURL, url.PathEscape(symbol), params.Encode())

	body, err := r.get(ctx, endpoint)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			r.inmemoryCache.Delete(crumbCacheKey)
		}
		return nil, err
	}

	var resp dto.YahooQuoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode quote summary: %w", err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote summary for %s is empty", symbol)
	}

	res := resp.QuoteSummary.Result[0]
	profile := &entity.CompanyProfile{
		MarketCap: res.Price.MarketCap.Raw,
		Sector:    res.AssetProfile.Sector,
		Industry:  res.AssetProfile.Industry,
	}
	r.inmemoryCache.SetDefault(cacheKey, profile)

	return profile, nil
}

// getCrumb performs the cookie and crumb handshake once and caches the crumb.
func (r *yahooFinanceRepository) getCrumb(ctx context.Context) (string, error) {
	if r.cfg.YahooFinance.CrumbURL == "" {
		return "", errors.New("crumb url not configured")
	}
	if cached, ok := r.inmemoryCache.Get(crumbCacheKey); ok {
		return cached.(string), nil
	}

	if r.cfg.YahooFinance.CookieURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.YahooFinance.CookieURL, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create cookie request: %w", err)
		}
		r.setHeaders(req)
		resp, err := r.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to fetch cookie: %w", err)
		}
		// the cookie endpoint answers 404 while still setting the session cookie
		resp.Body.Close()
	}

	body, err := r.get(ctx, r.cfg.YahooFinance.CrumbURL)
	if err != nil {
		return "", fmt.Errorf("failed to get crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.Contains(crumb, "html") {
		return "", errors.New("invalid crumb received")
	}

	r.inmemoryCache.Set(crumbCacheKey, crumb, 30*time.Minute)
	return crumb, nil
}

func (r *yahooFinanceRepository) get(ctx context.Context, endpoint string) ([]byte, error) {
	fields := []zap.Field{zap.String("url", endpoint)}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	r.setHeaders(req)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Yahoo Finance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.log.WarnContext(ctx, "Received non-OK response from Yahoo Finance", append(fields, zap.Int("status_code", resp.StatusCode))...)
		return nil, &StatusError{Service: "Yahoo Finance", StatusCode: resp.StatusCode, Body: string(body)}
	}

	return io.ReadAll(resp.Body)
}

func (r *yahooFinanceRepository) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", r.cfg.Market.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Origin", "https://finance.yahoo.com")
	req.Header.Set("Referer", "https://finance.yahoo.com/")
}

func valueAt(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
