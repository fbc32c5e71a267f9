package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-briefing/internal/briefing/config"
	"market-briefing/pkg/logger"
)

const chartJSON = `{"chart":{"result":[{"meta":{"symbol":"NVDA","currency":"USD","regularMarketPrice":120.5},
"timestamp":[1710000000,1710086400,1710172800],
"indicators":{"quote":[{"open":[100,101,102],"high":[101,102,103],"low":[99,100,101],
"close":[100.5,null,102.5],"volume":[1000,2000,3000]}]}}],"error":null}}`

const profileJSON = `{"quoteSummary":{"result":[{"assetProfile":{"sector":"Technology","industry":"Semiconductors"},
"price":{"marketCap":{"raw":2950000000000}}}],"error":null}}`

type yahooServer struct {
	*httptest.Server
	crumbHits   atomic.Int32
	profileHits atomic.Int32
	profileCode int
}

func newYahooServer(t *testing.T) *yahooServer {
	ys := &yahooServer{profileCode: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/cookie", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session"})
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/crumb", func(w http.ResponseWriter, r *http.Request) {
		ys.crumbHits.Add(1)
		if _, err := r.Cookie("A3"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("abc123"))
	})
	mux.HandleFunc("/v8/finance/chart/NVDA", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3mo", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "abc123", r.URL.Query().Get("crumb"))
		_, _ = w.Write([]byte(chartJSON))
	})
	mux.HandleFunc("/v8/finance/chart/NONE", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	})
	mux.HandleFunc("/v10/finance/quoteSummary/NVDA", func(w http.ResponseWriter, r *http.Request) {
		ys.profileHits.Add(1)
		assert.Equal(t, "assetProfile,price", r.URL.Query().Get("modules"))
		if ys.profileCode != http.StatusOK {
			w.WriteHeader(ys.profileCode)
			return
		}
		_, _ = w.Write([]byte(profileJSON))
	})
	ys.Server = httptest.NewServer(mux)
	t.Cleanup(ys.Close)
	return ys
}

func yahooConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.YahooFinance.BaseURL = baseURL
	cfg.YahooFinance.CookieURL = baseURL + "/cookie"
	cfg.YahooFinance.CrumbURL = baseURL + "/crumb"
	cfg.YahooFinance.MaxRequestPerMinute = 0
	return cfg
}

func TestYahooGetHistory(t *testing.T) {
	srv := newYahooServer(t)
	repo := NewYahooFinanceRepository(yahooConfig(srv.URL), logger.NewNop())

	history, err := repo.GetHistory(context.Background(), "NVDA")
	require.NoError(t, err)

	require.Len(t, history.Bars, 2, "bars without a close are dropped")
	assert.Equal(t, []float64{100.5, 102.5}, history.Closes())
	assert.Equal(t, []float64{1000, 3000}, history.Volumes())
	assert.Equal(t, int64(1710172800), history.Bars[1].Timestamp)
}

func TestYahooGetHistoryNoData(t *testing.T) {
	srv := newYahooServer(t)
	repo := NewYahooFinanceRepository(yahooConfig(srv.URL), logger.NewNop())

	_, err := repo.GetHistory(context.Background(), "NONE")

	assert.True(t, errors.Is(err, ErrNoChartData))
}

func TestYahooGetHistoryStatusError(t *testing.T) {
	srv := newYahooServer(t)
	repo := NewYahooFinanceRepository(yahooConfig(srv.URL), logger.NewNop())

	_, err := repo.GetHistory(context.Background(), "MISSING")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestYahooGetProfileCachesResult(t *testing.T) {
	srv := newYahooServer(t)
	repo := NewYahooFinanceRepository(yahooConfig(srv.URL), logger.NewNop())

	profile, err := repo.GetProfile(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, "Technology", profile.Sector)
	assert.Equal(t, "Semiconductors", profile.Industry)
	assert.Equal(t, 2.95e12, profile.MarketCap)

	_, err = repo.GetProfile(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, int32(1), srv.profileHits.Load())
	assert.Equal(t, int32(1), srv.crumbHits.Load())
}

func TestYahooGetProfileUnauthorizedResetsCrumb(t *testing.T) {
	srv := newYahooServer(t)
	srv.profileCode = http.StatusUnauthorized
	repo := NewYahooFinanceRepository(yahooConfig(srv.URL), logger.NewNop())

	_, err := repo.GetProfile(context.Background(), "NVDA")
	require.Error(t, err)
	_, err = repo.GetProfile(context.Background(), "NVDA")
	require.Error(t, err)

	assert.Equal(t, int32(2), srv.crumbHits.Load())
}
