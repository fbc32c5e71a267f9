package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/entity"
)

func tableHTML(headers []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<html><body><table><thead><tr>")
	for _, h := range headers {
		b.WriteString("<th>" + h + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + cell + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

var moversHeaders = []string{"Symbol", "Name", "Price (Intraday)", "Change", "% Change", "Volume"}

type fakePageRepo struct {
	pages map[entity.Category]string
	errs  map[entity.Category]error
}

func (f *fakePageRepo) FetchPage(_ context.Context, category entity.Category) (string, error) {
	if err := f.errs[category]; err != nil {
		return "", err
	}
	page, ok := f.pages[category]
	if !ok {
		return "", errors.New("status 503")
	}
	return page, nil
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	histories map[string][]float64
	volumes   map[string]float64
	profiles  map[string]*entity.CompanyProfile
	calls     []string
}

func (f *fakeHistoryRepo) GetHistory(_ context.Context, symbol string) (*entity.PriceHistory, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()

	closes, ok := f.histories[symbol]
	if !ok {
		return nil, fmt.Errorf("history for %s unavailable", symbol)
	}
	h := &entity.PriceHistory{Symbol: symbol}
	for i, c := range closes {
		h.Bars = append(h.Bars, entity.PriceBar{Timestamp: int64(i), Close: c, Volume: f.volumes[symbol]})
	}
	return h, nil
}

func (f *fakeHistoryRepo) GetProfile(_ context.Context, symbol string) (*entity.CompanyProfile, error) {
	if p, ok := f.profiles[symbol]; ok {
		return p, nil
	}
	return nil, errors.New("profile unavailable")
}

type fakeNewsRepo struct {
	items []entity.NewsItem
	err   error
}

func (f *fakeNewsRepo) FetchHeadlines(_ context.Context, limit int) ([]entity.NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	items := append([]entity.NewsItem(nil), f.items...)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

type generatorReply struct {
	text string
	err  error
}

// fakeGenerator replays replies in order and repeats the last one when exhausted.
type fakeGenerator struct {
	mu      sync.Mutex
	replies []generatorReply
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if len(f.replies) == 0 {
		return "", errors.New("status 503")
	}
	r := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return r.text, r.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waits = append(r.waits, d)
	return nil
}

func (r *sleepRecorder) total() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum time.Duration
	for _, w := range r.waits {
		sum += w
	}
	return sum
}

type fakePublisher struct {
	published []entity.Briefing
	result    bool
}

func (f *fakePublisher) Publish(_ context.Context, b entity.Briefing) bool {
	f.published = append(f.published, b)
	return f.result
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Recommendation.MaxConcurrent = 2
	return cfg
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 21, 55, 0, 0, time.UTC)
}

func risingCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
