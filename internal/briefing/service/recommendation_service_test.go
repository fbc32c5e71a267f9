package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/entity"
	"market-briefing/pkg/indicator"
	"market-briefing/pkg/logger"
)

func TestScoreOversoldBeatsNeutral(t *testing.T) {
	w := config.DefaultScoreWeights()
	base := ScoreInput{ChangePct: 4, Volume: 100, MeanVolume: 200, MACD: indicator.MACDResult{MACD: 1, Signal: 0.5}}

	oversold, neutral := base, base
	oversold.RSI = 25
	neutral.RSI = 50

	assert.GreaterOrEqual(t, Score(w, oversold)-Score(w, neutral), 5.0)
}

func TestScoreComponents(t *testing.T) {
	w := config.DefaultScoreWeights()

	tests := []struct {
		name string
		in   ScoreInput
		want float64
	}{
		{"negative change earns nothing", ScoreInput{ChangePct: -3, RSI: 80}, 0},
		{"momentum only", ScoreInput{ChangePct: 12, RSI: 75}, 6},
		{"volume above mean", ScoreInput{Volume: 2, MeanVolume: 1, RSI: 90}, 10},
		{"rsi boundaries are neutral", ScoreInput{RSI: 30}, 15},
		{"rsi 70 is neutral", ScoreInput{RSI: 70}, 15},
		{"bullish macd", ScoreInput{RSI: 71, MACD: indicator.MACDResult{MACD: 0.2, Signal: 0.1}}, 15},
		{"everything", ScoreInput{ChangePct: 10, Volume: 2, MeanVolume: 1, RSI: 20, MACD: indicator.MACDResult{MACD: 1}}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(w, tt.in), 1e-9)
		})
	}
}

func TestSelectCandidates(t *testing.T) {
	data := entity.MarketData{
		entity.CategoryGainers: {Quotes: []entity.Quote{
			{Symbol: "AAA", ChangePct: 9},
			{Symbol: "BBB", ChangePct: 4},
		}},
		entity.CategoryMostActive: {Quotes: []entity.Quote{
			{Symbol: "AAA", ChangePct: 9},
			{Symbol: "CCC", ChangePct: 7},
		}},
		entity.CategoryTopETFs: {Quotes: []entity.Quote{
			{Symbol: "ETF", ChangePct: 30},
		}},
	}

	got := SelectCandidates(entity.DefaultCategories, data, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "AAA", got[0].Symbol)
	assert.Equal(t, entity.CategoryGainers, got[0].Category)
	assert.Equal(t, "CCC", got[1].Symbol)
	assert.Equal(t, entity.CategoryMostActive, got[1].Category)
}

func TestRecommendRanksAndSkipsFailures(t *testing.T) {
	cfg := testConfig()
	cfg.Recommendation.Count = 2

	repo := &fakeHistoryRepo{
		histories: map[string][]float64{
			"UP":   risingCloses(40, 100, 1),
			"DOWN": risingCloses(40, 200, -1),
			"FLAT": risingCloses(40, 0, 0),
		},
		volumes: map[string]float64{"UP": 1e6, "DOWN": 3e6, "FLAT": 0},
		profiles: map[string]*entity.CompanyProfile{
			"UP": {MarketCap: 2e12, Sector: "Technology", Industry: "Semiconductors"},
		},
	}
	data := entity.MarketData{
		entity.CategoryGainers: {Quotes: []entity.Quote{
			{Symbol: "UP", Name: "Up Inc", ChangePct: 10, Volume: "2M", VolumeNum: 2e6},
			{Symbol: "DOWN", Name: "Down Inc", ChangePct: 5, Volume: "1M", VolumeNum: 1e6},
			{Symbol: "GONE", Name: "Gone Inc", ChangePct: 3},
		}},
		entity.CategoryLosers: {Quotes: []entity.Quote{
			{Symbol: "FLAT", Name: "Flat Inc", ChangePct: -4, Volume: "500K", VolumeNum: 5e5},
		}},
		entity.CategoryTopETFs: {Quotes: []entity.Quote{
			{Symbol: "ETF", ChangePct: 50},
		}},
	}

	recs := NewRecommendationService(cfg, logger.NewNop(), repo).Recommend(context.Background(), data)

	require.Len(t, recs, 2)
	assert.Equal(t, "UP", recs[0].Symbol)
	assert.InDelta(t, 30, recs[0].Score, 1e-9)
	assert.Equal(t, "Technology", recs[0].Sector)
	assert.Equal(t, entity.CategoryGainers, recs[0].Category)

	assert.Equal(t, "FLAT", recs[1].Symbol)
	assert.InDelta(t, 25, recs[1].Score, 1e-9)
	assert.InDelta(t, 50, recs[1].RSI, 1e-9)
	assert.Equal(t, "", recs[1].Sector)

	assert.NotContains(t, repo.calls, "ETF")
	assert.Contains(t, repo.calls, "GONE")
}

func TestRecommendSkipsShortHistory(t *testing.T) {
	repo := &fakeHistoryRepo{histories: map[string][]float64{"NEW": risingCloses(20, 10, 1)}}
	data := entity.MarketData{
		entity.CategoryGainers: {Quotes: []entity.Quote{{Symbol: "NEW", ChangePct: 40}}},
	}

	recs := NewRecommendationService(testConfig(), logger.NewNop(), repo).Recommend(context.Background(), data)

	assert.Empty(t, recs)
}

func TestRecommendWithHistorySourceDown(t *testing.T) {
	repo := &fakeHistoryRepo{}
	data := entity.MarketData{
		entity.CategoryGainers: {Quotes: []entity.Quote{{Symbol: "AAA", ChangePct: 12}}},
		entity.CategoryLosers:  {Quotes: []entity.Quote{{Symbol: "BBB", ChangePct: -8}}},
	}

	recs := NewRecommendationService(testConfig(), logger.NewNop(), repo).Recommend(context.Background(), data)

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.ElementsMatch(t, []string{"AAA", "BBB"}, repo.calls)
}
