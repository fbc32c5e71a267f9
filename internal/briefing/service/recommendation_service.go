package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/briefing/repository"
	"market-briefing/internal/entity"
	"market-briefing/pkg/indicator"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/utils"
)

// RecommendationService ranks candidate stocks from the collected snapshots.
type RecommendationService interface {
	Recommend(ctx context.Context, data entity.MarketData) []entity.Recommendation
}

type recommendationService struct {
	cfg         *config.Config
	log         *logger.Logger
	historyRepo repository.PriceHistoryRepository
}

// NewRecommendationService creates a RecommendationService.
func NewRecommendationService(cfg *config.Config, log *logger.Logger, historyRepo repository.PriceHistoryRepository) RecommendationService {
	return &recommendationService{cfg: cfg, log: log, historyRepo: historyRepo}
}

// ScoreInput holds the per-candidate readings the composite score is built from.
type ScoreInput struct {
	ChangePct  float64
	Volume     float64
	MeanVolume float64
	RSI        float64
	MACD       indicator.MACDResult
}

// Score computes the additive composite score. Overbought RSI earns no bonus.
func Score(w config.ScoreWeights, in ScoreInput) float64 {
	score := 0.0
	if in.ChangePct > 0 {
		score += w.MomentumFactor * in.ChangePct
	}
	if in.Volume > in.MeanVolume {
		score += w.VolumeBonus
	}
	switch {
	case in.RSI < w.OversoldRSI:
		score += w.OversoldBonus
	case in.RSI <= w.OverboughtRSI:
		score += w.NeutralBonus
	}
	if in.MACD.Bullish() {
		score += w.MACDBonus
	}
	return score
}

// SelectCandidates merges every non-ETF snapshot in category order, then keeps the
// top pool quotes by change percent. Ties and duplicate symbols keep the first occurrence.
func SelectCandidates(order []entity.Category, data entity.MarketData, pool int) []entity.Quote {
	var merged []entity.Quote
	for _, category := range order {
		if category == entity.CategoryTopETFs {
			continue
		}
		for _, q := range data[category].Quotes {
			q.Category = category
			merged = append(merged, q)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ChangePct > merged[j].ChangePct
	})

	seen := make(map[string]struct{}, len(merged))
	candidates := make([]entity.Quote, 0, pool)
	for _, q := range merged {
		if pool > 0 && len(candidates) >= pool {
			break
		}
		if _, ok := seen[q.Symbol]; ok {
			continue
		}
		seen[q.Symbol] = struct{}{}
		candidates = append(candidates, q)
	}
	return candidates
}

// Recommend scores candidates concurrently and returns the top K by score.
// A candidate whose history or indicators cannot be obtained is dropped.
func (s *recommendationService) Recommend(ctx context.Context, data entity.MarketData) []entity.Recommendation {
	candidates := SelectCandidates(s.cfg.Market.CategoryOrder(), data, s.cfg.Recommendation.CandidatePool)

	maxConcurrent := s.cfg.Recommendation.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		sem     = make(chan struct{}, maxConcurrent)
		results = make(map[string]entity.Recommendation, len(candidates))
	)

	for _, candidate := range candidates {
		wg.Add(1)
		q := candidate
		sem <- struct{}{}
		utils.GoSafe(func() {
			defer wg.Done()
			defer func() { <-sem }()

			rec, err := s.evaluate(ctx, q)
			if err != nil {
				s.log.WarnContext(ctx, "Skipping candidate",
					logger.StringField("symbol", q.Symbol),
					logger.StringField("category", string(q.Category)),
					logger.ErrorField(err),
				)
				return
			}

			mu.Lock()
			results[q.Symbol] = *rec
			mu.Unlock()
		})
	}
	wg.Wait()

	ranked := make([]entity.Recommendation, 0, len(results))
	for _, q := range candidates {
		if rec, ok := results[q.Symbol]; ok {
			ranked = append(ranked, rec)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k := s.cfg.Recommendation.Count; k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}

	s.log.InfoContext(ctx, "Recommendations ranked",
		logger.IntField("candidates", len(candidates)),
		logger.IntField("analysed", len(results)),
		logger.IntField("selected", len(ranked)),
	)
	return ranked
}

func (s *recommendationService) evaluate(ctx context.Context, q entity.Quote) (*entity.Recommendation, error) {
	history, err := s.historyRepo.GetHistory(ctx, q.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	if len(history.Bars) < s.cfg.YahooFinance.MinHistoryBars {
		return nil, fmt.Errorf("%w: %d bars, need %d", indicator.ErrInsufficientData, len(history.Bars), s.cfg.YahooFinance.MinHistoryBars)
	}

	closes := history.Closes()
	rsi, err := indicator.RSI(closes, indicator.DefaultRSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rsi: %w", err)
	}
	macd, err := indicator.MACD(closes, indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)
	if err != nil {
		return nil, fmt.Errorf("failed to compute macd: %w", err)
	}

	profile, err := s.historyRepo.GetProfile(ctx, q.Symbol)
	if err != nil {
		s.log.DebugContext(ctx, "Profile unavailable", logger.StringField("symbol", q.Symbol), logger.ErrorField(err))
		profile = &entity.CompanyProfile{}
	}

	score := Score(s.cfg.Recommendation.Weights, ScoreInput{
		ChangePct:  q.ChangePct,
		Volume:     q.VolumeNum,
		MeanVolume: indicator.Mean(history.Volumes()),
		RSI:        rsi,
		MACD:       macd,
	})

	return &entity.Recommendation{
		Symbol:    q.Symbol,
		Name:      q.Name,
		Price:     q.Price,
		ChangePct: q.ChangePct,
		Volume:    q.Volume,
		RSI:       rsi,
		MACD:      macd.MACD,
		Signal:    macd.Signal,
		Score:     score,
		Sector:    profile.Sector,
		Industry:  profile.Industry,
		MarketCap: profile.MarketCap,
		Category:  q.Category,
	}, nil
}
