package service

import "market-briefing/internal/entity"

// BuildAnalysis assembles the narrative input. The gainer is the highest change in
// the gainers snapshot, the loser the lowest in losers and the active pick the
// highest in most_active. News is truncated to entity.MaxAnalysisNews.
func BuildAnalysis(data entity.MarketData, news []entity.NewsItem, recs []entity.Recommendation) *entity.AnalysisResult {
	if len(news) > entity.MaxAnalysisNews {
		news = news[:entity.MaxAnalysisNews]
	}
	if recs == nil {
		recs = []entity.Recommendation{}
	}
	if news == nil {
		news = []entity.NewsItem{}
	}

	return &entity.AnalysisResult{
		BiggestGainer:   biggestMover(data[entity.CategoryGainers].Quotes, true),
		BiggestLoser:    biggestMover(data[entity.CategoryLosers].Quotes, false),
		BiggestActive:   biggestMover(data[entity.CategoryMostActive].Quotes, true),
		News:            news,
		Recommendations: recs,
	}
}

func biggestMover(quotes []entity.Quote, highest bool) *entity.Quote {
	if len(quotes) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(quotes); i++ {
		if highest && quotes[i].ChangePct > quotes[best].ChangePct {
			best = i
		}
		if !highest && quotes[i].ChangePct < quotes[best].ChangePct {
			best = i
		}
	}
	q := quotes[best]
	return &q
}
