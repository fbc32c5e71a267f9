package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"market-briefing/internal/briefing/repository"
	"market-briefing/internal/entity"
)

var emphasisReplacer = strings.NewReplacer("*", "", "`", "", "__", "", "~~", "")

// StripEmphasis removes markdown emphasis markers from generated text.
func StripEmphasis(s string) string {
	return emphasisReplacer.Replace(s)
}

// FallbackTitle is used whenever no generated title is available.
func FallbackTitle(now time.Time, analysis *entity.AnalysisResult) string {
	date := now.Format("2006-01-02")
	if analysis.BiggestGainer != nil && analysis.BiggestLoser != nil {
		return fmt.Sprintf("%s Global Market: %s↑ vs %s↓", date, analysis.BiggestGainer.Name, analysis.BiggestLoser.Name)
	}
	return fmt.Sprintf("%s Global Market Trends", date)
}

// ComposeFallback builds a title and body straight from the analysis without any
// generated text, so a run always has publishable content.
func ComposeFallback(now time.Time, analysis *entity.AnalysisResult) (string, string) {
	title := FallbackTitle(now, analysis)

	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	b.WriteString("Here is a look at today's market.\n\nKey market indicators:\n")
	if q := analysis.BiggestGainer; q != nil {
		b.WriteString(fmt.Sprintf("- Leading gainer: %s (%s) %s\n", q.Name, q.Symbol, formatPct(q.ChangePct)))
	}
	if q := analysis.BiggestLoser; q != nil {
		b.WriteString(fmt.Sprintf("- Leading loser: %s (%s) %s\n", q.Name, q.Symbol, formatPct(q.ChangePct)))
	}
	if q := analysis.BiggestActive; q != nil {
		b.WriteString(fmt.Sprintf("- Most active: %s (%s) %s\n", q.Name, q.Symbol, formatPct(q.ChangePct)))
	}

	if len(analysis.News) > 0 {
		b.WriteString("\nMajor market news:\n")
		for _, item := range analysis.News {
			b.WriteString("- " + strings.TrimSpace(item.Title) + "\n")
		}
	}

	if len(analysis.Recommendations) > 0 {
		b.WriteString("\nToday's picks:\n")
		for i, rec := range analysis.Recommendations {
			b.WriteString(fmt.Sprintf(`
%d. %s (%s)
- Price: %s
- Change: %s
- Score: %.1f
- RSI: %.2f
- MACD: %.2f
- Volume: %s
- Market cap: %s
- Sector: %s
- Industry: %s
`, i+1, rec.Name, rec.Symbol, orNA(rec.Price), formatPct(rec.ChangePct), rec.Score, rec.RSI, rec.MACD,
				orNA(rec.Volume), repository.FormatMarketCap(rec.MarketCap), orNA(rec.Sector), orNA(rec.Industry)))
		}
	}

	b.WriteString("\n" + strategySection())
	return title, strings.TrimSpace(b.String())
}

// ComposeContent assembles the success-path body in a fixed section order. Sections
// without data are left out rather than rendered empty.
func ComposeContent(now time.Time, analysis *entity.AnalysisResult, commentary string) string {
	sections := []string{
		fmt.Sprintf("# [Picks] %s Today's Stock Picks", now.Format("2006-01-02")),
		fmt.Sprintf("Hello, here are the stocks that fit the major moves in global markets on %s.", now.Format("January 2")),
		marketTrendSection(analysis),
	}
	if c := strings.TrimSpace(commentary); c != "" {
		sections = append(sections, "## Market Commentary\n\n"+c)
	}
	sections = append(sections,
		recommendationsSection(analysis.Recommendations),
		newsSection(analysis.News),
		strategySection(),
	)

	var kept []string
	for _, s := range sections {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}

func marketTrendSection(analysis *entity.AnalysisResult) string {
	gainer, loser := analysis.BiggestGainer, analysis.BiggestLoser
	if gainer == nil && loser == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Market Trends\n")
	if gainer != nil && loser != nil {
		b.WriteString(fmt.Sprintf("\nToday's market showed a clear contrast between %s and %s.\n", gainer.Name, loser.Name))
	}
	if gainer != nil {
		b.WriteString(fmt.Sprintf(`
### Leading Gainer
%s (%s) moved %s today and trades at %s. A move this strong suggests the market's attention is concentrated on the name.
`, gainer.Name, gainer.Symbol, formatPct(gainer.ChangePct), orNA(gainer.Price)))
	}
	if loser != nil {
		b.WriteString(fmt.Sprintf(`
### Stock to Watch
%s (%s) moved %s and trades at %s. It needs close monitoring to tell a short-term correction from a longer weakness.
`, loser.Name, loser.Symbol, formatPct(loser.ChangePct), orNA(loser.Price)))
	}
	return b.String()
}

func recommendationsSection(recs []entity.Recommendation) string {
	if len(recs) == 0 {
		return ""
	}
	parts := []string{
		"## Today's Promising Stocks",
		"After weighing the overall market, the following stocks may offer opportunities worth a closer look:",
	}
	for i, rec := range recs {
		parts = append(parts, formatRecommendation(i+1, rec))
	}
	return strings.Join(parts, "\n\n")
}

func formatRecommendation(index int, rec entity.Recommendation) string {
	sector, industry := orNA(rec.Sector), orNA(rec.Industry)
	change := round2(rec.ChangePct)

	header := fmt.Sprintf("### %d. %s (%s)\nTrading at %s with a %.2f%% move, %s belongs to the %s industry in the %s sector.",
		index, rec.Name, rec.Symbol, orNA(rec.Price), change, rec.Name, industry, sector)

	technical := fmt.Sprintf(`Technical points:
- RSI: %.2f %s
- MACD: %.2f %s
- Volume: %s %s
- Market cap: %s (%s)`,
		rec.RSI, InterpretRSI(rec.RSI, change, industry),
		rec.MACD, InterpretMACD(rec.MACD, change),
		orNA(rec.Volume), InterpretVolume(rec.Volume),
		repository.FormatMarketCap(rec.MarketCap), InterpretMarketCap(rec.MarketCap))

	environment := fmt.Sprintf("Industry environment:\n\n%s\n\nThe %s industry in particular %s\n\nAs for %s, %s",
		IndustryOutlook(rec.Sector), industry, SectorTrend(rec.Sector), rec.Name, CompanyPositioning(change))

	overall := "Overall assessment:\n\n" + InterpretScore(round2(rec.Score), rec.Name, industry, change)

	return strings.Join([]string{header, technical, environment, overall}, "\n\n")
}

func newsSection(news []entity.NewsItem) string {
	if len(news) == 0 {
		return ""
	}
	lines := make([]string, 0, len(news))
	for _, item := range news {
		lines = append(lines, "- "+strings.TrimSpace(item.Title))
	}
	return "## Major Market News\n\nToday's key headlines can move both the broad market and the picks above:\n\n" + strings.Join(lines, "\n")
}

func strategySection() string {
	return `## Investment Strategy

Given current conditions, the following approaches may work well:

1. Selective buying: among the picks above, focus on names with a bright industry outlook and healthy technicals, and consider buying in tranches.

2. Stay diversified: when volatility is high, spreading exposure across industries manages risk better than concentrating on one sector.

3. Use technical indicators: refer to RSI and MACD for timing around overbought and oversold zones.

This analysis is provided for information only and is not an investment recommendation.

Any investment decision is your own judgment and responsibility.`
}

// InterpretRSI describes the RSI zone of a pick.
func InterpretRSI(rsi, changePct float64, industry string) string {
	switch {
	case rsi > 70:
		return fmt.Sprintf("is in overbought territory. That often hints at a short-term pullback, but together with a %.2f%% move it points to a very strong trend, and strong markets frequently keep rising while RSI stays above 70, especially alongside growth in the %s industry.", changePct, industry)
	case rsi < 30:
		return fmt.Sprintf("is in oversold territory, which raises the odds of a technical rebound. The market may be overly pessimistic here, and given the long-term value of the %s industry the current price can be read as an entry opportunity.", industry)
	}

	var stage string
	switch {
	case rsi >= 40 && rsi < 60:
		stage = "can be read as the early stage of an uptrend."
	case rsi >= 30 && rsi < 40:
		stage = "suggests a downtrend easing and preparing to rebound."
	case rsi >= 60 && rsi < 70:
		stage = "suggests upward momentum is strengthening."
	default:
		stage = "calls for neutral observation."
	}
	return fmt.Sprintf("sits in the neutral zone, a balanced state without excess optimism or pessimism, and a reading of %.2f %s", rsi, stage)
}

// InterpretMACD describes the MACD direction of a pick.
func InterpretMACD(macd, changePct float64) string {
	if macd > 0 {
		var phase string
		switch {
		case changePct < 10:
			phase = "the trend looks early with room to run."
		case changePct > 30:
			phase = "a strong uptrend is established, but short-term overheating needs checking."
		default:
			phase = "the uptrend continues with momentum intact."
		}
		return fmt.Sprintf("is positive, so the short-term average sits above the long-term average and the trend points up. Combined with the recent %.2f%% move, %s", changePct, phase)
	}

	magnitude := math.Abs(macd)
	var reading string
	switch {
	case magnitude < 0.5:
		reading = "signals mild selling pressure, a stage to look for a rebound."
	case magnitude > 1:
		reading = "shows a clear downtrend, so it is better to wait for a reversal signal."
	default:
		reading = "shows a moderate downtrend, although other indicators such as RSI leave room for a technical rebound."
	}
	return fmt.Sprintf("is negative, and a magnitude of %.2f %s", magnitude, reading)
}

// InterpretVolume reads a raw volume string; M or B suffixes count as heavy volume.
func InterpretVolume(volume string) string {
	switch {
	case strings.TrimSpace(volume) == "":
		return "volume information is unavailable."
	case strings.ContainsAny(volume, "MB"):
		return "is heavy volume, showing strong market interest."
	default:
		return "is a moderate volume consistent with stable price formation."
	}
}

// InterpretMarketCap classifies a market capitalization into size tiers.
func InterpretMarketCap(marketCap float64) string {
	switch {
	case marketCap <= 0:
		return "market cap information unavailable"
	case marketCap > 10e9:
		return "a large cap with stable enterprise value"
	case marketCap > 1e9:
		return "a mid cap combining growth and stability"
	default:
		return "a small cap with high growth potential"
	}
}

// IndustryOutlook returns the outlook paragraph for a sector.
func IndustryOutlook(sector string) string {
	switch {
	case strings.Contains(sector, "Healthcare"):
		return "Healthcare has strong long-term growth prospects driven by aging populations and advances in medical technology."
	case strings.Contains(sector, "Technology"):
		return "Technology keeps growing as digital transformation accelerates and AI adoption widens."
	case strings.Contains(sector, "Consumer"):
		return "Consumer sectors deserve attention for recovery expectations and shifting spending patterns."
	case strings.Contains(sector, "Financial"):
		return "Financials react sensitively to the rate environment and call for close observation right now."
	case strings.Contains(sector, "Basic Materials"):
		return "Basic materials are in focus on global supply chain issues and expanding infrastructure investment."
	}
	if sector == "" {
		sector = "General"
	}
	return fmt.Sprintf("Within the %s sector, the stock's market share and competitiveness deserve evaluation.", sector)
}

// SectorTrend completes a sentence about the structural trend of a sector.
func SectorTrend(sector string) string {
	switch {
	case strings.Contains(sector, "Technology") || strings.Contains(sector, "Healthcare"):
		return "is expected to grow structurally on recovering supply chains and faster digital transformation."
	case strings.Contains(sector, "Financial") || strings.Contains(sector, "Real Estate"):
		return "is affected by changing rates and inflation, so a selective approach is needed."
	case strings.Contains(sector, "Consumer"):
		return "reacts sensitively to consumer sentiment and the pace of economic recovery."
	default:
		return "is going through structural change driven by industry restructuring and policy shifts."
	}
}

// CompanyPositioning describes a company by the size of its latest move.
func CompanyPositioning(changePct float64) string {
	switch {
	case changePct > 20:
		return "the company is recognized for high growth built on innovative technology and a differentiated business model."
	case changePct > -5 && changePct < 5:
		return "the company has defensive qualities backed by stable earnings and a solid market share."
	case changePct < -5:
		return "the current price correction may be an opportunity relative to the company's value."
	default:
		return "the market is re-rating the company on results above the industry average."
	}
}

// InterpretScore renders the overall assessment for a composite score:
// above 80 highly promising, above 60 promising, otherwise neutral.
func InterpretScore(score float64, name, industry string, changePct float64) string {
	intro := fmt.Sprintf("With a composite score of %.2f, in the current market", score)

	var analysis, strategy string
	switch {
	case score > 80:
		analysis = fmt.Sprintf("this looks like a highly promising opportunity. The score reflects momentum, industry trend and market positioning together, and it means current conditions suit %s very well.", name)
		strategy = fmt.Sprintf("Given the recent %.2f%% rise, buying in two or three tranches manages risk better than committing everything at once, adding on a 5-7%% pullback.", changePct)
	case score > 60:
		analysis = fmt.Sprintf("this is a promising candidate. It holds a comparative advantage within the %s industry, with technicals and fundamentals in balance.", industry)
		strategy = "It fits a portfolio on a mid to long-term view, and the current price range is a reasonable entry for a three to six month horizon. Keep monitoring RSI and MACD while building the position gradually."
	default:
		var outlook string
		if changePct < 0 {
			outlook = "a further short-term correction cannot be ruled out, so it is safer to wait for a clear bottom."
		} else {
			outlook = "the sustainability of the uptrend needs further confirmation."
		}
		analysis = fmt.Sprintf("this is a neutral name to monitor rather than buy aggressively. Given the recent %.2f%% move of %s, %s", changePct, name, outlook)
		strategy = fmt.Sprintf("A small initial position, added to as the trend confirms, suits this stage. Consider the overall flow of the %s industry and the earnings calendar of %s.", industry, name)
	}

	return fmt.Sprintf("%s %s\n\nStrategy:\n%s", intro, analysis, strategy)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
