package repository

import (
	"fmt"
	"strings"
	"time"

	"market-briefing/internal/entity"
)

// BuildMarketCommentaryPrompt builds the first-stage prompt asking for a data-driven
// market commentary covering news, the biggest movers and every recommendation.
func BuildMarketCommentaryPrompt(now time.Time, analysis *entity.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Using the market data below, write the %s market analysis and stock recommendation report.\n", now.Format("2006-01-02")))
	b.WriteString("This is the first step and must stay objective, professional and grounded in the data.\n\nKey market indicators:\n")

	if len(analysis.News) > 0 {
		b.WriteString("\n1. Major market news (impact on the market and on individual stocks)\n")
		for _, item := range analysis.News {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", strings.ToUpper(string(item.Importance)), item.Title))
		}
	}

	writeMover(&b, "2. Leading gainer deep dive", "Gain", analysis.BiggestGainer,
		"what drove the rise, how the company is positioned in its industry, and the outlook")
	writeMover(&b, "3. Leading loser deep dive", "Loss", analysis.BiggestLoser,
		"structural versus short-term causes of the drop and the chance of a rebound")
	writeMover(&b, "4. Most active stock deep dive", "Change", analysis.BiggestActive,
		"why volume was unusual and how it relates to the price action")

	if len(analysis.Recommendations) > 0 {
		b.WriteString(`
5. Recommended stocks (technical and fundamental view)
For each stock cover:
- what the technical indicators imply
- investment points and the risks to watch
- competitiveness within its industry
- how recent news affects it
`)
		for i, rec := range analysis.Recommendations {
			b.WriteString(fmt.Sprintf(`
%d. %s (%s)
- Price: %s
- Change: %.2f%%
- Technical:
  RSI: %.2f (overbought >70, oversold <30)
  MACD: %.2f
- Fundamental:
  Market cap: %s
  Sector: %s
  Industry: %s
- Data points:
  Volume: %s
  Score: %.1f
`, i+1, rec.Name, rec.Symbol, rec.Price, rec.ChangePct, rec.RSI, rec.MACD,
				FormatMarketCap(rec.MarketCap), orNA(rec.Sector), orNA(rec.Industry), orNA(rec.Volume), rec.Score))
		}
	}

	b.WriteString(`
6. Overall market analysis and strategy
- where the market stands right now
- how key economic indicators relate to the market flow
- short and mid term outlook
- approach per sector
- risk factors and how to respond

Requirements:
- analyse thoroughly and explain what each indicator and data point implies
- separate correlation from causation
- give a clear and balanced rationale for every recommended stock
- write full paragraphs, no bullet-only summaries
- do not use asterisks, emphasis markers or emoji
`)

	return b.String()
}

// BuildTitlePrompt builds the second-stage prompt asking for a single-line title
// derived from the commentary.
func BuildTitlePrompt(commentary string) string {
	return fmt.Sprintf(`Write one title for a blog post based on the market commentary below.

Market commentary: %s

Title requirements:
- a single line, no explanation of how the title was written
- highlight the key issue and its impact on the market
- reflect the overall market flow rather than a single stock name
- do not use asterisks or other special characters

Example titles:
- [Picks] Rate uncertainty drags market 1.8%% lower... which stocks look promising?
- [Picks] Tech weakness vs financial strength... where to look in a split market?
- [Picks] 10-year yield breaks 4.5%%... which stocks deserve attention?
`, commentary)
}

func writeMover(b *strings.Builder, heading, changeLabel string, q *entity.Quote, focus string) {
	if q == nil {
		return
	}
	b.WriteString(fmt.Sprintf(`
%s
- Stock: %s (%s)
- Price: %s
- %s: %.2f%%
- Volume: %s
- Focus: %s
`, heading, q.Name, q.Symbol, q.Price, changeLabel, q.ChangePct, orNA(q.Volume), focus))
}

// FormatMarketCap renders a market capitalization with a T/B/M suffix, or N/A when unknown.
func FormatMarketCap(v float64) string {
	switch {
	case v <= 0:
		return "N/A"
	case v >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
