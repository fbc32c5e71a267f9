package service

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"market-briefing/internal/entity"
	"market-briefing/pkg/utils"
)

// MaxTags bounds the generated tag list.
const MaxTags = 30

var baseTags = []string{
	"stock market", "securities", "stock investing", "us stocks", "global economy",
	"market analysis", "investment info", "stock info", "market trends", "financial markets",
}

type tagRule struct {
	keywords []string
	tags     []string
}

var marketConditionRules = []tagRule{
	{
		keywords: []string{"rise", "rose", "surge", "rally", "strength", "buy"},
		tags:     []string{"stocks rising", "buying strategy", "bull market", "strong market", "buying opportunity"},
	},
	{
		keywords: []string{"fall", "fell", "drop", "plunge", "weakness", "sell"},
		tags:     []string{"stocks falling", "selling strategy", "bear market", "weak market", "risk management"},
	},
	{
		keywords: []string{"volatility", "uncertainty", "risk"},
		tags:     []string{"volatile market", "risk management", "investment strategy", "asset management", "portfolio"},
	},
}

var assetClassRules = []tagRule{
	{keywords: []string{"stock"}, tags: []string{"individual stocks", "growth stocks", "value stocks", "dividend stocks", "tech stocks"}},
	{keywords: []string{"commodit"}, tags: []string{"commodities", "gold", "silver", "crude oil", "raw materials"}},
	{keywords: []string{"bond"}, tags: []string{"bonds", "treasuries", "corporate bonds", "interest rates", "bond investing"}},
	{keywords: []string{"currency", "exchange rate"}, tags: []string{"exchange rates", "dollar", "forex market", "dollar index", "forex"}},
}

// GenerateTags derives the tag list of a briefing from its body and recommendations.
// The result depends only on its inputs and the calendar day of now.
func GenerateTags(body string, recs []entity.Recommendation, now time.Time) []string {
	selected := make(map[string]struct{})
	add := func(tags ...string) {
		for _, t := range tags {
			selected[t] = struct{}{}
		}
	}

	add(baseTags...)
	for _, rules := range [][]tagRule{marketConditionRules, assetClassRules} {
		for _, rule := range rules {
			if utils.ContainsFold(body, rule.keywords...) {
				add(rule.tags...)
			}
		}
	}

	add(now.Format("2006-01"), now.Format("2006-01-02"), "daily briefing", "market briefing")

	for _, rec := range recs {
		if slug := Slug(rec.Name); slug != "" {
			add(slug)
		}
		if slug := Slug(rec.Symbol); slug != "" {
			add(slug)
		}
	}

	tags := make([]string, 0, len(selected))
	for t := range selected {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

// Slug keeps the letters and digits of s, lower-cased.
func Slug(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
