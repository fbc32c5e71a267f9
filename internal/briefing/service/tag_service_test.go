package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"market-briefing/internal/entity"
)

func TestGenerateTagsIsDeterministic(t *testing.T) {
	body := "Stocks rose on a broad rally while bond yields fell."
	recs := []entity.Recommendation{{Symbol: "NVDA", Name: "NVIDIA Corp."}}

	first := GenerateTags(body, recs, fixedClock())
	second := GenerateTags(body, recs, fixedClock())

	assert.Equal(t, first, second)
	assert.True(t, sort.StringsAreSorted(first))
	assert.LessOrEqual(t, len(first), MaxTags)
}

func TestGenerateTagsIncludesDatesAndBase(t *testing.T) {
	tags := GenerateTags("", nil, fixedClock())

	assert.Contains(t, tags, "2025-03")
	assert.Contains(t, tags, "2025-03-14")
	assert.Contains(t, tags, "daily briefing")
	assert.Contains(t, tags, "market briefing")
	assert.Contains(t, tags, "stock market")
	assert.Len(t, tags, len(baseTags)+4)
}

func TestGenerateTagsMatchesKeywords(t *testing.T) {
	tags := GenerateTags("Treasury BOND prices climbed amid VOLATILITY.", nil, fixedClock())

	assert.Contains(t, tags, "treasuries")
	assert.Contains(t, tags, "volatile market")
	assert.NotContains(t, tags, "crude oil")
}

func TestGenerateTagsCapped(t *testing.T) {
	body := "Stocks rose and fell. Volatility, commodities, bond and currency moves."
	recs := []entity.Recommendation{
		{Symbol: "AAA", Name: "Alpha"},
		{Symbol: "BBB", Name: "Beta"},
		{Symbol: "CCC", Name: "Gamma"},
	}

	tags := GenerateTags(body, recs, fixedClock())

	assert.Len(t, tags, MaxTags)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "nvidiacorp", Slug("NVIDIA Corp."))
	assert.Equal(t, "brkb", Slug("BRK-B"))
	assert.Equal(t, "", Slug(" - "))
}
