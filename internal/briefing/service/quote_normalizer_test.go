package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
)

func TestNormalizeTable(t *testing.T) {
	html := tableHTML(moversHeaders,
		[]string{"NVDA", "NVIDIA Corporation", "120.50", "+6.20", "+5.42%", "310.5M"},
		[]string{"ACME", "Acme Corp", "12.00", "-0.40", "-3.23%", "N/A"},
		[]string{"NVDA", "NVIDIA duplicate", "1", "0", "0%", "1"},
	)

	quotes, err := NormalizeTable(entity.CategoryGainers, html)
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "NVDA", quotes[0].Symbol)
	assert.Equal(t, "NVIDIA Corporation", quotes[0].Name)
	assert.Equal(t, "120.50", quotes[0].Price)
	assert.InDelta(t, 120.5, quotes[0].PriceValue, 1e-9)
	assert.InDelta(t, 5.42, quotes[0].ChangePct, 1e-9)
	assert.InDelta(t, 310.5e6, quotes[0].VolumeNum, 1e-3)
	assert.Equal(t, entity.CategoryGainers, quotes[0].Category)

	assert.InDelta(t, -3.23, quotes[1].ChangePct, 1e-9)
	assert.Equal(t, float64(0), quotes[1].VolumeNum)
}

func TestNormalizeTableEmbeddedPercent(t *testing.T) {
	html := tableHTML([]string{"Symbol", "Name", "Price"},
		[]string{"XOM", "Exxon Mobil", "92.17 -2.14 (-2.27%)"},
	)

	quotes, err := NormalizeTable(entity.CategoryTrending, html)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "92.17", quotes[0].Price)
	assert.InDelta(t, -2.27, quotes[0].ChangePct, 1e-9)
	assert.False(t, quotes[0].HasVolume)
}

func TestNormalizeTableMissingName(t *testing.T) {
	html := tableHTML([]string{"Symbol", "Price", "% Change"},
		[]string{"AAPL", "190.00", "+1.00%"},
	)

	_, err := NormalizeTable(entity.CategoryLosers, html)

	var dsErr *entity.DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, entity.CategoryLosers, dsErr.Category)
	assert.ErrorIs(t, err, entity.ErrMissingColumns)
}

func TestNormalizeTableEmpty(t *testing.T) {
	_, err := NormalizeTable(entity.CategoryGainers, tableHTML(moversHeaders))
	assert.ErrorIs(t, err, entity.ErrEmptyResult)

	_, err = NormalizeTable(entity.CategoryGainers, "<html><body><p>blocked</p></body></html>")
	assert.ErrorIs(t, err, entity.ErrEmptyResult)
}

func TestMarketDataServiceIsolatesCategoryFailures(t *testing.T) {
	repo := &fakePageRepo{
		pages: map[entity.Category]string{
			entity.CategoryGainers: tableHTML(moversHeaders, []string{"AAA", "Alpha", "10", "+1", "+11.00%", "1M"}),
			entity.CategoryLosers:  tableHTML([]string{"Symbol", "Price"}, []string{"BBB", "5"}),
		},
	}
	svc := NewMarketDataService(testConfig(), logger.NewNop(), repo)

	data := svc.Collect(context.Background())

	require.Len(t, data, len(entity.DefaultCategories))
	assert.Len(t, data[entity.CategoryGainers].Quotes, 1)
	assert.True(t, data[entity.CategoryLosers].Empty())
	assert.True(t, data[entity.CategoryMostActive].Empty())
	assert.Equal(t, 1, data.TotalQuotes())
}
