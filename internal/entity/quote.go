package entity

// Category names a market-movers table.
type Category string

const (
	CategoryGainers    Category = "gainers"
	CategoryLosers     Category = "losers"
	CategoryMostActive Category = "most_active"
	CategoryTrending   Category = "trending"
	CategoryTopETFs    Category = "top_etfs"
)

// DefaultCategories is the collection order used when the configuration does not override it.
var DefaultCategories = []Category{
	CategoryGainers,
	CategoryLosers,
	CategoryTrending,
	CategoryMostActive,
	CategoryTopETFs,
}

// Quote is one normalized row of a market-movers table.
type Quote struct {
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name"`
	Price      string   `json:"price"`
	PriceValue float64  `json:"price_value"`
	ChangePct  float64  `json:"change_pct"`
	Volume     string   `json:"volume,omitempty"`
	VolumeNum  float64  `json:"volume_num,omitempty"`
	HasVolume  bool     `json:"has_volume"`
	Category   Category `json:"category"`
}

// CategorySnapshot holds the quotes collected for one category. Quotes may be empty
// when the category failed to collect.
type CategorySnapshot struct {
	Category Category `json:"category"`
	Quotes   []Quote  `json:"quotes"`
}

// Empty reports whether the snapshot has no quotes.
func (s CategorySnapshot) Empty() bool {
	return len(s.Quotes) == 0
}

// MarketData is the per-run collection of snapshots keyed by category.
type MarketData map[Category]CategorySnapshot

// TotalQuotes returns the number of quotes over every category.
func (m MarketData) TotalQuotes() int {
	total := 0
	for _, s := range m {
		total += len(s.Quotes)
	}
	return total
}
