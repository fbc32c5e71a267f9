package entity

// PriceBar is one daily OHLCV bar.
type PriceBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// PriceHistory is the ordered daily series for one symbol.
type PriceHistory struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
}

// Closes returns the close series in chronological order.
func (h *PriceHistory) Closes() []float64 {
	out := make([]float64, len(h.Bars))
	for i, b := range h.Bars {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the volume series in chronological order.
func (h *PriceHistory) Volumes() []float64 {
	out := make([]float64, len(h.Bars))
	for i, b := range h.Bars {
		out[i] = b.Volume
	}
	return out
}

// CompanyProfile carries the static descriptive fields of a symbol.
// Empty strings mean the upstream did not provide the field.
type CompanyProfile struct {
	MarketCap float64 `json:"market_cap"`
	Sector    string  `json:"sector"`
	Industry  string  `json:"industry"`
}

// Recommendation is a scored candidate.
type Recommendation struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	ChangePct float64  `json:"change_pct"`
	Volume    string   `json:"volume"`
	RSI       float64  `json:"rsi"`
	MACD      float64  `json:"macd"`
	Signal    float64  `json:"signal"`
	Score     float64  `json:"score"`
	Sector    string   `json:"sector"`
	Industry  string   `json:"industry"`
	MarketCap float64  `json:"market_cap"`
	Category  Category `json:"category"`
}
