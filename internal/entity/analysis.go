package entity

// MaxAnalysisNews bounds the news items carried into narrative generation.
const MaxAnalysisNews = 5

// AnalysisResult is the sole input of narrative generation.
// Each non-nil Biggest* field points at a quote taken from its source snapshot.
type AnalysisResult struct {
	BiggestGainer   *Quote           `json:"biggest_gainer,omitempty"`
	BiggestLoser    *Quote           `json:"biggest_loser,omitempty"`
	BiggestActive   *Quote           `json:"biggest_active,omitempty"`
	News            []NewsItem       `json:"news"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Briefing is the publishable output of a run.
type Briefing struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Tags     []string `json:"tags"`
	Fallback bool     `json:"fallback"`
}
