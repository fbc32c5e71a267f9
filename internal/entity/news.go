package entity

// Importance is the priority tier assigned to a news headline.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Rank orders tiers high first.
func (i Importance) Rank() int {
	switch i {
	case ImportanceHigh:
		return 0
	case ImportanceMedium:
		return 1
	default:
		return 2
	}
}

// NewsItem is a headline collected for the run.
type NewsItem struct {
	Title      string     `json:"title"`
	Date       string     `json:"date"`
	Importance Importance `json:"importance"`
}
