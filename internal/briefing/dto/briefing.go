package dto

import (
	"time"

	"market-briefing/internal/entity"
)

// StreamDataBriefing is the payload written to the briefing publish stream.
type StreamDataBriefing struct {
	RunID       string    `json:"run_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Tags        []string  `json:"tags"`
	Fallback    bool      `json:"fallback"`
	GeneratedAt time.Time `json:"generated_at"`
}

// RunBriefingRequest is the optional body of POST /api/v1/briefings.
type RunBriefingRequest struct {
	Publish *bool `json:"publish"`
}

// BriefingResponse is returned by the HTTP delivery.
type BriefingResponse struct {
	RunID     string                 `json:"run_id"`
	Briefing  entity.Briefing        `json:"briefing"`
	Published bool                   `json:"published"`
	Analysis  *entity.AnalysisResult `json:"analysis,omitempty"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
