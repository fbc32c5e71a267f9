package service

import (
	"context"
	"strings"
	"time"

	"market-briefing/internal/briefing/config"
	"market-briefing/internal/briefing/repository"
	"market-briefing/internal/entity"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/retry"
)

// GenerationFailed is returned by a stage whose text-generation call exhausted its retries.
const GenerationFailed = "Market analysis generation failed. Please try again later."

// NarrativeService turns an AnalysisResult into a title and body.
type NarrativeService interface {
	Compose(ctx context.Context, analysis *entity.AnalysisResult) entity.Briefing
}

// NarrativeOption customizes a narrative service.
type NarrativeOption func(*narrativeService)

// WithSleep replaces the wait between retries.
func WithSleep(sleep retry.SleepFunc) NarrativeOption {
	return func(s *narrativeService) { s.policy.Sleep = sleep }
}

// WithClock replaces the clock used for dates in titles and headings.
func WithClock(now func() time.Time) NarrativeOption {
	return func(s *narrativeService) { s.now = now }
}

type narrativeService struct {
	cfg       *config.Config
	log       *logger.Logger
	generator repository.TextGenerator
	policy    retry.Policy
	now       func() time.Time
}

// NewNarrativeService creates a NarrativeService retrying each call up to
// ai.max_retries times with a base*2^attempt wait.
func NewNarrativeService(cfg *config.Config, log *logger.Logger, generator repository.TextGenerator, opts ...NarrativeOption) NarrativeService {
	s := &narrativeService{
		cfg:       cfg,
		log:       log,
		generator: generator,
		policy:    retry.NewPolicy(cfg.AI.MaxRetries, cfg.AI.BaseBackoff),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compose runs the commentary stage, then the title stage. An unusable commentary
// switches to the deterministic fallback composer; an unusable title alone is
// replaced by the fallback title.
func (s *narrativeService) Compose(ctx context.Context, analysis *entity.AnalysisResult) entity.Briefing {
	now := s.now()

	commentary := s.GenerateStage(ctx, "commentary", repository.BuildMarketCommentaryPrompt(now, analysis))
	if !usable(commentary) {
		s.log.WarnContext(ctx, "Commentary unavailable, composing fallback content")
		title, body := ComposeFallback(now, analysis)
		return entity.Briefing{Title: StripEmphasis(title), Body: StripEmphasis(body), Fallback: true}
	}

	title := firstLine(s.GenerateStage(ctx, "title", repository.BuildTitlePrompt(commentary)))
	if !usable(title) {
		s.log.WarnContext(ctx, "Title unavailable, using fallback title")
		title = FallbackTitle(now, analysis)
	}

	body := ComposeContent(now, analysis, commentary)
	return entity.Briefing{Title: StripEmphasis(title), Body: StripEmphasis(body)}
}

// GenerateStage calls the generator under the retry policy. It never fails: once
// retries run out it returns GenerationFailed.
func (s *narrativeService) GenerateStage(ctx context.Context, stage, prompt string) string {
	policy := s.policy
	policy.OnRetry = func(attempt int, wait time.Duration, err error) {
		s.log.WarnContext(ctx, "Text generation failed, retrying",
			logger.StringField("stage", stage),
			logger.IntField("attempt", attempt+1),
			logger.IntField("max_attempts", s.cfg.AI.MaxRetries),
			logger.DurationField("wait", wait),
			logger.ErrorField(err),
		)
	}

	var text string
	err := retry.Do(ctx, policy, func(ctx context.Context, _ int) error {
		out, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Text generation exhausted retries", logger.StringField("stage", stage), logger.ErrorField(err))
		return GenerationFailed
	}

	return strings.TrimSpace(StripEmphasis(text))
}

func usable(text string) bool {
	return strings.TrimSpace(text) != "" && text != GenerationFailed
}

func firstLine(text string) string {
	if text == GenerationFailed {
		return text
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(strings.TrimSpace(line), `"#`)
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
