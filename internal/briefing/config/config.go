package config

import (
	"time"

	"market-briefing/internal/entity"
	"market-briefing/pkg/common"
	"market-briefing/pkg/config"
)

// Market holds the market-movers page sources.
type Market struct {
	Categories          map[string]string `mapstructure:"categories"`
	Order               []string          `mapstructure:"order"`
	UserAgent           string            `mapstructure:"user_agent"`
	RequestTimeout      time.Duration     `mapstructure:"request_timeout"`
	MaxRequestPerMinute int               `mapstructure:"max_request_per_minute"`
}

// CategoryOrder returns the configured categories in collection order.
func (m Market) CategoryOrder() []entity.Category {
	if len(m.Order) == 0 {
		return entity.DefaultCategories
	}
	out := make([]entity.Category, 0, len(m.Order))
	for _, c := range m.Order {
		out = append(out, entity.Category(c))
	}
	return out
}

// News holds the news feed configuration.
type News struct {
	FeedURL        string        `mapstructure:"feed_url"`
	MaxItems       int           `mapstructure:"max_items"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// YahooFinance holds the configuration for the historical price source.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	CrumbURL            string        `mapstructure:"crumb_url"`
	CookieURL           string        `mapstructure:"cookie_url"`
	HistoryRange        string        `mapstructure:"history_range"`
	HistoryInterval     string        `mapstructure:"history_interval"`
	MinHistoryBars      int           `mapstructure:"min_history_bars"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	ProfileCacheTTL     time.Duration `mapstructure:"profile_cache_ttl"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
}

// ScoreWeights are the additive weights of the composite score.
type ScoreWeights struct {
	MomentumFactor float64 `mapstructure:"momentum_factor"`
	VolumeBonus    float64 `mapstructure:"volume_bonus"`
	OversoldBonus  float64 `mapstructure:"oversold_bonus"`
	NeutralBonus   float64 `mapstructure:"neutral_bonus"`
	MACDBonus      float64 `mapstructure:"macd_bonus"`
	OversoldRSI    float64 `mapstructure:"oversold_rsi"`
	OverboughtRSI  float64 `mapstructure:"overbought_rsi"`
}

// Recommendation holds the scorer configuration.
type Recommendation struct {
	Count         int          `mapstructure:"count"`
	CandidatePool int          `mapstructure:"candidate_pool"`
	MaxConcurrent int          `mapstructure:"max_concurrent"`
	Weights       ScoreWeights `mapstructure:"weights"`
}

// AI holds the text-generation orchestration settings.
type AI struct {
	Provider    string        `mapstructure:"provider"`
	MaxRetries  int           `mapstructure:"max_retries"`
	Timeout     time.Duration `mapstructure:"timeout"`
	BaseBackoff time.Duration `mapstructure:"base_backoff"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
}

// OpenAI holds the configuration for an OpenAI-compatible chat completions API.
type OpenAI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Publisher selects where finished briefings go: log, telegram or redis.
type Publisher struct {
	Kind   string `mapstructure:"kind"`
	Stream string `mapstructure:"stream"`
}

// Telegram holds configuration for the Telegram publisher.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Schedule holds the cron settings of the schedule command.
type Schedule struct {
	Cron        string `mapstructure:"cron"`
	TimeZone    string `mapstructure:"time_zone"`
	SkipWeekend bool   `mapstructure:"skip_weekend"`
}

// Config holds the full configuration for the briefing service.
type Config struct {
	App            config.App     `mapstructure:"app"`
	Logger         config.Logger  `mapstructure:"logger"`
	Redis          config.Redis   `mapstructure:"redis"`
	API            config.API     `mapstructure:"api"`
	Market         Market         `mapstructure:"market"`
	News           News           `mapstructure:"news"`
	YahooFinance   YahooFinance   `mapstructure:"yahoo_finance"`
	Recommendation Recommendation `mapstructure:"recommendation"`
	AI             AI             `mapstructure:"ai"`
	OpenAI         OpenAI         `mapstructure:"openai"`
	Gemini         Gemini         `mapstructure:"gemini"`
	Publisher      Publisher      `mapstructure:"publisher"`
	Telegram       Telegram       `mapstructure:"telegram"`
	Schedule       Schedule       `mapstructure:"schedule"`
}

// Default returns the configuration used for any key the config file leaves unset.
func Default() *Config {
	return &Config{
		App:    config.App{Name: "market-briefing", Env: "development"},
		Logger: config.Logger{Level: "info", Encoding: "json"},
		Redis:  config.Redis{Host: "localhost", Port: 6379, PoolSize: 10, StreamMaxLen: 1000},
		API:    config.API{Host: "0.0.0.0", Port: 8080},
		Market: Market{
			Categories: map[string]string{
				string(entity.CategoryGainers):    "https://finance.yahoo.com/gainers",
				string(entity.CategoryLosers):     "https://finance.yahoo.com/losers",
				string(entity.CategoryTrending):   "https://finance.yahoo.com/markets/stocks/trending",
				string(entity.CategoryMostActive): "https://finance.yahoo.com/most-active",
				string(entity.CategoryTopETFs):    "https://finance.yahoo.com/etfs",
			},
			UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			RequestTimeout:      10 * time.Second,
			MaxRequestPerMinute: 30,
		},
		News: News{
			FeedURL:        "https://news.google.com/rss/topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx6TVdZU0FtVnVHZ0pWVXlnQVAB?hl=en-US&gl=US&ceid=US:en",
			MaxItems:       20,
			RequestTimeout: 15 * time.Second,
		},
		YahooFinance: YahooFinance{
			BaseURL:             "https://query1.finance.yahoo.com",
			CrumbURL:            "https://query1.finance.yahoo.com/v1/test/getcrumb",
			CookieURL:           "https://fc.yahoo.com",
			HistoryRange:        "3mo",
			HistoryInterval:     "1d",
			MinHistoryBars:      26,
			MaxRequestPerMinute: 60,
			ProfileCacheTTL:     30 * time.Minute,
			RequestTimeout:      10 * time.Second,
		},
		Recommendation: Recommendation{
			Count:         5,
			CandidatePool: 20,
			MaxConcurrent: 4,
			Weights:       DefaultScoreWeights(),
		},
		AI: AI{
			Provider:    common.AIProviderOpenAI,
			MaxRetries:  3,
			Timeout:     60 * time.Second,
			BaseBackoff: time.Second,
			Temperature: 0.6,
			MaxTokens:   1500,
		},
		OpenAI: OpenAI{
			BaseURL: "https://api.deepseek.com/v1/chat/completions",
			Model:   "deepseek-chat",
		},
		Gemini: Gemini{
			Model:               "gemini-2.0-flash",
			MaxRequestPerMinute: 10,
		},
		Publisher: Publisher{Kind: common.PublisherKindLog, Stream: common.RedisStreamBriefingPublish},
		Schedule: Schedule{
			Cron:        "55 21 * * 1-5",
			TimeZone:    "Asia/Seoul",
			SkipWeekend: true,
		},
	}
}

// DefaultScoreWeights returns the composite score weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		MomentumFactor: 0.5,
		VolumeBonus:    10,
		OversoldBonus:  20,
		NeutralBonus:   15,
		MACDBonus:      15,
		OversoldRSI:    30,
		OverboughtRSI:  70,
	}
}

// Load loads the briefing configuration from the given path on top of Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := config.Load(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
