package common

const (
	RedisStreamBriefingPublish = "market.briefing.publish"

	PublisherKindLog      = "log"
	PublisherKindTelegram = "telegram"
	PublisherKindRedis    = "redis"

	AIProviderOpenAI = "openai"
	AIProviderGemini = "gemini"
)
