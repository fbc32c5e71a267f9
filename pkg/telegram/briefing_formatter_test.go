package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-briefing/internal/entity"
)

func TestFormatBriefingSingleMessage(t *testing.T) {
	b := entity.Briefing{
		Title: "Tech Leads a Mixed Session",
		Body:  "# Heading\n\nFirst paragraph.\n\nSecond paragraph.",
		Tags:  []string{"stock market", "2025-03-14"},
	}

	messages := FormatBriefing(b)

	require.Len(t, messages, 1)
	assert.True(t, strings.HasPrefix(messages[0], "Tech Leads a Mixed Session\n\n# Heading"))
	assert.True(t, strings.HasSuffix(messages[0], "Tags: stock market, 2025-03-14"))
}

func TestFormatBriefingSplitsOnParagraphs(t *testing.T) {
	paragraph := strings.Repeat("x", 1000)
	body := strings.TrimSuffix(strings.Repeat(paragraph+"\n\n", 10), "\n\n")

	messages := FormatBriefing(entity.Briefing{Title: "Title", Body: body})

	require.Greater(t, len(messages), 2)
	assert.True(t, strings.HasPrefix(messages[0], "Title"))
	assert.True(t, strings.HasPrefix(messages[1], "(continued, part 2)"))

	total := 0
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), MaxMessageLen)
		total += strings.Count(m, "x")
	}
	assert.Equal(t, 10000, total)
}

func TestFormatBriefingCutsOversizedLine(t *testing.T) {
	line := strings.Repeat("가", 6000)

	messages := FormatBriefing(entity.Briefing{Title: "T", Body: line})

	total := 0
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), MaxMessageLen)
		total += strings.Count(m, "가")
	}
	assert.Equal(t, 6000, total)
}
