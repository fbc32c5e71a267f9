package telegram

import (
	"fmt"
	"strings"

	"market-briefing/internal/entity"
)

// MaxMessageLen stays just under Telegram's 4096 character limit.
const MaxMessageLen = 4090

// maxLineRunes leaves room for the part header when a single line must be cut.
const maxLineRunes = 1000

// FormatBriefing splits a briefing into messages no longer than MaxMessageLen.
// The title and tags open and close the sequence; the body is cut on paragraph
// boundaries, and a paragraph that alone exceeds the limit is cut on line boundaries.
func FormatBriefing(b entity.Briefing) []string {
	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(b.Title + "\n\n")
		} else {
			current.WriteString(fmt.Sprintf("(continued, part %d)\n\n", part))
		}
	}
	flush := func() {
		messages = append(messages, strings.TrimSpace(current.String()))
		part++
		startNewPart()
	}
	appendChunk := func(chunk string) {
		if current.Len()+len(chunk) > MaxMessageLen {
			flush()
		}
		current.WriteString(chunk)
	}

	startNewPart()
	for _, paragraph := range strings.Split(b.Body, "\n\n") {
		chunk := paragraph + "\n\n"
		if len(chunk) <= MaxMessageLen-64 {
			appendChunk(chunk)
			continue
		}
		for _, line := range strings.Split(paragraph, "\n") {
			runes := []rune(line)
			for len(runes) > maxLineRunes {
				appendChunk(string(runes[:maxLineRunes]))
				runes = runes[maxLineRunes:]
			}
			appendChunk(string(runes) + "\n")
		}
		appendChunk("\n")
	}

	if len(b.Tags) > 0 {
		tagLine := "Tags: " + strings.Join(b.Tags, ", ")
		appendChunk(tagLine)
	}

	if strings.TrimSpace(current.String()) != "" {
		messages = append(messages, strings.TrimSpace(current.String()))
	}
	return messages
}
