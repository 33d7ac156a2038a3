package app

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const maxTitleLen = 40

var titlePrefixes = []string{"chat about", "discussion of", "about"}

// GenerateTitle asks the title model for a short label based on the user's
// first message. Any failure falls back to a timestamped placeholder so a
// session is never left untitled.
func GenerateTitle(ctx context.Context, backend Backend, model, firstMessage string) string {
	reply, err := backend.Chat(ctx, model, []Message{
		{Role: RoleSystem, Content: titleSystemPrompt},
		{Role: RoleUser, Content: firstMessage},
	})
	if err != nil {
		return fallbackTitle(time.Now())
	}
	title := sanitizeTitle(reply)
	if title == "" {
		return fallbackTitle(time.Now())
	}
	return title
}

func sanitizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.ReplaceAll(title, `"`, "")
	title = strings.ReplaceAll(title, "'", "")
	title = strings.TrimSpace(title)

	lower := strings.ToLower(title)
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(lower, prefix) {
			title = strings.TrimSpace(title[len(prefix):])
			break
		}
	}

	// Truncate by characters, not bytes, so multi-byte titles keep valid UTF-8.
	if r := []rune(title); len(r) > maxTitleLen {
		title = string(r[:maxTitleLen])
	}
	return strings.TrimSpace(title)
}

func fallbackTitle(now time.Time) string {
	return "New Chat " + now.Format("15:04")
}

func defaultChatTitle(n int) string {
	return fmt.Sprintf("Chat %d", n)
}
