package app

import "strings"

const (
	reasoningOpen  = "<" + reasoningTag + ">"
	reasoningClose = "</" + reasoningTag + ">"
)

// SplitReasoning separates a raw reply into the user-visible answer and the
// reasoning text from the first <think> block. Content after the closing tag
// is folded back into the answer. An opening marker with no closing marker
// turns the whole remainder into reasoning.
func SplitReasoning(content string) (answer, reasoning string) {
	open := strings.Index(content, reasoningOpen)
	if open == -1 {
		return strings.TrimSpace(content), ""
	}

	answer = strings.TrimSpace(content[:open])
	rest := content[open+len(reasoningOpen):]

	end := strings.Index(rest, reasoningClose)
	if end == -1 {
		return answer, strings.TrimSpace(rest)
	}

	reasoning = strings.TrimSpace(rest[:end])
	after := strings.TrimSpace(rest[end+len(reasoningClose):])
	if after != "" {
		if answer != "" {
			answer += " " + after
		} else {
			answer = after
		}
	}
	return answer, reasoning
}
