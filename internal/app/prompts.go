package app

// escalations are injected as system messages between retry attempts, in
// order of increasing urgency. Attempts past the end of the list reuse the
// last entry.
var escalations = []string{
	"IMPORTANT: Your response MUST end with a reasoning section wrapped in <think></think> tags.",
	"CRITICAL: You failed to include the required <think></think> reasoning section at the end of your response. This is mandatory.",
	"FINAL REMINDER: End your response with your reasoning inside <think></think> tags. Responses without this section are rejected.",
	"STRICT REQUIREMENT: Your previous responses were invalid. The response must conclude with a <think></think> block containing your reasoning.",
	"MANDATORY: Conclude with <think>your reasoning here</think>. No text may follow the closing tag.",
}

// EscalationInstruction returns the system instruction to inject after a
// failed attempt. attempt counts from zero and is clamped to the list.
func EscalationInstruction(attempt int) string {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= len(escalations) {
		attempt = len(escalations) - 1
	}
	return escalations[attempt]
}

// titleSystemPrompt instructs the title model to produce a short label from
// the user's first message.
const titleSystemPrompt = "Generate a very short title (3-5 words) for a chat that starts with the following message. Reply with the title only, no quotes, no punctuation at the end."
