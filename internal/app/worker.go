package app

import (
	"context"
	"fmt"
	"log/slog"
)

const historyWindow = 10

// Orchestrator drives the retry loop that coaxes a trailing reasoning block
// out of the model. It is stateless across runs; the growing message sequence
// lives only inside one Run call.
type Orchestrator struct {
	Backend      Backend
	SystemPrompt string
	MaxRetries   int
	Logger       *slog.Logger
}

// ChatResult is what an async run delivers back to the caller.
type ChatResult struct {
	Answer    string
	Reasoning string
	Raw       string
	Err       error
}

// Run sends the prompt with the recent history and retries until the reply
// validates or the budget runs out. Each invalid reply appends an escalating
// system instruction plus the original prompt, so the model sees its failure
// history. Transport errors consume an attempt without escalating.
func (o *Orchestrator) Run(ctx context.Context, model, prompt string, history []Message) (string, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	messages := make([]Message, 0, len(recent)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: o.SystemPrompt})
	messages = append(messages, recent...)
	messages = append(messages, Message{Role: RoleUser, Content: prompt})

	budget := o.MaxRetries
	if budget <= 0 {
		budget = 1
	}

	var lastErr error
	for attempt := 0; attempt < budget; attempt++ {
		reply, err := o.Backend.Chat(ctx, model, messages)
		if err != nil {
			lastErr = err
			logger.Warn("chat call failed", "attempt", attempt+1, "error", err)
			continue
		}
		lastErr = nil
		if ValidateResponse(reply) {
			logger.Debug("valid reply", "attempt", attempt+1, "model", model)
			return reply, nil
		}
		logger.Debug("reply missing trailing reasoning block", "attempt", attempt+1)
		messages = append(messages,
			Message{Role: RoleSystem, Content: EscalationInstruction(attempt)},
			Message{Role: RoleUser, Content: prompt},
		)
	}

	if lastErr != nil {
		return "", fmt.Errorf("chat failed after %d attempts: %w", budget, lastErr)
	}
	return "", &RetryBudgetError{Budget: budget}
}

// Start runs the loop on its own goroutine and delivers exactly one result on
// the returned channel. On success the raw reply is split into answer and
// reasoning for the caller.
func (o *Orchestrator) Start(ctx context.Context, model, prompt string, history []Message) <-chan ChatResult {
	ch := make(chan ChatResult, 1)
	go func() {
		raw, err := o.Run(ctx, model, prompt, history)
		if err != nil {
			ch <- ChatResult{Err: err}
			return
		}
		answer, reasoning := SplitReasoning(raw)
		ch <- ChatResult{Answer: answer, Reasoning: reasoning, Raw: raw}
	}()
	return ch
}
