package workflow

import (
	"context"
	"log/slog"

	lifeline "github.com/lifelinehq/lifeline"
)

// Prompter asks the user for a line of text. An empty answer means the user
// cancelled or left the field blank.
type Prompter interface {
	Prompt(label, placeholder string) (string, error)
}

// Ask runs the ask-a-question command. Missing prompt and system prompt are
// requested interactively; a blank prompt cancels the command and returns "".
// The reply is shown as a document and returned.
func Ask(ctx context.Context, c Completer, pr Prompter, h Host, p lifeline.Params) (string, error) {
	if p.Prompt == "" {
		answer, err := pr.Prompt("Enter your prompt for LifeLine", "Describe your task or question...")
		if err != nil {
			h.Error("LifeLine API Error: " + err.Error())
			return "", err
		}
		if answer == "" {
			slog.Debug("ask cancelled")
			return "", nil
		}
		p.Prompt = answer
	}

	if p.SystemPrompt == "" {
		answer, err := pr.Prompt("Enter system context (optional)", "Additional context or instructions for the AI...")
		if err != nil {
			h.Error("LifeLine API Error: " + err.Error())
			return "", err
		}
		p.SystemPrompt = answer
	}

	stop := h.Progress(progressMessage)
	result, err := c.Complete(ctx, p)
	stop()
	if err != nil {
		h.Error("LifeLine API Error: " + err.Error())
		return "", err
	}

	if err := h.ShowDocument(result); err != nil {
		slog.Warn("failed to show response", "error", err)
	}
	return result, nil
}
