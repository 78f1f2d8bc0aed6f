// Package lifeline defines the shared types for the lifeline watcher: completion
// parameters, the error taxonomy, the request/response file naming convention and
// the user configuration.
package lifeline

// Params describes a single chat-completion call.
type Params struct {
	// Prompt is sent verbatim as the user message. It must not be empty.
	Prompt string `json:"prompt" toml:"-"`
	// SystemPrompt is sent as a leading system message when non-empty.
	SystemPrompt string `json:"system_prompt,omitempty" toml:"system"`
	// Temperature overrides the configured sampling temperature when set.
	Temperature *float64 `json:"temperature,omitempty" toml:"temperature"`
	// Model overrides the configured model when non-empty.
	Model string `json:"model,omitempty" toml:"model"`
}

// Role names used in chat-completion messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Messages returns the ordered message list for p: the system message first when
// present, then the user message.
func (p Params) Messages() []Message {
	msgs := make([]Message, 0, 2)
	if p.SystemPrompt != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: p.SystemPrompt})
	}
	return append(msgs, Message{Role: RoleUser, Content: p.Prompt})
}
