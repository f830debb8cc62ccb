package llm

import "context"

// TurnRole identifies who produced a conversation turn.
type TurnRole string

const (
	RoleSystem    TurnRole = "system"
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// Turn is one (role, content) pair of conversation context.
type Turn struct {
	Role    TurnRole
	Content string
}

// Request contains a bounded-context completion request: the fixed system
// instruction plus the trailing slice of conversation turns, newest last.
type Request struct {
	System string
	Turns  []Turn
}

// Response contains the completion result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for completion providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete generates a reply for the given conversation context
	Complete(ctx context.Context, req Request, model string) (*Response, error)
}
