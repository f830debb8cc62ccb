package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/amminlb/corporateai/internal/domain"
)

// Config tunes the context carry-over rules.
type Config struct {
	// RecentWindow is how many trailing history entries are checked for
	// domain keywords when deciding context carry-over.
	RecentWindow int
	// ShortMessageLimit is the character length under which a message in an
	// active insurance conversation is treated as an elliptical follow-up.
	ShortMessageLimit int
}

// DefaultConfig matches the production tuning.
func DefaultConfig() Config {
	return Config{
		RecentWindow:      2,
		ShortMessageLimit: 30,
	}
}

// Classifier decides whether a message is admitted into the
// insurance-restricted conversation.
type Classifier struct {
	cfg Config
}

// New creates a classifier with the given tuning.
func New(cfg Config) *Classifier {
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = 2
	}
	if cfg.ShortMessageLimit <= 0 {
		cfg.ShortMessageLimit = 30
	}
	return &Classifier{cfg: cfg}
}

// IsAdmitted reports whether text belongs in the insurance conversation.
// Rules apply in strict precedence: greetings always pass, then direct
// insurance keywords, then context carry-over. Carry-over is deliberately
// conservative: the session flag, recent-history corroboration, and a
// contextual insurance word must all agree before a message without direct
// keywords is admitted.
func (c *Classifier) IsAdmitted(text string, session *domain.Session) bool {
	text = strings.ToLower(text)

	if matchesGreeting(text) {
		return true
	}

	if containsAny(text, InsuranceKeywords) {
		return true
	}

	if session == nil || !session.IsInsuranceContext {
		return false
	}

	if !c.hasRecentInsuranceContext(session) {
		return false
	}

	if !c.isContextual(text) {
		return false
	}

	return containsAny(text, ContextualInsuranceWords)
}

// hasRecentInsuranceContext reports whether any of the trailing history
// entries (both roles) contains an insurance keyword.
func (c *Classifier) hasRecentInsuranceContext(session *domain.Session) bool {
	for _, msg := range session.Recent(c.cfg.RecentWindow) {
		if containsAny(strings.ToLower(msg.Content), InsuranceKeywords) {
			return true
		}
	}
	return false
}

// isContextual reports whether text reads as a continuation: it carries a
// follow-up cue, or it is short enough that in an active insurance
// conversation it is very likely elliptical ("how much?", "which one?").
func (c *Classifier) isContextual(text string) bool {
	return containsAny(text, ContextCues) || utf8.RuneCountInString(text) < c.cfg.ShortMessageLimit
}
