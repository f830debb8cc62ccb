package classify

import "strings"

// InsuranceKeywords are the terms that admit a message directly, in both
// English and Arabic.
var InsuranceKeywords = []string{
	"insurance", "policy", "premium", "deductible", "claim", "coverage",
	"car", "vehicle", "auto", "accident", "price", "cost", "lebanon",
	"ammin", "تأمين", "سيارة", "حادث", "سعر", "امّن", "لبنان",
}

// Greetings always pass regardless of context so a user can open or close
// a conversation pleasantly.
var Greetings = []string{
	"hi", "hello", "hey", "thank", "thanks", "okay", "ok",
	"مرحبا", "أهلا", "سلام", "شكرا", "حسنا",
}

// ContextCues mark a message as a continuation of the previous exchange.
var ContextCues = []string{
	"what about", "how about", "what place", "where can", "where to",
	"which one", "tell me more", "continue", "also", "and",
	"أين", "ماذا عن", "كيف", "أيضا", "وأين", "أخبرني المزيد",
}

// ContextualInsuranceWords is the narrower vocabulary that a context-carried
// follow-up must still contain to be admitted.
var ContextualInsuranceWords = []string{
	"where", "how much", "which", "what about", "price", "cost",
	"company", "best", "cheap", "expensive", "recommend",
	"أين", "كم", "أي", "ماذا عن", "سعر", "كلفة", "شركة", "أفضل", "رخيص",
}

// containsAny reports whether text contains any of the given terms.
// Matching is plain substring containment; callers lowercase first.
func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// matchesGreeting reports whether any word in text starts with a greeting
// term. Prefix matching keeps "thanks" and "okay" passing without letting
// short terms like "ok" hide inside unrelated words ("joke").
func matchesGreeting(text string) bool {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '.' || r == '!' || r == '?'
	})
	for _, word := range words {
		for _, greeting := range Greetings {
			if strings.HasPrefix(word, greeting) {
				return true
			}
		}
	}
	return false
}

// InsuranceTopics returns the insurance keywords present in text,
// used for the admin surface's observed-topics set.
func InsuranceTopics(text string) []string {
	text = strings.ToLower(text)
	var topics []string
	for _, kw := range InsuranceKeywords {
		if strings.Contains(text, kw) {
			topics = append(topics, kw)
		}
	}
	return topics
}
