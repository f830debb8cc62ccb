package bot

import (
	"strings"

	"github.com/amminlb/corporateai/internal/classify"
)

// Fixed answers for exact-topic lookups that never go to the completion
// provider: who founded Ammin, and what the company is.

var founderKeywords = []string{
	"elias", "chedid", "hanna", "الياس", "شديد", "حنا",
}

var companyKeywords = []string{
	"what is ammin", "about ammin", "ما هي أمين", "ما هي امن",
}

const founderAnswerArabic = "الياس شديد حنا هو مؤسس ومالك شركة أمّن للتأمين في لبنان. تحت قيادته، نمت شركة أمّن لتصبح واحدة من أكثر شركات التأمين موثوقية في لبنان 🏆"

const founderAnswerEnglish = "Elias Chedid Hanna is the founder and owner of Ammin Insurance Company in Lebanon. Under his leadership, Ammin has grown to become one of the most reliable insurance providers in Lebanon 🏆"

const companyAnswer = "🏢 AMMIN is an online platform licensed by the International Insurance Commission (ICC), led by Mr. Elie Hanna and his exceptional team.\n\n✨ We simplify the insurance experience for individuals and businesses in Lebanon, providing:\n• Centralized insurance platform\n• Licensed professional brokers\n• Partnerships with top insurance companies\n• User-friendly mobile app\n\n📱 Download our app: https://play.google.com/store/apps/details?id=com.ammin.ammin"

// SpecialAnswer returns the fixed reply for special intents, matched by
// keyword containment. The founder answer's language follows the script of
// the question.
func SpecialAnswer(text string) (string, bool) {
	text = strings.ToLower(text)

	for _, kw := range founderKeywords {
		if strings.Contains(text, kw) {
			if classify.HasArabic(text) {
				return founderAnswerArabic, true
			}
			return founderAnswerEnglish, true
		}
	}

	for _, kw := range companyKeywords {
		if strings.Contains(text, kw) {
			return companyAnswer, true
		}
	}

	return "", false
}
