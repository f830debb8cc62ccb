package classify

// HasArabic reports whether s contains a character in the Arabic Unicode
// block, used to pick the reply language for fixed answers.
func HasArabic(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}
