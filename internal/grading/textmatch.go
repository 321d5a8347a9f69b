package grading

import "unicode"

// Normalize lower-cases an answer for case-insensitive comparison. The
// canonical answer is stored in this form, so grading and storage agree.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
