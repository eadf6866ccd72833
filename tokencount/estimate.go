// Package tokencount implements the external `tokens(text) → nat`
// interface §6 says the core only consumes: a deterministic, pure function
// from rendered text to an estimated token count, plus an LRU-memoized
// decorator for the budget controller's repeated tokens(render(file))
// measurements across escalation iterations.
package tokencount

// Estimate returns a deterministic, pure token-count estimate for text.
// It approximates the common "~4 bytes per token" rule of thumb used for
// sizing LLM context windows, refined by counting word and
// punctuation/symbol runs so short identifiers and operators aren't
// under-counted relative to their real tokenizer cost.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	n := 0
	inWord := false
	for _, r := range text {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			inWord = false
		case isWordRune(r):
			if !inWord {
				n++
				inWord = true
			}
		default:
			n++
			inWord = false
		}
	}
	byteFloor := (len(text) + 3) / 4
	if byteFloor > n {
		return byteFloor
	}
	return n
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
