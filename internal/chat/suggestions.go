package chat

import (
	"regexp"
	"unicode/utf8"
)

var codePattern = regexp.MustCompile(`(?i)code|function|API`)

// Suggestions produces up to three follow-up prompts for an assistant reply.
// Long answers get a shortening prompt, code-flavored answers a snippet
// prompt; both displace the generic suggestions.
func Suggestions(text string) []string {
	base := []string{
		"Summarize that in 3 bullets",
		"Give me an example",
		"What should I do next?",
	}
	if text == "" {
		return base
	}
	if utf8.RuneCountInString(text) > 240 {
		base = append([]string{"Shorten that answer"}, base...)
	}
	if codePattern.MatchString(text) {
		base = append([]string{"Show a minimal code snippet"}, base...)
	}
	return base[:3]
}
