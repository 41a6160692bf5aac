// Package sanitize turns raw note markdown into plain preview text.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to previews that were cut short.
const Ellipsis = "..."

type pass struct {
	re   *regexp.Regexp
	repl string
}

// Fenced blocks go first so the inline-code pass cannot eat their fences.
var passes = []pass{
	{regexp.MustCompile("(?s)```.*?```"), ""},
	{regexp.MustCompile(`!\[\[.*?\]\]`), ""},
	{regexp.MustCompile(`\[\[.*?\]\]`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+.*(?:\n|$)`), ""},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},
	{regexp.MustCompile(`~~(.*?)~~`), "$1"},
	{regexp.MustCompile("`(.*?)`"), "$1"},
	{regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`), ""},
	{regexp.MustCompile(`[-*+] \[[ xX]\] `), ""},
	{regexp.MustCompile(`(?m)^[ \t]*[-*+] `), ""},
	{regexp.MustCompile(`(?m)^[ \t]*\d+\. `), ""},
}

// Sanitize strips lightweight markdown from raw note text. Unbalanced
// delimiters are left as literal text.
func Sanitize(raw string) string {
	out := raw
	for _, p := range passes {
		out = p.re.ReplaceAllString(out, p.repl)
	}
	return strings.TrimSpace(out)
}

// Truncate returns the first n runes of s, followed by Ellipsis when s was
// longer than n. A non-positive n yields an empty string.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + Ellipsis
}

// Preview sanitizes raw and truncates it to n runes.
func Preview(raw string, n int) string {
	return Truncate(Sanitize(raw), n)
}
