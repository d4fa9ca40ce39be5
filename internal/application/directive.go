package application

import (
	"regexp"
	"strings"
)

// DirectiveKind distinguishes inline commands from plain captures.
type DirectiveKind int

const (
	DirectiveNone DirectiveKind = iota // plain capture text
	DirectiveFix                       // "fix: <category>"
	DirectiveDone                      // "done: <task or note hint>"
)

var (
	fixPattern  = regexp.MustCompile(`(?i)^fix:\s*(\S+)\s*$`)
	donePattern = regexp.MustCompile(`(?i)^done:\s*(.+)$`)
)

// ParseDirective recognizes the short inline command forms a conversation
// transport delivers mixed in with captures. Anything unrecognized is a
// plain capture.
func ParseDirective(text string) (DirectiveKind, string) {
	text = strings.TrimSpace(text)
	if m := fixPattern.FindStringSubmatch(text); m != nil {
		return DirectiveFix, m[1]
	}
	if m := donePattern.FindStringSubmatch(text); m != nil {
		return DirectiveDone, strings.TrimSpace(m[1])
	}
	return DirectiveNone, text
}
