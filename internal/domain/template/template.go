// Package template implements the document placeholder contract: double
// angle-bracket tokens (<<Ngày>>, <<Tiêu đề>>, ...) embedded in stored HTML
// are replaced by literal values in a single pass. Matching is
// case-insensitive on the exact token text; unmatched tokens stay verbatim
// and replacement values are never re-scanned.
package template

import (
	"regexp"
	"sort"
	"strings"
)

// Renderer substitutes a fixed token set into template text.
type Renderer struct {
	re     *regexp.Regexp
	values map[string]string // lower-cased token -> replacement
}

// NewRenderer builds a renderer for the given token->value mapping. Token
// keys include the angle brackets, e.g. "<<Ngày>>".
func NewRenderer(values map[string]string) *Renderer {
	tokens := make([]string, 0, len(values))
	lowered := make(map[string]string, len(values))
	for tok, val := range values {
		tokens = append(tokens, regexp.QuoteMeta(tok))
		lowered[strings.ToLower(tok)] = val
	}
	// Longer alternatives first so a token that prefixes another cannot
	// shadow it.
	sort.Slice(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })

	var re *regexp.Regexp
	if len(tokens) > 0 {
		re = regexp.MustCompile("(?i)(" + strings.Join(tokens, "|") + ")")
	}
	return &Renderer{re: re, values: lowered}
}

// Render performs the single-pass substitution.
func (r *Renderer) Render(tpl string) string {
	if r.re == nil {
		return tpl
	}
	return r.re.ReplaceAllStringFunc(tpl, func(match string) string {
		if val, ok := r.values[strings.ToLower(match)]; ok {
			return val
		}
		return match
	})
}

// Render is a convenience wrapper for one-shot substitution.
func Render(tpl string, values map[string]string) string {
	return NewRenderer(values).Render(tpl)
}
