// Package pathmatch implements find -path matching semantics.
//
// It follows fnmatch(3) without FNM_PATHNAME:
//   - * matches any characters including /
//   - ? matches exactly one character including /
//   - [...] matches one character from the set including /; [!...] negates
//   - \ escapes the next character
//
// So "*.txt" selects text files at any depth, unlike filepath.Match where
// * stops at directory separators.
package pathmatch

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Match reports whether path matches the pattern.
func Match(pattern, path string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(path), nil
}

// Matcher holds pre-compiled patterns for matching many paths.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles patterns into a Matcher. An empty list matches nothing.
func NewMatcher(patterns []string) (*Matcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := compile(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}

		compiled = append(compiled, re)
	}

	return &Matcher{patterns: compiled}, nil
}

// Len returns the number of patterns in the matcher.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// MatchAny reports whether path matches at least one pattern.
func (m *Matcher) MatchAny(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

var cache sync.Map //nolint:gochecknoglobals // compiled patterns are shared across matchers

// compile translates a pattern into an anchored regexp, caching the result.
func compile(pattern string) (*regexp.Regexp, error) {
	if v, ok := cache.Load(pattern); ok {
		if re, ok := v.(*regexp.Regexp); ok {
			return re, nil
		}
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	cache.Store(pattern, re)

	return re, nil
}

// translate converts a glob pattern into regexp syntax.
func translate(pattern string) (string, error) {
	var expr strings.Builder

	expr.WriteString(`^(?s:`)

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			expr.WriteString(`.*`)
		case '?':
			expr.WriteString(`.`)
		case '\\':
			if i+1 == len(pattern) {
				return "", fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			i++
			expr.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		case '[':
			end, err := classEnd(pattern, i)
			if err != nil {
				return "", err
			}

			expr.WriteString(class(pattern[i+1 : end]))

			i = end
		default:
			expr.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}

	expr.WriteString(`)$`)

	return expr.String(), nil
}

// classEnd returns the index of the ] closing the bracket expression opened at start.
// A ] directly after [ or [! is a literal member of the set.
func classEnd(pattern string, start int) (int, error) {
	i := start + 1

	if i < len(pattern) && pattern[i] == '!' {
		i++
	}

	if i < len(pattern) && pattern[i] == ']' {
		i++
	}

	if end := strings.IndexByte(pattern[i:], ']'); end >= 0 {
		return i + end, nil
	}

	return 0, fmt.Errorf("unclosed character class in pattern %q", pattern)
}

// class renders the body of a bracket expression as a regexp character class.
func class(body string) string {
	var out strings.Builder

	out.WriteByte('[')

	if strings.HasPrefix(body, "!") {
		out.WriteByte('^')

		body = body[1:]
	}

	for i := 0; i < len(body); i++ {
		switch c := body[i]; c {
		case '-':
			// Ranges pass through; a leading or trailing dash is literal.
			if i == 0 || i == len(body)-1 {
				out.WriteString(`\-`)
			} else {
				out.WriteByte('-')
			}
		case '\\', '[', ']', '^':
			out.WriteByte('\\')
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}

	out.WriteByte(']')

	return out.String()
}
