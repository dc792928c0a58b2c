// Package rangespec expands floor range specifications such as "1-3,5,B"
// into the ordered list of floor tokens they describe.
package rangespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultPrefix is prepended to every token to form a canonical floor id.
const DefaultPrefix = "P"

// MaxTokens bounds how many floors a single specification may expand to.
const MaxTokens = 1000

var ErrEmpty = errors.New("floor range spec is required")

// Parse splits spec on commas and expands every "a-b" segment inclusively.
// Order is preserved and duplicates are kept.
func Parse(spec string) ([]string, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, ErrEmpty
	}
	var tokens []string
	for _, raw := range strings.Split(spec, ",") {
		seg := strings.TrimSpace(raw)
		if seg == "" {
			return nil, fmt.Errorf("invalid floor range spec %q: empty segment", spec)
		}
		expanded, err := expand(seg)
		if err != nil {
			return nil, fmt.Errorf("invalid floor range spec %q: %w", spec, err)
		}
		if len(tokens)+len(expanded) > MaxTokens {
			return nil, fmt.Errorf("invalid floor range spec %q: expands to more than %d floors", spec, MaxTokens)
		}
		tokens = append(tokens, expanded...)
	}
	return tokens, nil
}

func expand(seg string) ([]string, error) {
	if !strings.Contains(seg, "-") {
		return []string{seg}, nil
	}
	parts := strings.Split(seg, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("segment %q must look like a-b", seg)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("segment %q: start is not a number", seg)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("segment %q: end is not a number", seg)
	}
	if lo > hi {
		return nil, fmt.Errorf("segment %q: start is greater than end", seg)
	}
	if hi-lo >= MaxTokens {
		return nil, fmt.Errorf("segment %q: expands to more than %d floors", seg, MaxTokens)
	}
	out := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out, nil
}

// FloorID renders the canonical floor identifier for a token.
func FloorID(prefix, token string) string { return prefix + token }

// Floors parses spec and maps every token to its canonical floor id.
func Floors(spec, prefix string) ([]string, error) {
	tokens, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	floors := make([]string, len(tokens))
	for i, t := range tokens {
		floors[i] = FloorID(prefix, t)
	}
	return floors, nil
}

// Join renders tokens back into a specification that parses to the same list.
func Join(tokens []string) string { return strings.Join(tokens, ",") }
