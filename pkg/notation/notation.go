package notation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidNotation = errors.New("invalid range notation")

	number = `[+-]?(?:(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?|(?i:inf(?:inity)?))`

	tokenPattern = regexp.MustCompile(`^(` + number + `)(?:\s*-\s*(` + number + `))?$`)
)

// Pair is a half-open interval [Start, End) as written in text.
type Pair struct {
	Start float64
	End   float64
}

func (p Pair) String() string {
	if p.End-p.Start == 1 {
		return formatNumber(p.Start)
	}
	return formatNumber(p.Start) + "-" + formatNumber(p.End)
}

// Parse turns a comma separated list of tokens like "0-2, 4-7, 9" into pairs.
// A bare number N stands for [N, N+1). Order and start <= end are not checked.
func Parse(s string) ([]Pair, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	tokens := strings.Split(s, ",")
	pairs := make([]Pair, 0, len(tokens))
	for _, token := range tokens {
		p, err := parseToken(strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// ParseOne parses text that must hold exactly one token.
func ParseOne(s string) (Pair, error) {
	pairs, err := Parse(s)
	if err != nil {
		return Pair{}, err
	}
	if len(pairs) != 1 {
		return Pair{}, fmt.Errorf("%w: %q holds %d intervals, want 1", ErrInvalidNotation, s, len(pairs))
	}
	return pairs[0], nil
}

func parseToken(token string) (Pair, error) {
	parts := tokenPattern.FindStringSubmatch(token)
	if parts == nil {
		return Pair{}, fmt.Errorf("%w: token %q", ErrInvalidNotation, token)
	}
	start, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: invalid start %q in token %q", ErrInvalidNotation, parts[1], token)
	}
	if parts[2] == "" {
		return Pair{Start: start, End: start + 1}, nil
	}
	end, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: invalid end %q in token %q", ErrInvalidNotation, parts[2], token)
	}
	return Pair{Start: start, End: end}, nil
}

// Format renders pairs back into the notation accepted by Parse.
func Format(pairs []Pair) string {
	tokens := make([]string, 0, len(pairs))
	for _, p := range pairs {
		tokens = append(tokens, p.String())
	}
	return strings.Join(tokens, ", ")
}

func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
