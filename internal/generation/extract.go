package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Extractor names accepted by NewExtractor.
const (
	ExtractorGreedy   = "greedy"
	ExtractorBalanced = "balanced"
)

// Extractor locates a JSON array inside raw backend text. Implementations
// are pure: the same input always yields the same output.
type Extractor interface {
	// Extract returns the JSON array found in raw. It returns an error
	// wrapping ErrNoPayload when no candidate exists and ErrMalformedPayload
	// when a candidate exists but is not valid JSON.
	Extract(raw string) (json.RawMessage, error)
}

// NewExtractor returns the extractor registered under name. An empty name
// selects the greedy extractor.
func NewExtractor(name string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ExtractorGreedy:
		return GreedyExtractor{}, nil
	case ExtractorBalanced:
		return BalancedExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown extractor %q", ErrInvalidConfig, name)
	}
}

// GreedyExtractor takes everything from the first "[" to the last "]" and
// parses it as JSON. Brackets in prose surrounding the payload widen the
// span and make the parse fail.
type GreedyExtractor struct{}

// Extract implements Extractor.
func (GreedyExtractor) Extract(raw string) (json.RawMessage, error) {
	start := strings.IndexByte(raw, '[')
	end := strings.LastIndexByte(raw, ']')
	if start < 0 || end < start {
		return nil, ErrNoPayload
	}

	candidate := raw[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("%w: %d bytes starting at offset %d", ErrMalformedPayload, len(candidate), start)
	}
	return json.RawMessage(candidate), nil
}

// BalancedExtractor returns the first bracket-balanced span that parses as a
// non-empty JSON array of objects. Brackets inside JSON strings do not count
// towards nesting, so prose such as "see [1]" before the payload is skipped.
type BalancedExtractor struct{}

// Extract implements Extractor.
func (BalancedExtractor) Extract(raw string) (json.RawMessage, error) {
	sawCandidate := false

	for start := strings.IndexByte(raw, '['); start >= 0; {
		if end := matchingBracket(raw, start); end >= 0 {
			sawCandidate = true
			candidate := raw[start : end+1]
			if isObjectArray(candidate) {
				return json.RawMessage(candidate), nil
			}
		}

		next := strings.IndexByte(raw[start+1:], '[')
		if next < 0 {
			break
		}
		start += next + 1
	}

	if sawCandidate {
		return nil, ErrMalformedPayload
	}
	return nil, ErrNoPayload
}

// matchingBracket returns the index of the "]" closing the "[" at start, or
// -1 if it is never closed.
func matchingBracket(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isObjectArray(candidate string) bool {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &items); err != nil || len(items) == 0 {
		return false
	}
	for _, item := range items {
		if len(item) == 0 || item[0] != '{' {
			return false
		}
	}
	return true
}
