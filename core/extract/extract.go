package extract

import (
	"fmt"
	"strings"
)

// Strategy identifies which extraction strategy produced a candidate.
type Strategy int

const (
	// StrategyWhole yields the entire trimmed input when it already looks
	// like a bare JSON object.
	StrategyWhole Strategy = iota
	// StrategyFence yields the content of markdown code fences whose
	// language tag is empty or "json", in document order.
	StrategyFence
	// StrategyHTML converts HTML input to markdown and yields the fenced
	// blocks of the conversion. Chat frontends often return <pre><code>
	// where the model meant a markdown fence.
	StrategyHTML
	// StrategyBrace scans for balanced top-level brace pairs, ignoring
	// braces inside string literals.
	StrategyBrace
)

// String returns the strategy name used in report diagnostics.
func (s Strategy) String() string {
	switch s {
	case StrategyWhole:
		return "whole-string"
	case StrategyFence:
		return "fenced-block"
	case StrategyHTML:
		return "html-block"
	case StrategyBrace:
		return "brace-matching"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Candidate is a substring of the raw input hypothesised to be one JSON
// object, tagged with the strategy that found it.
type Candidate struct {
	Text     string
	Strategy Strategy
}

// Candidates re-scans raw and returns every candidate from every strategy,
// in strategy order, with textual duplicates removed while keeping the
// first occurrence. The sequence is finite and deterministic; an empty
// result means no strategy found anything resembling a JSON object.
func Candidates(raw string) []Candidate {
	var out []Candidate
	seen := map[string]bool{}

	add := func(text string, strategy Strategy) {
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, Candidate{Text: text, Strategy: strategy})
	}

	if whole, ok := wholeCandidate(raw); ok {
		add(whole, StrategyWhole)
	}
	for _, text := range fenceCandidates(raw) {
		add(text, StrategyFence)
	}
	for _, text := range htmlCandidates(raw) {
		add(text, StrategyHTML)
	}
	for _, text := range braceCandidates(raw) {
		add(text, StrategyBrace)
	}
	return out
}

// wholeCandidate accepts the trimmed input only when it is already shaped
// like a single bare object.
func wholeCandidate(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, true
	}
	return "", false
}
