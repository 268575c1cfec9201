package extract

import (
	"testing"
)

func TestCandidates_WholeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			input: `{"title": "x"}`,
			want:  `{"title": "x"}`,
			found: true,
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "\n  {\"a\": 1}  \n",
			want:  `{"a": 1}`,
			found: true,
		},
		{
			name:  "leading prose disqualifies whole-string",
			input: `Sure! {"a": 1}`,
			found: false,
		},
		{
			name:  "missing closing brace",
			input: `{"a": 1`,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := wholeCandidate(tt.input)
			if ok != tt.found {
				t.Fatalf("wholeCandidate() found = %v, want %v", ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("wholeCandidate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFenceCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "json tag",
			input: "Here you go:\n```json\n{\"title\": \"y\"}\n```\nDone.",
			want:  []string{`{"title": "y"}`},
		},
		{
			name:  "no tag",
			input: "```\n{\"a\": 1}\n```",
			want:  []string{`{"a": 1}`},
		},
		{
			name:  "uppercase JSON tag",
			input: "```JSON\n{\"a\": 1}\n```",
			want:  []string{`{"a": 1}`},
		},
		{
			name:  "other language skipped",
			input: "```python\nprint('hi')\n```\n```json\n{\"a\": 1}\n```",
			want:  []string{`{"a": 1}`},
		},
		{
			name:  "multiple matching fences in document order",
			input: "```json\n{\"a\": 1}\n```\ntext\n```\n{\"b\": 2}\n```",
			want:  []string{`{"a": 1}`, `{"b": 2}`},
		},
		{
			name:  "unterminated fence keeps remainder",
			input: "```json\n{\"a\": 1}",
			want:  []string{`{"a": 1}`},
		},
		{
			name:  "no fences",
			input: "just some prose",
			want:  nil,
		},
		{
			name:  "empty fence contributes nothing",
			input: "```json\n\n```",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fenceCandidates(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("fenceCandidates() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("fenceCandidates()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBraceCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "object inside prose",
			input: `Sure, here it is: {"title": "x"} — hope that helps!`,
			want:  []string{`{"title": "x"}`},
		},
		{
			name:  "nested braces",
			input: `prefix {"a": {"b": 2}} suffix`,
			want:  []string{`{"a": {"b": 2}}`},
		},
		{
			name:  "braces inside string literal do not affect depth",
			input: `{"text": "look, a } inside"} tail`,
			want:  []string{`{"text": "look, a } inside"}`},
		},
		{
			name:  "escaped quote inside string",
			input: `{"text": "quote \" and } brace"}`,
			want:  []string{`{"text": "quote \" and } brace"}`},
		},
		{
			name:  "truncated object yields nothing",
			input: `{"a": 1`,
			want:  nil,
		},
		{
			name:  "two separate objects in order",
			input: `first {"a": 1} then {"b": 2}`,
			want:  []string{`{"a": 1}`, `{"b": 2}`},
		},
		{
			name:  "truncated then complete",
			input: `{"broken": " then {"ok": 1}`,
			want:  []string{`{"ok": 1}`},
		},
		{
			name:  "no braces",
			input: `nothing here`,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := braceCandidates(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("braceCandidates() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("braceCandidates()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHTMLCandidates(t *testing.T) {
	t.Run("pre code block", func(t *testing.T) {
		input := `<p>Here is the task:</p><pre><code>{"title": "x"}</code></pre>`
		got := htmlCandidates(input)
		if len(got) == 0 {
			t.Fatal("htmlCandidates() found nothing in <pre><code> block")
		}
		if got[0] != `{"title": "x"}` {
			t.Errorf("htmlCandidates()[0] = %q, want the JSON body", got[0])
		}
	})

	t.Run("plain text skipped", func(t *testing.T) {
		if got := htmlCandidates(`just prose with {"a": 1}`); got != nil {
			t.Errorf("htmlCandidates() on non-HTML = %v, want nil", got)
		}
	})

	t.Run("markdown fence is not html", func(t *testing.T) {
		if got := htmlCandidates("```json\n{\"a\": 1}\n```"); got != nil {
			t.Errorf("htmlCandidates() on markdown = %v, want nil", got)
		}
	})
}

func TestCandidates_OrderAndDedup(t *testing.T) {
	// A bare object is found by both the whole-string and brace strategies;
	// it must appear once, attributed to the earlier strategy.
	input := `{"a": 1}`
	got := Candidates(input)
	if len(got) != 1 {
		t.Fatalf("Candidates() = %d candidates, want 1 after dedup: %+v", len(got), got)
	}
	if got[0].Strategy != StrategyWhole {
		t.Errorf("Candidates()[0].Strategy = %v, want whole-string", got[0].Strategy)
	}
}

func TestCandidates_StrategyOrder(t *testing.T) {
	// Fenced block plus a second loose object: the fence candidate comes
	// before the brace candidate.
	input := "```json\n{\"fenced\": true}\n```\nloose: {\"loose\": true}"
	got := Candidates(input)
	if len(got) != 2 {
		t.Fatalf("Candidates() = %+v, want 2 candidates", got)
	}
	if got[0].Strategy != StrategyFence || got[0].Text != `{"fenced": true}` {
		t.Errorf("first candidate = %+v, want fenced", got[0])
	}
	if got[1].Strategy != StrategyBrace || got[1].Text != `{"loose": true}` {
		t.Errorf("second candidate = %+v, want brace", got[1])
	}
}

func TestCandidates_Empty(t *testing.T) {
	tests := []string{
		"",
		"no json here at all",
		"only an [array] of words",
	}
	for _, input := range tests {
		if got := Candidates(input); len(got) != 0 {
			t.Errorf("Candidates(%q) = %+v, want none", input, got)
		}
	}
}

func TestStrategy_String(t *testing.T) {
	strategies := map[Strategy]string{
		StrategyWhole: "whole-string",
		StrategyFence: "fenced-block",
		StrategyHTML:  "html-block",
		StrategyBrace: "brace-matching",
	}
	for s, want := range strategies {
		if got := s.String(); got != want {
			t.Errorf("Strategy(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
