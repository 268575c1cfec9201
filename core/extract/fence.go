package extract

import "strings"

const fenceMarker = "```"

// fenceCandidates returns the content of every markdown code fence whose
// language tag is absent or "json", in document order. Fences with other
// tags (```yaml, ```python) are skipped but still consumed, so a later
// untagged fence is found correctly.
func fenceCandidates(raw string) []string {
	var out []string
	rest := raw
	for {
		start := strings.Index(rest, fenceMarker)
		if start == -1 {
			return out
		}
		rest = rest[start+len(fenceMarker):]

		// The language tag is whatever follows the opener on the same line.
		tag := rest
		if nl := strings.IndexByte(rest, '\n'); nl != -1 {
			tag = rest[:nl]
			rest = rest[nl+1:]
		} else {
			rest = ""
		}
		tag = strings.ToLower(strings.TrimSpace(tag))

		end := strings.Index(rest, fenceMarker)
		if end == -1 {
			// Unterminated fence: treat the remainder as the block body,
			// models routinely run out of tokens before the closer.
			if tag == "" || tag == "json" {
				if body := strings.TrimSpace(rest); body != "" {
					out = append(out, body)
				}
			}
			return out
		}

		body := rest[:end]
		rest = rest[end+len(fenceMarker):]
		if tag == "" || tag == "json" {
			if body = strings.TrimSpace(body); body != "" {
				out = append(out, body)
			}
		}
	}
}
