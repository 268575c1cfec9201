package extract

// braceCandidates scans raw for balanced top-level brace pairs, respecting
// string-literal boundaries so braces inside quoted strings do not affect
// nesting depth. Each balanced span becomes one candidate, in document
// order. A span whose closing brace never arrives (truncated output)
// produces nothing, and scanning moves on to the next opening brace.
func braceCandidates(raw string) []string {
	var out []string
	pos := 0
	for pos < len(raw) {
		start := indexByteFrom(raw, '{', pos)
		if start == -1 {
			return out
		}
		end, ok := matchBraces(raw, start)
		if ok {
			out = append(out, raw[start:end+1])
			pos = end + 1
		} else {
			pos = start + 1
		}
	}
	return out
}

// matchBraces returns the index of the brace closing the object opened at
// start, or false if the input ends before depth returns to zero.
func matchBraces(raw string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func indexByteFrom(s string, c byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
