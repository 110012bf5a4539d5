// Package speech prepares assistant answers for the browser's
// speech-synthesis engine: plain-text utterances and the voice locale
// preference order. Actual playback happens client-side; the session store
// tracks which turn, if any, is speaking.
package speech

import "strings"

// VoiceCandidates returns voice locales in preference order. The client
// picks the first locale its platform has a voice for and falls back to
// the platform default when none match.
func VoiceCandidates() []string {
	return []string{"es-CL", "es-MX", "es-419", "es-US", "es"}
}

// PrepareUtterance strips markdown control characters from text so the
// synthesizer does not read them aloud. Link syntax keeps its label and
// drops the URL; runs of whitespace collapse to single spaces, with
// paragraph breaks preserved as sentence pauses.
func PrepareUtterance(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#>")
		line = trimListMarker(line)
		line = stripLinks(line)
		line = strings.Map(func(r rune) rune {
			switch r {
			case '*', '_', '`', '#', '|':
				return -1
			}
			return r
		}, line)
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(line)
	}

	return b.String()
}

// trimListMarker removes a leading bullet or "1." style ordinal.
func trimListMarker(line string) string {
	trimmed := strings.TrimLeft(line, "-+ ")
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i < len(trimmed) && trimmed[i] == '.' {
		return trimmed[i+1:]
	}
	return trimmed
}

// stripLinks rewrites [label](url) as label.
func stripLinks(line string) string {
	for {
		open := strings.Index(line, "[")
		if open < 0 {
			return line
		}
		sep := strings.Index(line[open:], "](")
		if sep < 0 {
			return line
		}
		sep += open
		end := strings.Index(line[sep:], ")")
		if end < 0 {
			return line
		}
		end += sep
		line = line[:open] + line[open+1:sep] + line[end+1:]
	}
}
