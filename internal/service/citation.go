package service

import (
	"net/url"
	"strings"

	"contasis-asistente/internal/domain"
)

// ExtractCitations reduces grounding references to human-readable source
// labels: the reference's title when present, otherwise the host of its
// URI. Labels are deduplicated preserving first-occurrence order. A
// malformed reference is skipped without discarding the rest.
func ExtractCitations(refs []domain.GroundingRef) []string {
	var labels []string
	seen := make(map[string]struct{}, len(refs))

	for _, ref := range refs {
		label := strings.TrimSpace(ref.Title)
		if label == "" {
			label = hostOf(ref.URI)
		}
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	return labels
}

func hostOf(uri string) string {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return ""
	}
	return u.Hostname()
}
