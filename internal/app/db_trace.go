package app

import "strings"

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace so multi-line statements read as one span
// attribute, and caps the length.
func formatDBQueryForTrace(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) > maxTracedQueryLength {
		return compact[:maxTracedQueryLength] + "..."
	}
	return compact
}
