package core

import (
	"regexp"
	"strings"
)

// idTag matches the "id:" / "id=" tag used both to declare a note's own id
// and to reference other notes. The keyword is case-insensitive and may be
// followed by a single space before the token.
var idTag = regexp.MustCompile(`(?i)id[:=] ?[a-zA-Z0-9]+`)

// ExtractIDs returns every id token found in line, left to right.
// A line without tags yields an empty result.
func ExtractIDs(line string) []string {
	matches := idTag.FindAllString(line, -1)
	if len(matches) == 0 {
		return nil
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		// Drop the keyword and separator ("id:" or "id=").
		ids = append(ids, strings.TrimSpace(m[3:]))
	}
	return ids
}
