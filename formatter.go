package folio

import (
	"strings"
)

// FormatDocuments formats documents as a listing, one per line:
// ID, path, and reference ID when present.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	lines := make([]string, 0, len(docs))
	for _, doc := range docs {
		line := doc.ID + "  " + doc.Path
		if doc.ReferenceID != "" {
			line += "  [" + doc.ReferenceID + "]"
		}
		if doc.Draft {
			line += "  (draft)"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
