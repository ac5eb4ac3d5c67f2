package folio

import "sort"

// ReferenceGroup is the set of documents, at most one per locale, that
// represent the same logical content item.
type ReferenceGroup struct {
	ReferenceID string
	Members     map[Locale]string // locale -> document ID
}

// ReferenceTable groups documents of every locale by reference ID.
type ReferenceTable struct {
	groups map[string]*ReferenceGroup
	docs   map[string]*Document

	// Warnings lists identity collisions: documents that lost their locale
	// slot to an earlier document with the same reference ID.
	Warnings []Warning
}

// NewReferenceTable builds the reference table from docs.
// Documents are considered in ascending ID order; the first document to
// claim a (reference ID, locale) slot keeps it. Later claimants are not
// merged and are reported as ECONFLICT warnings. Drafts never claim a slot,
// so published documents do not link to unpublished paths.
func NewReferenceTable(docs []*Document) *ReferenceTable {
	t := &ReferenceTable{
		groups: make(map[string]*ReferenceGroup),
		docs:   make(map[string]*Document, len(docs)),
	}

	sorted := make([]*Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, doc := range sorted {
		t.docs[doc.ID] = doc
		if doc.ReferenceID == "" || doc.Draft {
			continue
		}
		g, ok := t.groups[doc.ReferenceID]
		if !ok {
			g = &ReferenceGroup{ReferenceID: doc.ReferenceID, Members: make(map[Locale]string)}
			t.groups[doc.ReferenceID] = g
		}
		if owner, taken := g.Members[doc.Locale]; taken {
			t.Warnings = append(t.Warnings, Warning{
				Path:    doc.ID,
				Code:    ECONFLICT,
				Message: "reference_id " + doc.ReferenceID + " already used by " + owner + " in locale " + string(doc.Locale),
			})
			continue
		}
		g.Members[doc.Locale] = doc.ID
	}

	return t
}

// Len returns the number of reference groups.
func (t *ReferenceTable) Len() int {
	return len(t.groups)
}

// ResolveSibling returns the path of the document sharing doc's reference ID
// in the target locale. Returns false when no such document exists.
func (t *ReferenceTable) ResolveSibling(doc *Document, target Locale) (string, bool) {
	if doc == nil || doc.ReferenceID == "" {
		return "", false
	}
	g, ok := t.groups[doc.ReferenceID]
	if !ok {
		return "", false
	}
	id, ok := g.Members[target]
	if !ok {
		return "", false
	}
	sibling, ok := t.docs[id]
	if !ok {
		return "", false
	}
	return sibling.Path, true
}

// SiblingOrRoot resolves the sibling path, falling back to the target
// locale's content root.
func (t *ReferenceTable) SiblingOrRoot(doc *Document, target Locale) string {
	if p, ok := t.ResolveSibling(doc, target); ok {
		return p
	}
	return target.Root()
}

// Alternates returns the sibling paths of doc in every other locale.
// Returns nil when doc has no siblings.
func (t *ReferenceTable) Alternates(doc *Document) map[Locale]string {
	var alts map[Locale]string
	for _, l := range Locales {
		if l == doc.Locale {
			continue
		}
		if p, ok := t.ResolveSibling(doc, l); ok {
			if alts == nil {
				alts = make(map[Locale]string)
			}
			alts[l] = p
		}
	}
	return alts
}
