package folio

import (
	"context"
	"path"
	"strings"
	"time"
)

// Collection groups content items of the same kind.
type Collection string

// Content collections.
const (
	CollectionBlog   Collection = "blog"
	CollectionApps   Collection = "apps"
	CollectionDevlog Collection = "devlog"
)

// Collections lists every content collection in a stable order.
var Collections = []Collection{CollectionBlog, CollectionApps, CollectionDevlog}

// ParseCollection returns the Collection for s.
// Returns EINVALID if s names no collection.
func ParseCollection(s string) (Collection, error) {
	c := Collection(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Collections {
		if c == v {
			return c, nil
		}
	}
	return "", Errorf(EINVALID, "unknown collection %q", s)
}

// Kind returns the label shown next to search results.
func (c Collection) Kind() string {
	switch c {
	case CollectionApps:
		return "App"
	case CollectionDevlog:
		return "Devlog"
	default:
		return "Blog"
	}
}

// ContentItem is a raw content file: a front-matter block followed by a body.
type ContentItem struct {
	// Path is relative to the content root, e.g. "blog/es/clean-architecture.md".
	Path       string
	Collection Collection
	Locale     Locale
	Slug       string
	Raw        []byte
}

// DocumentID derives the build-stable document ID from the item path.
func (i *ContentItem) DocumentID() string {
	return strings.TrimSuffix(i.Path, path.Ext(i.Path))
}

// Route returns the localized URL path of the item.
func (i *ContentItem) Route() string {
	return LocalizePath(i.Locale, "/"+string(i.Collection)+"/"+i.Slug)
}

// DocumentIDFromRoute maps a localized URL path such as
// "/es/blog/arquitectura-limpia" back to its document ID.
// Returns EINVALID when the route names no collection and slug.
func DocumentIDFromRoute(route string) (string, error) {
	locale := LocaleFromPath(route)
	parts := strings.SplitN(strings.Trim(RouteFromPath(route), "/"), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", Errorf(EINVALID, "route %q does not name a document", route)
	}
	collection, err := ParseCollection(parts[0])
	if err != nil {
		return "", err
	}
	return string(collection) + "/" + string(locale) + "/" + strings.Trim(parts[1], "/"), nil
}

// Document is one content item in one locale.
type Document struct {
	ID          string     `json:"id"`
	Locale      Locale     `json:"locale"`
	ReferenceID string     `json:"referenceId,omitempty"`
	Collection  Collection `json:"collection"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Path        string     `json:"path"`
	Tags        []string   `json:"tags,omitempty"`
	Excerpt     string     `json:"excerpt"`
	PlainText   string     `json:"plainText"`
	PublishedAt time.Time  `json:"publishedAt"`
	Draft       bool       `json:"draft,omitempty"`
	ContentHash string     `json:"contentHash,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if !d.Locale.Valid() {
		return Errorf(EINVALID, "document %s: unsupported locale %q", d.ID, d.Locale)
	}
	if d.Title == "" {
		return Errorf(EINVALID, "document %s: title required", d.ID)
	}
	if d.Path == "" {
		return Errorf(EINVALID, "document %s: path required", d.ID)
	}
	return nil
}

// ContentSource lists the content items of a locale.
type ContentSource interface {
	// ListItems returns every content item of the locale across all
	// collections, ordered by path.
	ListItems(ctx context.Context, locale Locale) ([]*ContentItem, error)
}

// ContentWriter persists a content item back to storage.
type ContentWriter interface {
	WriteItem(ctx context.Context, item *ContentItem) error
}

// DocumentExtractor turns a raw content item into a Document.
type DocumentExtractor interface {
	// Extract parses the item's front-matter and body.
	// Returns EINVALID when the front-matter is malformed or incomplete.
	Extract(item *ContentItem) (*Document, error)
}

// MarkupStripper reduces a markup body to plain text.
type MarkupStripper interface {
	StripMarkup(body string) string
}

// ReferenceAssigner guarantees a content item carries a reference ID.
type ReferenceAssigner interface {
	// AssignReference returns raw unchanged with an empty ID when the
	// front-matter already carries a reference ID. Otherwise it returns the
	// rewritten content and the newly assigned ID.
	// Returns EINVALID when the front-matter cannot be parsed.
	AssignReference(raw []byte) ([]byte, string, error)
}

// DocumentService represents the build catalog of extracted documents.
type DocumentService interface {
	// ReplaceDocuments replaces every stored document of the locale.
	ReplaceDocuments(ctx context.Context, locale Locale, docs []*Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
}

// SortOrder represents the sort order for document queries.
type SortOrder string

// SortOrder constants for DocumentFilter.
const (
	SortByID          SortOrder = "id"
	SortByPublishedAt SortOrder = "published_at"
)

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID          *string     `json:"id"`
	Locale      *Locale     `json:"locale"`
	ReferenceID *string     `json:"referenceId"`
	Collection  *Collection `json:"collection"`
	Draft       *bool       `json:"draft"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
