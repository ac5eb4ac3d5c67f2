package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/folio"
)

// Compile-time interface verification.
var _ folio.DocumentService = (*DocumentService)(nil)

// DocumentService implements folio.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// ReplaceDocuments replaces every stored document of locale in a single
// transaction.
func (s *DocumentService) ReplaceDocuments(ctx context.Context, locale folio.Locale, docs []*folio.Document) error {
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
		if doc.Locale != locale {
			return folio.Errorf(folio.EINVALID, "document %s has locale %s, replacing %s", doc.ID, doc.Locale, locale)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE locale = ?", string(locale)); err != nil {
		return err
	}

	for _, doc := range docs {
		hash := doc.ContentHash
		if hash == "" {
			hash = hashContent(doc.PlainText)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (id, locale, reference_id, collection, title, slug, path, excerpt, plain_text, published_at, draft, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, doc.ID, string(doc.Locale), doc.ReferenceID, string(doc.Collection), doc.Title, doc.Slug, doc.Path,
			doc.Excerpt, doc.PlainText, doc.PublishedAt.UTC().Format(time.RFC3339), doc.Draft, hash)
		if err != nil {
			return err
		}
		for _, tag := range doc.Tags {
			if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO document_tags (document_id, tag) VALUES (?, ?)", doc.ID, tag); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

const selectDocuments = `SELECT id, locale, reference_id, collection, title, slug, path, excerpt, plain_text, published_at, draft, content_hash FROM documents`

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*folio.Document, error) {
	docs, err := s.FindDocuments(ctx, folio.DocumentFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, folio.Errorf(folio.ENOTFOUND, "document not found")
	}
	return docs[0], nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter folio.DocumentFilter) ([]*folio.Document, error) {
	q := documentQuery{}
	if filter.ID != nil {
		q.where("id = ?", *filter.ID)
	}
	if filter.Locale != nil {
		q.where("locale = ?", string(*filter.Locale))
	}
	if filter.ReferenceID != nil {
		q.where("reference_id = ?", *filter.ReferenceID)
	}
	if filter.Collection != nil {
		q.where("collection = ?", string(*filter.Collection))
	}
	if filter.Draft != nil {
		q.where("draft = ?", *filter.Draft)
	}
	query, args := q.build(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*folio.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if doc.Tags, err = s.findTags(ctx, doc.ID); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func scanDocument(rows *sql.Rows) (*folio.Document, error) {
	var doc folio.Document
	var locale, collection, publishedAt string

	if err := rows.Scan(&doc.ID, &locale, &doc.ReferenceID, &collection, &doc.Title, &doc.Slug, &doc.Path,
		&doc.Excerpt, &doc.PlainText, &publishedAt, &doc.Draft, &doc.ContentHash); err != nil {
		return nil, err
	}
	doc.Locale = folio.Locale(locale)
	doc.Collection = folio.Collection(collection)

	var err error
	if doc.PublishedAt, err = time.Parse(time.RFC3339, publishedAt); err != nil {
		return nil, folio.Errorf(folio.EINTERNAL, "document %s: bad published_at %q", doc.ID, publishedAt)
	}
	return &doc, nil
}

// documentQuery assembles a catalog SELECT from filter conditions.
type documentQuery struct {
	conds []string
	args  []any
}

func (q *documentQuery) where(cond string, arg any) {
	q.conds = append(q.conds, cond)
	q.args = append(q.args, arg)
}

// build returns the SQL and its arguments. Documents are ordered by ID
// unless the filter asks for the newest first; Limit and Offset apply only
// when positive.
func (q *documentQuery) build(filter folio.DocumentFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(selectDocuments)
	if len(q.conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(q.conds, " AND "))
	}

	switch filter.SortBy {
	case folio.SortByPublishedAt:
		sb.WriteString(" ORDER BY published_at DESC, id ASC")
	default:
		sb.WriteString(" ORDER BY id ASC")
	}

	args := q.args
	switch {
	case filter.Limit > 0:
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		sb.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		sb.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}
	return sb.String(), args
}

func (s *DocumentService) findTags(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tag FROM document_tags WHERE document_id = ? ORDER BY tag", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ResolveSibling returns the path of the document sharing doc's reference
// ID in the target locale. Drafts are never siblings.
// Returns ENOTFOUND when no published sibling is catalogued.
func (s *DocumentService) ResolveSibling(ctx context.Context, doc *folio.Document, target folio.Locale) (string, error) {
	if doc.ReferenceID == "" {
		return "", folio.Errorf(folio.ENOTFOUND, "document %s has no reference_id", doc.ID)
	}
	draft := false
	docs, err := s.FindDocuments(ctx, folio.DocumentFilter{
		Locale:      &target,
		ReferenceID: &doc.ReferenceID,
		Draft:       &draft,
		Limit:       1,
	})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", folio.Errorf(folio.ENOTFOUND, "no %s sibling for %s", target, doc.ID)
	}
	return docs[0].Path, nil
}
