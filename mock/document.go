package mock

import (
	"context"

	"github.com/fwojciec/folio"
)

var _ folio.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of folio.DocumentService.
type DocumentService struct {
	ReplaceDocumentsFn func(ctx context.Context, locale folio.Locale, docs []*folio.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*folio.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter folio.DocumentFilter) ([]*folio.Document, error)
}

func (s *DocumentService) ReplaceDocuments(ctx context.Context, locale folio.Locale, docs []*folio.Document) error {
	return s.ReplaceDocumentsFn(ctx, locale, docs)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*folio.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter folio.DocumentFilter) ([]*folio.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

var _ folio.ContentSource = (*ContentSource)(nil)

// ContentSource is a mock implementation of folio.ContentSource.
type ContentSource struct {
	ListItemsFn func(ctx context.Context, locale folio.Locale) ([]*folio.ContentItem, error)
}

func (s *ContentSource) ListItems(ctx context.Context, locale folio.Locale) ([]*folio.ContentItem, error) {
	return s.ListItemsFn(ctx, locale)
}

var _ folio.ContentWriter = (*ContentWriter)(nil)

// ContentWriter is a mock implementation of folio.ContentWriter.
type ContentWriter struct {
	WriteItemFn func(ctx context.Context, item *folio.ContentItem) error
}

func (w *ContentWriter) WriteItem(ctx context.Context, item *folio.ContentItem) error {
	return w.WriteItemFn(ctx, item)
}

var _ folio.DocumentExtractor = (*DocumentExtractor)(nil)

// DocumentExtractor is a mock implementation of folio.DocumentExtractor.
type DocumentExtractor struct {
	ExtractFn func(item *folio.ContentItem) (*folio.Document, error)
}

func (e *DocumentExtractor) Extract(item *folio.ContentItem) (*folio.Document, error) {
	return e.ExtractFn(item)
}

var _ folio.MarkupStripper = (*MarkupStripper)(nil)

// MarkupStripper is a mock implementation of folio.MarkupStripper.
type MarkupStripper struct {
	StripMarkupFn func(body string) string
}

func (s *MarkupStripper) StripMarkup(body string) string {
	return s.StripMarkupFn(body)
}

var _ folio.ReferenceAssigner = (*ReferenceAssigner)(nil)

// ReferenceAssigner is a mock implementation of folio.ReferenceAssigner.
type ReferenceAssigner struct {
	AssignReferenceFn func(raw []byte) ([]byte, string, error)
}

func (a *ReferenceAssigner) AssignReference(raw []byte) ([]byte, string, error) {
	return a.AssignReferenceFn(raw)
}
