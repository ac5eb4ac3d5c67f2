package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(id string, locale folio.Locale, ref string, published string) *folio.Document {
	p, _ := time.Parse("2006-01-02", published)
	return &folio.Document{
		ID:          id,
		Locale:      locale,
		ReferenceID: ref,
		Collection:  folio.CollectionBlog,
		Title:       "Title " + id,
		Slug:        id,
		Path:        "/" + id,
		Tags:        []string{"android", "kotlin"},
		Excerpt:     "excerpt",
		PlainText:   "plain text of " + id,
		PublishedAt: p,
	}
}

func TestDocumentService_ReplaceDocuments(t *testing.T) {
	t.Parallel()

	t.Run("stores documents with tags", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := testDoc("blog/en/a", folio.LocaleEN, "R1", "2024-02-03")
		doc.Draft = true
		require.NoError(t, svc.ReplaceDocuments(ctx, folio.LocaleEN, []*folio.Document{doc}))

		got, err := svc.FindDocumentByID(ctx, "blog/en/a")
		require.NoError(t, err)
		assert.Equal(t, "R1", got.ReferenceID)
		assert.Equal(t, []string{"android", "kotlin"}, got.Tags)
		assert.True(t, got.Draft)
		assert.True(t, doc.PublishedAt.Equal(got.PublishedAt))
		assert.Len(t, got.ContentHash, 16)
	})

	t.Run("replaces only the given locale", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.ReplaceDocuments(ctx, folio.LocaleEN, []*folio.Document{
			testDoc("blog/en/a", folio.LocaleEN, "R1", "2024-01-01"),
			testDoc("blog/en/b", folio.LocaleEN, "R2", "2024-01-01"),
		}))
		require.NoError(t, svc.ReplaceDocuments(ctx, folio.LocaleES, []*folio.Document{
			testDoc("blog/es/a", folio.LocaleES, "R1", "2024-01-01"),
		}))
		require.NoError(t, svc.ReplaceDocuments(ctx, folio.LocaleEN, []*folio.Document{
			testDoc("blog/en/b", folio.LocaleEN, "R2", "2024-01-01"),
		}))

		all, err := svc.FindDocuments(ctx, folio.DocumentFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "blog/en/b", all[0].ID)
		assert.Equal(t, "blog/es/a", all[1].ID)

		var tags int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM document_tags").Scan(&tags))
		assert.Equal(t, 4, tags)
	})

	t.Run("rejects documents of another locale", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))

		err := svc.ReplaceDocuments(context.Background(), folio.LocaleEN, []*folio.Document{
			testDoc("blog/es/a", folio.LocaleES, "", "2024-01-01"),
		})

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))

		err := svc.ReplaceDocuments(context.Background(), folio.LocaleEN, []*folio.Document{{ID: "x", Locale: folio.LocaleEN}})

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewDocumentService(db)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceDocuments(ctx, folio.LocaleEN, []*folio.Document{
		testDoc("blog/en/a", folio.LocaleEN, "R1", "2024-01-01"),
		testDoc("blog/en/b", folio.LocaleEN, "R2", "2024-06-01"),
		testDoc("blog/en/c", folio.LocaleEN, "R3", "2024-03-01"),
	}))

	t.Run("sorts by publication date", func(t *testing.T) {
		t.Parallel()

		docs, err := svc.FindDocuments(ctx, folio.DocumentFilter{SortBy: folio.SortByPublishedAt})

		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, []string{"blog/en/b", "blog/en/c", "blog/en/a"}, []string{docs[0].ID, docs[1].ID, docs[2].ID})
	})

	t.Run("filters by reference id", func(t *testing.T) {
		t.Parallel()

		ref := "R3"
		docs, err := svc.FindDocuments(ctx, folio.DocumentFilter{ReferenceID: &ref})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "blog/en/c", docs[0].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		docs, err := svc.FindDocuments(ctx, folio.DocumentFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "blog/en/b", docs[0].ID)
	})

	t.Run("offset without limit returns the rest", func(t *testing.T) {
		t.Parallel()

		docs, err := svc.FindDocuments(ctx, folio.DocumentFilter{Offset: 2})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "blog/en/c", docs[0].ID)
	})

	t.Run("filters published documents", func(t *testing.T) {
		t.Parallel()

		published := false
		docs, err := svc.FindDocuments(ctx, folio.DocumentFilter{Draft: &published})

		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()

		_, err := svc.FindDocumentByID(ctx, "blog/en/zzz")

		assert.Equal(t, folio.ENOTFOUND, folio.ErrorCode(err))
	})
}

func TestDocumentService_ResolveSibling(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewDocumentService(db)
	ctx := context.Background()

	en := testDoc("blog/en/clean", folio.LocaleEN, "R1", "2024-01-01")
	es := testDoc("blog/es/limpia", folio.LocaleES, "R1", "2024-01-01")
	lonely := testDoc("blog/en/lonely", folio.LocaleEN, "R2", "2024-01-01")
	drafted := testDoc("blog/en/drafted", folio.LocaleEN, "R3", "2024-01-01")
	draft := testDoc("blog/es/borrador", folio.LocaleES, "R3", "2024-01-01")
	draft.Draft = true
	require.NoError(t, svc.ReplaceDocuments(ctx, folio.LocaleEN, []*folio.Document{en, lonely, drafted}))
	require.NoError(t, svc.ReplaceDocuments(ctx, folio.LocaleES, []*folio.Document{es, draft}))

	path, err := svc.ResolveSibling(ctx, en, folio.LocaleES)
	require.NoError(t, err)
	assert.Equal(t, "/blog/es/limpia", path)

	_, err = svc.ResolveSibling(ctx, lonely, folio.LocaleES)
	assert.Equal(t, folio.ENOTFOUND, folio.ErrorCode(err))

	_, err = svc.ResolveSibling(ctx, drafted, folio.LocaleES)
	assert.Equal(t, folio.ENOTFOUND, folio.ErrorCode(err))
}
