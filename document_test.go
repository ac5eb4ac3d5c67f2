package folio_test

import (
	"testing"

	"github.com/fwojciec/folio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentItem(t *testing.T) {
	t.Parallel()

	item := &folio.ContentItem{
		Path:       "blog/es/arquitectura-limpia.md",
		Collection: folio.CollectionBlog,
		Locale:     folio.LocaleES,
		Slug:       "arquitectura-limpia",
	}

	assert.Equal(t, "blog/es/arquitectura-limpia", item.DocumentID())
	assert.Equal(t, "/es/blog/arquitectura-limpia", item.Route())
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *folio.Document {
		return &folio.Document{ID: "blog/en/a", Locale: folio.LocaleEN, Title: "A", Path: "/blog/a"}
	}

	t.Run("accepts complete document", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(d *folio.Document)
	}{
		{"missing id", func(d *folio.Document) { d.ID = "" }},
		{"unknown locale", func(d *folio.Document) { d.Locale = "fr" }},
		{"missing title", func(d *folio.Document) { d.Title = "" }},
		{"missing path", func(d *folio.Document) { d.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := valid()
			tt.mutate(d)

			err := d.Validate()
			require.Error(t, err)
			assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
		})
	}
}

func TestCollection_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Blog", folio.CollectionBlog.Kind())
	assert.Equal(t, "App", folio.CollectionApps.Kind())
	assert.Equal(t, "Devlog", folio.CollectionDevlog.Kind())
}

func TestParseCollection(t *testing.T) {
	t.Parallel()

	c, err := folio.ParseCollection(" Devlog ")
	require.NoError(t, err)
	assert.Equal(t, folio.CollectionDevlog, c)

	_, err = folio.ParseCollection("news")
	require.Error(t, err)
	assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
}

func TestDocumentIDFromRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route string
		want  string
	}{
		{"/es/blog/arquitectura-limpia", "blog/es/arquitectura-limpia"},
		{"/blog/clean-architecture", "blog/en/clean-architecture"},
		{"/devlog/compose/", "devlog/en/compose"},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			t.Parallel()

			got, err := folio.DocumentIDFromRoute(tt.route)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects routes without a document", func(t *testing.T) {
		t.Parallel()

		for _, route := range []string{"/", "/es/", "/blog", "/news/x"} {
			_, err := folio.DocumentIDFromRoute(route)
			assert.Equal(t, folio.EINVALID, folio.ErrorCode(err), route)
		}
	})
}
