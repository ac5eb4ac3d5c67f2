package folio_test

import (
	"testing"

	"github.com/fwojciec/folio"
	"github.com/stretchr/testify/assert"
)

func TestFormatDocuments(t *testing.T) {
	t.Parallel()

	t.Run("formats document with reference id", func(t *testing.T) {
		t.Parallel()

		docs := []*folio.Document{
			{ID: "blog/en/clean", Path: "/blog/clean", ReferenceID: "R1"},
		}

		assert.Equal(t, "blog/en/clean  /blog/clean  [R1]", folio.FormatDocuments(docs))
	})

	t.Run("omits missing reference id and marks drafts", func(t *testing.T) {
		t.Parallel()

		docs := []*folio.Document{
			{ID: "blog/es/a", Path: "/es/blog/a"},
			{ID: "blog/es/b", Path: "/es/blog/b", Draft: true},
		}

		assert.Equal(t, "blog/es/a  /es/blog/a\nblog/es/b  /es/blog/b  (draft)", folio.FormatDocuments(docs))
	})

	t.Run("returns empty string for no documents", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, folio.FormatDocuments(nil))
	})
}
