package index_test

import (
	"time"

	"github.com/fwojciec/folio"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func doc(id string, locale folio.Locale, title, body string, published string) *folio.Document {
	return &folio.Document{
		ID:          id,
		Locale:      locale,
		Collection:  folio.CollectionBlog,
		Title:       title,
		Path:        "/" + id,
		PlainText:   body,
		PublishedAt: date(published),
	}
}
