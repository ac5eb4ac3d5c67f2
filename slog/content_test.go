package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/mock"
	folioslog "github.com/fwojciec/folio/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingContentSource_ListItems(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.ContentSource{
		ListItemsFn: func(ctx context.Context, locale folio.Locale) ([]*folio.ContentItem, error) {
			return []*folio.ContentItem{{Path: "blog/es/a.md"}, {Path: "blog/es/b.md"}}, nil
		},
	}

	items, err := folioslog.NewLoggingContentSource(inner, logger).ListItems(context.Background(), folio.LocaleES)

	require.NoError(t, err)
	assert.Len(t, items, 2)
	output := buf.String()
	assert.Contains(t, output, "list content")
	assert.Contains(t, output, "locale=es")
	assert.Contains(t, output, "count=2")
}
