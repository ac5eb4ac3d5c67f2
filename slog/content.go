package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/folio"
)

var _ folio.ContentSource = (*LoggingContentSource)(nil)

// LoggingContentSource wraps a ContentSource with logging.
type LoggingContentSource struct {
	next   folio.ContentSource
	logger *slog.Logger
}

// NewLoggingContentSource creates a new LoggingContentSource.
func NewLoggingContentSource(next folio.ContentSource, logger *slog.Logger) *LoggingContentSource {
	return &LoggingContentSource{next: next, logger: logger}
}

// ListItems delegates to the wrapped source and logs the item count.
func (s *LoggingContentSource) ListItems(ctx context.Context, locale folio.Locale) (items []*folio.ContentItem, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list content",
			"locale", locale,
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListItems(ctx, locale)
}
