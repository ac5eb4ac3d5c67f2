package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/folio"
)

var _ folio.AssetFetcher = (*LoggingAssetFetcher)(nil)

// LoggingAssetFetcher wraps an AssetFetcher with logging.
type LoggingAssetFetcher struct {
	next   folio.AssetFetcher
	logger *slog.Logger
}

// NewLoggingAssetFetcher creates a new LoggingAssetFetcher.
func NewLoggingAssetFetcher(next folio.AssetFetcher, logger *slog.Logger) *LoggingAssetFetcher {
	return &LoggingAssetFetcher{next: next, logger: logger}
}

// FetchIndex delegates to the wrapped fetcher. Failures are logged at warn
// level since they leave search in its error state.
func (f *LoggingAssetFetcher) FetchIndex(ctx context.Context, locale folio.Locale) (data []byte, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		f.logger.Log(ctx, level, "index fetch",
			"locale", locale,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchIndex(ctx, locale)
}

var _ folio.AssetStore = (*LoggingAssetStore)(nil)

// LoggingAssetStore wraps an AssetStore with logging.
type LoggingAssetStore struct {
	next   folio.AssetStore
	logger *slog.Logger
}

// NewLoggingAssetStore creates a new LoggingAssetStore.
func NewLoggingAssetStore(next folio.AssetStore, logger *slog.Logger) *LoggingAssetStore {
	return &LoggingAssetStore{next: next, logger: logger}
}

// WriteAsset delegates to the wrapped store and logs whether the asset
// changed.
func (s *LoggingAssetStore) WriteAsset(ctx context.Context, name string, data []byte) (written bool, err error) {
	defer func() {
		s.logger.Info("asset",
			"name", name,
			"bytes", len(data),
			"written", written,
			"err", err,
		)
	}()
	return s.next.WriteAsset(ctx, name, data)
}
