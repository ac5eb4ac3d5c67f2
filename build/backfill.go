package build

import (
	"context"
	"log/slog"

	"github.com/fwojciec/folio"
)

// Action is what a backfill did to one content item.
type Action string

// Backfill actions.
const (
	// ActionAssigned means a reference ID was generated and persisted.
	ActionAssigned Action = "assigned"
	// ActionPresent means the item already carried a reference ID.
	ActionPresent Action = "present"
	// ActionSkipped means the front-matter could not be parsed.
	ActionSkipped Action = "skipped"
	// ActionFailed means the rewritten item could not be persisted.
	ActionFailed Action = "failed"
)

// BackfillEntry is the log line of one item.
type BackfillEntry struct {
	Path        string
	Action      Action
	ReferenceID string
	Err         error
}

// Backfiller gives every content item a reference ID. Each item is handled
// independently; a failure never stops the run.
type Backfiller struct {
	Assigner folio.ReferenceAssigner
	Writer   folio.ContentWriter
	Logger   *slog.Logger
}

// Backfill assigns missing reference IDs to items. Items that receive an
// ID are persisted and their Raw replaced in place, so a caller extracting
// documents afterwards sees the new identity.
func (b *Backfiller) Backfill(ctx context.Context, items []*folio.ContentItem) []BackfillEntry {
	entries := make([]BackfillEntry, 0, len(items))
	for _, item := range items {
		entry := b.backfillItem(ctx, item)
		b.log(entry)
		entries = append(entries, entry)
	}
	return entries
}

func (b *Backfiller) backfillItem(ctx context.Context, item *folio.ContentItem) BackfillEntry {
	entry := BackfillEntry{Path: item.Path}
	if err := ctx.Err(); err != nil {
		entry.Action = ActionFailed
		entry.Err = err
		return entry
	}

	raw, id, err := b.Assigner.AssignReference(item.Raw)
	if err != nil {
		entry.Action = ActionSkipped
		entry.Err = err
		return entry
	}
	if id == "" {
		entry.Action = ActionPresent
		return entry
	}

	updated := *item
	updated.Raw = raw
	if err := b.Writer.WriteItem(ctx, &updated); err != nil {
		entry.Action = ActionFailed
		entry.Err = err
		return entry
	}

	item.Raw = raw
	entry.Action = ActionAssigned
	entry.ReferenceID = id
	return entry
}

func (b *Backfiller) log(e BackfillEntry) {
	if b.Logger == nil {
		return
	}
	switch e.Action {
	case ActionAssigned:
		b.Logger.Info("reference assigned", "path", e.Path, "reference_id", e.ReferenceID)
	case ActionPresent:
		b.Logger.Debug("reference present", "path", e.Path)
	default:
		b.Logger.Warn("reference not assigned", "path", e.Path, "action", string(e.Action), "err", e.Err)
	}
}

// Count returns how many entries took action a.
func Count(entries []BackfillEntry, a Action) int {
	n := 0
	for _, e := range entries {
		if e.Action == a {
			n++
		}
	}
	return n
}
