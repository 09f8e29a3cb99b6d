// Package seqid derives human-facing sequential record IDs (PAT000001,
// DOC000001, APT000001) from the greatest ID already present in a collection.
package seqid

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

// Format describes the shape of one collection's sequential IDs.
type Format struct {
	Prefix string
	// ParseOffset is the index at which the numeric suffix of an existing ID
	// is parsed. For patients and doctors this equals len(Prefix); the
	// appointment format historically parses one character past the prefix
	// and that behavior is kept as-is.
	ParseOffset int
	Width       int
}

var (
	Patient     = Format{Prefix: "PAT", ParseOffset: 3, Width: 6}
	Doctor      = Format{Prefix: "DOC", ParseOffset: 3, Width: 6}
	Appointment = Format{Prefix: "APT", ParseOffset: 4, Width: 6}
)

// Render formats a sequence number, e.g. {PAT,3,6}.Render(4) == "PAT000004".
func (f Format) Render(n int) string {
	return fmt.Sprintf("%s%0*d", f.Prefix, f.Width, n)
}

// Store is the slice of the record store the generator needs.
type Store interface {
	FindMax(ctx context.Context, collection, field string) (*store.Document, error)
}

// Generator produces the next sequential ID for a collection. IDs are
// monotonically increasing per collection; two concurrent calls can observe
// the same greatest ID and collide, callers accept that window.
type Generator struct {
	store  Store
	logger zerolog.Logger
}

func New(st Store, logger zerolog.Logger) *Generator {
	return &Generator{store: st, logger: logger}
}

// Next returns the next ID for field in collection: the numeric suffix of
// the greatest existing ID plus one, zero-padded, or the sequence start when
// the collection is empty. A stored ID whose suffix does not parse as digits
// falls back to the sequence start; that is a defensive fallback and gets
// logged as a possible out-of-format ID in the collection.
func (g *Generator) Next(ctx context.Context, collection, field string, f Format) (string, error) {
	doc, err := g.store.FindMax(ctx, collection, field)
	if errors.Is(err, store.ErrNotFound) {
		return f.Render(1), nil
	}
	if err != nil {
		return "", err
	}

	current, _ := doc.Data[field].(string)
	if len(current) <= f.ParseOffset {
		g.logger.Warn().
			Str("collection", collection).
			Str("field", field).
			Str("value", current).
			Msg("stored sequential id is out of format; restarting sequence")
		return f.Render(1), nil
	}

	n, err := strconv.Atoi(current[f.ParseOffset:])
	if err != nil {
		g.logger.Warn().
			Str("collection", collection).
			Str("field", field).
			Str("value", current).
			Msg("stored sequential id is out of format; restarting sequence")
		return f.Render(1), nil
	}

	return f.Render(n + 1), nil
}
