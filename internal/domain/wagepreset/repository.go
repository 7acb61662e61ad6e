package wagepreset

import (
	"context"
	"time"
)

// WagePresetRepository is the read side of the preset store; presets are
// seeded out of band and never written by this service.
type WagePresetRepository interface {
	// GetByName returns the named preset or ErrPresetNotFound.
	GetByName(ctx context.Context, name string) (WagePreset, error)

	// GetForDate returns the preset whose validity interval contains the
	// date, or (nil, nil) when no preset covers it. The nil result is an
	// explicit marker, not an error, so callers can collect every
	// uncovered month before reporting.
	GetForDate(ctx context.Context, date time.Time) (*WagePreset, error)

	// ListAll returns every preset ordered by valid_from.
	ListAll(ctx context.Context) ([]WagePreset, error)
}
