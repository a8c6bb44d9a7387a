package viewer

import (
	"image/color"
	"log/slog"
	"time"

	"image-view/internal/render"
)

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the logger. nil discards log output.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Viewer) {
		v.logger = logger
	}
}

// WithSettleDelay sets the quiet period after the last resize event before a
// high-quality rebuild.
func WithSettleDelay(d time.Duration) Option {
	return func(v *Viewer) {
		v.settleDelay = d
	}
}

// WithAfterFunc replaces the clock used for the resize settle timer.
func WithAfterFunc(after render.AfterFunc) Option {
	return func(v *Viewer) {
		v.after = after
	}
}

// WithBackground sets the fill colour around the fitted image.
func WithBackground(c color.Color) Option {
	return func(v *Viewer) {
		if c != nil {
			v.background = c
		}
	}
}

// WithQualityThreshold sets the region size below which scaling stays
// nearest-neighbour.
func WithQualityThreshold(px int) Option {
	return func(v *Viewer) {
		v.policy.Threshold = px
	}
}

// WithGrid enables the alignment grid overlay.
func WithGrid(enabled bool) Option {
	return func(v *Viewer) {
		v.grid = enabled
	}
}
