package api

import (
	"go.uber.org/zap"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/layout"
)

// Options represents the configuration of a booklet generation run.
type Options struct {
	// Title is printed on the cover label.
	Title string

	// StepSize is the side length, in source pixels, of one building step.
	// It must be a positive integer.
	StepSize int

	// PageBackground mirrors Layout.Page.Background for the option form;
	// Layout is authoritative.
	PageBackground ir.RGB

	// Margin mirrors Layout.Page.Margin in millimeters; Layout is
	// authoritative.
	Margin float64

	// Layout carries every layout constant; DefaultOptions fills it with
	// the built-in value set, and callers may override any field. Options
	// apply in order, so a later WithLayout wins over an earlier
	// WithPageBackground or WithMargin and vice versa.
	Layout layout.Config

	// Logger receives interpreter diagnostics.
	Logger *zap.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions returns the default options: a 16-pixel step on A4 pages.
func DefaultOptions() Options {
	cfg := layout.DefaultConfig()
	return Options{
		Title:          "Mosaic",
		StepSize:       16,
		PageBackground: cfg.Page.Background,
		Margin:         cfg.Page.Margin,
		Layout:         cfg,
		Logger:         zap.NewNop(),
	}
}

// WithTitle sets the cover title.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithStepSize sets the building-step size in pixels.
func WithStepSize(step int) Option {
	return func(o *Options) {
		o.StepSize = step
	}
}

// WithPageBackground sets the page background color.
func WithPageBackground(c ir.RGB) Option {
	return func(o *Options) {
		o.PageBackground = c
		o.Layout.Page.Background = c
	}
}

// WithMargin sets the printer-safe margin in millimeters.
func WithMargin(mm float64) Option {
	return func(o *Options) {
		o.Margin = mm
		o.Layout.Page.Margin = mm
	}
}

// WithLayout replaces the full layout configuration.
func WithLayout(cfg layout.Config) Option {
	return func(o *Options) {
		o.Layout = cfg
		o.PageBackground = cfg.Page.Background
		o.Margin = cfg.Page.Margin
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
