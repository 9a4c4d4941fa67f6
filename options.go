package softgl

import "log/slog"

// Default implementation limits.
const (
	DefaultMaxTextureUnits  = 16
	DefaultMaxVertexAttribs = 16

	// MaxColorAttachments is the number of color outputs a framebuffer
	// and a fragment shader can address.
	MaxColorAttachments = 8
)

// ContextOption configures a Context during creation.
//
// Example:
//
//	surface, _ := softgl.NewSurface(640, 480, softgl.FormatRGBA8)
//	ctx := softgl.NewContext(softgl.WithSurface(surface))
type ContextOption func(*contextOptions)

type contextOptions struct {
	surface          *Surface
	logger           *slog.Logger
	maxTextureUnits  int
	maxVertexAttribs int
}

func defaultOptions() contextOptions {
	return contextOptions{
		maxTextureUnits:  DefaultMaxTextureUnits,
		maxVertexAttribs: DefaultMaxVertexAttribs,
	}
}

// WithSurface sets the presentation surface backing the default
// framebuffer. It can be replaced later with Context.SetSurface.
func WithSurface(s *Surface) ContextOption {
	return func(o *contextOptions) {
		o.surface = s
	}
}

// WithLogger overrides the package logger for one context.
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithMaxTextureUnits sets the number of texture units. Values below 1
// are ignored.
func WithMaxTextureUnits(n int) ContextOption {
	return func(o *contextOptions) {
		if n > 0 {
			o.maxTextureUnits = n
		}
	}
}

// WithMaxVertexAttribs sets the number of attribute slots per vertex
// array. Values below 1 are ignored.
func WithMaxVertexAttribs(n int) ContextOption {
	return func(o *contextOptions) {
		if n > 0 {
			o.maxVertexAttribs = n
		}
	}
}
