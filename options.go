package dictgo

import "github.com/hupe1980/dictgo/alloc"

type options struct {
	allocator     alloc.Allocator
	caseSensitive bool
	logger        *Logger
}

// Option configures Dict constructor behavior.
type Option func(*options)

// WithAllocator sets the allocator charged for all backing storage, including
// the embedded hash index and owned string payloads. If nil is passed,
// alloc.Heap is used.
func WithAllocator(a alloc.Allocator) Option {
	return func(o *options) {
		if a == nil {
			a = alloc.Heap
		}
		o.allocator = a
	}
}

// WithCaseSensitiveKeys disables the default ASCII case-folded key compare.
// Use this when keys are not 7-bit ASCII.
func WithCaseSensitiveKeys(caseSensitive bool) Option {
	return func(o *options) {
		o.caseSensitive = caseSensitive
	}
}

// WithLogger sets the logger for growth and slot-reuse events. If nil is
// passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
