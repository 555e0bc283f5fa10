package tableau

import (
	"github.com/hupe1980/tableau/codec"
)

type options struct {
	eps         float64
	format      Format
	codec       codec.Codec
	compression codec.Compression
	logger      *Logger
}

// Option configures vector/tableau construction and snapshot behavior.
//
// Options primarily exist to avoid exploding the API surface
// (e.g. codec-specific constructor variants).
type Option func(*options)

func defaultOptions() options {
	return options{
		format:      FormatRowAndColumn,
		codec:       codec.Default,
		compression: codec.CompressionNone,
		logger:      NoopLogger(),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithEpsilon configures the tolerance of the zero test used by sparse
// arithmetic. A merged or multiplied entry whose absolute value is at most
// eps is treated as zero and dropped.
//
// The default is 0, i.e. exact comparison against the additive identity.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		if eps < 0 {
			eps = 0
		}
		o.eps = eps
	}
}

// WithFormat configures which axes a Tableau materializes.
//
// FormatRowOnly and FormatColumnOnly halve the memory cost of the dual view;
// accessors for the omitted axis panic. The format of a Tableau never changes
// after construction.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithCodec configures the codec used for encoding/decoding snapshot
// payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures snapshot payload compression.
//
// Snapshots are self-describing: the compression used at save time is
// recorded in the envelope, so loads never need this option.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger configures the logger used by snapshot operations.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
