package jdoc

// DefaultMaxDepth is the nesting limit applied when no WithMaxDepth option is
// given.
const DefaultMaxDepth = 1000

type readerOptions struct {
	maxDepth      int
	legacyNumbers bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerOptions)

// WithMaxDepth limits how deeply objects and arrays may nest. Zero or a
// negative value removes the limit.
func WithMaxDepth(n int) ReaderOption {
	return func(o *readerOptions) { o.maxDepth = n }
}

// WithLegacyNumberScaling builds fractional numbers from their accumulated
// parts, dividing the fraction digits by ten times their count instead of by
// the matching power of ten. Only 1-digit fractions come out exact. It exists
// for byte compatibility with documents produced by older readers.
func WithLegacyNumberScaling() ReaderOption {
	return func(o *readerOptions) { o.legacyNumbers = true }
}

func newReaderOptions(opts []ReaderOption) readerOptions {
	o := readerOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
