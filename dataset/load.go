package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/katalvlaran/knotgraph/internal/logging"
	"github.com/katalvlaran/knotgraph/knot"
)

// Option configures Load.
type Option func(*Options)

// Options holds Load parameters.
type Options struct {
	// Logger receives load diagnostics. Defaults to a no-op logger.
	Logger *logging.Logger

	// IndexOptions are passed through to knot.New.
	IndexOptions []knot.Option

	// Format overrides extension-based detection when Detect is false.
	Format Format
	Detect bool
}

// DefaultOptions detects the format from the extension and logs nothing.
func DefaultOptions() Options {
	return Options{
		Logger: logging.Noop(),
		Detect: true,
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithParityCheck rejects records whose declared parity differs from the
// sum of their angles.
func WithParityCheck() Option {
	return func(o *Options) {
		o.IndexOptions = append(o.IndexOptions, knot.WithParityCheck())
	}
}

// WithIndexOptions forwards opts to knot.New.
func WithIndexOptions(opts ...knot.Option) Option {
	return func(o *Options) {
		o.IndexOptions = append(o.IndexOptions, opts...)
	}
}

// WithFormat disables extension detection.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.Format = f
		o.Detect = false
	}
}

// ReadDocument reads the Document stored at path.
func ReadDocument(ctx context.Context, path string, opts ...Option) (*Document, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return readDocument(ctx, path, o)
}

func readDocument(ctx context.Context, path string, o Options) (*Document, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format := o.Format
	if o.Detect {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", err, path)
		}
	}

	if format == FormatSQLite {
		src := NewSQLiteSource(path)
		if err := src.Open(ctx); err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer src.Close()
		return src.Document(ctx)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := DecodeStream(format, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load reads the dataset at path and builds its index.
func Load(ctx context.Context, path string, opts ...Option) (*knot.Index, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger.WithDataset(path)

	doc, err := readDocument(ctx, path, o)
	if err != nil {
		log.LogLoad(ctx, path, 0, 0, err)
		return nil, err
	}
	ix, err := doc.Index(o.IndexOptions...)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		log.LogLoad(ctx, path, len(doc.Knots), doc.NumAngles, err)
		return nil, err
	}
	log.LogLoad(ctx, path, ix.Len(), ix.Modulus(), nil)
	return ix, nil
}
