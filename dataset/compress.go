package dataset

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// nopCloser adapts readers that hold nothing to release.
type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

// zstdCloser adapts *zstd.Decoder, whose Close has no error result.
type zstdCloser struct{ *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// decompress wraps r with the decoder for f. The caller closes the result;
// closing it does not close r.
func decompress(f Format, r io.Reader) (io.ReadCloser, error) {
	switch f {
	case FormatJSON:
		return nopCloser{r}, nil
	case FormatGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip header: %v", ErrDecode, err)
		}
		return zr, nil
	case FormatZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrDecode, err)
		}
		return zstdCloser{dec}, nil
	case FormatLZ4:
		return nopCloser{lz4.NewReader(r)}, nil
	}
	return nil, fmt.Errorf("%w: %s is not a stream format", ErrUnsupportedFormat, f)
}

// DecodeStream decodes a Document from r stored in format f.
func DecodeStream(f Format, r io.Reader) (*Document, error) {
	rc, err := decompress(f, r)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Decode(rc)
}
