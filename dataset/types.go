// Package dataset loads knot datasets produced by the upstream generator and
// turns them into a *knot.Index.
//
// A dataset is a JSON document
//
//	{"num_angles": 16, "knots": [{"angles": [...], "final_angle": 7.0,
//	  "total_cost": 1.4, "angle_parity": 10}, ...]}
//
// stored plain, gzip/zstd/lz4 compressed, or as rows of a SQLite database.
// num_angles is the angle modulus; final_angle is rounded half-to-even and
// appended as the closing coordinate of each angle vector.
//
// The package only reads. It never writes datasets back.
package dataset

import (
	"errors"
	"path/filepath"
	"strings"
)

// Sentinel errors for dataset loading.
var (
	// ErrEmptyPath is returned when no dataset path is given.
	ErrEmptyPath = errors.New("dataset: path is empty")

	// ErrUnsupportedFormat is returned for an unknown file extension.
	ErrUnsupportedFormat = errors.New("dataset: unsupported format")

	// ErrDecode wraps any failure to decode the document body.
	ErrDecode = errors.New("dataset: decode failed")
)

// Format identifies how a dataset file is stored.
type Format int

const (
	// FormatJSON is a plain JSON document.
	FormatJSON Format = iota
	// FormatGzip is a gzip-compressed JSON document (.json.gz).
	FormatGzip
	// FormatZstd is a zstd-compressed JSON document (.json.zst).
	FormatZstd
	// FormatLZ4 is an lz4 frame-compressed JSON document (.json.lz4).
	FormatLZ4
	// FormatSQLite is a SQLite database (.db, .sqlite, .sqlite3).
	FormatSQLite
)

var formatNames = map[Format]string{
	FormatJSON:   "json",
	FormatGzip:   "gzip",
	FormatZstd:   "zstd",
	FormatLZ4:    "lz4",
	FormatSQLite: "sqlite",
}

// String implements fmt.Stringer.
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// DetectFormat picks a Format from the file extension.
func DetectFormat(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json.gz"), strings.HasSuffix(lower, ".json.gzip"):
		return FormatGzip, nil
	case strings.HasSuffix(lower, ".json.zst"), strings.HasSuffix(lower, ".json.zstd"):
		return FormatZstd, nil
	case strings.HasSuffix(lower, ".json.lz4"):
		return FormatLZ4, nil
	}
	switch filepath.Ext(lower) {
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return 0, ErrUnsupportedFormat
}

// Entry is one knot as written by the generator.
type Entry struct {
	Angles      []int   `json:"angles"`
	FinalAngle  float64 `json:"final_angle"`
	TotalCost   float64 `json:"total_cost"`
	AngleParity int     `json:"angle_parity"`
}

// Document is a whole dataset.
type Document struct {
	NumAngles int     `json:"num_angles"`
	Knots     []Entry `json:"knots"`
}
