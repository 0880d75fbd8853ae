package dataset_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knotgraph/dataset"
	"github.com/katalvlaran/knotgraph/internal/logging"
	"github.com/katalvlaran/knotgraph/knot"
)

// sampleJSON is a three-knot dataset; two knots share parity 10.
const sampleJSON = `{
  "num_angles": 16,
  "knots": [
    {"angles": [3, 4], "final_angle": 3.0, "total_cost": 1.5, "angle_parity": 10},
    {"angles": [1, 1], "final_angle": 2.5, "total_cost": 0.25, "angle_parity": 4},
    {"angles": [4, 3], "final_angle": 2.9, "total_cost": 2.75, "angle_parity": 10}
  ]
}`

func writeFile(t *testing.T, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, body, 0o600))
	return path
}

// TestDetectFormat maps extensions to formats.
func TestDetectFormat(t *testing.T) {
	cases := map[string]dataset.Format{
		"all_knots.json":     dataset.FormatJSON,
		"ALL.JSON":           dataset.FormatJSON,
		"top_100.json.gz":    dataset.FormatGzip,
		"top_100.json.zst":   dataset.FormatZstd,
		"top_100.json.lz4":   dataset.FormatLZ4,
		"knots.db":           dataset.FormatSQLite,
		"dir/knots.sqlite3":  dataset.FormatSQLite,
		"statistics.sqlite":  dataset.FormatSQLite,
		"nested.v2.json.zst": dataset.FormatZstd,
	}
	for path, want := range cases {
		got, err := dataset.DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := dataset.DetectFormat("knots.csv")
	assert.ErrorIs(t, err, dataset.ErrUnsupportedFormat)
}

// TestDocument_Records appends the rounded final angle and keeps the declared parity.
func TestDocument_Records(t *testing.T) {
	doc, err := dataset.Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, 16, doc.NumAngles)

	recs := doc.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, []int{3, 4, 3}, recs[0].Angles)
	assert.Equal(t, []int{1, 1, 2}, recs[1].Angles, "2.5 rounds half to even")
	assert.Equal(t, []int{4, 3, 3}, recs[2].Angles)
	assert.Equal(t, 10, recs[2].Parity)
	assert.Equal(t, 2.75, recs[2].Cost)
}

// TestLoad_Formats loads the same document from every supported container.
func TestLoad_Formats(t *testing.T) {
	raw := []byte(sampleJSON)

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var zs bytes.Buffer
	zw, err := zstd.NewWriter(&zs)
	require.NoError(t, err)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var l4 bytes.Buffer
	lw := lz4.NewWriter(&l4)
	_, err = lw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	paths := map[string]string{
		"json":   writeFile(t, "knots.json", raw),
		"gzip":   writeFile(t, "knots.json.gz", gz.Bytes()),
		"zstd":   writeFile(t, "knots.json.zst", zs.Bytes()),
		"lz4":    writeFile(t, "knots.json.lz4", l4.Bytes()),
		"sqlite": writeSQLite(t, raw),
	}
	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			ix, err := dataset.Load(context.Background(), path)
			require.NoError(t, err)
			assertSampleIndex(t, ix)
		})
	}
}

func assertSampleIndex(t *testing.T, ix *knot.Index) {
	t.Helper()
	assert.Equal(t, 16, ix.Modulus())
	assert.Equal(t, 3, ix.Len())
	bucket := ix.Bucket(10)
	require.Len(t, bucket, 2)
	assert.Equal(t, []int{3, 4, 3}, bucket[0].Angles)
	assert.Equal(t, 1, bucket[0].Rank)
	assert.Equal(t, []int{4, 3, 3}, bucket[1].Angles)
	assert.Equal(t, 2, bucket[1].Rank)
}

// writeSQLite stores the document in the table layout SQLiteSource reads.
func writeSQLite(t *testing.T, raw []byte) string {
	t.Helper()
	doc, err := dataset.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "knots.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE knots (id INTEGER PRIMARY KEY, angles TEXT NOT NULL,
		final_angle REAL, total_cost REAL, angle_parity INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO meta (key, value) VALUES ('num_angles', ?)`, "16")
	require.NoError(t, err)
	for i, e := range doc.Knots {
		angles, err := json.Marshal(e.Angles)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO knots (id, angles, final_angle, total_cost, angle_parity)
			VALUES (?, ?, ?, ?, ?)`, i+1, string(angles), e.FinalAngle, e.TotalCost, e.AngleParity)
		require.NoError(t, err)
	}
	return path
}

// TestLoad_Errors covers path, format, decode and index failures.
func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := dataset.Load(ctx, "")
	assert.ErrorIs(t, err, dataset.ErrEmptyPath)

	_, err = dataset.Load(ctx, "knots.csv")
	assert.ErrorIs(t, err, dataset.ErrUnsupportedFormat)

	_, err = dataset.Load(ctx, writeFile(t, "broken.json", []byte(`{"num_angles": 16, "knots": [`)))
	assert.ErrorIs(t, err, dataset.ErrDecode)

	_, err = dataset.Load(ctx, writeFile(t, "notgzip.json.gz", []byte(sampleJSON)))
	assert.ErrorIs(t, err, dataset.ErrDecode)

	bad := `{"num_angles": 16, "knots": [{"angles": [1], "final_angle": 0, "total_cost": 1, "angle_parity": 16}]}`
	_, err = dataset.Load(ctx, writeFile(t, "bad.json", []byte(bad)))
	assert.ErrorIs(t, err, knot.ErrMalformedDataset)

	_, err = dataset.Load(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoad_ParityCheck rejects a declared parity that disagrees with the angles.
func TestLoad_ParityCheck(t *testing.T) {
	lying := `{"num_angles": 16, "knots": [{"angles": [1, 2], "final_angle": 3, "total_cost": 1, "angle_parity": 7}]}`
	path := writeFile(t, "lying.json", []byte(lying))

	_, err := dataset.Load(context.Background(), path)
	require.NoError(t, err, "declared parity is trusted by default")

	_, err = dataset.Load(context.Background(), path, dataset.WithParityCheck())
	assert.ErrorIs(t, err, knot.ErrParityMismatch)
}

// TestLoad_Logs emits a debug record on success.
func TestLoad_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, -4)
	path := writeFile(t, "knots.data", []byte(sampleJSON))

	ix, err := dataset.Load(context.Background(), path,
		dataset.WithFormat(dataset.FormatJSON), dataset.WithLogger(logger))
	require.NoError(t, err)
	assertSampleIndex(t, ix)
	assert.Contains(t, buf.String(), `"msg":"dataset loaded"`)
	assert.Contains(t, buf.String(), `"records":3`)
}

// TestSQLiteSource_NoModulus reports a database without the meta row.
func TestSQLiteSource_NoModulus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	src := dataset.NewSQLiteSource(path)
	require.NoError(t, src.Open(context.Background()))
	defer src.Close()
	_, err = src.Document(context.Background())
	assert.ErrorIs(t, err, dataset.ErrNoModulus)
	assert.NoError(t, src.Close())
}
