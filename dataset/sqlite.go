package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLite layout read by SQLiteSource:
//
//	meta(key TEXT PRIMARY KEY, value TEXT)         -- holds key "num_angles"
//	knots(id INTEGER PRIMARY KEY, angles TEXT,     -- angles is a JSON array
//	      final_angle REAL, total_cost REAL, angle_parity INTEGER)
//
// Rows are read in id order, which fixes the ranks of the resulting index.
const (
	queryNumAngles = `SELECT value FROM meta WHERE key = 'num_angles'`
	queryKnots     = `SELECT angles, final_angle, total_cost, angle_parity FROM knots ORDER BY id`
)

// ErrNoModulus is returned when the meta table lacks num_angles.
var ErrNoModulus = errors.New("dataset: sqlite meta table has no num_angles")

// SQLiteSource reads a Document out of a SQLite database file.
type SQLiteSource struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteSource returns a source for the database at path. Nothing is
// opened until Open.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Open connects to the database in read-only mode and pings it.
func (s *SQLiteSource) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return ErrEmptyPath
	}
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", "file:"+s.path+"?mode=ro")
	if err != nil {
		return err
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	return nil
}

// Close releases the connection. It is safe to call more than once.
func (s *SQLiteSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Document reads the modulus and every knot row.
func (s *SQLiteSource) Document(ctx context.Context) (*Document, error) {
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return nil, errors.New("dataset: sqlite source is not open")
	}

	var raw string
	if err := db.QueryRowContext(ctx, queryNumAngles).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoModulus
		}
		return nil, fmt.Errorf("read num_angles: %w", err)
	}
	numAngles, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: num_angles %q: %v", ErrDecode, raw, err)
	}

	rows, err := db.QueryContext(ctx, queryKnots)
	if err != nil {
		return nil, fmt.Errorf("read knots: %w", err)
	}
	defer rows.Close()

	doc := &Document{NumAngles: numAngles}
	for rows.Next() {
		var (
			anglesJSON string
			e          Entry
		)
		if err = rows.Scan(&anglesJSON, &e.FinalAngle, &e.TotalCost, &e.AngleParity); err != nil {
			return nil, fmt.Errorf("scan knot row: %w", err)
		}
		if err = json.Unmarshal([]byte(anglesJSON), &e.Angles); err != nil {
			return nil, fmt.Errorf("%w: knot %d angles: %v", ErrDecode, len(doc.Knots), err)
		}
		doc.Knots = append(doc.Knots, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("read knots: %w", err)
	}
	return doc, nil
}
