package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knotgraph/knot"
)

const fullJSON = `{
  "num_angles": 16,
  "knots": [
    {"angles": [0, 0],  "final_angle": 0,  "total_cost": 0.5, "angle_parity": 0},
    {"angles": [1, 15], "final_angle": 0,  "total_cost": 0.6, "angle_parity": 0},
    {"angles": [2, 14], "final_angle": 0,  "total_cost": 2.0, "angle_parity": 0},
    {"angles": [15, 1], "final_angle": 0,  "total_cost": 1.0, "angle_parity": 0},
    {"angles": [0, 1],  "final_angle": 15, "total_cost": 3.5, "angle_parity": 0},
    {"angles": [1, 2],  "final_angle": 3,  "total_cost": 0.2, "angle_parity": 6}
  ]
}`

const goodJSON = `{
  "num_angles": 16,
  "knots": [
    {"angles": [0, 0],  "final_angle": 0, "total_cost": 0.5, "angle_parity": 0},
    {"angles": [2, 14], "final_angle": 0, "total_cost": 2.0, "angle_parity": 0},
    {"angles": [5, 5],  "final_angle": 5, "total_cost": 0.1, "angle_parity": 15}
  ]
}`

func writeDatasets(t *testing.T) (full, good string) {
	t.Helper()
	dir := t.TempDir()
	full = filepath.Join(dir, "all_knots.json")
	good = filepath.Join(dir, "top_100.json")
	require.NoError(t, os.WriteFile(full, []byte(fullJSON), 0o600))
	require.NoError(t, os.WriteFile(good, []byte(goodJSON), 0o600))
	return full, good
}

// run executes the root command and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNeighbors(t *testing.T) {
	full, _ := writeDatasets(t)
	out, _, err := run(t, "neighbors", full, "--parity", "0", "--rank", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "[0 0 0] cost=0.5 rank=1 known", lines[0])
	assert.Equal(t, "  [1 15 0] cost=0.6 rank=2 known", lines[1])
	assert.Equal(t, "  [15 1 0] cost=1 rank=4 known", lines[2])
	assert.Equal(t, "  [0 15 1] cost=3 rank=-1 unknown", lines[4])
}

func TestNeighbors_NoSuchKnot(t *testing.T) {
	full, _ := writeDatasets(t)
	_, _, err := run(t, "neighbors", full, "--parity", "3")
	assert.Error(t, err)
}

func TestRetrieve(t *testing.T) {
	full, good := writeDatasets(t)
	out, _, err := run(t, "retrieve", full, good, "--parity", "0", "--rank", "2")
	require.NoError(t, err)
	assert.Equal(t, "[2 14 0] cost=2 rank=3 known\n", out)

	out, _, err = run(t, "retrieve", full, good, "--parity", "15")
	require.NoError(t, err)
	assert.Equal(t, "[5 5 5] not in full dataset\n", out)
}

func TestGoodAdjacency(t *testing.T) {
	full, good := writeDatasets(t)
	out, _, err := run(t, "good-adjacency", full, good)
	require.NoError(t, err)
	assert.Contains(t, out, "good neighbors: 3\n")
	assert.Contains(t, out, "distinct neighbors: 11 (3 in dataset)\n")
	assert.Contains(t, out, "mean per good knot: 1.5000\n")
	assert.Contains(t, out, "good knots missing from full dataset: 1\n")
}

func TestTopAdjacency(t *testing.T) {
	full, _ := writeDatasets(t)
	out, _, err := run(t, "top-adjacency", full, "--list")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "adjacent pairs: 8\n"))
	assert.Contains(t, out, "  [0 0 0] -> [1 15 0]\n")
}

func TestDistanceFromGood(t *testing.T) {
	full, good := writeDatasets(t)
	out, _, err := run(t, "distance-from-good", full, good)
	require.NoError(t, err)
	assert.Equal(t, "max distance: 1\nmeasured knots: 5\nknots without a good knot of their parity: 1\n", out)
}

func TestComponents(t *testing.T) {
	full, _ := writeDatasets(t)
	out, _, err := run(t, "components", full)
	require.NoError(t, err)
	assert.Contains(t, out, "knots: 5, moves: 3, components: 2\n")

	out, _, err = run(t, "components", full, "--parity", "0", "--cost-below", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "knots: 5, moves: 5, components: 1\n")
}

func TestWalk(t *testing.T) {
	full, _ := writeDatasets(t)
	out, _, err := run(t, "walk", full, "--parity", "0", "--rank", "1", "--depth", "1")
	require.NoError(t, err)
	assert.Equal(t, "visited: 7 (dataset 4, placeholders 3)\n  depth 0: 1\n  depth 1: 6\n", out)

	_, _, err = run(t, "walk", full, "--parity", "0", "--depth", "0")
	assert.Error(t, err)
}

func TestCheapest(t *testing.T) {
	full, _ := writeDatasets(t)
	out, _, err := run(t, "cheapest", full, "--from", "0,0,0", "--to", "2,14,0")
	require.NoError(t, err)
	assert.Equal(t,
		"moves: 2, cost: 2.6\n"+
			"[0 0 0] cost=0.5 rank=1 known\n"+
			"[1 15 0] cost=0.6 rank=2 known\n"+
			"[2 14 0] cost=2 rank=3 known\n",
		out)

	_, _, err = run(t, "cheapest", full, "--from", "9,9,9", "--to", "0,0,0")
	assert.Error(t, err)
	_, _, err = run(t, "cheapest", full, "--from", "0,x,0", "--to", "0,0,0")
	assert.Error(t, err)
}

func TestGlobalFlags(t *testing.T) {
	full, _ := writeDatasets(t)

	_, stderr, err := run(t, "--log-level", "debug", "--log-format", "json", "top-adjacency", full)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"dataset loaded"`)

	_, _, err = run(t, "--log-format", "xml", "top-adjacency", full)
	assert.Error(t, err)
	_, _, err = run(t, "--log-level", "loud", "top-adjacency", full)
	assert.Error(t, err)

	// [1,2,3] declares parity 6 against an angle sum of 6; [0,1,15] sums to 16 ≡ 0.
	_, _, err = run(t, "--check-parity", "top-adjacency", full)
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"num_angles": 16, "knots": [
		{"angles": [1, 1], "final_angle": 1, "total_cost": 1, "angle_parity": 0}]}`), 0o600))
	_, _, err = run(t, "--check-parity", "top-adjacency", bad)
	assert.ErrorIs(t, err, knot.ErrParityMismatch)
}

func TestParseAngles(t *testing.T) {
	got, err := parseAngles("1, 15,0")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 15, 0}, got)

	_, err = parseAngles("")
	assert.Error(t, err)
}
