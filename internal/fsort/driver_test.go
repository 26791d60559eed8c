package fsort

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func runSort(t *testing.T, input []byte, numPages int) []byte {
	t.Helper()
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in")
	outPath := filepath.Join(dir, "out")
	tempDir := filepath.Join(dir, "fsort_tmp")

	require.NoError(t, os.WriteFile(inPath, input, 0644))
	require.NoError(t, os.MkdirAll(tempDir, 0755))

	cfg, err := NewConfig(numPages, tempDir)
	require.NoError(t, err)

	_, err = Sort(cfg, inPath, outPath)
	require.NoError(t, err)

	// Sort itself only manages run files inside tempDir; removing the
	// directory is the CLI front end's job (cmd/fsort), exercised here
	// as test cleanup rather than as an assertion.
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	return out
}

func TestSortBasicTrailingNewline(t *testing.T) {
	out := runSort(t, []byte("banana\napple\ncherry\n"), 1)
	require.Equal(t, "apple\nbanana\ncherry", string(out))
}

func TestSortNoTrailingNewline(t *testing.T) {
	out := runSort(t, []byte("b\na\nc"), 1)
	require.Equal(t, "a\nb\nc", string(out))
}

func TestSortEmptyInput(t *testing.T) {
	out := runSort(t, []byte{}, 1)
	require.Empty(t, out)
}

func TestSortSingleLineWithNewline(t *testing.T) {
	out := runSort(t, []byte("z\n"), 1)
	require.Equal(t, "z", string(out))
}

func TestSortDuplicateLines(t *testing.T) {
	out := runSort(t, []byte("dup\ndup\ndup\n"), 1)
	require.Equal(t, "dup\ndup\ndup", string(out))
}

func TestSortIdempotent(t *testing.T) {
	first := runSort(t, []byte("banana\napple\ncherry\n"), 1)
	second := runSort(t, first, 1)
	require.Equal(t, first, second)
}

// TestSortRandomMultiRegion exercises the multi-region path (scenario
// 6): 10,000 random lines forces several region windows at the small
// page-sized region used here, and the result must be a permutation of
// the input lines in ascending byte order.
func TestSortRandomMultiRegion(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const numLines = 10000
	var buf bytes.Buffer
	var expected [][]byte
	for i := 0; i < numLines; i++ {
		length := rng.Intn(80) + 1
		line := make([]byte, length)
		for j := range line {
			line[j] = byte('/' + rng.Intn('~'-'/'+1))
		}
		buf.Write(line)
		buf.WriteByte('\n')
		expected = append(expected, line)
	}

	sort.Slice(expected, func(i, j int) bool {
		return bytes.Compare(expected[i], expected[j]) < 0
	})

	out := runSort(t, buf.Bytes(), 1)
	gotLines := bytes.Split(out, []byte("\n"))
	require.Len(t, gotLines, numLines)

	for i := 1; i < len(gotLines); i++ {
		require.LessOrEqual(t, bytes.Compare(gotLines[i-1], gotLines[i]), 0)
	}

	sortedGot := make([][]byte, len(gotLines))
	copy(sortedGot, gotLines)
	sort.Slice(sortedGot, func(i, j int) bool {
		return bytes.Compare(sortedGot[i], sortedGot[j]) < 0
	})
	for i := range expected {
		require.Equal(t, expected[i], sortedGot[i])
	}
}

func TestSortRemovesRunFiles(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in")
	outPath := filepath.Join(dir, "out")
	tempDir := filepath.Join(dir, "fsort_tmp")

	require.NoError(t, os.WriteFile(inPath, []byte("banana\napple\ncherry\n"), 0644))
	require.NoError(t, os.MkdirAll(tempDir, 0755))

	cfg, err := NewConfig(1, tempDir)
	require.NoError(t, err)

	_, err = Sort(cfg, inPath, outPath)
	require.NoError(t, err)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	require.Empty(t, entries, "run files must be removed once the output is fully written")
}

func TestSortRegionSizeInvariance(t *testing.T) {
	input := []byte("banana\napple\ncherry\nfig\ndate\negg\n")
	small := runSort(t, input, 1)
	large := runSort(t, input, 4)
	require.Equal(t, small, large)
}
