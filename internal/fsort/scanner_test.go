package fsort

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextLineFindsNewline(t *testing.T) {
	buf := []byte("abc\ndef")
	line, next := nextLine(buf, 0, len(buf))
	require.Equal(t, "abc", string(line))
	require.Equal(t, 3, next)
}

func TestNextLineNoNewlineReturnsEnd(t *testing.T) {
	buf := []byte("abcdef")
	line, next := nextLine(buf, 0, len(buf))
	require.Equal(t, "abcdef", string(line))
	require.Equal(t, len(buf), next)
}

func TestNextLineEmptyLine(t *testing.T) {
	buf := []byte("\nrest")
	line, next := nextLine(buf, 0, len(buf))
	require.Equal(t, "", string(line))
	require.Equal(t, 0, next)
}

func TestAdvancePastNewlineMidBuffer(t *testing.T) {
	buf := []byte("abc\ndef")
	rest := advancePastNewline(buf, 3)
	require.Equal(t, "def", string(rest))
}

func TestAdvancePastNewlineAtEnd(t *testing.T) {
	buf := []byte("abc")
	rest := advancePastNewline(buf, len(buf))
	require.Empty(t, rest)
}
