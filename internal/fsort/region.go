package fsort

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"fsort/internal/mmapfile"
)

// SortRegion sorts one input window's complete lines into a run file at
// outputPath. carry is the in-out partial-line remainder carried across
// regions: on entry it holds bytes that must prefix the region's first
// line; on return it holds the region's own trailing partial line (or
// is empty, if the region ended exactly on a newline).
//
// regionSize bounds the maximum permitted line length; a carry that
// grows to more than regionSize, or a carry joined to this region's
// first line into a complete line longer than regionSize, means some
// line exceeds one region window, and SortRegion fails with
// ErrOversizedLine. A carry of exactly regionSize is still a legitimate
// region_size-length line — it is left for the next region's scan,
// which accepts it only if that region's first byte is a newline.
//
// wroteAnything reports whether the region contained any complete
// line. When false, outputPath was resized but not committed — the
// caller should reuse the same path for the next region rather than
// leaking an empty run file.
func SortRegion(inputPath string, offset, inSize int64, outputPath string, carry *[]byte, regionSize int64) (wroteAnything bool, err error) {
	outSize := inSize + int64(len(*carry))

	if err := ensureFile(outputPath); err != nil {
		return false, err
	}
	if err := os.Truncate(outputPath, outSize); err != nil {
		return false, fmt.Errorf("%w: resize %s: %s", ErrIO, outputPath, err)
	}

	input, err := mmapfile.Open(inputPath, offset, inSize, true)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrIO, err)
	}
	if err := input.Advise(mmapfile.Random); err != nil {
		input.Close()
		return false, err
	}

	output, err := mmapfile.Open(outputPath, 0, outSize, false)
	if err != nil {
		input.Close()
		return false, fmt.Errorf("%w: %s", ErrIO, err)
	}
	if err := output.Advise(mmapfile.Sequential); err != nil {
		input.Close()
		output.Close()
		return false, err
	}

	inBuf := input.Bytes()

	var lines [][]byte
	consumingCarry := len(*carry) > 0
	pos, end := 0, len(inBuf)
	for pos < end {
		line, next := nextLine(inBuf, pos, end)
		terminated := next < end

		if consumingCarry {
			combined := make([]byte, 0, len(*carry)+len(line))
			combined = append(combined, *carry...)
			combined = append(combined, line...)
			*carry = nil
			consumingCarry = false
			line = combined
			if terminated && int64(len(line)) > regionSize {
				input.Close()
				output.Close()
				return false, fmt.Errorf("%w: a %d byte line exceeds the %d byte region size", ErrOversizedLine, len(line), regionSize)
			}
		}

		if terminated {
			lines = append(lines, line)
			pos = next + 1
			continue
		}

		tail := make([]byte, len(line))
		copy(tail, line)
		*carry = tail
		pos = next
	}

	if int64(len(*carry)) > regionSize {
		input.Close()
		output.Close()
		return false, fmt.Errorf("%w: a single line spans more than %d bytes, exceeding the %d byte region size", ErrOversizedLine, len(*carry), regionSize)
	}

	sort.Slice(lines, func(i, j int) bool {
		return bytes.Compare(lines[i], lines[j]) < 0
	})

	outBuf := output.Bytes()
	cursor := 0
	for i, line := range lines {
		cursor += copy(outBuf[cursor:], line)
		if i < len(lines)-1 {
			outBuf[cursor] = '\n'
			cursor++
		}
	}
	wroteAnything = len(lines) > 0

	if err := input.Close(); err != nil {
		return wroteAnything, err
	}
	if err := output.Close(); err != nil {
		return wroteAnything, err
	}

	if wroteAnything {
		if err := os.Truncate(outputPath, int64(cursor)); err != nil {
			return wroteAnything, fmt.Errorf("%w: truncate %s: %s", ErrIO, outputPath, err)
		}
	}

	return wroteAnything, nil
}

func ensureFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %s", ErrIO, path, err)
	}
	return f.Close()
}
