package fsort

import (
	"bytes"
	"container/heap"
	"fmt"
	"os"

	"fsort/internal/mmapfile"
)

// mergeEntry is one run's current line plus the remainder of its bytes
// starting just past that line's terminating newline (or its own end,
// for the run's final line). The heap orders entries by line only;
// buf never participates in comparison.
type mergeEntry struct {
	line []byte
	buf  []byte
}

type mergeHeap []*mergeEntry

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Less(i, j int) bool  { return bytes.Compare(h[i].line, h[j].line) < 0 }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(*mergeEntry)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}

// outputWindow is the merger's sliding read-write mapping of a bounded
// prefix of the output file. It advances by regionSize each time the
// write cursor reaches its end; the old mapping is released (flushing
// writes) before the new one is created.
type outputWindow struct {
	path       string
	total      int64
	regionSize int64
	offset     int64
	region     *mmapfile.Region
	buf        []byte
	cursor     int
}

func newOutputWindow(path string, total, regionSize int64) (*outputWindow, error) {
	w := &outputWindow{path: path, total: total, regionSize: regionSize}
	if err := w.mapAt(0); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *outputWindow) mapAt(offset int64) error {
	size := w.regionSize
	if remaining := w.total - offset; remaining < size {
		size = remaining
	}
	region, err := mmapfile.Open(w.path, offset, size, false)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrIO, err)
	}
	if err := region.Advise(mmapfile.Sequential); err != nil {
		region.Close()
		return err
	}
	w.region = region
	w.buf = region.Bytes()
	w.offset = offset
	w.cursor = 0
	return nil
}

func (w *outputWindow) roll() error {
	next := w.offset + int64(len(w.buf))
	if err := w.region.Close(); err != nil {
		return err
	}
	return w.mapAt(next)
}

func (w *outputWindow) close() error {
	return w.region.Close()
}

// Merge performs the k-way min-heap merge of the given run files into
// outputPath, newline-separated with no trailing newline. It returns
// the final output size in bytes.
//
// The upper-bound allocation is the sum of the run file sizes plus one
// byte per run: a run written by SortRegion omits a trailing separator
// after its own last line, so merging R runs into one stream needs at
// most R more separator bytes than the runs' sizes sum to (one per run)
// to hold every line's trailing newline before the final truncation
// removes the very last one. The driver's final carry run already ends
// in a newline, so its extra byte goes unused.
func Merge(runPaths []string, outputPath string, regionSize int64) (int64, error) {
	sizes := make([]int64, len(runPaths))
	var sum int64
	for i, p := range runPaths {
		info, err := os.Stat(p)
		if err != nil {
			return 0, fmt.Errorf("%w: stat run %s: %s", ErrIO, p, err)
		}
		sizes[i] = info.Size()
		sum += sizes[i]
	}
	total := sum + int64(len(runPaths))

	if err := ensureFile(outputPath); err != nil {
		return 0, err
	}
	if err := os.Truncate(outputPath, total); err != nil {
		return 0, fmt.Errorf("%w: resize %s: %s", ErrIO, outputPath, err)
	}

	if total == 0 {
		return 0, nil
	}

	var regions []*mmapfile.Region
	defer func() {
		for _, r := range regions {
			r.Close()
		}
	}()

	h := &mergeHeap{}
	heap.Init(h)
	for i, p := range runPaths {
		if sizes[i] == 0 {
			continue
		}
		region, err := mmapfile.Open(p, 0, sizes[i], true)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrIO, err)
		}
		if err := region.Advise(mmapfile.Sequential); err != nil {
			return 0, err
		}
		regions = append(regions, region)

		buf := region.Bytes()
		line, next := nextLine(buf, 0, len(buf))
		heap.Push(h, &mergeEntry{line: line, buf: advancePastNewline(buf, next)})
	}

	window, err := newOutputWindow(outputPath, total, regionSize)
	if err != nil {
		return 0, err
	}

	var written int64
	for h.Len() > 0 {
		entry := heap.Pop(h).(*mergeEntry)
		line := entry.line

		for len(line) > 0 || window.cursor == len(window.buf) {
			if window.cursor == len(window.buf) {
				if err := window.roll(); err != nil {
					return 0, err
				}
			}
			n := copy(window.buf[window.cursor:], line)
			window.cursor += n
			written += int64(n)
			line = line[n:]
		}

		// The copy loop above only exits once window.cursor < len(window.buf),
		// so there is always room for the separator byte below.
		window.buf[window.cursor] = '\n'
		window.cursor++
		written++

		if len(entry.buf) > 0 {
			nline, nnext := nextLine(entry.buf, 0, len(entry.buf))
			entry.line = nline
			entry.buf = advancePastNewline(entry.buf, nnext)
			heap.Push(h, entry)
		}
	}

	if err := window.close(); err != nil {
		return 0, err
	}

	finalSize := written - 1
	if written == 0 {
		finalSize = 0
	}
	if err := os.Truncate(outputPath, finalSize); err != nil {
		return 0, fmt.Errorf("%w: truncate %s: %s", ErrIO, outputPath, err)
	}
	return finalSize, nil
}
