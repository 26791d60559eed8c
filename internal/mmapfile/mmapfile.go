// Package mmapfile provides scoped memory-mapped views of byte ranges
// of a file, used by fsort to read and write large files without
// buffered copies.
package mmapfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Usage is an access-pattern advisory, hint only, never
// correctness-affecting.
type Usage int

const (
	Sequential Usage = iota
	Random
)

// Region is a scoped read-only or read-write mapping of [offset, offset+size)
// of a named file. The requested range may be widened internally to
// page-aligned boundaries; Bytes only ever exposes the requested range.
//
// A Region must not be copied; pass it by pointer.
type Region struct {
	raw      []byte
	begin    int
	size     int
	readonly bool
	closed   bool
}

// Open maps [offset, offset+size) of path. readonly selects a private
// read-only mapping; otherwise the mapping is shared read-write and
// writes persist to the file on Close.
func Open(path string, offset, size int64, readonly bool) (*Region, error) {
	if offset < 0 || size < 0 {
		return nil, fmt.Errorf("mmapfile: negative offset or size")
	}

	flags := os.O_RDONLY
	if !readonly {
		flags = os.O_RDWR
	}
	f, err := os.OpenFile(path, flags, 0)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: open %s: %w", path, err)
	}
	defer f.Close()

	pageSize := int64(unix.Getpagesize())
	legalOffset := (offset / pageSize) * pageSize
	legalSize := size + (offset - legalOffset)
	legalSize = ((legalSize + pageSize - 1) / pageSize) * pageSize
	if legalSize == 0 {
		legalSize = pageSize
	}

	prot := unix.PROT_READ
	mapFlags := unix.MAP_PRIVATE
	if !readonly {
		prot |= unix.PROT_WRITE
		mapFlags = unix.MAP_SHARED
	}

	raw, err := unix.Mmap(int(f.Fd()), legalOffset, int(legalSize), prot, mapFlags)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: mmap %s: %w", path, err)
	}

	return &Region{
		raw:      raw,
		begin:    int(offset - legalOffset),
		size:     int(size),
		readonly: readonly,
	}, nil
}

// Bytes returns the requested [offset, offset+size) range as a slice.
// The slice is valid only until Close.
func (r *Region) Bytes() []byte {
	return r.raw[r.begin : r.begin+r.size]
}

// Advise declares the expected access pattern for this mapping.
func (r *Region) Advise(u Usage) error {
	advice := unix.MADV_NORMAL
	switch u {
	case Random:
		advice = unix.MADV_RANDOM
	case Sequential:
		advice = unix.MADV_SEQUENTIAL
	}
	if err := unix.Madvise(r.raw, advice); err != nil {
		return fmt.Errorf("mmapfile: madvise: %w", err)
	}
	return nil
}

// Close unmaps the region. Safe to call more than once.
func (r *Region) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := unix.Munmap(r.raw); err != nil {
		return fmt.Errorf("mmapfile: munmap: %w", err)
	}
	return nil
}

// PageSize returns the OS page size.
func PageSize() int {
	return unix.Getpagesize()
}
