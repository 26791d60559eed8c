package fsort

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Result summarizes a completed sort, reported back to the CLI front
// end for logging and the optional run-stats sidecar.
type Result struct {
	InputBytes  int64
	OutputBytes int64
	NumRegions  int
	NumRuns     int
	Elapsed     time.Duration
}

// Sort runs the full region-pass-then-merge pipeline: it partitions
// inputPath into fixed-size region windows, sorts each window's
// complete lines into a run file under cfg.TempDir, carries the
// trailing partial line forward between windows, and finally merges
// the run files into outputPath.
func Sort(cfg Config, inputPath, outputPath string) (Result, error) {
	start := time.Now()
	inInfo, err := os.Stat(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: stat %s: %s", ErrInput, inputPath, err)
	}
	if !inInfo.Mode().IsRegular() {
		return Result{}, fmt.Errorf("%w: %s is not a regular file", ErrInput, inputPath)
	}
	if outInfo, statErr := os.Stat(outputPath); statErr == nil && !outInfo.Mode().IsRegular() {
		return Result{}, fmt.Errorf("%w: %s exists and is not a regular file", ErrInput, outputPath)
	}

	size := inInfo.Size()
	numRegions := 0
	if size > 0 {
		numRegions = int((size + cfg.RegionSize - 1) / cfg.RegionSize)
	}

	logrus.WithFields(logrus.Fields{
		"input":       inputPath,
		"size":        size,
		"region_size": cfg.RegionSize,
		"num_regions": numRegions,
	}).Info("starting region pass")

	var runPaths []string
	var carry []byte
	var regionFile string
	for i := 0; i < numRegions; i++ {
		if regionFile == "" {
			rf, err := nextTempFile(cfg.TempDir)
			if err != nil {
				return Result{}, fmt.Errorf("%w: %s", ErrIO, err)
			}
			regionFile = rf
		}

		offset := int64(i) * cfg.RegionSize
		inSize := cfg.RegionSize
		if remaining := size - offset; remaining < inSize {
			inSize = remaining
		}

		wrote, err := SortRegion(inputPath, offset, inSize, regionFile, &carry, cfg.RegionSize)
		if err != nil {
			return Result{}, err
		}
		if wrote {
			runPaths = append(runPaths, regionFile)
			regionFile = ""
		}
	}

	if len(carry) > 0 {
		lastRun, err := nextTempFile(cfg.TempDir)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s", ErrIO, err)
		}
		if err := os.WriteFile(lastRun, append(carry, '\n'), 0644); err != nil {
			return Result{}, fmt.Errorf("%w: write final carry run: %s", ErrIO, err)
		}
		runPaths = append(runPaths, lastRun)
	}

	logrus.WithFields(logrus.Fields{
		"num_runs": len(runPaths),
	}).Info("region pass complete, starting merge")

	outSize, err := Merge(runPaths, outputPath, cfg.RegionSize)
	if err != nil {
		return Result{}, err
	}

	// Run files are deleted only after the output file is fully
	// written; the temp directory itself is the caller's (cmd/fsort's)
	// responsibility to remove.
	for _, p := range runPaths {
		if err := os.Remove(p); err != nil {
			return Result{}, fmt.Errorf("%w: remove run file %s: %s", ErrIO, p, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"output":      outputPath,
		"output_size": outSize,
	}).Info("merge complete")

	return Result{
		InputBytes:  size,
		OutputBytes: outSize,
		NumRegions:  numRegions,
		NumRuns:     len(runPaths),
		Elapsed:     time.Since(start),
	}, nil
}
