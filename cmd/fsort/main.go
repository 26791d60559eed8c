package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"fsort/helpers"
	"fsort/internal/banner"
	"fsort/internal/fsort"
	"fsort/internal/promptconfirm"
	"fsort/internal/runreport"
)

const usage = "usage: fsort <input_file> <output_file> [num_pages]"

const tempDirName = "fsort_tmp"

func main() {
	inputPath, outputPath, numPages, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	banner.Print("fsort")

	if exists, isRegular := statPath(outputPath); exists && isRegular {
		overwrite, promptErr := promptconfirm.Overwrite(outputPath)
		if promptErr != nil {
			logrus.Error(promptErr.Error())
			os.Exit(exitCodeFor(promptErr))
		}
		if !overwrite {
			fmt.Fprintln(os.Stderr, "aborted: output exists")
			os.Exit(0)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		logrus.Error(err.Error())
		os.Exit(exitCodeFor(err))
	}
	tempDir := cwd + string(os.PathSeparator) + tempDirName

	cfg, err := fsort.NewConfig(numPages, tempDir)
	if err != nil {
		logrus.Error(err.Error())
		os.Exit(exitCodeFor(err))
	}

	if err := helpers.RecreateTempDir(tempDir); err != nil {
		logrus.Error(err.Error())
		os.Exit(exitCodeFor(fsort.ErrIO))
	}

	result, err := fsort.Sort(cfg, inputPath, outputPath)
	if err != nil {
		logrus.Error(err.Error())
		os.Exit(exitCodeFor(err))
	}

	if err := os.RemoveAll(tempDir); err != nil {
		logrus.Error(err.Error())
		os.Exit(exitCodeFor(fsort.ErrIO))
	}

	if err := runreport.Write(outputPath, runreport.Stats{
		InputBytes:  result.InputBytes,
		OutputBytes: result.OutputBytes,
		NumRegions:  result.NumRegions,
		NumRuns:     result.NumRuns,
		Elapsed:     result.Elapsed,
	}); err != nil {
		// The sidecar is purely informational; never fail a successful
		// sort because of it.
		logrus.Warn(err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"input_bytes":  result.InputBytes,
		"output_bytes": result.OutputBytes,
		"num_regions":  result.NumRegions,
		"num_runs":     result.NumRuns,
		"elapsed":      result.Elapsed,
	}).Info("sort complete")
}

// parseArgs parses the positional "sort <input> <output> [num_pages]"
// form. fsort's CLI is positional (unlike the distributed-filesystem
// tool's --flag parsing in helpers), so it is parsed directly here.
func parseArgs(args []string) (inputPath, outputPath string, numPages int, err error) {
	if len(args) < 2 || len(args) > 3 {
		return "", "", 0, fmt.Errorf("%w: wrong number of arguments", fsort.ErrArg)
	}
	inputPath = args[0]
	outputPath = args[1]
	numPages = fsort.DefaultNumPages
	if len(args) == 3 {
		n, convErr := strconv.Atoi(args[2])
		if convErr != nil || n <= 0 {
			return "", "", 0, fmt.Errorf("%w: num_pages must be a positive integer", fsort.ErrArg)
		}
		numPages = n
	}
	return inputPath, outputPath, numPages, nil
}

func statPath(path string) (exists, isRegular bool) {
	info, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return true, info.Mode().IsRegular()
}

// exitCodeFor maps a fatal error to a nonzero process exit code. Exit
// codes beyond 0/1 are implementation-defined per spec §6.1.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, fsort.ErrArg):
		return 1
	case errors.Is(err, fsort.ErrInput):
		return 3
	case errors.Is(err, fsort.ErrConfig):
		return 4
	case errors.Is(err, fsort.ErrOversizedLine):
		return 5
	case errors.Is(err, fsort.ErrIO):
		return 2
	default:
		return 2
	}
}
