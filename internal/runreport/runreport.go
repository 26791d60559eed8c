// Package runreport writes a small protobuf-encoded sidecar summarizing
// a completed sort, purely informational and never read back by the
// sorter itself. It keeps google.golang.org/protobuf wired the way the
// teacher's messages package leans on proto.Message for every value
// that crosses a boundary, without inventing a new .proto schema for a
// one-off diagnostic file.
package runreport

import (
	"fmt"
	"os"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Stats summarizes one completed sort.
type Stats struct {
	InputBytes  int64
	OutputBytes int64
	NumRegions  int
	NumRuns     int
	Elapsed     time.Duration
}

// SidecarPath is the stats file written alongside outputPath.
func SidecarPath(outputPath string) string {
	return outputPath + ".fsort-stats.pb"
}

// Write marshals s as a protobuf struct and writes it to
// SidecarPath(outputPath).
func Write(outputPath string, s Stats) error {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"input_bytes":  float64(s.InputBytes),
		"output_bytes": float64(s.OutputBytes),
		"num_regions":  float64(s.NumRegions),
		"num_runs":     float64(s.NumRuns),
		"elapsed_ms":   float64(s.Elapsed.Milliseconds()),
	})
	if err != nil {
		return fmt.Errorf("runreport: build stats struct: %w", err)
	}

	data, err := proto.Marshal(msg)
	if err != nil {
		return fmt.Errorf("runreport: marshal stats: %w", err)
	}

	if err := os.WriteFile(SidecarPath(outputPath), data, 0644); err != nil {
		return fmt.Errorf("runreport: write sidecar: %w", err)
	}
	return nil
}
