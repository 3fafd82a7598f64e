// Command classify runs the stop/go classifier over a CSV trace and prints
// the resulting stop and trip intervals.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Driiva/Driiva/internal/config"
	"github.com/Driiva/Driiva/internal/fsutil"
	"github.com/Driiva/Driiva/internal/monitoring"
	"github.com/Driiva/Driiva/internal/stopgo"
	"github.com/Driiva/Driiva/internal/version"
)

var (
	inputPath   = flag.String("input", "", "path to a CSV trace (columns: timestamp,x,y[,motion_score])")
	configPath  = flag.String("config", "", "path to a JSON tuning config; defaults to the built-in defaults")
	versionFlag = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("classify %s (%s, %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *inputPath == "" {
		log.Fatal("classify: -input is required")
	}

	tuning, err := loadTuning(*configPath)
	if err != nil {
		log.Fatalf("classify: %v", err)
	}

	samples, err := readSamples(fsutil.OSFileSystem{}, *inputPath)
	if err != nil {
		log.Fatalf("classify: %v", err)
	}

	result := stopgo.Classify(samples, tuning.StopGoConfig())
	if !result.Summary.Success {
		log.Fatalf("classify: classification failed: %s", result.Summary.Error)
	}

	monitoring.Logf("classified %d points into %d stops and %d trips",
		result.Summary.TotalPoints, result.Summary.TotalStops, result.Summary.TotalTrips)

	for i, stop := range result.Stops {
		fmt.Printf("stop %d: %s -> %s (%.0fs) centroid=(%.2f, %.2f)\n",
			i, stop.Start.Format(time.RFC3339), stop.Stop.Format(time.RFC3339),
			stop.DurationSeconds, stop.CentroidX, stop.CentroidY)
	}
	for i, trip := range result.Trips {
		fmt.Printf("trip %d: %s -> %s (%.0fs)\n",
			i, trip.Start.Format(time.RFC3339), trip.Stop.Format(time.RFC3339), trip.DurationSeconds)
	}
}

func loadTuning(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.MustLoadDefaultConfig(), nil
	}
	return config.LoadTuningConfig(path)
}

func readSamples(fsys fsutil.FileSystem, path string) ([]stopgo.Sample, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(rows) > 0 && isHeaderRow(rows[0]) {
		rows = rows[1:]
	}

	samples := make([]stopgo.Sample, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", i, len(row))
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp %q: %w", i, row[0], err)
		}
		x, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid x %q: %w", i, row[1], err)
		}
		y, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid y %q: %w", i, row[2], err)
		}

		sample := stopgo.Sample{Timestamp: ts, X: x, Y: y}
		if len(row) >= 4 && row[3] != "" {
			m, err := strconv.ParseFloat(row[3], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid motion_score %q: %w", i, row[3], err)
			}
			sample.MotionScore = &m
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := time.Parse(time.RFC3339, row[0])
	return err != nil
}
