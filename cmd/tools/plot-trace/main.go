// Command plot-trace renders a classified GPS trace for visual inspection
// during tuning: an interactive go-echarts scatter plot (HTML) and a
// static gonum/plot PNG, both colouring samples by stop/trip membership.
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Driiva/Driiva/internal/config"
	"github.com/Driiva/Driiva/internal/stopgo"
)

var (
	inputPath  = flag.String("input", "", "path to a CSV trace (columns: timestamp,x,y)")
	htmlOut    = flag.String("html", "trace.html", "output path for the go-echarts HTML chart")
	pngOut     = flag.String("png", "trace.png", "output path for the gonum/plot PNG chart")
	configPath = flag.String("config", "", "path to a JSON tuning config; defaults to the built-in defaults")
)

func main() {
	flag.Parse()
	if *inputPath == "" {
		log.Fatal("plot-trace: -input is required")
	}

	tuning, err := loadTuning(*configPath)
	if err != nil {
		log.Fatalf("plot-trace: %v", err)
	}

	samples, err := readSamples(*inputPath)
	if err != nil {
		log.Fatalf("plot-trace: %v", err)
	}

	result := stopgo.Classify(samples, tuning.StopGoConfig())
	if !result.Summary.Success {
		log.Fatalf("plot-trace: classification failed: %s", result.Summary.Error)
	}

	if err := writeHTML(result, *htmlOut); err != nil {
		log.Fatalf("plot-trace: write HTML chart: %v", err)
	}
	if err := writePNG(result, *pngOut); err != nil {
		log.Fatalf("plot-trace: write PNG chart: %v", err)
	}

	log.Printf("plot-trace: wrote %s and %s (%d stops, %d trips)",
		*htmlOut, *pngOut, result.Summary.TotalStops, result.Summary.TotalTrips)
}

func loadTuning(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.MustLoadDefaultConfig(), nil
	}
	return config.LoadTuningConfig(path)
}

func readSamples(path string) ([]stopgo.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if _, err := time.Parse(time.RFC3339, rows[0][0]); err != nil {
			rows = rows[1:]
		}
	}

	samples := make([]stopgo.Sample, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, err
		}
		samples = append(samples, stopgo.Sample{Timestamp: ts, X: x, Y: y})
	}
	return samples, nil
}

func writeHTML(result stopgo.ClassificationResult, path string) error {
	stopData := make([]opts.ScatterData, 0)
	goData := make([]opts.ScatterData, 0)
	for _, s := range result.Samples {
		pt := opts.ScatterData{Value: []interface{}{s.X, s.Y}}
		if s.IsStop {
			stopData = append(stopData, pt)
		} else {
			goData = append(goData, pt)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Classified trace"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (m)"}),
	)
	scatter.AddSeries("go", goData)
	scatter.AddSeries("stop", stopData)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scatter.Render(f)
}

func writePNG(result stopgo.ClassificationResult, path string) error {
	p := plot.New()
	p.Title.Text = "Classified trace"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	var stopPts, goPts plotter.XYs
	for _, s := range result.Samples {
		if s.IsStop {
			stopPts = append(stopPts, plotter.XY{X: s.X, Y: s.Y})
		} else {
			goPts = append(goPts, plotter.XY{X: s.X, Y: s.Y})
		}
	}

	if len(goPts) > 0 {
		goScatter, err := plotter.NewScatter(goPts)
		if err != nil {
			return err
		}
		p.Add(goScatter)
		p.Legend.Add("go", goScatter)
	}
	if len(stopPts) > 0 {
		stopScatter, err := plotter.NewScatter(stopPts)
		if err != nil {
			return err
		}
		stopScatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(stopScatter)
		p.Legend.Add("stop", stopScatter)
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
