package output

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"steps/internal/cfg"
	"steps/internal/sim"
)

func testSummaryLineages() *sim.LineagesData {
	return &sim.LineagesData{
		N: []float64{100, 200},
		W: []float64{1.0, 1.5},
		Secondary: []sim.SecondaryLineageData{
			{Marker: 1, AccumulatedMuts: 1},
			{Marker: 2, AccumulatedMuts: 2},
		},
	}
}

func lastDataLine(t *testing.T, buf *bytes.Buffer) string {
	t.Helper()
	scanner := bufio.NewScanner(buf)
	var last string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, headerPrefix) {
			continue
		}
		last = line
	}
	return last
}

func TestSummaryWriterOnlyAlwaysOnColumnsByDefault(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewSummaryWriter(&buf, cfg.SummaryOutputConfig{}, cfg.DefaultSimConfig())
	if err != nil {
		t.Fatalf("NewSummaryWriter: %v", err)
	}
	if err := w.RecordLineages(1, 0, testSummaryLineages()); err != nil {
		t.Fatalf("RecordLineages: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	line := lastDataLine(t, &buf)
	fields := strings.Split(line, ",")
	// replicate, transfer, avg_W, mean_accumulated_muts
	if len(fields) != 4 {
		t.Fatalf("row has %d fields, want 4 (replicate, transfer, avg_W, mean_accumulated_muts): %q", len(fields), line)
	}
}

func TestSummaryWriterIncludesEnabledOptionalColumns(t *testing.T) {
	var buf bytes.Buffer
	summaryCfg := cfg.SummaryOutputConfig{MaxW: true, GenotypeCount: true}
	w, err := NewSummaryWriter(&buf, summaryCfg, cfg.DefaultSimConfig())
	if err != nil {
		t.Fatalf("NewSummaryWriter: %v", err)
	}
	if err := w.RecordLineages(1, 0, testSummaryLineages()); err != nil {
		t.Fatalf("RecordLineages: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	line := lastDataLine(t, &buf)
	fields := strings.Split(line, ",")
	// replicate, transfer, avg_W, max_W, mean_accumulated_muts, genotype_count
	if len(fields) != 6 {
		t.Fatalf("row has %d fields, want 6: %q", len(fields), line)
	}
}

func TestSummaryWriterHeaderColumnOrderIsStable(t *testing.T) {
	var buf bytes.Buffer
	summaryCfg := cfg.SummaryOutputConfig{Marker1Ratio: true, StdevW: true}
	if _, err := NewSummaryWriter(&buf, summaryCfg, cfg.DefaultSimConfig()); err != nil {
		t.Fatalf("NewSummaryWriter: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var headerLine string
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, headerPrefix) {
			headerLine = line
			break
		}
	}
	want := "replicate,transfer,avg_W,marker_1_ratio,stdev_W,mean_accumulated_muts"
	if headerLine != want {
		t.Fatalf("header = %q, want %q", headerLine, want)
	}
}
