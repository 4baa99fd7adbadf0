package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"steps/internal/cfg"
	"steps/internal/sim"
)

// summaryField describes one optional column of the summary CSV: its
// header name, whether cfg enables it, and how to compute it from a
// lineage snapshot. Order here is the order columns appear in, so it must
// stay fixed once a file has been written with it.
type summaryField struct {
	name    string
	enabled func(cfg.SummaryOutputConfig) bool
	value   func(*sim.LineagesData) string
}

func f64(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
func u32(v uint32) string  { return strconv.FormatUint(uint64(v), 10) }

// summaryFields lists every summary statistic in the fixed column order.
// avg_W and mean_accumulated_muts have an always-true enabled func,
// always written regardless of which optional columns are enabled.
var summaryFields = []summaryField{
	{"avg_W", func(cfg.SummaryOutputConfig) bool { return true }, func(l *sim.LineagesData) string { return f64(sim.AvgW(l)) }},
	{"marker_1_ratio", func(c cfg.SummaryOutputConfig) bool { return c.Marker1Ratio }, func(l *sim.LineagesData) string { return f64(sim.Marker1Ratio(l)) }},
	{"stdev_W", func(c cfg.SummaryOutputConfig) bool { return c.StdevW }, func(l *sim.LineagesData) string { return f64(sim.StdevW(l)) }},
	{"max_W", func(c cfg.SummaryOutputConfig) bool { return c.MaxW }, func(l *sim.LineagesData) string { return f64(sim.MaxW(l)) }},
	{"stdev_accumulated_muts", func(c cfg.SummaryOutputConfig) bool { return c.StdevAccumulatedMuts }, func(l *sim.LineagesData) string { return f64(sim.StdevAccumulatedMuts(l)) }},
	{"max_accumulated_muts", func(c cfg.SummaryOutputConfig) bool { return c.MaxAccumulatedMuts }, func(l *sim.LineagesData) string { return u32(sim.MaxAccumulatedMuts(l)) }},
	{"mean_accumulated_muts", func(cfg.SummaryOutputConfig) bool { return true }, func(l *sim.LineagesData) string { return f64(sim.MeanAccumulatedMuts(l)) }},
	{"min_accumulated_muts", func(c cfg.SummaryOutputConfig) bool { return c.MinAccumulatedMuts }, func(l *sim.LineagesData) string { return u32(sim.MinAccumulatedMuts(l)) }},
	{"genotype_count", func(c cfg.SummaryOutputConfig) bool { return c.GenotypeCount }, func(l *sim.LineagesData) string { return strconv.Itoa(sim.GenotypeCount(l)) }},
	{"shannon_diversity", func(c cfg.SummaryOutputConfig) bool { return c.ShannonDiversity }, func(l *sim.LineagesData) string { return f64(sim.ShannonDiversity(l)) }},
}

// SummaryWriter writes one CSV row of derived statistics per sampled
// transfer, gated by a SummaryOutputConfig.
type SummaryWriter struct {
	w      *csv.Writer
	fields []summaryField
}

// NewSummaryWriter writes the header (Metadata, SimConfig, column names)
// to w and returns a SummaryWriter ready to record transfers.
func NewSummaryWriter(w io.Writer, summaryCfg cfg.SummaryOutputConfig, simCfg cfg.SimConfig) (*SummaryWriter, error) {
	if err := writeHeader(w, simCfg, ModeSummary); err != nil {
		return nil, err
	}

	csvW := csv.NewWriter(w)

	var enabled []summaryField
	header := []string{"replicate", "transfer"}
	for _, field := range summaryFields {
		if field.enabled(summaryCfg) {
			enabled = append(enabled, field)
			header = append(header, field.name)
		}
	}
	if err := csvW.Write(header); err != nil {
		return nil, fmt.Errorf("output: write summary header: %w", err)
	}
	csvW.Flush()
	if err := csvW.Error(); err != nil {
		return nil, fmt.Errorf("output: write summary header: %w", err)
	}

	return &SummaryWriter{w: csvW, fields: enabled}, nil
}

// RecordLineages writes one row of enabled statistics for lineages at the
// given replicate and transfer.
func (s *SummaryWriter) RecordLineages(replicate, transfer uint32, lineages *sim.LineagesData) error {
	row := make([]string, 0, 2+len(s.fields))
	row = append(row, strconv.FormatUint(uint64(replicate), 10), strconv.FormatUint(uint64(transfer), 10))
	for _, field := range s.fields {
		row = append(row, field.value(lineages))
	}
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("output: write summary row: %w", err)
	}
	return nil
}

// Flush flushes any buffered CSV output to the underlying writer.
func (s *SummaryWriter) Flush() error {
	s.w.Flush()
	return s.w.Error()
}
