package cfg

import "github.com/spf13/pflag"

// SummaryOutputConfig selects which derived statistics get
// written to the summary CSV. avg_W and mean_accumulated_muts are always
// on rather than flag-gated.
type SummaryOutputConfig struct {
	Marker1Ratio         bool
	StdevW               bool
	MaxW                 bool
	StdevAccumulatedMuts bool
	MaxAccumulatedMuts   bool
	MinAccumulatedMuts   bool
	GenotypeCount        bool
	ShannonDiversity     bool
}

// RegisterFlags attaches the summary toggle flags to fs.
func (s *SummaryOutputConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Marker1Ratio, "marker-1-ratio", s.Marker1Ratio, "output the ratio of marker 1 to other markers")
	fs.BoolVar(&s.StdevW, "stdev-W", s.StdevW, "output weighted standard deviation of lineage fitnesses")
	fs.BoolVar(&s.MaxW, "max-W", s.MaxW, "output maximum lineage fitness")
	fs.BoolVar(&s.StdevAccumulatedMuts, "stdev-accumulated-muts", s.StdevAccumulatedMuts, "output stdev of accumulated mutations")
	fs.BoolVar(&s.MaxAccumulatedMuts, "max-accumulated-muts", s.MaxAccumulatedMuts, "output max accumulated mutations")
	fs.BoolVar(&s.MinAccumulatedMuts, "min-accumulated-muts", s.MinAccumulatedMuts, "output min accumulated mutations")
	fs.BoolVar(&s.GenotypeCount, "genotype-count", s.GenotypeCount, "output the number of distinct genotypes present")
	fs.BoolVar(&s.ShannonDiversity, "shannon-diversity", s.ShannonDiversity, "output the Shannon diversity of genotypes")
}

// OutputConfig holds the CLI-level output options.
type OutputConfig struct {
	SamplingFrequency         uint32
	SummaryOutputPath         string
	RawOutputPath             string
	SequencingOutputPath      string
	MutationSummaryOutputPath string
	Summary                   SummaryOutputConfig
}

// RegisterFlags attaches the output path and sampling flags to fs.
func (o *OutputConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.Uint32VarP(&o.SamplingFrequency, "sampling-frequency", "f", 1, "the rate at which populations should be sampled, in transfers")
	fs.StringVarP(&o.SummaryOutputPath, "summary-output", "o", "", "path to output summarized simulation results as CSV")
	fs.StringVarP(&o.RawOutputPath, "raw-output", "j", "", "path to output full raw lineage data as line-delimited JSON")
	fs.StringVarP(&o.SequencingOutputPath, "sequencing-output", "s", "", "path to output mutation provenance data as line-delimited JSON")
	fs.StringVar(&o.MutationSummaryOutputPath, "mutation-summary-output", "", "path to output summary statistics about mutations as CSV")
	o.Summary.RegisterFlags(fs)
}

// ShouldTrackMutations reports whether any configured output requires the
// mutation tracker to be enabled.
func (o *OutputConfig) ShouldTrackMutations() bool {
	return o.SequencingOutputPath != "" || o.MutationSummaryOutputPath != ""
}
