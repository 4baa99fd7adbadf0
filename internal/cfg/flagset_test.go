package cfg

import "github.com/spf13/pflag"

func newTestFlagSet() *pflag.FlagSet {
	return pflag.NewFlagSet("test", pflag.ContinueOnError)
}
