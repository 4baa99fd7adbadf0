package main

import (
	"bufio"
	"fmt"
	"os"

	"steps/internal/cfg"
	"steps/internal/output"
)

// fileBufferCapacity is the buffer size used for output
// files (8 MiB), so large raw/sequencing NDJSON runs don't thrash syscalls.
const fileBufferCapacity = 8 * (1 << 20)

// outputSetup owns every open file and buffered writer created for one CLI
// invocation, and knows how to flush and close them all.
type outputSetup struct {
	group   *output.Group
	closers []func() error
}

func (s *outputSetup) finish() error {
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			return err
		}
	}
	return nil
}

func createBufferedFile(path string) (*os.File, *bufio.Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return file, bufio.NewWriterSize(file, fileBufferCapacity), nil
}

// buildOutputGroup wires up an output.Group from every path configured in
// outCfg.
func buildOutputGroup(outCfg cfg.OutputConfig, simCfg cfg.SimConfig) (*outputSetup, error) {
	setup := &outputSetup{group: output.NewGroup(outCfg.SamplingFrequency)}

	if outCfg.RawOutputPath != "" {
		file, buffered, err := createBufferedFile(outCfg.RawOutputPath)
		if err != nil {
			return nil, err
		}
		writer, err := output.NewRawWriter(buffered, simCfg)
		if err != nil {
			return nil, err
		}
		setup.group.AddLineagesWriter(writer)
		setup.closers = append(setup.closers, chain(buffered.Flush, file.Close))
	}

	if outCfg.SummaryOutputPath != "" {
		file, buffered, err := createBufferedFile(outCfg.SummaryOutputPath)
		if err != nil {
			return nil, err
		}
		writer, err := output.NewSummaryWriter(buffered, outCfg.Summary, simCfg)
		if err != nil {
			return nil, err
		}
		setup.group.AddLineagesWriter(writer)
		setup.closers = append(setup.closers, chain(writer.Flush, buffered.Flush, file.Close))
	}

	if outCfg.SequencingOutputPath != "" {
		file, buffered, err := createBufferedFile(outCfg.SequencingOutputPath)
		if err != nil {
			return nil, err
		}
		writer, err := output.NewSequencingWriter(buffered, simCfg)
		if err != nil {
			return nil, err
		}
		setup.group.AddMutationsWriter(writer)
		setup.closers = append(setup.closers, chain(buffered.Flush, file.Close))
	}

	if outCfg.MutationSummaryOutputPath != "" {
		file, buffered, err := createBufferedFile(outCfg.MutationSummaryOutputPath)
		if err != nil {
			return nil, err
		}
		writer, err := output.NewMutationSummaryWriter(buffered, simCfg)
		if err != nil {
			return nil, err
		}
		setup.group.AddMutationsWriter(writer)
		setup.closers = append(setup.closers, chain(writer.Flush, buffered.Flush, file.Close))
	}

	return setup, nil
}

// chain runs each fn in order, stopping at (and returning) the first error.
func chain(fns ...func() error) func() error {
	return func() error {
		for _, fn := range fns {
			if err := fn(); err != nil {
				return err
			}
		}
		return nil
	}
}
