package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"steps/internal/cfg"
)

// ReadHeader parses the two comment-prefixed header lines written by
// writeHeader back into a Metadata and a SimConfig, for the reproduce
// command. Returns ErrVersionMismatch if the file's
// stamped version does not match Version; the caller should treat that as
// a hard, user-facing error rather than attempting to read further.
func ReadHeader(r io.Reader) (Metadata, cfg.SimConfig, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	metaLine, ok := nextHeaderLine(scanner)
	if !ok {
		return Metadata{}, cfg.SimConfig{}, fmt.Errorf("output: missing metadata header line")
	}
	var meta Metadata
	if err := json.Unmarshal([]byte(metaLine), &meta); err != nil {
		return Metadata{}, cfg.SimConfig{}, fmt.Errorf("output: decode metadata header: %w", err)
	}
	if meta.Version != Version {
		return Metadata{}, cfg.SimConfig{}, ErrVersionMismatch
	}

	cfgLine, ok := nextHeaderLine(scanner)
	if !ok {
		return Metadata{}, cfg.SimConfig{}, fmt.Errorf("output: missing sim config header line")
	}
	var simCfg cfg.SimConfig
	if err := json.Unmarshal([]byte(cfgLine), &simCfg); err != nil {
		return Metadata{}, cfg.SimConfig{}, fmt.Errorf("output: decode sim config header: %w", err)
	}

	if err := scanner.Err(); err != nil {
		return Metadata{}, cfg.SimConfig{}, err
	}

	return meta, simCfg, nil
}

func nextHeaderLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimPrefix(scanner.Text(), headerPrefix), true
}
