// Package align scores pairwise structural similarity between capsid
// protein structures, either by shelling out to TM-align or by a
// metadata-driven stand-in when the binary is not installed.
package align

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/capsidlab/jrfatlas/internal/util"
	"github.com/capsidlab/jrfatlas/logger"
)

// ErrToolUnavailable reports that the TM-align binary could not be found
// on PATH. Callers switch the whole run to simulated scoring on it.
var ErrToolUnavailable = errors.New("TM-align binary not available")

// Runner executes TM-align against pairs of PDB files.
type Runner struct {
	Binary  string
	Timeout time.Duration
}

func NewRunner(binary string, timeout time.Duration) *Runner {
	if binary == "" {
		binary = "TMalign"
	}
	return &Runner{Binary: binary, Timeout: timeout}
}

// Available probes for the binary once, without running an alignment.
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.Binary)
	return err == nil
}

// Score aligns two PDB files and returns the TM-score normalized by the
// length of the first chain.
func (r *Runner) Score(ctx context.Context, pdbA, pdbB string) (float64, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Binary, pdbA, pdbB)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, ErrToolUnavailable
		}
		logger.Debug(fmt.Sprintf("TM-align stderr: %s", stderr.String()))
		return 0, fmt.Errorf("run %s on %s vs %s: %w", r.Binary, filepath.Base(pdbA), filepath.Base(pdbB), err)
	}

	score, err := ParseTMScore(stdout.String())
	if err != nil {
		return 0, fmt.Errorf("parse %s output for %s vs %s: %w", r.Binary, filepath.Base(pdbA), filepath.Base(pdbB), err)
	}
	return score, nil
}

// ParseTMScore pulls the chain-1-normalized TM-score out of TM-align's
// report. The report prints two TM-score lines; the one normalized by
// Chain_1 is the stable choice when chain lengths differ.
func ParseTMScore(output string) (float64, error) {
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "TM-score=") {
			continue
		}
		if !strings.Contains(line, "normalized by length of Chain_1") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "TM-score="))
		if len(fields) == 0 {
			continue
		}
		score, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("bad TM-score value %q: %w", fields[0], err)
		}
		return score, nil
	}
	return 0, errors.New("no Chain_1-normalized TM-score line in output")
}

// ExtractChain copies the ATOM and HETATM records of one chain from a PDB
// file into a new file and returns its path. TM-align aligns whole files,
// and multi-chain capsid depositions would otherwise drown the subunit of
// interest.
func ExtractChain(pdbPath, chain, outDir string) (string, error) {
	if len(chain) != 1 {
		return "", fmt.Errorf("chain identifier must be one character, got %q", chain)
	}
	data, err := os.ReadFile(pdbPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pdbPath, err)
	}

	var buf bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(data))
	kept := 0
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		// Chain identifier sits at column 22 of a PDB coordinate record.
		if len(line) < 22 || line[21] != chain[0] {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		kept++
	}
	if kept == 0 {
		return "", fmt.Errorf("no coordinates for chain %s in %s", chain, filepath.Base(pdbPath))
	}
	buf.WriteString("END\n")

	base := strings.TrimSuffix(filepath.Base(pdbPath), filepath.Ext(pdbPath))
	out := filepath.Join(outDir, fmt.Sprintf("%s_chain%s.pdb", base, chain))
	if err := util.AtomicWriteFile(out, buf.Bytes()); err != nil {
		return "", err
	}
	return out, nil
}
