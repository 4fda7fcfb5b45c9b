// Package stage implements the six pipeline stages of the capsid atlas.
// Each stage reads the tables its predecessor wrote, transforms them, and
// writes its own outputs; a missing prerequisite aborts the stage with an
// error instead of silently rebuilding upstream data.
package stage

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/internal/util"
	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/config"
	"github.com/capsidlab/jrfatlas/pkg/db"
	"github.com/capsidlab/jrfatlas/pkg/fetch"
)

// Pipeline carries the shared dependencies of every stage.
type Pipeline struct {
	Cfg     *config.Config
	Client  *fetch.Client
	Catalog *db.Catalog
}

func New(cfg *config.Config, client *fetch.Client, catalog *db.Catalog) *Pipeline {
	return &Pipeline{Cfg: cfg, Client: client, Catalog: catalog}
}

// EnsureLayout creates the on-disk directory tree of the atlas.
func (p *Pipeline) EnsureLayout() error {
	for _, dir := range []string{
		p.Cfg.RawDir(), p.Cfg.CleanDir(), p.Cfg.AnalysesDir(), p.Cfg.FiguresDir(),
	} {
		if err := util.EnsureDir(dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func (p *Pipeline) live() bool { return p.Cfg.Mode == config.ModeLive }

// record wraps a stage body with provenance bookkeeping. Catalog failures
// are logged, never fatal: losing provenance must not lose data.
func (p *Pipeline) record(name string, body func() (int, []string, error)) error {
	run, err := p.Catalog.StartStage(name)
	if err != nil {
		logger.Warn("catalog unavailable, continuing without provenance",
			zap.String("stage", name), zap.Error(err))
		run = nil
	}

	rows, outputs, stageErr := body()

	if finishErr := run.Finish(rows, outputs, stageErr); finishErr != nil {
		logger.Warn("failed to record stage outcome",
			zap.String("stage", name), zap.Error(finishErr))
	}
	return stageErr
}

// requireFile turns a missing prerequisite into a stage-aborting error
// naming the stage that produces it.
func requireFile(path, producer string) error {
	if !util.FileExists(path) {
		return fmt.Errorf("%s not found: run the %s stage first", filepath.Base(path), producer)
	}
	return nil
}

// countBy tallies string keys, dropping empties the way the summary tables
// do.
func countBy[T any](items []T, key func(T) string) map[string]int {
	out := map[string]int{}
	for _, it := range items {
		k := key(it)
		if k == "" {
			continue
		}
		out[k]++
	}
	return out
}

// sortedKeysByCount orders map keys by descending count, ties broken
// alphabetically so outputs are stable run to run.
func sortedKeysByCount(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
