package stage

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/model"
	"github.com/capsidlab/jrfatlas/pkg/table"
)

// seedSummary mirrors the seed stage's JSON report.
type seedSummary struct {
	TotalProteins  int            `json:"total_proteins"`
	ByArchitecture map[string]int `json:"by_architecture"`
	ByGenomeType   map[string]int `json:"by_genome_type"`
	ByHost         map[string]int `json:"by_host"`
	ByCapsidRole   map[string]int `json:"by_capsid_role"`
	ByFamily       map[string]int `json:"by_family"`
	WithPDB        int            `json:"with_pdb"`
	WithUniprot    int            `json:"with_uniprot"`
}

// Seed writes the curated seed table and its summary. With enrich set and
// live mode on, each entry is cross-checked against UniProt; disagreements
// are logged, never written back, since the seed list is hand-curated
// ground truth.
func (p *Pipeline) Seed(ctx context.Context, enrich bool) error {
	return p.record("seed", func() (int, []string, error) {
		if err := p.EnsureLayout(); err != nil {
			return 0, nil, err
		}

		seeds := model.SeedProteins
		logger.Info("building seed set", zap.Int("proteins", len(seeds)))

		if enrich && p.live() {
			p.verifySeeds(ctx, seeds)
		}

		seedPath := filepath.Join(p.Cfg.RawDir(), "seed_set.tsv")
		if err := table.WriteSeeds(seedPath, seeds); err != nil {
			return 0, nil, err
		}

		summary := seedSummary{
			TotalProteins:  len(seeds),
			ByArchitecture: countBy(seeds, func(s model.SeedProtein) string { return string(s.Arch) }),
			ByGenomeType:   countBy(seeds, func(s model.SeedProtein) string { return string(s.Genome) }),
			ByHost:         countBy(seeds, func(s model.SeedProtein) string { return s.HostCategory }),
			ByCapsidRole:   countBy(seeds, func(s model.SeedProtein) string { return string(s.Role) }),
			ByFamily:       countBy(seeds, func(s model.SeedProtein) string { return s.Family }),
		}
		for _, s := range seeds {
			if s.PrimaryPDB() != "" {
				summary.WithPDB++
			}
			if s.UniprotID != "" {
				summary.WithUniprot++
			}
		}

		summaryPath := filepath.Join(p.Cfg.RawDir(), "seed_set_summary.json")
		if err := table.WriteJSON(summaryPath, summary); err != nil {
			return 0, nil, err
		}

		logger.Info("seed stage complete",
			zap.Int("proteins", len(seeds)),
			zap.Int("with_pdb", summary.WithPDB))
		return len(seeds), []string{seedPath, summaryPath}, nil
	})
}

// verifySeeds cross-checks curated entries against live UniProt records.
// Failures are per-entry and non-fatal.
func (p *Pipeline) verifySeeds(ctx context.Context, seeds []model.SeedProtein) {
	checked, mismatched := 0, 0
	for _, s := range seeds {
		if s.UniprotID == "" {
			continue
		}
		info, err := p.Client.UniProtEntry(ctx, s.UniprotID)
		if err != nil {
			logger.Warn("seed verification lookup failed",
				zap.String("accession", s.UniprotID), zap.Error(err))
			p.Client.Pause()
			continue
		}
		checked++
		if !info.Reviewed {
			logger.Warn("seed entry is unreviewed in UniProt",
				zap.String("accession", s.UniprotID))
		}
		if info.Organism != "" && info.Organism != s.VirusName {
			mismatched++
			logger.Debug("seed organism name differs from UniProt",
				zap.String("accession", s.UniprotID),
				zap.String("curated", s.VirusName),
				zap.String("uniprot", info.Organism))
		}
		p.Client.Pause()
	}
	logger.Info("seed verification done",
		zap.Int("checked", checked), zap.Int("name_mismatches", mismatched))
}
