package stage

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/config"
	"github.com/capsidlab/jrfatlas/pkg/fetch"
	"github.com/capsidlab/jrfatlas/pkg/model"
	"github.com/capsidlab/jrfatlas/pkg/table"
)

// Source yields candidate proteins for a set of capsid domains. Live runs
// query UniProt; demo runs return a fixed curated set so the pipeline
// works offline.
type Source interface {
	Hits(ctx context.Context, domains []model.DomainEntry) ([]model.ProteinRecord, error)
}

// LiveSource expands domains through the UniProt search API. A failed
// domain is logged and skipped; the expansion keeps whatever the other
// domains returned.
type LiveSource struct {
	Client *fetch.Client
}

func (s *LiveSource) Hits(ctx context.Context, domains []model.DomainEntry) ([]model.ProteinRecord, error) {
	var all []model.ProteinRecord
	for i, d := range domains {
		logger.Info("expanding domain",
			zap.String("pfam", d.PFAMID), zap.Int("n", i+1), zap.Int("of", len(domains)))
		hits, err := s.Client.SearchByDomain(ctx, d)
		all = append(all, hits...)
		if err != nil {
			logger.Warn("domain expansion incomplete",
				zap.String("pfam", d.PFAMID), zap.Int("partial_hits", len(hits)), zap.Error(err))
		}
		s.Client.Pause()
	}
	return all, nil
}

// DemoSource returns a curated snapshot of what a live expansion finds,
// spanning both jelly-roll architectures and all major host groups.
type DemoSource struct{}

func (DemoSource) Hits(_ context.Context, _ []model.DomainEntry) ([]model.ProteinRecord, error) {
	return demoHits(), nil
}

func demoHits() []model.ProteinRecord {
	type row struct {
		acc, name, organism string
		taxon, length       int
		pfam                string
		class               model.Architecture
		family              string
	}
	rows := []row{
		{"P03135", "Capsid protein VP1", "Adeno-associated virus 2", 10804, 735, "PF00740", model.ArchSJR, "Parvoviridae"},
		{"A0A0B4J2A1", "Capsid protein", "Adeno-associated virus 5", 68476, 724, "PF00740", model.ArchSJR, "Parvoviridae"},
		{"P03132", "Capsid protein VP2", "Canine parvovirus", 10786, 584, "PF00740", model.ArchSJR, "Parvoviridae"},
		{"P03300", "Capsid protein VP1", "Poliovirus type 1", 12081, 302, "PF00729", model.ArchSJR, "Picornaviridae"},
		{"P04936", "Capsid protein VP1", "Human rhinovirus 14", 12130, 289, "PF00729", model.ArchSJR, "Picornaviridae"},
		{"Q9YW43", "Capsid protein", "Porcine circovirus 2", 85708, 233, "PF08398", model.ArchSJR, "Circoviridae"},
		{"P04133", "Hexon protein", "Human adenovirus 5", 28285, 952, "PF00608", model.ArchDJR, "Adenoviridae"},
		{"D2Y2S4", "Hexon protein", "Human adenovirus 26", 145628, 946, "PF00608", model.ArchDJR, "Adenoviridae"},
		{"P30316", "Major capsid protein Vp54", "Paramecium bursaria chlorella virus 1", 10506, 437, "PF04663", model.ArchDJR, "Phycodnaviridae"},
		{"P22035", "Major capsid protein p72", "African swine fever virus", 10497, 646, "PF04894", model.ArchDJR, "Asfarviridae"},
		{"P03538", "Coat protein", "Tomato bushy stunt virus", 12149, 387, "PF02227", model.ArchSJR, "Tombusviridae"},
		{"P03600", "Coat protein", "Cowpea chlorotic mottle virus", 12264, 190, "PF02227", model.ArchSJR, "Bromoviridae"},
		{"P27378", "Major capsid protein P3", "Enterobacteria phage PRD1", 10658, 395, "PF04451", model.ArchDJR, "Tectiviridae"},
	}

	out := make([]model.ProteinRecord, 0, len(rows))
	for _, r := range rows {
		name := ""
		if d, ok := model.DomainByID(r.pfam); ok {
			name = d.Name
		}
		out = append(out, model.ProteinRecord{
			Accession:   r.acc,
			ProteinName: r.name,
			Organism:    r.organism,
			TaxonomyID:  r.taxon,
			Length:      r.length,
			PFAMSource:  r.pfam,
			PFAMName:    name,
			PFAMClass:   r.class,
			PFAMRole:    model.RoleMCP,
			Family:      r.family,
			Confidence:  model.ConfidenceHigh,
			Source:      "simulated_demo",
		})
	}
	return out
}

// Clean drops records with no accession, filters fragments and
// misannotations by length, deduplicates by accession keeping the first
// occurrence, and assigns the provisional length-based confidence.
func Clean(records []model.ProteinRecord, clean config.CleanConfig) []model.ProteinRecord {
	seen := map[string]struct{}{}
	out := make([]model.ProteinRecord, 0, len(records))
	for _, r := range records {
		if r.Accession == "" {
			continue
		}
		if r.Length < clean.MinLength || r.Length > clean.MaxLength {
			continue
		}
		if _, dup := seen[r.Accession]; dup {
			continue
		}
		seen[r.Accession] = struct{}{}
		r.Confidence = model.ProvisionalConfidence(r.Length)
		out = append(out, r)
	}
	return out
}

type expansionSummary struct {
	RawCount   int            `json:"raw_count"`
	CleanCount int            `json:"clean_count"`
	ByJRFClass map[string]int `json:"by_jrf_class"`
	ByFamily   map[string]int `json:"by_family"`
}

// Expand turns the capsid PFAM reference into a raw and a cleaned hit
// table.
func (p *Pipeline) Expand(ctx context.Context) error {
	return p.record("expand", func() (int, []string, error) {
		masterPath := filepath.Join(p.Cfg.RawDir(), "pfam_master.tsv")
		if err := requireFile(masterPath, "domains"); err != nil {
			return 0, nil, err
		}
		domains, err := table.ReadDomains(masterPath)
		if err != nil {
			return 0, nil, err
		}

		var capsid []model.DomainEntry
		for _, d := range domains {
			if d.IsCapsid {
				capsid = append(capsid, d)
			}
		}

		var src Source
		if p.live() {
			src = &LiveSource{Client: p.Client}
			logger.Info("expanding via UniProt", zap.Int("capsid_domains", len(capsid)))
		} else {
			src = DemoSource{}
			logger.Info("expanding from the demo snapshot")
		}

		raw, err := src.Hits(ctx, capsid)
		if err != nil {
			return 0, nil, err
		}
		rawPath := filepath.Join(p.Cfg.RawDir(), "all_hits_raw.tsv")
		if err := table.WriteRecords(rawPath, raw); err != nil {
			return 0, nil, err
		}

		clean := Clean(raw, p.Cfg.Clean)
		cleanPath := filepath.Join(p.Cfg.CleanDir(), "all_hits_clean.tsv")
		if err := table.WriteRecords(cleanPath, clean); err != nil {
			return 0, nil, err
		}

		summary := expansionSummary{
			RawCount:   len(raw),
			CleanCount: len(clean),
			ByJRFClass: countBy(clean, func(r model.ProteinRecord) string { return string(r.PFAMClass) }),
			ByFamily:   countBy(clean, func(r model.ProteinRecord) string { return r.Family }),
		}
		summaryPath := filepath.Join(p.Cfg.CleanDir(), "expansion_summary.json")
		if err := table.WriteJSON(summaryPath, summary); err != nil {
			return 0, nil, err
		}

		logger.Info("expand stage complete",
			zap.Int("raw", len(raw)), zap.Int("clean", len(clean)))
		return len(clean), []string{rawPath, cleanPath, summaryPath}, nil
	})
}
