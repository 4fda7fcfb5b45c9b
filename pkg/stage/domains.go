package stage

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/model"
	"github.com/capsidlab/jrfatlas/pkg/table"
)

var mappingColumns = []string{
	"accession", "virus_name", "protein_name", "architecture_class",
	"capsid_role", "primary_pdb", "pfam_domains", "pfam_names", "pfam_count",
}

var novelColumns = []string{"pfam_id", "pfam_name", "seen_in"}

type domainSummary struct {
	TotalPFAMs     int            `json:"total_pfams"`
	ByJRFClass     map[string]int `json:"by_jrf_class"`
	ByCapsidRole   map[string]int `json:"by_capsid_role"`
	ByConfidence   map[string]int `json:"by_confidence"`
	CapsidPFAMs    int            `json:"capsid_pfams"`
	NonCapsidPFAMs int            `json:"non_capsid_pfams"`
	NovelPFAMs     int            `json:"novel_pfams"`
}

// Domains writes the curated PFAM reference table and maps every seed to
// its domains. With refresh set and live mode on, the curated mapping is
// compared against InterPro; PFAM IDs that InterPro reports but the
// curated table lacks go to the novel-domains report for manual curation,
// never straight into the reference table.
func (p *Pipeline) Domains(ctx context.Context, refresh bool) error {
	return p.record("domains", func() (int, []string, error) {
		seedPath := filepath.Join(p.Cfg.RawDir(), "seed_set.tsv")
		if err := requireFile(seedPath, "seed"); err != nil {
			return 0, nil, err
		}
		seeds, err := table.ReadSeeds(seedPath)
		if err != nil {
			return 0, nil, err
		}

		masterPath := filepath.Join(p.Cfg.RawDir(), "pfam_master.tsv")
		if err := table.WriteDomains(masterPath, model.CuratedDomains); err != nil {
			return 0, nil, err
		}
		logger.Info("wrote PFAM reference table", zap.Int("domains", len(model.CuratedDomains)))

		novel := map[string]string{} // pfam id -> accessions seen in
		var mappingRows [][]string
		for _, s := range seeds {
			ids := model.SeedPFAMAssociations[s.UniprotID]

			if refresh && p.live() {
				if live := p.refreshDomains(ctx, s.UniprotID, novel); len(live) > 0 {
					ids = live
				}
			}

			names := make([]string, 0, len(ids))
			for _, id := range ids {
				if d, ok := model.DomainByID(id); ok {
					names = append(names, d.Name)
				} else {
					names = append(names, "")
				}
			}
			mappingRows = append(mappingRows, []string{
				s.UniprotID, s.VirusName, s.ProteinName, string(s.Arch),
				string(s.Role), s.PrimaryPDB(), strings.Join(ids, ";"),
				strings.Join(names, ";"), strconv.Itoa(len(ids)),
			})
		}

		mappingPath := filepath.Join(p.Cfg.RawDir(), "seed_pfam_mapping.tsv")
		if err := table.WriteRows(mappingPath, mappingColumns, mappingRows); err != nil {
			return 0, nil, err
		}

		var novelRows [][]string
		novelIDs := make([]string, 0, len(novel))
		for id := range novel {
			novelIDs = append(novelIDs, id)
		}
		sort.Strings(novelIDs)
		for _, id := range novelIDs {
			novelRows = append(novelRows, []string{id, "needs manual curation", novel[id]})
		}
		novelPath := filepath.Join(p.Cfg.RawDir(), "novel_domains.tsv")
		if err := table.WriteRows(novelPath, novelColumns, novelRows); err != nil {
			return 0, nil, err
		}
		if len(novelRows) > 0 {
			logger.Warn("found PFAM domains outside the curated reference",
				zap.Int("count", len(novelRows)), zap.String("report", novelPath))
		}

		summary := domainSummary{
			TotalPFAMs: len(model.CuratedDomains),
			ByJRFClass: countBy(model.CuratedDomains, func(d model.DomainEntry) string { return string(d.Class) }),
			ByCapsidRole: countBy(model.CuratedDomains, func(d model.DomainEntry) string {
				return string(d.Role)
			}),
			ByConfidence: countBy(model.CuratedDomains, func(d model.DomainEntry) string {
				return string(d.Confidence)
			}),
			NovelPFAMs: len(novelRows),
		}
		for _, d := range model.CuratedDomains {
			if d.IsCapsid {
				summary.CapsidPFAMs++
			} else {
				summary.NonCapsidPFAMs++
			}
		}
		summaryPath := filepath.Join(p.Cfg.RawDir(), "pfam_master_summary.json")
		if err := table.WriteJSON(summaryPath, summary); err != nil {
			return 0, nil, err
		}

		logger.Info("domain stage complete",
			zap.Int("mapped_seeds", len(mappingRows)),
			zap.Int("novel", len(novelRows)))
		return len(mappingRows), []string{masterPath, mappingPath, novelPath, summaryPath}, nil
	})
}

// refreshDomains asks InterPro for the live domain list of one accession.
// Unknown IDs are collected into novel; lookup failures fall back to the
// curated mapping.
func (p *Pipeline) refreshDomains(ctx context.Context, accession string, novel map[string]string) []string {
	hits, err := p.Client.PFAMsForAccession(ctx, accession)
	p.Client.Pause()
	if err != nil {
		logger.Warn("InterPro lookup failed, using curated mapping",
			zap.String("accession", accession), zap.Error(err))
		return nil
	}
	var ids []string
	for _, h := range hits {
		ids = append(ids, h.PFAMID)
		if _, known := model.DomainByID(h.PFAMID); !known {
			if prev := novel[h.PFAMID]; prev != "" {
				novel[h.PFAMID] = prev + ";" + accession
			} else {
				novel[h.PFAMID] = accession
			}
		}
	}
	return ids
}
