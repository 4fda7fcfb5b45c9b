package stage

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/model"
	"github.com/capsidlab/jrfatlas/pkg/table"
)

type annotationSummary struct {
	TotalEntries    int            `json:"total_entries"`
	ByEvidenceLevel map[string]int `json:"by_evidence_level"`
	ByArchitecture  map[string]int `json:"by_architecture"`
	ByCapsidRole    map[string]int `json:"by_capsid_role"`
	ByTNumber       map[string]int `json:"by_t_number"`
	ByGenomeType    map[string]int `json:"by_genome_type"`
	ByFamily        map[string]int `json:"by_family"`
	ByMorphology    map[string]int `json:"by_morphology"`
	WithStructure   int            `json:"with_structure"`
}

// annotateRecord fills the taxonomy- and family-derived columns of one
// record in place. Family wins over PFAM hints: when a record resolves to
// a known family, the family's annotation block overwrites the class the
// source domain suggested.
func annotateRecord(r *model.ProteinRecord) {
	family := r.Family
	if family == "" {
		family = model.InferFamily(r.Organism)
	}
	r.InferredFamily = family

	if ann, ok := model.FamilyAnnotations[family]; ok {
		r.Architecture = ann.Arch
		r.Morphology = ann.Morphology
		r.TNumber = ann.TNumber
		r.GenomeType = ann.Genome
		r.Orientation = ann.Orientation
	} else {
		if r.PFAMClass != model.ArchUnset {
			r.Architecture = r.PFAMClass
		}
		if r.PFAMRole != "" && r.CapsidRole == "" {
			r.CapsidRole = r.PFAMRole
		}
	}

	if r.CapsidRole == "" || r.CapsidRole == model.RoleUnknown {
		r.CapsidRole = model.InferRole(r.ProteinName)
	}

	if r.GenomeType == model.GenomeUnsetType {
		r.GenomeType = model.GenomeUnknown
	}
}

// Annotate builds the master table: families, architectures, capsid roles
// and, optionally, structures are resolved for every cleaned hit, then
// the evidence tier is recomputed from the finished record.
func (p *Pipeline) Annotate(ctx context.Context, lookupStructures bool) error {
	return p.record("annotate", func() (int, []string, error) {
		cleanPath := filepath.Join(p.Cfg.CleanDir(), "all_hits_clean.tsv")
		if err := requireFile(cleanPath, "expand"); err != nil {
			return 0, nil, err
		}
		records, err := table.ReadRecords(cleanPath)
		if err != nil {
			return 0, nil, err
		}
		logger.Info("annotating cleaned hits", zap.Int("records", len(records)))

		for i := range records {
			annotateRecord(&records[i])

			if lookupStructures && p.live() && records[i].StructureID == "" {
				p.lookupStructure(ctx, &records[i])
			}
		}

		// The confidence pass runs last: every label is derived from the
		// finished record, so a relabel of the table is always reproducible.
		for i := range records {
			records[i].Relabel()
		}

		masterPath := filepath.Join(p.Cfg.CleanDir(), "capsidomics_master.tsv")
		if err := table.WriteRecords(masterPath, records); err != nil {
			return 0, nil, err
		}

		var high []model.ProteinRecord
		for _, r := range records {
			if r.Confidence == model.ConfidenceHigh {
				high = append(high, r)
			}
		}
		highPath := filepath.Join(p.Cfg.CleanDir(), "high_confidence.tsv")
		if err := table.WriteRecords(highPath, high); err != nil {
			return 0, nil, err
		}

		summary := annotationSummary{
			TotalEntries:    len(records),
			ByEvidenceLevel: countBy(records, func(r model.ProteinRecord) string { return string(r.Confidence) }),
			ByArchitecture:  countBy(records, func(r model.ProteinRecord) string { return string(r.Architecture) }),
			ByCapsidRole:    countBy(records, func(r model.ProteinRecord) string { return string(r.CapsidRole) }),
			ByTNumber:       countBy(records, func(r model.ProteinRecord) string { return r.TNumber }),
			ByGenomeType:    countBy(records, func(r model.ProteinRecord) string { return string(r.GenomeType) }),
			ByFamily:        countBy(records, func(r model.ProteinRecord) string { return r.InferredFamily }),
			ByMorphology:    countBy(records, func(r model.ProteinRecord) string { return r.Morphology }),
		}
		for _, r := range records {
			if r.StructureID != "" {
				summary.WithStructure++
			}
		}
		summaryPath := filepath.Join(p.Cfg.CleanDir(), "capsidomics_summary.json")
		if err := table.WriteJSON(summaryPath, summary); err != nil {
			return 0, nil, err
		}

		logger.Info("annotate stage complete",
			zap.Int("total", len(records)),
			zap.Int("high_confidence", len(high)),
			zap.Int("with_structure", summary.WithStructure))
		return len(records), []string{masterPath, highPath, summaryPath}, nil
	})
}

// lookupStructure resolves the best known structure for one record.
// Misses and failures both leave the record untouched.
func (p *Pipeline) lookupStructure(ctx context.Context, r *model.ProteinRecord) {
	ref, err := p.Client.BestStructure(ctx, r.Accession)
	p.Client.Pause()
	if err != nil {
		logger.Warn("structure lookup failed",
			zap.String("accession", r.Accession), zap.Error(err))
		return
	}
	if ref == nil {
		return
	}
	r.StructureID = ref.ID
	r.StructureSource = ref.Source
}
