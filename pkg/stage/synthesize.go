package stage

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/model"
	"github.com/capsidlab/jrfatlas/pkg/render"
	"github.com/capsidlab/jrfatlas/pkg/table"
)

var familyOverviewColumns = []string{
	"family", "protein_count", "architecture", "genome_type", "t_number",
	"with_structure", "high_confidence",
}

var architectureSummaryColumns = []string{
	"architecture", "total_proteins", "families", "genome_types", "t_numbers",
	"with_structure_pct",
}

type finalStatistics struct {
	TotalEntries              int            `json:"total_entries"`
	UniqueFamilies            int            `json:"unique_families"`
	ArchitectureDistribution  map[string]int `json:"architecture_distribution"`
	GenomeTypeDistribution    map[string]int `json:"genome_type_distribution"`
	TNumberDistribution       map[string]int `json:"t_number_distribution"`
	CapsidRoleDistribution    map[string]int `json:"capsid_role_distribution"`
	EvidenceLevelDistribution map[string]int `json:"evidence_level_distribution"`
	WithStructure             int            `json:"with_structure"`
	SJRCount                  int            `json:"sjr_count"`
	DJRCount                  int            `json:"djr_count"`
}

// Synthesize condenses the master table into the report artifacts: the
// per-family and per-architecture overview tables, the genome by
// architecture cross-tabulation, the final statistics file, and the
// distribution figures.
func (p *Pipeline) Synthesize(_ context.Context) error {
	return p.record("synthesize", func() (int, []string, error) {
		masterPath := filepath.Join(p.Cfg.CleanDir(), "capsidomics_master.tsv")
		if err := requireFile(masterPath, "annotate"); err != nil {
			return 0, nil, err
		}
		records, err := table.ReadRecords(masterPath)
		if err != nil {
			return 0, nil, err
		}
		logger.Info("synthesizing report tables", zap.Int("records", len(records)))

		var outputs []string

		familyPath := filepath.Join(p.Cfg.AnalysesDir(), "summary_family_overview.tsv")
		if err := table.WriteRows(familyPath, familyOverviewColumns, familyOverview(records)); err != nil {
			return 0, nil, err
		}
		outputs = append(outputs, familyPath)

		archPath := filepath.Join(p.Cfg.AnalysesDir(), "summary_architecture.tsv")
		if err := table.WriteRows(archPath, architectureSummaryColumns, architectureSummary(records)); err != nil {
			return 0, nil, err
		}
		outputs = append(outputs, archPath)

		matrixPath := filepath.Join(p.Cfg.AnalysesDir(), "genome_architecture_matrix.tsv")
		genomes, archs, counts := genomeArchitectureCounts(records)
		header, rows := genomeArchitectureMatrix(genomes, archs, counts)
		if err := table.WriteRows(matrixPath, header, rows); err != nil {
			return 0, nil, err
		}
		outputs = append(outputs, matrixPath)

		crossHeatmap := filepath.Join(p.Cfg.FiguresDir(), "genome_architecture_heatmap.png")
		cells := make([][]float64, len(counts))
		for i, row := range counts {
			cells[i] = make([]float64, len(row))
			for j, n := range row {
				cells[i][j] = float64(n)
			}
		}
		if err := render.CountHeatmap("Genome type vs architecture class", genomes, archs, cells, crossHeatmap); err != nil {
			return 0, nil, err
		}
		outputs = append(outputs, crossHeatmap)

		stats := buildFinalStatistics(records)
		statsPath := filepath.Join(p.Cfg.AnalysesDir(), "final_summary_statistics.json")
		if err := table.WriteJSON(statsPath, stats); err != nil {
			return 0, nil, err
		}
		outputs = append(outputs, statsPath)

		figures, err := p.distributionFigures(records)
		if err != nil {
			return 0, nil, err
		}
		outputs = append(outputs, figures...)

		logger.Info("synthesize stage complete",
			zap.Int("families", stats.UniqueFamilies),
			zap.Int("outputs", len(outputs)))
		return len(records), outputs, nil
	})
}

func recordFamily(r model.ProteinRecord) string {
	if r.InferredFamily != "" {
		return r.InferredFamily
	}
	return r.Family
}

// mode picks the most common non-empty value, ties broken alphabetically.
func mode(values []string) string {
	counts := map[string]int{}
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return "Unknown"
	}
	return sortedKeysByCount(counts)[0]
}

func familyOverview(records []model.ProteinRecord) [][]string {
	byFamily := map[string][]model.ProteinRecord{}
	for _, r := range records {
		if f := recordFamily(r); f != "" {
			byFamily[f] = append(byFamily[f], r)
		}
	}

	families := make([]string, 0, len(byFamily))
	for f := range byFamily {
		families = append(families, f)
	}
	sort.Slice(families, func(i, j int) bool {
		if len(byFamily[families[i]]) != len(byFamily[families[j]]) {
			return len(byFamily[families[i]]) > len(byFamily[families[j]])
		}
		return families[i] < families[j]
	})

	rows := make([][]string, 0, len(families))
	for _, f := range families {
		members := byFamily[f]
		var archs, genomes, tnumbers []string
		withStructure, highConf := 0, 0
		for _, r := range members {
			archs = append(archs, string(r.Architecture))
			genomes = append(genomes, string(r.GenomeType))
			tnumbers = append(tnumbers, r.TNumber)
			if r.StructureID != "" {
				withStructure++
			}
			if r.Confidence == model.ConfidenceHigh {
				highConf++
			}
		}
		rows = append(rows, []string{
			f, strconv.Itoa(len(members)), mode(archs), mode(genomes), mode(tnumbers),
			strconv.Itoa(withStructure), strconv.Itoa(highConf),
		})
	}
	return rows
}

func architectureSummary(records []model.ProteinRecord) [][]string {
	byArch := map[string][]model.ProteinRecord{}
	for _, r := range records {
		if r.Architecture != model.ArchUnset {
			byArch[string(r.Architecture)] = append(byArch[string(r.Architecture)], r)
		}
	}

	archs := make([]string, 0, len(byArch))
	for a := range byArch {
		archs = append(archs, a)
	}
	sort.Slice(archs, func(i, j int) bool {
		if len(byArch[archs[i]]) != len(byArch[archs[j]]) {
			return len(byArch[archs[i]]) > len(byArch[archs[j]])
		}
		return archs[i] < archs[j]
	})

	// distinct keeps first appearances up to max entries.
	distinct := func(values []string, max int) string {
		var out []string
		seen := map[string]struct{}{}
		for _, v := range values {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
			if len(out) == max {
				break
			}
		}
		return strings.Join(out, ", ")
	}

	rows := make([][]string, 0, len(archs))
	for _, a := range archs {
		members := byArch[a]
		families := map[string]struct{}{}
		var genomes, tnumbers []string
		withStructure := 0
		for _, r := range members {
			if f := recordFamily(r); f != "" {
				families[f] = struct{}{}
			}
			genomes = append(genomes, string(r.GenomeType))
			tnumbers = append(tnumbers, r.TNumber)
			if r.StructureID != "" {
				withStructure++
			}
		}
		pct := 100 * float64(withStructure) / float64(len(members))
		rows = append(rows, []string{
			a, strconv.Itoa(len(members)), strconv.Itoa(len(families)),
			distinct(genomes, 3), distinct(tnumbers, 5),
			strconv.FormatFloat(pct, 'f', 1, 64),
		})
	}
	return rows
}

// genomeArchitectureCounts cross-tabulates genome types against
// architectures, skipping rows where either side is blank.
func genomeArchitectureCounts(records []model.ProteinRecord) (genomes, archs []string, counts [][]int) {
	table := map[string]map[string]int{}
	archSet := map[string]struct{}{}
	for _, r := range records {
		g, a := string(r.GenomeType), string(r.Architecture)
		if g == "" || a == "" {
			continue
		}
		if table[g] == nil {
			table[g] = map[string]int{}
		}
		table[g][a]++
		archSet[a] = struct{}{}
	}

	for a := range archSet {
		archs = append(archs, a)
	}
	sort.Strings(archs)
	for g := range table {
		genomes = append(genomes, g)
	}
	sort.Strings(genomes)

	counts = make([][]int, len(genomes))
	for i, g := range genomes {
		counts[i] = make([]int, len(archs))
		for j, a := range archs {
			counts[i][j] = table[g][a]
		}
	}
	return genomes, archs, counts
}

// genomeArchitectureMatrix renders the crosstab as TSV rows with a Total
// row and column.
func genomeArchitectureMatrix(genomes, archs []string, counts [][]int) ([]string, [][]string) {
	header := append(append([]string{"genome_type"}, archs...), "Total")
	rows := make([][]string, 0, len(genomes)+1)
	colTotals := make([]int, len(archs))
	for i, g := range genomes {
		row := []string{g}
		rowTotal := 0
		for j := range archs {
			n := counts[i][j]
			row = append(row, strconv.Itoa(n))
			rowTotal += n
			colTotals[j] += n
		}
		rows = append(rows, append(row, strconv.Itoa(rowTotal)))
	}
	total := []string{"Total"}
	grand := 0
	for _, n := range colTotals {
		total = append(total, strconv.Itoa(n))
		grand += n
	}
	rows = append(rows, append(total, strconv.Itoa(grand)))
	return header, rows
}

func buildFinalStatistics(records []model.ProteinRecord) finalStatistics {
	stats := finalStatistics{
		TotalEntries:              len(records),
		ArchitectureDistribution:  countBy(records, func(r model.ProteinRecord) string { return string(r.Architecture) }),
		GenomeTypeDistribution:    countBy(records, func(r model.ProteinRecord) string { return string(r.GenomeType) }),
		TNumberDistribution:       countBy(records, func(r model.ProteinRecord) string { return r.TNumber }),
		CapsidRoleDistribution:    countBy(records, func(r model.ProteinRecord) string { return string(r.CapsidRole) }),
		EvidenceLevelDistribution: countBy(records, func(r model.ProteinRecord) string { return string(r.Confidence) }),
	}
	stats.UniqueFamilies = len(countBy(records, recordFamily))
	stats.SJRCount = stats.ArchitectureDistribution[string(model.ArchSJR)]
	stats.DJRCount = stats.ArchitectureDistribution[string(model.ArchDJR)]
	for _, r := range records {
		if r.StructureID != "" {
			stats.WithStructure++
		}
	}
	return stats
}

// distributionFigures draws the count bar charts. Chart order is fixed so
// the output list is stable.
func (p *Pipeline) distributionFigures(records []model.ProteinRecord) ([]string, error) {
	charts := []struct {
		file, title string
		counts      map[string]int
		topN        int
	}{
		{"architecture_distribution.png", "Architecture class distribution",
			countBy(records, func(r model.ProteinRecord) string { return string(r.Architecture) }), 0},
		{"genome_type_distribution.png", "Genome type distribution",
			countBy(records, func(r model.ProteinRecord) string { return string(r.GenomeType) }), 0},
		{"t_number_distribution.png", "Triangulation number distribution",
			countBy(records, func(r model.ProteinRecord) string { return r.TNumber }), 0},
		{"family_overview.png", "Proteins per family",
			countBy(records, recordFamily), 15},
	}

	var outputs []string
	for _, c := range charts {
		keys := sortedKeysByCount(c.counts)
		if c.topN > 0 && len(keys) > c.topN {
			keys = keys[:c.topN]
		}
		values := make([]float64, len(keys))
		for i, k := range keys {
			values[i] = float64(c.counts[k])
		}
		path := filepath.Join(p.Cfg.FiguresDir(), c.file)
		if err := render.BarChart(c.title, "proteins", keys, values, path); err != nil {
			return nil, fmt.Errorf("draw %s: %w", c.file, err)
		}
		outputs = append(outputs, path)
	}
	return outputs, nil
}
