package stage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/config"
	"github.com/capsidlab/jrfatlas/pkg/model"
	"github.com/capsidlab/jrfatlas/pkg/table"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(zapcore.ErrorLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func demoPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := &config.Config{
		DataRoot: t.TempDir(),
		Mode:     config.ModeDemo,
		HTTP:     config.HTTPConfig{Timeout: 5 * time.Second},
		Clean:    config.CleanConfig{MinLength: 100, MaxLength: 2000},
		Cluster: config.ClusterConfig{
			Linkage: "average", TightCut: 0.3, LooseCut: 0.5, RandomSeed: 42,
		},
		Align: config.AlignConfig{Binary: "TMalign", Timeout: time.Minute},
	}
	return New(cfg, nil, nil)
}

func TestSeedStage(t *testing.T) {
	p := demoPipeline(t)
	if err := p.Seed(context.Background(), false); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	seeds, err := table.ReadSeeds(filepath.Join(p.Cfg.RawDir(), "seed_set.tsv"))
	if err != nil {
		t.Fatalf("read seed table: %v", err)
	}
	if len(seeds) != len(model.SeedProteins) {
		t.Errorf("seed table has %d rows, want %d", len(seeds), len(model.SeedProteins))
	}

	if _, err := os.Stat(filepath.Join(p.Cfg.RawDir(), "seed_set_summary.json")); err != nil {
		t.Errorf("seed summary missing: %v", err)
	}

	// The curated table is static, so rebuilding must reproduce it exactly.
	seedPath := filepath.Join(p.Cfg.RawDir(), "seed_set.tsv")
	first, err := os.ReadFile(seedPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Seed(context.Background(), false); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	second, err := os.ReadFile(seedPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("seed table is not byte-stable across runs")
	}
}

func TestDomainsRequiresSeed(t *testing.T) {
	p := demoPipeline(t)
	if err := p.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	if err := p.Domains(context.Background(), false); err == nil {
		t.Fatal("expected missing-prerequisite error")
	}
}

func TestDomainsStage(t *testing.T) {
	p := demoPipeline(t)
	ctx := context.Background()
	if err := p.Seed(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := p.Domains(ctx, false); err != nil {
		t.Fatalf("Domains: %v", err)
	}

	domains, err := table.ReadDomains(filepath.Join(p.Cfg.RawDir(), "pfam_master.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(domains) != len(model.CuratedDomains) {
		t.Errorf("reference table has %d domains, want %d", len(domains), len(model.CuratedDomains))
	}

	header, rows, err := table.ReadRows(filepath.Join(p.Cfg.RawDir(), "seed_pfam_mapping.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(model.SeedProteins) {
		t.Errorf("mapping has %d rows, want one per seed (%d)", len(rows), len(model.SeedProteins))
	}

	col := map[string]int{}
	for i, h := range header {
		col[h] = i
	}
	// The adenovirus cement protein has no curated domain; its mapping row
	// must still be present, just empty.
	found := false
	for _, row := range rows {
		if row[col["accession"]] == "P03283" {
			found = true
			if row[col["pfam_count"]] != "0" || row[col["pfam_domains"]] != "" {
				t.Errorf("P03283 should map to no domains: %v", row)
			}
		}
	}
	if !found {
		t.Error("P03283 missing from mapping table")
	}

	// Offline run visits no external service, so nothing can be novel.
	_, novel, err := table.ReadRows(filepath.Join(p.Cfg.RawDir(), "novel_domains.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(novel) != 0 {
		t.Errorf("demo run reported novel domains: %v", novel)
	}
}

func TestExpandStage(t *testing.T) {
	p := demoPipeline(t)
	ctx := context.Background()
	if err := p.Seed(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := p.Domains(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := p.Expand(ctx); err != nil {
		t.Fatalf("Expand: %v", err)
	}

	raw, err := table.ReadRecords(filepath.Join(p.Cfg.RawDir(), "all_hits_raw.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 13 {
		t.Errorf("demo expansion should yield 13 raw hits, got %d", len(raw))
	}

	clean, err := table.ReadRecords(filepath.Join(p.Cfg.CleanDir(), "all_hits_clean.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	// Every demo record is in the length band with a unique accession.
	if len(clean) != 13 {
		t.Errorf("clean table has %d rows, want 13", len(clean))
	}
	for _, r := range clean {
		if r.Confidence != model.ProvisionalConfidence(r.Length) {
			t.Errorf("%s: confidence %s not the provisional label for length %d",
				r.Accession, r.Confidence, r.Length)
		}
	}
}

func TestClean(t *testing.T) {
	records := []model.ProteinRecord{
		{Accession: "A", Length: 300},
		{Accession: "", Length: 300},   // no accession
		{Accession: "B", Length: 50},   // fragment
		{Accession: "C", Length: 120},  // short but in band
		{Accession: "A", Length: 400},  // duplicate, dropped
		{Accession: "D", Length: 2500}, // misannotation
	}
	clean := Clean(records, config.CleanConfig{MinLength: 100, MaxLength: 2000})
	if len(clean) != 2 {
		t.Fatalf("want 2 survivors, got %+v", clean)
	}
	if clean[0].Accession != "A" || clean[0].Length != 300 {
		t.Errorf("dedupe should keep the first occurrence: %+v", clean[0])
	}
	if clean[0].Confidence != model.ConfidenceHigh {
		t.Errorf("A should start high, got %s", clean[0].Confidence)
	}
	if clean[1].Accession != "C" || clean[1].Confidence != model.ConfidenceLow {
		t.Errorf("C should start low: %+v", clean[1])
	}
}

func runThroughAnnotate(t *testing.T) *Pipeline {
	t.Helper()
	p := demoPipeline(t)
	ctx := context.Background()
	for _, fn := range []func() error{
		func() error { return p.Seed(ctx, false) },
		func() error { return p.Domains(ctx, false) },
		func() error { return p.Expand(ctx) },
		func() error { return p.Annotate(ctx, false) },
	} {
		if err := fn(); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestAnnotateStage(t *testing.T) {
	p := runThroughAnnotate(t)

	master, err := table.ReadRecords(filepath.Join(p.Cfg.CleanDir(), "capsidomics_master.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(master) != 13 {
		t.Fatalf("master has %d rows, want 13", len(master))
	}

	byAcc := map[string]model.ProteinRecord{}
	for _, r := range master {
		byAcc[r.Accession] = r
		if r.InferredFamily == "" {
			t.Errorf("%s: no family resolved", r.Accession)
		}
		if r.Confidence != model.ConfidenceFor(r.CapsidRole, r.Architecture, r.Length, r.StructureID) {
			t.Errorf("%s: confidence %s not derivable from the record", r.Accession, r.Confidence)
		}
	}

	// Family annotation overrides the PFAM hint wholesale.
	adv := byAcc["P04133"]
	if adv.Architecture != model.ArchDJR || adv.GenomeType != model.GenomeDSDNA || adv.TNumber != "pseudo-T=25" {
		t.Errorf("adenovirus hexon annotation wrong: %+v", adv)
	}
	if adv.CapsidRole != model.RoleMCP {
		t.Errorf("hexon should be recognized as MCP, got %s", adv.CapsidRole)
	}

	high, err := table.ReadRecords(filepath.Join(p.Cfg.CleanDir(), "high_confidence.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range high {
		if r.Confidence != model.ConfidenceHigh {
			t.Errorf("%s leaked into the high-confidence subset with %s", r.Accession, r.Confidence)
		}
	}
	// All demo records are known-family MCPs in the length band.
	if len(high) != len(master) {
		t.Errorf("expected all %d demo records high-confidence, got %d", len(master), len(high))
	}
}

func TestStructureStage(t *testing.T) {
	p := runThroughAnnotate(t)
	if err := p.Structure(context.Background()); err != nil {
		t.Fatalf("Structure: %v", err)
	}

	header, rows, err := table.ReadRows(filepath.Join(p.Cfg.AnalysesDir(), "similarity_matrix.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	n := len(model.Panel)
	if len(header) != n+1 || len(rows) != n {
		t.Errorf("matrix shape %dx%d, want %dx%d", len(rows), len(header)-1, n, n)
	}
	if rows[0][1] != "1.0000" {
		t.Errorf("diagonal should be 1.0000, got %q", rows[0][1])
	}

	for _, name := range []string{
		"structure_clustering.json", "pfam_cooccurrence.json", "evolutionary_transitions.json",
	} {
		if _, err := os.Stat(filepath.Join(p.Cfg.AnalysesDir(), name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
	for _, name := range []string{"similarity_heatmap.png", "structure_dendrogram.png"} {
		if _, err := os.Stat(filepath.Join(p.Cfg.FiguresDir(), name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestSynthesizeStage(t *testing.T) {
	p := runThroughAnnotate(t)
	if err := p.Synthesize(context.Background()); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	_, famRows, err := table.ReadRows(filepath.Join(p.Cfg.AnalysesDir(), "summary_family_overview.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(famRows) == 0 {
		t.Fatal("family overview is empty")
	}
	// Sorted by count descending; Parvoviridae has the most demo records.
	if famRows[0][0] != "Parvoviridae" {
		t.Errorf("top family = %q, want Parvoviridae", famRows[0][0])
	}

	header, rows, err := table.ReadRows(filepath.Join(p.Cfg.AnalysesDir(), "genome_architecture_matrix.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if header[len(header)-1] != "Total" {
		t.Errorf("matrix lacks Total column: %v", header)
	}
	last := rows[len(rows)-1]
	if last[0] != "Total" || last[len(last)-1] != "13" {
		t.Errorf("grand total row wrong: %v", last)
	}

	for _, name := range []string{
		"architecture_distribution.png", "genome_type_distribution.png",
		"t_number_distribution.png", "family_overview.png",
		"genome_architecture_heatmap.png",
	} {
		if _, err := os.Stat(filepath.Join(p.Cfg.FiguresDir(), name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestRunAllDemo(t *testing.T) {
	p := demoPipeline(t)
	if err := p.RunAll(context.Background(), RunOptions{}); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	for _, rel := range []string{
		"data_raw/seed_set.tsv",
		"data_raw/pfam_master.tsv",
		"data_raw/seed_pfam_mapping.tsv",
		"data_raw/novel_domains.tsv",
		"data_raw/all_hits_raw.tsv",
		"data_clean/all_hits_clean.tsv",
		"data_clean/capsidomics_master.tsv",
		"data_clean/high_confidence.tsv",
		"analyses/similarity_matrix.tsv",
		"analyses/structure_clustering.json",
		"analyses/pfam_cooccurrence.json",
		"analyses/evolutionary_transitions.json",
		"analyses/final_summary_statistics.json",
		"figures/structure_dendrogram.png",
		"figures/genome_architecture_heatmap.png",
	} {
		if _, err := os.Stat(filepath.Join(p.Cfg.DataRoot, rel)); err != nil {
			t.Errorf("%s missing after full run: %v", rel, err)
		}
	}
}
