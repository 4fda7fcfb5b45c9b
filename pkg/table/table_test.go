package table

import (
	"path/filepath"
	"testing"

	"github.com/capsidlab/jrfatlas/pkg/model"
)

func TestRecordsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.tsv")

	in := []model.ProteinRecord{
		{
			Accession: "P03135", Organism: "Adeno-associated virus 2", TaxonomyID: 10804,
			Family: "Parvoviridae", InferredFamily: "Parvoviridae",
			ProteinName: "Capsid protein VP1", Length: 735,
			PFAMSource: "PF00740", PFAMName: "Parvo_coat",
			PFAMClass: model.ArchSJR, PFAMRole: model.RoleMCP,
			CapsidRole: model.RoleMCP, Architecture: model.ArchSJR,
			TNumber: "pseudo-T=3", Morphology: "icosahedral",
			GenomeType: model.GenomeSSDNA, Orientation: "tangential",
			Confidence: model.ConfidenceHigh, Source: "demo",
		},
		{Accession: "X1", ProteinName: "hypothetical protein", Length: 80, Confidence: model.ConfidenceLow},
	}

	if err := WriteRecords(path, in); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	out, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("round trip lost rows: %d != %d", len(out), len(in))
	}
	if out[0] != in[0] {
		t.Errorf("first record mismatch:\n got %+v\nwant %+v", out[0], in[0])
	}
	if out[1].Accession != "X1" || out[1].Length != 80 {
		t.Errorf("sparse record mismatch: %+v", out[1])
	}
}

func TestSeedsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.tsv")

	if err := WriteSeeds(path, model.SeedProteins); err != nil {
		t.Fatalf("WriteSeeds: %v", err)
	}
	out, err := ReadSeeds(path)
	if err != nil {
		t.Fatalf("ReadSeeds: %v", err)
	}
	if len(out) != len(model.SeedProteins) {
		t.Fatalf("expected %d seeds, got %d", len(model.SeedProteins), len(out))
	}
	if out[0].UniprotID != "P03135" || out[0].Family != "Parvoviridae" {
		t.Errorf("first seed mismatch: %+v", out[0])
	}
	if len(out[0].PDBIDs) != 3 {
		t.Errorf("pdb id list not preserved: %v", out[0].PDBIDs)
	}
}

func TestDomainsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pfam_master.tsv")

	if err := WriteDomains(path, model.CuratedDomains); err != nil {
		t.Fatalf("WriteDomains: %v", err)
	}
	out, err := ReadDomains(path)
	if err != nil {
		t.Fatalf("ReadDomains: %v", err)
	}
	if len(out) != 19 {
		t.Fatalf("expected 19 domains, got %d", len(out))
	}
	for i, d := range out {
		if d != model.CuratedDomains[i] {
			t.Errorf("domain %d mismatch: %+v", i, d)
		}
	}
}

func TestWriteRowsRejectsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	err := WriteRows(filepath.Join(dir, "bad.tsv"), []string{"a", "b"}, [][]string{{"1"}})
	if err == nil {
		t.Fatal("expected error for ragged row")
	}
}
