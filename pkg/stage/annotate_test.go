package stage

import (
	"testing"

	"github.com/capsidlab/jrfatlas/pkg/model"
)

func TestAnnotateRecordKnownFamily(t *testing.T) {
	r := model.ProteinRecord{
		Accession:   "X1",
		Organism:    "Adeno-associated virus 2",
		ProteinName: "Capsid protein VP1",
		Length:      735,
		PFAMClass:   model.ArchDJR, // wrong hint, family table must win
	}
	annotateRecord(&r)

	if r.InferredFamily != "Parvoviridae" {
		t.Fatalf("family = %q", r.InferredFamily)
	}
	if r.Architecture != model.ArchSJR {
		t.Errorf("family annotation should override the domain hint, got %s", r.Architecture)
	}
	if r.GenomeType != model.GenomeSSDNA || r.TNumber != "pseudo-T=3" {
		t.Errorf("family block not copied: %+v", r)
	}
	if r.CapsidRole != model.RoleMCP {
		t.Errorf("role = %s", r.CapsidRole)
	}
}

func TestAnnotateRecordUnknownFamilyFallsBackToHints(t *testing.T) {
	r := model.ProteinRecord{
		Accession:   "X2",
		Organism:    "Sulfolobus turreted icosahedral virus",
		ProteinName: "B345",
		Length:      345,
		PFAMClass:   model.ArchDJR,
		PFAMRole:    model.RoleMCP,
	}
	annotateRecord(&r)

	if r.InferredFamily != "" {
		t.Errorf("no pattern should match, got family %q", r.InferredFamily)
	}
	if r.Architecture != model.ArchDJR || r.CapsidRole != model.RoleMCP {
		t.Errorf("domain hints not applied: %+v", r)
	}
	if r.GenomeType != model.GenomeUnknown {
		t.Errorf("genome should default to unknown, got %q", r.GenomeType)
	}
}

func TestAnnotateRecordNoSignals(t *testing.T) {
	r := model.ProteinRecord{Accession: "X3", Organism: "Unclassified virus", ProteinName: "ORF7"}
	annotateRecord(&r)
	if r.CapsidRole != model.RoleUnknown {
		t.Errorf("role = %s, want unknown", r.CapsidRole)
	}
	r.Relabel()
	if r.Confidence != model.ConfidenceLow {
		t.Errorf("signal-free record should be low confidence, got %s", r.Confidence)
	}
}
