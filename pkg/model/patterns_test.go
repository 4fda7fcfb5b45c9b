package model

import "testing"

func TestInferFamilyFirstMatchWins(t *testing.T) {
	// "Adeno-associated" matches Parvoviridae before the later Adenoviridae
	// pattern can see "adeno". Ordered list, not map iteration.
	if fam := InferFamily("Adeno-associated virus 5"); fam != "Parvoviridae" {
		t.Errorf("expected Parvoviridae, got %q", fam)
	}
	if fam := InferFamily("Human adenovirus 5"); fam != "Adenoviridae" {
		t.Errorf("expected Adenoviridae, got %q", fam)
	}
}

func TestInferFamilyEmbeddedTokens(t *testing.T) {
	// Abbreviations count even inside a longer token, so strain and
	// vector names like rAAV2 or PCV2b still resolve.
	cases := map[string]string{
		"rAAV2 vector":                    "Parvoviridae",
		"AAV5":                            "Parvoviridae",
		"Porcine circovirus PCV2b strain": "Circoviridae",
		"PCV2":                            "Circoviridae",
		"Bacteriophage PRD1":              "Tectiviridae",
	}
	for organism, want := range cases {
		if got := InferFamily(organism); got != want {
			t.Errorf("InferFamily(%q) = %q, want %q", organism, got, want)
		}
	}
}

func TestInferFamilyNoMatch(t *testing.T) {
	if fam := InferFamily("Escherichia coli"); fam != "" {
		t.Errorf("expected empty family, got %q", fam)
	}
	if fam := InferFamily(""); fam != "" {
		t.Errorf("empty organism should give empty family, got %q", fam)
	}
}

func TestInferRole(t *testing.T) {
	cases := []struct {
		name string
		want CapsidRole
	}{
		{"Major capsid protein Vp54", RoleMCP},
		{"Hexon protein", RoleMCP},
		{"Capsid protein VP1", RoleMCP},
		{"Penton base protein", RoleMinor},
		{"Fiber protein", RoleSpike},
		{"Turret protein A223", RoleTurret},
		{"Protein IX", RoleCement},
		{"30K movement protein", RoleMovement},
		{"Putative coat-associated factor", RoleMCP}, // generic token fallback
		{"RNA-dependent RNA polymerase", RoleUnknown},
		{"", RoleUnknown},
	}

	for _, c := range cases {
		if got := InferRole(c.name); got != c.want {
			t.Errorf("InferRole(%q) = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestCuratedTableCardinality(t *testing.T) {
	if len(SeedProteins) != 30 {
		t.Errorf("seed set must hold 30 proteins, has %d", len(SeedProteins))
	}
	if len(CuratedDomains) != 19 {
		t.Errorf("curated domain table must hold 19 entries, has %d", len(CuratedDomains))
	}
	if len(Panel) != 16 {
		t.Errorf("representative panel must hold 16 structures, has %d", len(Panel))
	}
}

func TestSeedRecordsFullySpecified(t *testing.T) {
	for _, s := range SeedProteins {
		r := s.Record()
		if r.Accession == "" {
			t.Errorf("seed %s has no accession", s.VirusName)
		}
		if !r.CapsidRole.Valid() || r.CapsidRole == RoleUnknown {
			t.Errorf("seed %s has role %q", s.VirusName, r.CapsidRole)
		}
		if r.Architecture == ArchUnset {
			t.Errorf("seed %s has no architecture", s.VirusName)
		}
		if r.GenomeType == GenomeUnsetType {
			t.Errorf("seed %s has no genome type", s.VirusName)
		}
		if r.Confidence != ConfidenceHigh {
			t.Errorf("seed %s not tagged high, got %s", s.VirusName, r.Confidence)
		}
	}
}

func TestFamilyAnnotationsCoverSeedFamilies(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range SeedProteins {
		seen[s.Family] = true
	}
	for fam := range seen {
		if _, ok := FamilyAnnotations[fam]; !ok {
			t.Errorf("seed family %s missing from the annotation table", fam)
		}
	}
}
