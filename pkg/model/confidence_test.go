package model

import "testing"

func TestConfidenceForHigh(t *testing.T) {
	got := ConfidenceFor(RoleMCP, ArchSJR, 500, "")
	if got != ConfidenceHigh {
		t.Errorf("expected high, got %s", got)
	}
}

func TestConfidenceForLowWinsOnOverlap(t *testing.T) {
	// Known role, known architecture, length 90: both the high predicate
	// (role+arch) and the low predicate (length<100) apply. Low wins.
	got := ConfidenceFor(RoleMCP, ArchDJR, 90, "")
	if got != ConfidenceLow {
		t.Errorf("expected low on overlap, got %s", got)
	}
}

func TestConfidenceForStructurePromotion(t *testing.T) {
	// Medium (role known, arch "other") with a structure becomes high.
	if got := ConfidenceFor(RoleMCP, ArchOther, 500, "1P30"); got != ConfidenceHigh {
		t.Errorf("expected promotion to high, got %s", got)
	}
	// Same record without a structure stays medium.
	if got := ConfidenceFor(RoleMCP, ArchOther, 500, ""); got != ConfidenceMedium {
		t.Errorf("expected medium, got %s", got)
	}
	// Low is never promoted by a structure.
	if got := ConfidenceFor(RoleUnknown, ArchSJR, 500, "1P30"); got != ConfidenceLow {
		t.Errorf("expected low despite structure, got %s", got)
	}
}

func TestConfidenceForTotalityAndDeterminism(t *testing.T) {
	roles := []CapsidRole{RoleMCP, RoleMinor, RoleSpike, RoleTurret, RoleCement, RoleMovement, RoleNonCapsid, RoleUnknown}
	archs := []Architecture{ArchSJR, ArchDJR, ArchTandemJRF, ArchDerived, ArchHybrid, ArchOther, ArchUnset}
	lengths := []int{0, 50, 99, 100, 149, 150, 500, 2000, 2001, 3000}
	structs := []string{"", "1LP3"}

	for _, role := range roles {
		for _, arch := range archs {
			for _, length := range lengths {
				for _, sid := range structs {
					a := ConfidenceFor(role, arch, length, sid)
					b := ConfidenceFor(role, arch, length, sid)
					if a != b {
						t.Fatalf("non-deterministic label for (%s,%s,%d,%q)", role, arch, length, sid)
					}
					if a != ConfidenceHigh && a != ConfidenceMedium && a != ConfidenceLow {
						t.Fatalf("label %q outside {high,medium,low}", a)
					}
				}
			}
		}
	}
}

func TestProvisionalConfidence(t *testing.T) {
	if got := ProvisionalConfidence(150); got != ConfidenceHigh {
		t.Errorf("150 residues: expected high, got %s", got)
	}
	if got := ProvisionalConfidence(149); got != ConfidenceLow {
		t.Errorf("149 residues: expected low, got %s", got)
	}
}
