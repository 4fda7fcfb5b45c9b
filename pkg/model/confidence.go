package model

// ConfidenceFor derives the evidence tier from the four fields it may ever
// depend on. The label is recomputable at any time from the record alone.
//
// The high and low predicates can both hold (known role + known architecture
// + length under 100); low is evaluated last and wins on that overlap. That
// ordering reproduces the reference rule set and is locked in by tests.
func ConfidenceFor(role CapsidRole, arch Architecture, length int, structureID string) Confidence {
	label := ConfidenceMedium

	if role.IsCapsid() &&
		(arch == ArchSJR || arch == ArchDJR || arch == ArchTandemJRF) &&
		length >= 150 && length <= 2000 {
		label = ConfidenceHigh
	}

	if role == RoleUnknown || arch == ArchUnset || length < 100 {
		label = ConfidenceLow
	}

	// Structure evidence promotes medium only; low stays low.
	if label == ConfidenceMedium && structureID != "" {
		label = ConfidenceHigh
	}

	return label
}

// ProvisionalConfidence is the expander's coarse length-only placeholder,
// refined later by the annotator. Records at or above 150 residues start
// high, everything shorter starts low.
func ProvisionalConfidence(length int) Confidence {
	if length >= 150 {
		return ConfidenceHigh
	}
	return ConfidenceLow
}

// Relabel recomputes the confidence of a record in place.
func (p *ProteinRecord) Relabel() {
	p.Confidence = ConfidenceFor(p.CapsidRole, p.Architecture, p.Length, p.StructureID)
}
