package model

// CuratedDomains is the hand-vetted PFAM reference table for JRF-associated
// domains. Slice order is the presentation order of the reference table.
var CuratedDomains = []DomainEntry{
	// SJR capsid domains, high confidence
	{"PF00729", "Viral_coat", "Viral coat protein (VP1/VP2/VP3)", ArchSJR, RoleMCP, ConfidenceHigh,
		true, false, "Picornaviruses, Enteroviruses", "2PLV,1HXS"},
	{"PF00740", "Parvo_coat", "Parvovirus coat protein VP1/VP2", ArchSJR, RoleMCP, ConfidenceHigh,
		true, false, "AAV, CPV, B19", "1LP3,2CAS"},
	{"PF02227", "Viral_caps", "Viral capsid protein", ArchSJR, RoleMCP, ConfidenceHigh,
		true, false, "Plant ssRNA viruses", "2TBV,1CWP"},
	{"PF08398", "Circovirus_cap", "Circovirus capsid protein", ArchSJR, RoleMCP, ConfidenceHigh,
		true, false, "PCV2, BFDV", "3R0R"},
	{"PF01141", "Noda_capsid", "Nodavirus capsid protein", ArchSJR, RoleMCP, ConfidenceHigh,
		true, false, "Flock house virus, Nodamura virus", "1NOV,2Z2Q"},
	{"PF00910", "RNA_phage_coat", "RNA bacteriophage coat protein", ArchSJR, RoleMCP, ConfidenceHigh,
		true, false, "MS2, Qbeta", "2MS2"},
	{"PF08410", "Gemini_CP", "Geminivirus coat protein", ArchSJR, RoleMCP, ConfidenceHigh,
		true, false, "Maize streak virus, TYLCV", "6F2S"},
	{"PF02305", "Birna_VP", "Birnavirus VP2/VP3 capsid", ArchSJR, RoleMCP, ConfidenceHigh,
		true, false, "IBDV, IPNV", "1WCE"},
	{"PF02956", "Microvir_J", "Microviridae pilot protein", ArchSJR, RoleMinor, ConfidenceMedium,
		true, false, "phiX174", "2BPA"},

	// DJR capsid domains, high confidence
	{"PF00608", "Adeno_hexon", "Adenovirus hexon protein", ArchDJR, RoleMCP, ConfidenceHigh,
		true, false, "Human adenovirus", "1P30"},
	{"PF09018", "Adeno_hexon_N", "Adenovirus hexon N-terminal domain", ArchDJR, RoleMCP, ConfidenceHigh,
		true, false, "Human adenovirus", "1P30"},
	{"PF04451", "DUF557", "PRD1-type double jelly-roll MCP", ArchDJR, RoleMCP, ConfidenceHigh,
		true, false, "PRD1, Bam35", "1W8X"},
	{"PF04663", "Phycodnavirus_MCP", "Phycodnavirus major capsid protein", ArchDJR, RoleMCP, ConfidenceHigh,
		true, false, "PBCV-1, Chlorella viruses", "1M3Y"},
	{"PF04894", "ASFV_p72", "African swine fever virus p72 MCP", ArchDJR, RoleMCP, ConfidenceHigh,
		true, false, "ASFV", "6KU9"},
	{"PF04537", "Iridovirus_MCP", "Iridovirus major capsid protein", ArchDJR, RoleMCP, ConfidenceHigh,
		true, false, "Iridoviruses, Chloriridovirus", "4OW6"},

	// JRF-derived non-capsid domains
	{"PF01107", "30Kc", "30K cell-to-cell movement protein", ArchDerived, RoleMovement, ConfidenceHigh,
		false, true, "TMV, Tobamoviruses", "1VIM"},
	{"PF00927", "Nucleoplasmin", "Nucleoplasmin domain", ArchDerived, RoleNonCapsid, ConfidenceMedium,
		false, true, "Cellular proteins (JRF-derived fold)", "1K5J"},

	// Spike/vertex proteins
	{"PF03016", "Penton_base", "Adenovirus penton base", ArchSJR, RoleMinor, ConfidenceHigh,
		true, false, "Adenoviruses", "1X9T"},
	{"PF04547", "Adeno_fiber", "Adenovirus fiber protein", ArchOther, RoleSpike, ConfidenceMedium,
		true, false, "Adenoviruses", "1QIU"},
}

// DomainByID looks up a curated entry. Second return is false for PFAM IDs
// outside the curated set.
func DomainByID(pfamID string) (DomainEntry, bool) {
	for _, d := range CuratedDomains {
		if d.PFAMID == pfamID {
			return d, true
		}
	}
	return DomainEntry{}, false
}

// CapsidDomains returns the curated entries flagged as capsid-associated,
// in table order. These drive the expansion stage.
func CapsidDomains() []DomainEntry {
	var out []DomainEntry
	for _, d := range CuratedDomains {
		if d.IsCapsid {
			out = append(out, d)
		}
	}
	return out
}

// SeedPFAMAssociations maps seed accessions to their literature-curated
// PFAM domains. Seeds absent here (the HAdV-5 protein IX cement protein has
// no JRF PFAM model) get an empty list in the mapping table.
var SeedPFAMAssociations = map[string][]string{
	"P03135": {"PF00740"},            // AAV2 VP
	"P03132": {"PF00740"},            // CPV VP2
	"P07299": {"PF00740"},            // B19V VP2
	"P03134": {"PF00740"},            // MVM VP2
	"Q9YW43": {"PF08398"},            // PCV2 capsid
	"Q91AV4": {"PF08398"},            // BFDV capsid
	"P04332": {"PF08410"},            // MSV coat
	"Q89437": {"PF08410"},            // AYVV coat
	"P03639": {"PF02956"},            // phiX174 F protein
	"P03300": {"PF00729"},            // Poliovirus VP1
	"P04936": {"PF00729"},            // HRV14 VP1
	"P03305": {"PF00729"},            // FMDV VP1
	"P12870": {"PF01141"},            // Nodamura capsid
	"P12871": {"PF01141"},            // FHV capsid
	"P03538": {"PF02227"},            // TBSV coat
	"P11491": {"PF02227"},            // CarMV coat
	"P03600": {"PF02227"},            // CCMV coat
	"P15476": {"PF02305"},            // IBDV VP2
	"P27378": {"PF04451"},            // PRD1 P3
	"Q7Y1F5": {"PF04451"},            // Bam35 MCP
	"P04133": {"PF00608", "PF09018"}, // HAdV-5 hexon
	"D2Y2S4": {"PF00608", "PF09018"}, // HAdV-26 hexon
	"P30316": {"PF04663"},            // PBCV-1 Vp54
	"P22035": {"PF04894"},            // ASFV p72
	"P20536": {"PF04451"},            // VACV D13 (DJR scaffold)
	"Q6KEN9": {"PF04451"},            // STIV MCP
	"P03583": {"PF01107"},            // TMV 30K movement
	"P27376": {"PF03016"},            // PRD1 P5 spike
	"P03281": {"PF03016"},            // HAdV-2 penton base
}
