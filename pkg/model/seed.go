package model

// SeedProtein is one literature-confirmed JRF protein. The seed table is
// fixed: every field is populated by hand from the primary structural
// literature and tagged evidence_level=high unconditionally.
type SeedProtein struct {
	VirusName     string
	VirusAbbrev   string
	ProteinName   string
	Role          CapsidRole
	Genome        GenomeType
	HostCategory  string
	Family        string
	Arch          Architecture
	TNumber       string
	Morphology    string
	PDBIDs        []string
	UniprotID     string
	ReferencePMID string
	Notes         string
}

// SeedSource tags rows originating from the curated seed list.
const SeedSource = "seed_set_v1"

var SeedProteins = []SeedProtein{
	// ssDNA capsids, single jelly-roll

	// Parvoviridae
	{"Adeno-associated virus 2", "AAV2", "VP1/VP2/VP3", RoleMCP, GenomeSSDNA, "Eukaryota_Animal",
		"Parvoviridae", ArchSJR, "pseudo-T=3", "icosahedral",
		[]string{"1LP3", "6IH9", "3J1Q"}, "P03135", "12644448", "Well-characterized gene therapy vector capsid"},
	{"Canine parvovirus", "CPV", "VP2", RoleMCP, GenomeSSDNA, "Eukaryota_Animal",
		"Parvoviridae", ArchSJR, "pseudo-T=3", "icosahedral",
		[]string{"2CAS", "4DPV"}, "P03132", "8709232", "Prototype parvovirus structure"},
	{"B19 virus", "B19V", "VP2", RoleMCP, GenomeSSDNA, "Eukaryota_Animal",
		"Parvoviridae", ArchSJR, "pseudo-T=3", "icosahedral",
		[]string{"1S58"}, "P07299", "15163499", "Human parvovirus"},
	{"Minute virus of mice", "MVM", "VP2", RoleMCP, GenomeSSDNA, "Eukaryota_Animal",
		"Parvoviridae", ArchSJR, "pseudo-T=3", "icosahedral",
		[]string{"1MVM"}, "P03134", "8709232", "Protoparvovirus model"},

	// Circoviridae
	{"Porcine circovirus 2", "PCV2", "Capsid protein", RoleMCP, GenomeSSDNA, "Eukaryota_Animal",
		"Circoviridae", ArchSJR, "T=1", "icosahedral",
		[]string{"3R0R"}, "Q9YW43", "21832183", "Small circular DNA virus"},
	{"Beak and feather disease virus", "BFDV", "Capsid protein", RoleMCP, GenomeSSDNA, "Eukaryota_Animal",
		"Circoviridae", ArchSJR, "T=1", "icosahedral",
		[]string{"5ZHG"}, "Q91AV4", "30111497", "Avian circovirus"},

	// Geminiviridae
	{"Maize streak virus", "MSV", "Coat protein", RoleMCP, GenomeSSDNA, "Eukaryota_Plant",
		"Geminiviridae", ArchSJR, "T=1", "geminate",
		[]string{"6F2S"}, "P04332", "29695621", "Geminate (twinned) capsid structure"},
	{"Ageratum yellow vein virus", "AYVV", "Coat protein", RoleMCP, GenomeSSDNA, "Eukaryota_Plant",
		"Geminiviridae", ArchSJR, "T=1", "geminate",
		[]string{"6F2T"}, "Q89437", "29695621", "Begomovirus"},

	// Microviridae
	{"Bacteriophage phiX174", "phiX174", "F protein (coat)", RoleMCP, GenomeSSDNA, "Bacteria",
		"Microviridae", ArchSJR, "T=1", "icosahedral",
		[]string{"2BPA", "1CD3"}, "P03639", "8602507", "Classic ssDNA phage"},

	// ssRNA capsids, single jelly-roll

	// Picornaviridae
	{"Poliovirus 1", "PV1", "VP1", RoleMCP, GenomeSSRNAPos, "Eukaryota_Animal",
		"Picornaviridae", ArchSJR, "pseudo-T=3", "icosahedral",
		[]string{"1HXS", "2PLV"}, "P03300", "2538243", "Prototype picornavirus, 3 SJR proteins per protomer"},
	{"Human rhinovirus 14", "HRV14", "VP1", RoleMCP, GenomeSSRNAPos, "Eukaryota_Animal",
		"Picornaviridae", ArchSJR, "pseudo-T=3", "icosahedral",
		[]string{"4RHV"}, "P04936", "3856866", "Common cold virus"},
	{"Foot-and-mouth disease virus", "FMDV", "VP1", RoleMCP, GenomeSSRNAPos, "Eukaryota_Animal",
		"Picornaviridae", ArchSJR, "pseudo-T=3", "icosahedral",
		[]string{"1BBT"}, "P03305", "2997611", "Agriculturally important"},

	// Nodaviridae
	{"Nodamura virus", "NoV", "Capsid protein alpha", RoleMCP, GenomeSSRNAPos, "Eukaryota_Animal",
		"Nodaviridae", ArchSJR, "T=3", "icosahedral",
		[]string{"1NOV"}, "P12870", "8009220", "T=3 insect virus"},
	{"Flock house virus", "FHV", "Capsid protein alpha", RoleMCP, GenomeSSRNAPos, "Eukaryota_Animal",
		"Nodaviridae", ArchSJR, "T=3", "icosahedral",
		[]string{"2Z2Q"}, "P12871", "17981124", "Model for capsid assembly"},

	// Tombusviridae
	{"Tomato bushy stunt virus", "TBSV", "Coat protein", RoleMCP, GenomeSSRNAPos, "Eukaryota_Plant",
		"Tombusviridae", ArchSJR, "T=3", "icosahedral",
		[]string{"2TBV"}, "P03538", "17981127", "First T=3 virus structure"},
	{"Carnation mottle virus", "CarMV", "Coat protein", RoleMCP, GenomeSSRNAPos, "Eukaryota_Plant",
		"Tombusviridae", ArchSJR, "T=3", "icosahedral",
		[]string{"1OPO"}, "P11491", "14691228", "Plant carmovirus"},

	// Bromoviridae
	{"Cowpea chlorotic mottle virus", "CCMV", "Coat protein", RoleMCP, GenomeSSRNAPos, "Eukaryota_Plant",
		"Bromoviridae", ArchSJR, "T=3", "icosahedral",
		[]string{"1CWP"}, "P03600", "7541247", "pH-dependent swelling"},

	// dsRNA capsids, single jelly-roll
	{"Infectious bursal disease virus", "IBDV", "VP2", RoleMCP, GenomeDSRNA, "Eukaryota_Animal",
		"Birnaviridae", ArchSJR, "T=13", "icosahedral",
		[]string{"1WCE", "2GSY"}, "P15476", "15299144", "dsRNA virus with T=13 SJR capsid"},

	// dsDNA capsids, double jelly-roll

	// PRD1-like phages
	{"Bacteriophage PRD1", "PRD1", "P3 (MCP)", RoleMCP, GenomeDSDNA, "Bacteria",
		"Tectiviridae", ArchDJR, "pseudo-T=25", "icosahedral",
		[]string{"1W8X", "1CJD"}, "P27378", "15226433", "Prototype DJR MCP"},
	{"Bacteriophage Bam35", "Bam35", "MCP", RoleMCP, GenomeDSDNA, "Bacteria",
		"Tectiviridae", ArchDJR, "pseudo-T=25", "icosahedral",
		[]string{"6QVV"}, "Q7Y1F5", "32265281", "PRD1-like Gram+ phage"},

	// Adenoviridae
	{"Human adenovirus 5", "HAdV-5", "Hexon", RoleMCP, GenomeDSDNA, "Eukaryota_Animal",
		"Adenoviridae", ArchDJR, "pseudo-T=25", "icosahedral",
		[]string{"1P30", "6CGV"}, "P04133", "12552133", "Classic DJR MCP, gene therapy vector"},
	{"Human adenovirus 26", "HAdV-26", "Hexon", RoleMCP, GenomeDSDNA, "Eukaryota_Animal",
		"Adenoviridae", ArchDJR, "pseudo-T=25", "icosahedral",
		[]string{"6B1T"}, "D2Y2S4", "28855253", "Vaccine vector"},

	// Nucleocytoviricota
	{"Paramecium bursaria chlorella virus 1", "PBCV-1", "Vp54 (MCP)", RoleMCP, GenomeDSDNA, "Eukaryota_Protist",
		"Phycodnaviridae", ArchDJR, "T=169", "icosahedral",
		[]string{"1M3Y"}, "P30316", "12438624", "Giant virus with DJR MCP"},
	{"African swine fever virus", "ASFV", "p72 (MCP)", RoleMCP, GenomeDSDNA, "Eukaryota_Animal",
		"Asfarviridae", ArchDJR, "T=214", "icosahedral",
		[]string{"6KU9"}, "P22035", "31554923", "Large NCLDV with DJR capsid"},
	{"Vaccinia virus", "VACV", "D13 (scaffold)", RoleMinor, GenomeDSDNA, "Eukaryota_Animal",
		"Poxviridae", ArchDJR, "NA", "complex",
		[]string{"2YGC"}, "P20536", "20844023", "DJR scaffold in non-icosahedral virus"},

	// Archaeal DJR
	{"Sulfolobus turreted icosahedral virus", "STIV", "B345 (MCP)", RoleMCP, GenomeDSDNA, "Archaea",
		"Turriviridae", ArchDJR, "pseudo-T=31", "icosahedral",
		[]string{"2BBD"}, "Q6KEN9", "15886398", "Archaeal virus with turrets"},

	// JRF-derived non-capsid proteins
	{"Tobacco mosaic virus", "TMV", "30K movement protein", RoleMovement, GenomeSSRNAPos, "Eukaryota_Plant",
		"Virgaviridae", ArchHybrid, "NA", "filamentous",
		[]string{"1VIM"}, "P03583", "15016364", "Non-capsid JRF protein, cell-to-cell movement"},
	{"Bacteriophage PRD1", "PRD1", "P5 (spike)", RoleSpike, GenomeDSDNA, "Bacteria",
		"Tectiviridae", ArchSJR, "NA", "icosahedral",
		[]string{"1YQ8"}, "P27376", "15919196", "Vertex spike protein, SJR fold"},
	{"Human adenovirus 2", "HAdV-2", "Penton base", RoleMinor, GenomeDSDNA, "Eukaryota_Animal",
		"Adenoviridae", ArchSJR, "NA", "icosahedral",
		[]string{"1X9T"}, "P03281", "16321979", "SJR penton base at vertices"},
	{"Human adenovirus 5", "HAdV-5", "Protein IX", RoleCement, GenomeDSDNA, "Eukaryota_Animal",
		"Adenoviridae", ArchOther, "NA", "icosahedral",
		[]string{"6CGV"}, "P03283", "29898905", "Cement protein stabilizing capsid"},
}

// PrimaryPDB returns the first curated structure for the seed, or "".
func (s SeedProtein) PrimaryPDB() string {
	if len(s.PDBIDs) == 0 {
		return ""
	}
	return s.PDBIDs[0]
}

// Record converts the seed entry to a fully populated ProteinRecord.
func (s SeedProtein) Record() ProteinRecord {
	return ProteinRecord{
		Accession:       s.UniprotID,
		StructureID:     s.PrimaryPDB(),
		StructureSource: "experimental",
		Organism:        s.VirusName,
		Family:          s.Family,
		InferredFamily:  s.Family,
		HostCategory:    s.HostCategory,
		ProteinName:     s.ProteinName,
		CapsidRole:      s.Role,
		Architecture:    s.Arch,
		TNumber:         s.TNumber,
		Morphology:      s.Morphology,
		GenomeType:      s.Genome,
		Confidence:      ConfidenceHigh,
		Source:          SeedSource,
	}
}
