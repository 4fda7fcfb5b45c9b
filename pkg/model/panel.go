package model

// Panel is the fixed representative-structure set for structural analysis,
// chosen to span architecture classes, genome types and hosts. Curated by
// hand, independent of the master table.
var Panel = []RepresentativeStructure{
	// SJR, ssDNA
	{"1LP3", "AAV2 VP3", "Parvoviridae", ArchSJR, GenomeSSDNA, "pseudo-T=3", "A"},
	{"2CAS", "CPV VP2", "Parvoviridae", ArchSJR, GenomeSSDNA, "pseudo-T=3", "A"},
	{"3R0R", "PCV2 Capsid", "Circoviridae", ArchSJR, GenomeSSDNA, "T=1", "A"},
	{"6F2S", "MSV Coat", "Geminiviridae", ArchSJR, GenomeSSDNA, "T=1", "A"},
	{"2BPA", "phiX174 F", "Microviridae", ArchSJR, GenomeSSDNA, "T=1", "A"},

	// SJR, ssRNA
	{"2PLV", "Poliovirus VP1", "Picornaviridae", ArchSJR, GenomeSSRNAPos, "pseudo-T=3", "1"},
	{"4RHV", "HRV14 VP1", "Picornaviridae", ArchSJR, GenomeSSRNAPos, "pseudo-T=3", "1"},
	{"2Z2Q", "FHV Capsid", "Nodaviridae", ArchSJR, GenomeSSRNAPos, "T=3", "A"},
	{"2TBV", "TBSV Coat", "Tombusviridae", ArchSJR, GenomeSSRNAPos, "T=3", "A"},
	{"1CWP", "CCMV Coat", "Bromoviridae", ArchSJR, GenomeSSRNAPos, "T=3", "A"},

	// SJR, dsRNA
	{"1WCE", "IBDV VP2", "Birnaviridae", ArchSJR, GenomeDSRNA, "T=13", "A"},

	// DJR, dsDNA (PRD1-adeno-NCLDV lineage)
	{"1W8X", "PRD1 P3", "Tectiviridae", ArchDJR, GenomeDSDNA, "pseudo-T=25", "A"},
	{"1P30", "HAdV-5 Hexon", "Adenoviridae", ArchDJR, GenomeDSDNA, "pseudo-T=25", "A"},
	{"1M3Y", "PBCV-1 Vp54", "Phycodnaviridae", ArchDJR, GenomeDSDNA, "T=169", "A"},
	{"2BBD", "STIV B345", "Turriviridae", ArchDJR, GenomeDSDNA, "pseudo-T=31", "A"},

	// JRF-derived non-capsid
	{"1VIM", "TMV 30K", "Virgaviridae", ArchDerived, GenomeSSRNAPos, "NA", "A"},
}
