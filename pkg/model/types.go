// Package model holds the record types and curated reference tables of the
// jelly-roll fold (JRF) capsid atlas. The curated tables are constant data:
// loaded once, never mutated at runtime.
package model

type CapsidRole string

const (
	RoleMCP       CapsidRole = "MCP"
	RoleMinor     CapsidRole = "minor"
	RoleSpike     CapsidRole = "spike"
	RoleTurret    CapsidRole = "turret"
	RoleCement    CapsidRole = "cement"
	RoleMovement  CapsidRole = "movement"
	RoleNonCapsid CapsidRole = "non-capsid"
	RoleUnknown   CapsidRole = "unknown"
)

func (r CapsidRole) Valid() bool {
	switch r {
	case RoleMCP, RoleMinor, RoleSpike, RoleTurret, RoleCement, RoleMovement, RoleNonCapsid, RoleUnknown:
		return true
	}
	return false
}

// IsCapsid reports whether the role is a structural capsid role (as opposed
// to movement proteins and other fold-derived repurposings).
func (r CapsidRole) IsCapsid() bool {
	switch r {
	case RoleMCP, RoleMinor, RoleSpike, RoleTurret, RoleCement:
		return true
	}
	return false
}

type Architecture string

const (
	ArchSJR       Architecture = "SJR"
	ArchDJR       Architecture = "DJR"
	ArchTandemJRF Architecture = "tandem_JRF"
	ArchDerived   Architecture = "JRF_derived"
	ArchHybrid    Architecture = "JRF_hybrid"
	ArchOther     Architecture = "other"
	ArchUnset     Architecture = ""
)

func (a Architecture) Valid() bool {
	switch a {
	case ArchSJR, ArchDJR, ArchTandemJRF, ArchDerived, ArchHybrid, ArchOther, ArchUnset:
		return true
	}
	return false
}

type GenomeType string

const (
	GenomeSSDNA     GenomeType = "ssDNA"
	GenomeDSDNA     GenomeType = "dsDNA"
	GenomeSSRNAPos  GenomeType = "ssRNA+"
	GenomeSSRNANeg  GenomeType = "ssRNA-"
	GenomeDSRNA     GenomeType = "dsRNA"
	GenomeUnknown   GenomeType = "unknown"
	GenomeUnsetType GenomeType = ""
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ProteinRecord is one row of the atlas: a candidate JRF protein with its
// taxonomic, domain and structural annotations.
type ProteinRecord struct {
	Accession       string
	UniprotName     string
	StructureID     string
	StructureSource string

	Organism       string
	TaxonomyID     int
	Family         string // family as given by the source, may be empty
	InferredFamily string // family after annotation (given or pattern-matched)
	Realm          string
	HostCategory   string

	ProteinName string
	Length      int

	PFAMSource string // PFAM accession the record was expanded from
	PFAMName   string
	PFAMClass  Architecture // architecture hint carried from the domain table
	PFAMRole   CapsidRole   // role hint carried from the domain table

	CapsidRole   CapsidRole
	Architecture Architecture
	TNumber      string
	Morphology   string
	GenomeType   GenomeType
	Orientation  string

	Confidence Confidence
	Source     string
}

// DomainEntry is one curated PFAM reference row. Entries come from the
// curated table only; identifiers discovered during expansion are reported
// for manual curation, never inserted here.
type DomainEntry struct {
	PFAMID       string
	Name         string
	Description  string
	Class        Architecture
	Role         CapsidRole
	Confidence   Confidence
	IsCapsid     bool
	IsDerived    bool
	ExampleVirus string
	ExamplePDBs  string
}

// RepresentativeStructure is one member of the fixed structural-analysis
// panel. Curated by hand, not derived from the master table.
type RepresentativeStructure struct {
	PDBID   string
	Name    string
	Family  string
	Arch    Architecture
	Genome  GenomeType
	TNumber string
	Chain   string
}

// MasterColumns is the canonical column order of the annotated master table.
var MasterColumns = []string{
	"accession",
	"uniprot_name",
	"structure_id",
	"structure_source",
	"organism",
	"taxonomy_id",
	"family",
	"inferred_family",
	"realm",
	"host_category",
	"protein_name",
	"protein_length",
	"pfam_source",
	"pfam_name",
	"pfam_class",
	"pfam_role",
	"capsid_role",
	"architecture_class",
	"t_number",
	"virion_morphology",
	"genome_type",
	"jrf_orientation",
	"evidence_level",
	"source",
}
