package model

import (
	"regexp"
	"strings"
)

// Ordered (label, patterns) pairs. First match wins, so these are slices,
// not maps: iteration order is part of the contract.

type familyPattern struct {
	Family   string
	Patterns []*regexp.Regexp
}

type rolePattern struct {
	Role     CapsidRole
	Patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile("(?i)"+e))
	}
	return out
}

var FamilyPatterns = []familyPattern{
	{"Parvoviridae", compileAll(`parvovirus`, `aav`, `adeno-associated`, `bocavirus`, `dependovirus`)},
	{"Picornaviridae", compileAll(`picornavirus`, `poliovirus`, `rhinovirus`, `enterovirus`, `coxsackie`, `hepatitis a`)},
	{"Adenoviridae", compileAll(`adenovirus`)},
	{"Circoviridae", compileAll(`circovirus`, `pcv2?`, `bfdv`)},
	{"Geminiviridae", compileAll(`geminivirus`, `begomovirus`, `mastrevirus`)},
	{"Nodaviridae", compileAll(`nodavirus`, `flock house`, `nodamura`)},
	{"Tombusviridae", compileAll(`tombusvirus`, `carmovirus`, `necrovirus`)},
	{"Bromoviridae", compileAll(`bromovirus`, `ccmv`, `alfamovirus`)},
	{"Phycodnaviridae", compileAll(`chlorella virus`, `phycodnavirus`, `pbcv`)},
	{"Asfarviridae", compileAll(`african swine fever`, `asfv`)},
	{"Tectiviridae", compileAll(`prd1`, `tectivirus`)},
	{"Iridoviridae", compileAll(`iridovirus`, `ranavirus`)},
	{"Mimiviridae", compileAll(`mimivirus`, `megavirus`)},
	{"Birnaviridae", compileAll(`birnavirus`, `ibdv`, `ipnv`)},
}

var RolePatterns = []rolePattern{
	{RoleMCP, compileAll(`major capsid`, `capsid protein`, `coat protein`, `\bvp[123]\b`, `\bmcp\b`, `\bvp54\b`, `\bp72\b`, `hexon`)},
	{RoleMinor, compileAll(`minor capsid`, `penton`, `vertex`)},
	{RoleSpike, compileAll(`spike`, `fiber`, `receptor binding`)},
	{RoleTurret, compileAll(`turret`)},
	{RoleCement, compileAll(`cement`, `glue`, `protein ix`, `protein iiia`)},
	{RoleMovement, compileAll(`movement protein`, `\b30k\b`, `cell-to-cell`)},
}

// InferFamily matches the organism name against the ordered family pattern
// list. Returns "" when nothing matches.
func InferFamily(organism string) string {
	if organism == "" {
		return ""
	}
	for _, fp := range FamilyPatterns {
		for _, re := range fp.Patterns {
			if re.MatchString(organism) {
				return fp.Family
			}
		}
	}
	return ""
}

// InferRole classifies a protein display name. A name carrying a generic
// capsid/coat/shell token with no specific role pattern defaults to MCP.
func InferRole(proteinName string) CapsidRole {
	if proteinName == "" {
		return RoleUnknown
	}
	for _, rp := range RolePatterns {
		for _, re := range rp.Patterns {
			if re.MatchString(proteinName) {
				return rp.Role
			}
		}
	}

	lower := strings.ToLower(proteinName)
	for _, token := range []string{"capsid", "coat", "shell"} {
		if strings.Contains(lower, token) {
			return RoleMCP
		}
	}
	return RoleUnknown
}

// FamilyAnnotation carries the family-level structural annotation copied
// wholesale onto a record when its family is known.
type FamilyAnnotation struct {
	Arch        Architecture
	Morphology  string
	TNumber     string
	Genome      GenomeType
	Orientation string
}

var FamilyAnnotations = map[string]FamilyAnnotation{
	// ssDNA, single jelly-roll
	"Parvoviridae":  {ArchSJR, "icosahedral", "pseudo-T=3", GenomeSSDNA, "tangential"},
	"Circoviridae":  {ArchSJR, "icosahedral", "T=1", GenomeSSDNA, "tangential"},
	"Geminiviridae": {ArchSJR, "geminate", "T=1", GenomeSSDNA, "tangential"},
	"Microviridae":  {ArchSJR, "icosahedral", "T=1", GenomeSSDNA, "tangential"},
	"Nanoviridae":   {ArchSJR, "icosahedral", "T=1", GenomeSSDNA, "tangential"},

	// ssRNA+, single jelly-roll
	"Picornaviridae": {ArchSJR, "icosahedral", "pseudo-T=3", GenomeSSRNAPos, "tangential"},
	"Nodaviridae":    {ArchSJR, "icosahedral", "T=3", GenomeSSRNAPos, "tangential"},
	"Tombusviridae":  {ArchSJR, "icosahedral", "T=3", GenomeSSRNAPos, "tangential"},
	"Bromoviridae":   {ArchSJR, "icosahedral", "T=3", GenomeSSRNAPos, "tangential"},
	"Caliciviridae":  {ArchSJR, "icosahedral", "T=3", GenomeSSRNAPos, "tangential"},
	"Tymoviridae":    {ArchSJR, "icosahedral", "T=3", GenomeSSRNAPos, "tangential"},
	"Leviviridae":    {ArchSJR, "icosahedral", "T=3", GenomeSSRNAPos, "tangential"},

	// dsRNA, single jelly-roll
	"Birnaviridae":     {ArchSJR, "icosahedral", "T=13", GenomeDSRNA, "tangential"},
	"Picobirnaviridae": {ArchSJR, "icosahedral", "T=3", GenomeDSRNA, "tangential"},

	// dsDNA, double jelly-roll
	"Adenoviridae":    {ArchDJR, "icosahedral", "pseudo-T=25", GenomeDSDNA, "perpendicular"},
	"Tectiviridae":    {ArchDJR, "icosahedral", "pseudo-T=25", GenomeDSDNA, "perpendicular"},
	"Corticoviridae":  {ArchDJR, "icosahedral", "pseudo-T=21", GenomeDSDNA, "perpendicular"},
	"Phycodnaviridae": {ArchDJR, "icosahedral", "T=169", GenomeDSDNA, "perpendicular"},
	"Mimiviridae":     {ArchDJR, "icosahedral", "higher", GenomeDSDNA, "perpendicular"},
	"Asfarviridae":    {ArchDJR, "icosahedral", "T=214", GenomeDSDNA, "perpendicular"},
	"Iridoviridae":    {ArchDJR, "icosahedral", "T=147", GenomeDSDNA, "perpendicular"},
	"Poxviridae":      {ArchDJR, "complex", "NA", GenomeDSDNA, "NA"},
	"Turriviridae":    {ArchDJR, "icosahedral", "pseudo-T=31", GenomeDSDNA, "perpendicular"},

	// Non-capsid JRF in filamentous viruses
	"Virgaviridae": {ArchOther, "filamentous", "NA", GenomeSSRNAPos, "NA"},
}
