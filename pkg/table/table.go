// Package table persists the stage-boundary files of the pipeline:
// tab-delimited record tables and JSON summaries. Writes go through a
// temp-file rename so a downstream stage never reads a truncated table.
package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/capsidlab/jrfatlas/internal/util"
	"github.com/capsidlab/jrfatlas/pkg/model"
)

// WriteRows writes a generic delimited table.
func WriteRows(path string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(header))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return util.AtomicWriteFile(path, buf.Bytes())
}

// ReadRows reads a delimited table back as header + rows.
func ReadRows(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s: empty table", path)
	}
	return all[0], all[1:], nil
}

// WriteJSON marshals v with indentation and writes it atomically.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return util.AtomicWriteFile(path, append(data, '\n'))
}

func recordRow(p model.ProteinRecord) []string {
	return []string{
		p.Accession,
		p.UniprotName,
		p.StructureID,
		p.StructureSource,
		p.Organism,
		strconv.Itoa(p.TaxonomyID),
		p.Family,
		p.InferredFamily,
		p.Realm,
		p.HostCategory,
		p.ProteinName,
		strconv.Itoa(p.Length),
		p.PFAMSource,
		p.PFAMName,
		string(p.PFAMClass),
		string(p.PFAMRole),
		string(p.CapsidRole),
		string(p.Architecture),
		p.TNumber,
		p.Morphology,
		string(p.GenomeType),
		p.Orientation,
		string(p.Confidence),
		p.Source,
	}
}

// WriteRecords persists protein records in the canonical master column order.
func WriteRecords(path string, records []model.ProteinRecord) error {
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, recordRow(p))
	}
	return WriteRows(path, model.MasterColumns, rows)
}

// ReadRecords loads a record table written by WriteRecords. Columns are
// matched by header name so tables from older runs with extra columns still
// load.
func ReadRecords(path string) ([]model.ProteinRecord, error) {
	header, rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	getInt := func(row []string, col string) int {
		n, _ := strconv.Atoi(get(row, col))
		return n
	}

	records := make([]model.ProteinRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.ProteinRecord{
			Accession:       get(row, "accession"),
			UniprotName:     get(row, "uniprot_name"),
			StructureID:     get(row, "structure_id"),
			StructureSource: get(row, "structure_source"),
			Organism:        get(row, "organism"),
			TaxonomyID:      getInt(row, "taxonomy_id"),
			Family:          get(row, "family"),
			InferredFamily:  get(row, "inferred_family"),
			Realm:           get(row, "realm"),
			HostCategory:    get(row, "host_category"),
			ProteinName:     get(row, "protein_name"),
			Length:          getInt(row, "protein_length"),
			PFAMSource:      get(row, "pfam_source"),
			PFAMName:        get(row, "pfam_name"),
			PFAMClass:       model.Architecture(get(row, "pfam_class")),
			PFAMRole:        model.CapsidRole(get(row, "pfam_role")),
			CapsidRole:      model.CapsidRole(get(row, "capsid_role")),
			Architecture:    model.Architecture(get(row, "architecture_class")),
			TNumber:         get(row, "t_number"),
			Morphology:      get(row, "virion_morphology"),
			GenomeType:      model.GenomeType(get(row, "genome_type")),
			Orientation:     get(row, "jrf_orientation"),
			Confidence:      model.Confidence(get(row, "evidence_level")),
			Source:          get(row, "source"),
		})
	}
	return records, nil
}

// SeedColumns is the schema of the seed-set table.
var SeedColumns = []string{
	"accession", "virus_name", "virus_abbrev", "protein_name", "capsid_role",
	"genome_type", "host_category", "family", "architecture_class", "t_number",
	"virion_morphology", "pdb_ids", "primary_pdb", "reference_pmid", "notes",
	"evidence_level", "source",
}

// WriteSeeds persists the curated seed list.
func WriteSeeds(path string, seeds []model.SeedProtein) error {
	rows := make([][]string, 0, len(seeds))
	for _, s := range seeds {
		rows = append(rows, []string{
			s.UniprotID, s.VirusName, s.VirusAbbrev, s.ProteinName, string(s.Role),
			string(s.Genome), s.HostCategory, s.Family, string(s.Arch), s.TNumber,
			s.Morphology, strings.Join(s.PDBIDs, ";"), s.PrimaryPDB(), s.ReferencePMID, s.Notes,
			string(model.ConfidenceHigh), model.SeedSource,
		})
	}
	return WriteRows(path, SeedColumns, rows)
}

// ReadSeeds loads a seed table written by WriteSeeds.
func ReadSeeds(path string) ([]model.SeedProtein, error) {
	header, rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	seeds := make([]model.SeedProtein, 0, len(rows))
	for _, row := range rows {
		var pdbs []string
		if raw := get(row, "pdb_ids"); raw != "" {
			pdbs = strings.Split(raw, ";")
		}
		seeds = append(seeds, model.SeedProtein{
			UniprotID:     get(row, "accession"),
			VirusName:     get(row, "virus_name"),
			VirusAbbrev:   get(row, "virus_abbrev"),
			ProteinName:   get(row, "protein_name"),
			Role:          model.CapsidRole(get(row, "capsid_role")),
			Genome:        model.GenomeType(get(row, "genome_type")),
			HostCategory:  get(row, "host_category"),
			Family:        get(row, "family"),
			Arch:          model.Architecture(get(row, "architecture_class")),
			TNumber:       get(row, "t_number"),
			Morphology:    get(row, "virion_morphology"),
			PDBIDs:        pdbs,
			ReferencePMID: get(row, "reference_pmid"),
			Notes:         get(row, "notes"),
		})
	}
	return seeds, nil
}

// DomainColumns is the schema of the PFAM reference table.
var DomainColumns = []string{
	"pfam_id", "pfam_name", "description", "jrf_class", "capsid_role",
	"confidence", "is_capsid_pfam", "is_jrf_derived", "example_viruses", "example_pdbs",
}

// WriteDomains persists the curated domain reference table.
func WriteDomains(path string, domains []model.DomainEntry) error {
	rows := make([][]string, 0, len(domains))
	for _, d := range domains {
		rows = append(rows, []string{
			d.PFAMID, d.Name, d.Description, string(d.Class), string(d.Role),
			string(d.Confidence), strconv.FormatBool(d.IsCapsid), strconv.FormatBool(d.IsDerived),
			d.ExampleVirus, d.ExamplePDBs,
		})
	}
	return WriteRows(path, DomainColumns, rows)
}

// ReadDomains loads a domain table written by WriteDomains.
func ReadDomains(path string) ([]model.DomainEntry, error) {
	header, rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	domains := make([]model.DomainEntry, 0, len(rows))
	for _, row := range rows {
		isCapsid, _ := strconv.ParseBool(get(row, "is_capsid_pfam"))
		isDerived, _ := strconv.ParseBool(get(row, "is_jrf_derived"))
		domains = append(domains, model.DomainEntry{
			PFAMID:       get(row, "pfam_id"),
			Name:         get(row, "pfam_name"),
			Description:  get(row, "description"),
			Class:        model.Architecture(get(row, "jrf_class")),
			Role:         model.CapsidRole(get(row, "capsid_role")),
			Confidence:   model.Confidence(get(row, "confidence")),
			IsCapsid:     isCapsid,
			IsDerived:    isDerived,
			ExampleVirus: get(row, "example_viruses"),
			ExamplePDBs:  get(row, "example_pdbs"),
		})
	}
	return domains, nil
}
