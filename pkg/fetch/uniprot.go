package fetch

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/capsidlab/jrfatlas/pkg/model"
)

// Virus superkingdom taxonomy ID in NCBI.
const virusTaxonomyID = 10239

type uniprotEntry struct {
	PrimaryAccession   string `json:"primaryAccession"`
	UniProtkbID        string `json:"uniProtkbId"`
	EntryType          string `json:"entryType"`
	ProteinDescription struct {
		RecommendedName struct {
			FullName struct {
				Value string `json:"value"`
			} `json:"fullName"`
		} `json:"recommendedName"`
	} `json:"proteinDescription"`
	Organism struct {
		ScientificName string   `json:"scientificName"`
		TaxonID        int      `json:"taxonId"`
		Lineage        []string `json:"lineage"`
	} `json:"organism"`
	Sequence struct {
		Length int `json:"length"`
	} `json:"sequence"`
}

type uniprotSearchPage struct {
	Results []uniprotEntry `json:"results"`
}

// UniProtEnrichment is the subset of a UniProt entry the seed builder folds
// back into its table.
type UniProtEnrichment struct {
	UniprotName string
	Organism    string
	TaxonomyID  int
	Length      int
	Description string
	Reviewed    bool
}

// UniProtEntry fetches one entry by accession.
func (c *Client) UniProtEntry(ctx context.Context, accession string) (*UniProtEnrichment, error) {
	if accession == "" {
		return nil, fmt.Errorf("empty accession")
	}
	var entry uniprotEntry
	u := fmt.Sprintf("%s/uniprotkb/%s?format=json", c.UniProtBase, accession)
	if err := c.getJSON(ctx, u, &entry); err != nil {
		return nil, err
	}
	return &UniProtEnrichment{
		UniprotName: entry.UniProtkbID,
		Organism:    entry.Organism.ScientificName,
		TaxonomyID:  entry.Organism.TaxonID,
		Length:      entry.Sequence.Length,
		Description: entry.ProteinDescription.RecommendedName.FullName.Value,
		Reviewed:    entry.EntryType == "UniProtKB reviewed (Swiss-Prot)",
	}, nil
}

var nextLinkRe = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// SearchByDomain pages through the UniProt search API for viral proteins
// carrying the given PFAM domain. Pagination follows the cursor link the
// service returns in the Link header; a failed page ends pagination for
// this domain and the hits already collected are returned.
func (c *Client) SearchByDomain(ctx context.Context, domain model.DomainEntry) ([]model.ProteinRecord, error) {
	query := fmt.Sprintf("(xref:pfam-%s) AND (taxonomy_id:%d)", domain.PFAMID, virusTaxonomyID)
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")
	params.Set("size", "500")
	params.Set("fields", "accession,id,protein_name,organism_name,organism_id,length")

	next := fmt.Sprintf("%s/uniprotkb/search?%s", c.UniProtBase, params.Encode())

	var hits []model.ProteinRecord
	for next != "" {
		resp, err := c.get(ctx, next)
		if err != nil {
			// Partial results are kept; the caller logs and moves on.
			return hits, err
		}

		var page uniprotSearchPage
		decodeErr := decodeBody(resp.Body, &page)
		link := resp.Header.Get("Link")
		resp.Body.Close()
		if decodeErr != nil {
			return hits, fmt.Errorf("decode search page for %s: %w", domain.PFAMID, decodeErr)
		}

		for _, e := range page.Results {
			hits = append(hits, model.ProteinRecord{
				Accession:   e.PrimaryAccession,
				UniprotName: e.UniProtkbID,
				ProteinName: e.ProteinDescription.RecommendedName.FullName.Value,
				Organism:    e.Organism.ScientificName,
				TaxonomyID:  e.Organism.TaxonID,
				Length:      e.Sequence.Length,
				PFAMSource:  domain.PFAMID,
				PFAMName:    domain.Name,
				PFAMClass:   domain.Class,
				PFAMRole:    domain.Role,
				Source:      "uniprot_live",
			})
		}

		next = ""
		if m := nextLinkRe.FindStringSubmatch(link); m != nil {
			next = m[1]
		}
		if next != "" {
			c.Pause()
		}
	}
	return hits, nil
}
