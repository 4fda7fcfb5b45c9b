package fetch

import (
	"context"
	"fmt"
)

// DomainHit is one PFAM annotation returned by InterPro for a protein.
type DomainHit struct {
	PFAMID string
	Name   string
	Type   string
}

type interproResponse struct {
	Results []struct {
		Metadata struct {
			Accession string `json:"accession"`
			Name      string `json:"name"`
			Type      string `json:"type"`
		} `json:"metadata"`
	} `json:"results"`
}

// PFAMsForAccession lists the PFAM domains InterPro annotates on a UniProt
// accession. Used by the domain mapper's optional refresh path.
func (c *Client) PFAMsForAccession(ctx context.Context, accession string) ([]DomainHit, error) {
	if accession == "" {
		return nil, fmt.Errorf("empty accession")
	}

	var resp interproResponse
	u := fmt.Sprintf("%s/entry/pfam/protein/uniprot/%s", c.InterProBase, accession)
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	hits := make([]DomainHit, 0, len(resp.Results))
	for _, r := range resp.Results {
		hits = append(hits, DomainHit{
			PFAMID: r.Metadata.Accession,
			Name:   r.Metadata.Name,
			Type:   r.Metadata.Type,
		})
	}
	return hits, nil
}
