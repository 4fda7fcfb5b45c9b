package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// StructureRef points at an experimental or predicted structure for one
// protein record.
type StructureRef struct {
	ID     string
	Source string // "experimental" or "AlphaFold"
}

type bestStructure struct {
	PDBID      string  `json:"pdb_id"`
	Resolution float64 `json:"resolution"`
	Method     string  `json:"experimental_method"`
	Coverage   float64 `json:"coverage"`
}

// BestStructure asks the PDBe SIFTS mapping for the best experimental
// structure of an accession, falling back to the AlphaFold registry when
// PDBe has nothing. Both misses together yield (nil, nil): absence of data,
// not an error.
func (c *Client) BestStructure(ctx context.Context, accession string) (*StructureRef, error) {
	if accession == "" {
		return nil, fmt.Errorf("empty accession")
	}

	// An empty JSON object means no crystals for this accession.
	var byAccession map[string]json.RawMessage
	u := fmt.Sprintf("%s/mappings/best_structures/%s", c.PDBeBase, accession)
	err := c.getJSON(ctx, u, &byAccession)
	if err == nil {
		if raw, ok := byAccession[accession]; ok {
			var structures []bestStructure
			if err := json.Unmarshal(raw, &structures); err == nil && len(structures) > 0 {
				return &StructureRef{
					ID:     strings.ToUpper(structures[0].PDBID),
					Source: "experimental",
				}, nil
			}
		}
	}

	// Predicted-structure registry check.
	c.Pause()
	afURL := fmt.Sprintf("%s/api/prediction/%s", c.AlphaFoldBase, accession)
	var predictions []json.RawMessage
	if err := c.getJSON(ctx, afURL, &predictions); err == nil && len(predictions) > 0 {
		return &StructureRef{
			ID:     fmt.Sprintf("AF-%s-F1", accession),
			Source: "AlphaFold",
		}, nil
	}

	return nil, nil
}
