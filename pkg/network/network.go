// Package network derives a domain co-occurrence graph from the annotated
// master table: PFAM domains are connected when members of the same viral
// family carry both.
package network

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/capsidlab/jrfatlas/pkg/model"
)

// Node is one PFAM domain observed in the table.
type Node struct {
	PFAMID   string `json:"pfam_id"`
	Name     string `json:"name"`
	Families int    `json:"families"`
	Proteins int    `json:"proteins"`
}

// Edge connects two domains that co-occur within at least one family.
// Weight counts the families shared.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Cooccurrence is the serializable graph.
type Cooccurrence struct {
	Granularity string `json:"granularity"`
	Nodes       []Node `json:"nodes"`
	Edges       []Edge `json:"edges"`
}

// Build assembles the co-occurrence graph at family granularity. Records
// without a resolved family or a PFAM source are skipped; a protein-level
// graph would be near-empty since each record carries one source domain.
func Build(records []model.ProteinRecord) *Cooccurrence {
	type domainStats struct {
		name     string
		families map[string]struct{}
		proteins int
	}
	domains := map[string]*domainStats{}
	byFamily := map[string]map[string]struct{}{}

	for _, r := range records {
		if r.PFAMSource == "" {
			continue
		}
		family := r.Family
		if family == "" {
			family = r.InferredFamily
		}
		if family == "" || family == "Unknown" {
			continue
		}
		ds := domains[r.PFAMSource]
		if ds == nil {
			ds = &domainStats{name: r.PFAMName, families: map[string]struct{}{}}
			domains[r.PFAMSource] = ds
		}
		ds.families[family] = struct{}{}
		ds.proteins++
		fam := byFamily[family]
		if fam == nil {
			fam = map[string]struct{}{}
			byFamily[family] = fam
		}
		fam[r.PFAMSource] = struct{}{}
	}

	ids := make([]string, 0, len(domains))
	for id := range domains {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	g := simple.NewWeightedUndirectedGraph(0, 0)
	nodeID := map[string]int64{}
	for i, id := range ids {
		nodeID[id] = int64(i)
		g.AddNode(simple.Node(int64(i)))
	}

	for _, members := range byFamily {
		list := make([]string, 0, len(members))
		for id := range members {
			list = append(list, id)
		}
		sort.Strings(list)
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				a, b := nodeID[list[i]], nodeID[list[j]]
				w := 1.0
				if e := g.WeightedEdge(a, b); e != nil {
					w += e.Weight()
				}
				g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(a), T: simple.Node(b), W: w})
			}
		}
	}

	out := &Cooccurrence{Granularity: "family"}
	for _, id := range ids {
		ds := domains[id]
		out.Nodes = append(out.Nodes, Node{
			PFAMID:   id,
			Name:     ds.name,
			Families: len(ds.families),
			Proteins: ds.proteins,
		})
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := nodeID[ids[i]], nodeID[ids[j]]
			if e := g.WeightedEdge(a, b); e != nil {
				out.Edges = append(out.Edges, Edge{Source: ids[i], Target: ids[j], Weight: e.Weight()})
			}
		}
	}
	return out
}
