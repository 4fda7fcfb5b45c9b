package stage

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/internal/util"
	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/align"
	"github.com/capsidlab/jrfatlas/pkg/cluster"
	"github.com/capsidlab/jrfatlas/pkg/model"
	"github.com/capsidlab/jrfatlas/pkg/network"
	"github.com/capsidlab/jrfatlas/pkg/render"
	"github.com/capsidlab/jrfatlas/pkg/table"
)

// Transition is one of the established evolutionary events between
// jelly-roll architectures. The list is fixed domain knowledge; the
// clustering provides supporting context, not the hypotheses themselves.
type Transition struct {
	Transition   string `json:"transition"`
	Description  string `json:"description"`
	Evidence     string `json:"evidence"`
	FromArch     string `json:"from_arch"`
	ToArch       string `json:"to_arch"`
	Mechanism    string `json:"mechanism"`
	SupportLevel string `json:"support_level"`
}

var evolutionaryTransitions = []Transition{
	{
		Transition:   "SJR → DJR duplication",
		Description:  "Gene duplication event creating the double jelly-roll fold",
		Evidence:     "Structural similarity between DJR halves; DJR internal symmetry",
		FromArch:     "SJR",
		ToArch:       "DJR",
		Mechanism:    "Tandem gene duplication",
		SupportLevel: "high",
	},
	{
		Transition:   "DJR vertical inheritance",
		Description:  "PRD1 → Adenovirus → NCLDV lineage sharing DJR MCP",
		Evidence:     "High TM-scores between PRD1, Adenovirus, Phycodnavirus MCPs",
		FromArch:     "DJR",
		ToArch:       "DJR",
		Mechanism:    "Vertical inheritance across hosts",
		SupportLevel: "high",
	},
	{
		Transition:   "SJR capsid → movement protein",
		Description:  "Repurposing of SJR capsid fold for cell-to-cell movement",
		Evidence:     "Structural homology of 30K superfamily to SJR capsid",
		FromArch:     "SJR",
		ToArch:       "JRF_derived",
		Mechanism:    "Neofunctionalization",
		SupportLevel: "high",
	},
	{
		Transition:   "T-number expansion",
		Description:  "Evolution of larger T-numbers via loop insertions",
		Evidence:     "Variable region insertions correlate with T-number increase",
		FromArch:     "SJR",
		ToArch:       "SJR",
		Mechanism:    "Loop insertion/expansion",
		SupportLevel: "high",
	},
}

type clusteringResult struct {
	Names         []string        `json:"names"`
	Linkage       []cluster.Merge `json:"linkage"`
	ClustersTight []int           `json:"clusters_tight"`
	ClustersLoose []int           `json:"clusters_loose"`
	Method        string          `json:"method"`
	TightCut      float64         `json:"tight_cut"`
	LooseCut      float64         `json:"loose_cut"`
	Simulated     bool            `json:"simulated"`
}

// Structure runs the structural comparison: a pairwise similarity matrix
// over the representative panel, hierarchical clustering at two cuts, the
// domain co-occurrence graph, the transition catalog, and the heatmap
// figure. Real TM-align is only attempted in live mode; a missing binary
// switches the whole run to simulated scores, while per-pair failures on
// the real path leave individual cells at zero.
func (p *Pipeline) Structure(ctx context.Context) error {
	return p.record("structure", func() (int, []string, error) {
		masterPath := filepath.Join(p.Cfg.CleanDir(), "capsidomics_master.tsv")
		if err := requireFile(masterPath, "annotate"); err != nil {
			return 0, nil, err
		}

		panel := model.Panel
		names := make([]string, len(panel))
		for i, s := range panel {
			names[i] = s.PDBID
		}

		sim, simulated := p.similarityMatrix(ctx, panel)

		matrixPath := filepath.Join(p.Cfg.AnalysesDir(), "similarity_matrix.tsv")
		if err := writeMatrix(matrixPath, names, sim); err != nil {
			return 0, nil, err
		}

		dist, err := cluster.DistanceMatrix(sim)
		if err != nil {
			return 0, nil, err
		}
		merges := cluster.AverageLinkage(dist)
		result := clusteringResult{
			Names:         names,
			Linkage:       merges,
			ClustersTight: cluster.Cut(merges, len(names), p.Cfg.Cluster.TightCut),
			ClustersLoose: cluster.Cut(merges, len(names), p.Cfg.Cluster.LooseCut),
			Method:        p.Cfg.Cluster.Linkage,
			TightCut:      p.Cfg.Cluster.TightCut,
			LooseCut:      p.Cfg.Cluster.LooseCut,
			Simulated:     simulated,
		}
		clustPath := filepath.Join(p.Cfg.AnalysesDir(), "structure_clustering.json")
		if err := table.WriteJSON(clustPath, result); err != nil {
			return 0, nil, err
		}
		logger.Info("clustered structure panel",
			zap.Int("tight_groups", cluster.NumClusters(result.ClustersTight)),
			zap.Int("loose_groups", cluster.NumClusters(result.ClustersLoose)),
			zap.Bool("simulated", simulated))

		records, err := table.ReadRecords(masterPath)
		if err != nil {
			return 0, nil, err
		}
		graph := network.Build(records)
		graphPath := filepath.Join(p.Cfg.AnalysesDir(), "pfam_cooccurrence.json")
		if err := table.WriteJSON(graphPath, graph); err != nil {
			return 0, nil, err
		}
		logger.Info("built domain co-occurrence graph",
			zap.Int("nodes", len(graph.Nodes)), zap.Int("edges", len(graph.Edges)))

		transPath := filepath.Join(p.Cfg.AnalysesDir(), "evolutionary_transitions.json")
		if err := table.WriteJSON(transPath, evolutionaryTransitions); err != nil {
			return 0, nil, err
		}

		heatmapPath := filepath.Join(p.Cfg.FiguresDir(), "similarity_heatmap.png")
		if err := render.Heatmap("Structural similarity (TM-score)", names, sim, heatmapPath); err != nil {
			return 0, nil, err
		}
		dendroPath := filepath.Join(p.Cfg.FiguresDir(), "structure_dendrogram.png")
		if err := render.Dendrogram("Hierarchical clustering of JRF structures", names, merges, dendroPath); err != nil {
			return 0, nil, err
		}

		outputs := []string{matrixPath, clustPath, graphPath, transPath, heatmapPath, dendroPath}
		return len(panel), outputs, nil
	})
}

// similarityMatrix returns the panel matrix and whether it is simulated.
func (p *Pipeline) similarityMatrix(ctx context.Context, panel []model.RepresentativeStructure) ([][]float64, bool) {
	if p.live() {
		runner := align.NewRunner(p.Cfg.Align.Binary, p.Cfg.Align.Timeout)
		if runner.Available() {
			sim, err := p.realMatrix(ctx, runner, panel)
			if err == nil {
				return sim, false
			}
			logger.Warn("real alignment failed, falling back to simulated scores", zap.Error(err))
		} else {
			logger.Warn("alignment binary not found, using simulated scores",
				zap.String("binary", p.Cfg.Align.Binary))
		}
	}
	return align.NewSimulator(p.Cfg.Cluster.RandomSeed).Matrix(panel), true
}

// realMatrix downloads the panel, extracts the reference chains, and runs
// every pairwise alignment. A vanished binary aborts the real path so the
// caller can switch the whole run to simulated scores; per-pair alignment
// or download failures are non-fatal and leave those cells at zero.
func (p *Pipeline) realMatrix(ctx context.Context, runner *align.Runner, panel []model.RepresentativeStructure) ([][]float64, error) {
	pdbDir := p.Cfg.PDBDir()
	if err := util.EnsureDir(pdbDir); err != nil {
		return nil, err
	}

	chains := make([]string, len(panel))
	for i, s := range panel {
		path, err := p.Client.DownloadPDB(ctx, s.PDBID, pdbDir)
		p.Client.Pause()
		if err != nil {
			logger.Warn("structure download failed, leaving its scores empty",
				zap.String("pdb", s.PDBID), zap.Error(err))
			continue
		}
		chain, err := align.ExtractChain(path, s.Chain, pdbDir)
		if err != nil {
			logger.Warn("chain extraction failed, leaving its scores empty",
				zap.String("pdb", s.PDBID), zap.Error(err))
			continue
		}
		chains[i] = chain
	}

	n := len(panel)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if chains[i] == "" || chains[j] == "" {
				continue
			}
			score, err := runner.Score(ctx, chains[i], chains[j])
			if err != nil {
				if errors.Is(err, align.ErrToolUnavailable) {
					return nil, err
				}
				logger.Warn("pairwise alignment failed, leaving cell at zero",
					zap.String("a", panel[i].PDBID), zap.String("b", panel[j].PDBID), zap.Error(err))
				continue
			}
			sim[i][j] = score
			sim[j][i] = score
		}
	}
	return sim, nil
}

// writeMatrix stores a named square matrix as a table with a leading name
// column.
func writeMatrix(path string, names []string, m [][]float64) error {
	header := append([]string{"structure"}, names...)
	rows := make([][]string, len(names))
	for i, name := range names {
		row := make([]string, 0, len(names)+1)
		row = append(row, name)
		for j := range names {
			row = append(row, strconv.FormatFloat(m[i][j], 'f', 4, 64))
		}
		rows[i] = row
	}
	return table.WriteRows(path, header, rows)
}
