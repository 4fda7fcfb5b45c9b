// Package render draws the summary figures: count bar charts, the
// structural similarity heatmap, the clustering dendrogram, and the
// genome-by-architecture count heatmap.
package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/capsidlab/jrfatlas/pkg/cluster"
)

// BarChart draws labeled counts to a PNG.
func BarChart(title, yLabel string, labels []string, values []float64, path string) error {
	if len(labels) != len(values) {
		return fmt.Errorf("labels/values length mismatch: %d vs %d", len(labels), len(values))
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(18))
	if err != nil {
		return fmt.Errorf("build bar chart %q: %w", title, err)
	}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(9*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// matrixGrid adapts a square matrix to the heatmap grid interface.
type matrixGrid struct {
	m [][]float64
}

func (g matrixGrid) Dims() (int, int)   { return len(g.m), len(g.m) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }
func (g matrixGrid) Z(c, r int) float64 { return g.m[r][c] }

// Heatmap draws a similarity matrix to a PNG, one tick per structure.
func Heatmap(title string, names []string, sim [][]float64, path string) error {
	if len(names) != len(sim) {
		return fmt.Errorf("names/matrix size mismatch: %d vs %d", len(names), len(sim))
	}
	p := plot.New()
	p.Title.Text = title

	hm := plotter.NewHeatMap(matrixGrid{m: sim}, palette.Heat(16, 1))
	p.Add(hm)

	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	if err := p.Save(8*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// rectGrid adapts a rectangular rows-by-columns matrix to the heatmap
// grid interface.
type rectGrid struct {
	m [][]float64
}

func (g rectGrid) Dims() (int, int) {
	if len(g.m) == 0 {
		return 0, 0
	}
	return len(g.m[0]), len(g.m)
}
func (g rectGrid) X(c int) float64    { return float64(c) }
func (g rectGrid) Y(r int) float64    { return float64(r) }
func (g rectGrid) Z(c, r int) float64 { return g.m[r][c] }

// CountHeatmap draws a rectangular count matrix, one row per rowNames
// entry and one column per colNames entry.
func CountHeatmap(title string, rowNames, colNames []string, counts [][]float64, path string) error {
	if len(rowNames) != len(counts) {
		return fmt.Errorf("row names/matrix size mismatch: %d vs %d", len(rowNames), len(counts))
	}
	for _, row := range counts {
		if len(row) != len(colNames) {
			return fmt.Errorf("column names/matrix size mismatch: %d vs %d", len(colNames), len(row))
		}
	}
	p := plot.New()
	p.Title.Text = title

	hm := plotter.NewHeatMap(rectGrid{m: counts}, palette.Heat(16, 1))
	p.Add(hm)

	xticks := make([]plot.Tick, len(colNames))
	for i, name := range colNames {
		xticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	yticks := make([]plot.Tick, len(rowNames))
	for i, name := range rowNames {
		yticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Dendrogram draws the hierarchical clustering tree implied by a merge
// sequence. Leaves sit at height zero in traversal order; each merge is
// a bracket joining its two children at the merge distance.
func Dendrogram(title string, names []string, merges []cluster.Merge, path string) error {
	n := len(names)
	if len(merges) != n-1 {
		return fmt.Errorf("merge count/leaf count mismatch: %d merges for %d leaves", len(merges), n)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Structure"
	p.Y.Label.Text = "Distance (1 - TM-score)"

	order := leafOrder(merges, n)
	pos := make(map[int]float64, 2*n-1)
	for i, leaf := range order {
		pos[leaf] = float64(i)
	}
	height := make(map[int]float64, 2*n-1)

	for i, m := range merges {
		bracket := plotter.XYs{
			{X: pos[m.A], Y: height[m.A]},
			{X: pos[m.A], Y: m.Distance},
			{X: pos[m.B], Y: m.Distance},
			{X: pos[m.B], Y: height[m.B]},
		}
		line, err := plotter.NewLine(bracket)
		if err != nil {
			return fmt.Errorf("build dendrogram %q: %w", title, err)
		}
		p.Add(line)
		id := n + i
		pos[id] = (pos[m.A] + pos[m.B]) / 2
		height[id] = m.Distance
	}

	ticks := make([]plot.Tick, n)
	for i, leaf := range order {
		ticks[i] = plot.Tick{Value: float64(i), Label: names[leaf]}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9

	if err := p.Save(11*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// leafOrder walks the merge tree from the root so sibling leaves end up
// adjacent on the x axis.
func leafOrder(merges []cluster.Merge, n int) []int {
	order := make([]int, 0, n)
	stack := []int{n + len(merges) - 1}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c < n {
			order = append(order, c)
			continue
		}
		m := merges[c-n]
		stack = append(stack, m.B, m.A)
	}
	return order
}
