package align

import (
	"math/rand"

	"github.com/capsidlab/jrfatlas/pkg/model"
)

// Simulator produces plausible TM-score-like similarities from structure
// metadata. It stands in for TM-align when the binary or the coordinate
// files are missing, so downstream clustering still has a matrix to chew
// on. Scores are deterministic for a given seed.
type Simulator struct {
	rng *rand.Rand
}

func NewSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// Score estimates the similarity of two panel members. Shared fold
// architecture dominates, shared genome type and family pull the pair
// closer, and a little noise keeps ties apart.
func (s *Simulator) Score(a, b model.RepresentativeStructure) float64 {
	score := 0.3
	if a.Arch == b.Arch {
		score += 0.2
	}
	if a.Genome == b.Genome {
		score += 0.1
	}
	if a.Family == b.Family {
		score += 0.25
	}
	if a.Arch == model.ArchDJR && b.Arch == model.ArchDJR {
		score += 0.1
	}
	if a.Arch == model.ArchSJR && b.Arch == model.ArchSJR {
		score += 0.05
	}
	score += s.rng.Float64()*0.1 - 0.05

	if score < 0.15 {
		score = 0.15
	}
	if score > 0.95 {
		score = 0.95
	}
	return score
}

// Matrix fills a symmetric similarity matrix over the panel, with unit
// self-similarity on the diagonal.
func (s *Simulator) Matrix(panel []model.RepresentativeStructure) [][]float64 {
	n := len(panel)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := s.Score(panel[i], panel[j])
			m[i][j] = v
			m[j][i] = v
		}
	}
	return m
}
