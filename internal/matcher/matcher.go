// Package matcher finds the nearest gallery entry to a probe embedding and
// decides whether it is close enough to count as the same person.
package matcher

import (
	"fmt"
	"math"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/gallery"
)

// DefaultTolerance is the dlib recommendation for 128-d encodings.
const DefaultTolerance = 0.6

// Candidate is the nearest gallery entry to a probe.
type Candidate struct {
	Entry    gallery.Entry
	Index    int
	Distance float64
}

// Match is the outcome of the tolerance gate.
type Match struct {
	Matched    bool
	Candidate  Candidate
	Confidence float64
}

type Matcher struct {
	metric    Metric
	tolerance float64
}

// New validates tolerance and returns a matcher. A nil metric means Euclidean.
func New(metric Metric, tolerance float64) (*Matcher, error) {
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) || tolerance < 0 {
		return nil, domain.ErrInvalidTolerance
	}
	if metric == nil {
		metric = Euclidean{}
	}

	return &Matcher{metric: metric, tolerance: tolerance}, nil
}

func (m *Matcher) Metric() Metric {
	return m.metric
}

func (m *Matcher) Tolerance() float64 {
	return m.tolerance
}

// Compare returns the entry with the smallest distance to probe. Ties keep the
// earliest entry. The boolean is false when the gallery is empty.
func (m *Matcher) Compare(probe domain.Embedding, g *gallery.Gallery) (Candidate, bool, error) {
	if g == nil || g.IsEmpty() {
		return Candidate{}, false, nil
	}

	if probe.Dimension() != g.Dimension() {
		return Candidate{}, false, domain.ErrDimensionMismatch.WithError(
			fmt.Errorf("probe has %d components, gallery has %d", probe.Dimension(), g.Dimension()),
		)
	}

	best := Candidate{Index: -1, Distance: math.Inf(1)}
	for i := 0; i < g.Len(); i++ {
		entry := g.At(i)
		d := m.metric.Distance(probe, entry.Embedding)
		if d < best.Distance {
			best = Candidate{Entry: entry, Index: i, Distance: d}
		}
	}

	if best.Index < 0 {
		return Candidate{}, false, nil
	}

	return best, true, nil
}

// Match applies the tolerance gate on top of Compare. Confidence is
// 1 - distance and only set when matched.
func (m *Matcher) Match(probe domain.Embedding, g *gallery.Gallery) (Match, error) {
	candidate, ok, err := m.Compare(probe, g)
	if err != nil {
		return Match{}, err
	}
	if !ok {
		return Match{}, nil
	}

	if candidate.Distance > m.tolerance {
		return Match{Candidate: candidate}, nil
	}

	return Match{
		Matched:    true,
		Candidate:  candidate,
		Confidence: 1 - candidate.Distance,
	}, nil
}
