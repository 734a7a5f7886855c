//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tot

import (
	"errors"
	"fmt"
	"github.com/e-gun/speechtopics/internal/gen"
	"github.com/e-gun/speechtopics/internal/str"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//
// TOPICS OVER TIME
//

var (
	ErrUnmatchedDocument = errors.New("unmatched document")
	ErrTopicOutOfRange   = errors.New("topic index out of range")
)

// Rollup - the dense document x topic matrix and the per-year means derived from it
type Rollup struct {
	K      int
	DocIDs []string
	Dense  *mat.Dense // len(DocIDs) x K; nil when there are no documents
	years  []int
	counts map[int]int
	means  map[int][]float64
}

// Scatter - sparse pairs into a fixed K-length vector; absent topics stay 0
func Scatter(ta str.TopicAssignment, k int) ([]float64, error) {
	row := make([]float64, k)
	for _, p := range ta.Pairs {
		if p.Topic < 0 || p.Topic >= k {
			return nil, fmt.Errorf("%w: document %s has topic %d (K=%d)", ErrTopicOutOfRange, ta.DocumentID, p.Topic, k)
		}
		row[p.Topic] += p.Weight
	}
	return row, nil
}

// Reshape - scatter every document into a row, group the rows by year, average each topic column within the year
func Reshape(assignments []str.TopicAssignment, years map[string]int, k int) (*Rollup, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: K must be positive (got %d)", ErrTopicOutOfRange, k)
	}

	r := &Rollup{
		K:      k,
		DocIDs: make([]string, len(assignments)),
		counts: make(map[int]int),
		means:  make(map[int][]float64),
	}

	// [a] zero matrix, one row per document; scatter the pairs

	if len(assignments) > 0 {
		r.Dense = mat.NewDense(len(assignments), k, nil)
	}

	docyear := make([]int, len(assignments))
	for i, ta := range assignments {
		y, ok := years[ta.DocumentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no date", ErrUnmatchedDocument, ta.DocumentID)
		}
		row, err := Scatter(ta, k)
		if err != nil {
			return nil, err
		}
		r.Dense.SetRow(i, row)
		r.DocIDs[i] = ta.DocumentID
		docyear[i] = y
	}

	// [b] sum by year

	for i, y := range docyear {
		if _, ok := r.means[y]; !ok {
			r.means[y] = make([]float64, k)
		}
		floats.Add(r.means[y], r.Dense.RawRowView(i))
		r.counts[y]++
	}

	// [c] divide by the number of documents, not by the weight total

	for y, sums := range r.means {
		floats.Scale(1/float64(r.counts[y]), sums)
	}
	r.years = gen.SortedKeys(r.means)

	return r, nil
}

// Years - ascending
func (r *Rollup) Years() []int {
	return append([]int{}, r.years...)
}

// Profiles - one YearlyTopicProfile per year, ascending; every Means has length K
func (r *Rollup) Profiles() []str.YearlyTopicProfile {
	pp := make([]str.YearlyTopicProfile, len(r.years))
	for i, y := range r.years {
		pp[i] = str.YearlyTopicProfile{
			Year:      y,
			Documents: r.counts[y],
			Means:     append([]float64{}, r.means[y]...),
		}
	}
	return pp
}

// Deviation - a year whose mean vector does not add up to 1
type Deviation struct {
	Year int
	Mass float64
}

// Validate - the years whose total mass is more than tol away from 1
func (r *Rollup) Validate(tol float64) []Deviation {
	var dd []Deviation
	for _, y := range r.years {
		m := floats.Sum(r.means[y])
		if m < 1-tol || m > 1+tol {
			dd = append(dd, Deviation{Year: y, Mass: m})
		}
	}
	return dd
}
