//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"bufio"
	"fmt"
	"github.com/e-gun/sparse"
	"io"
)

// Corpus - bag-of-words documents over a dictionary of NumTerms tokens
type Corpus struct {
	Bows     [][]BowEntry
	NumTerms int
}

func (c Corpus) NumDocs() int {
	return len(c.Bows)
}

func (c Corpus) NNZ() int {
	t := 0
	for _, b := range c.Bows {
		t += len(b)
	}
	return t
}

// Matrix - terms (rows) x documents (columns), which is what the LDA wants; row order inside a column follows the bow
func (c Corpus) Matrix() *sparse.CSC {
	nnz := c.NNZ()
	indptr := make([]int, len(c.Bows)+1)
	ind := make([]int, 0, nnz)
	data := make([]float64, 0, nnz)
	for doc, bow := range c.Bows {
		for _, e := range bow {
			ind = append(ind, e.ID)
			data = append(data, float64(e.Count))
		}
		indptr[doc+1] = len(ind)
	}
	return sparse.NewCSC(c.NumTerms, len(c.Bows), indptr, ind, data)
}

// WriteMatrixMarket - coordinate format, one-based, "doc term count" per line
func (c Corpus) WriteMatrixMarket(w io.Writer) error {
	const (
		HEADER = "%%MatrixMarket matrix coordinate real general\n"
	)
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprint(bw, HEADER); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.NumDocs(), c.NumTerms, c.NNZ()); err != nil {
		return err
	}
	for doc, bow := range c.Bows {
		for _, e := range bow {
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", doc+1, e.ID+1, e.Count); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
