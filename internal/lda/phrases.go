//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"math"
	"strings"
)

//
// BIGRAMS
//

// Phrases - learn which adjacent pairs are common enough to count as a single token ("united_nations")
type Phrases struct {
	MinCount  int
	Threshold float64
	Delim     string
	unigrams  map[string]int
	bigrams   map[string]int
}

func NewPhrases(mincount int, threshold float64, delim string) *Phrases {
	return &Phrases{
		MinCount:  mincount,
		Threshold: threshold,
		Delim:     delim,
		unigrams:  make(map[string]int),
		bigrams:   make(map[string]int),
	}
}

// Learn - count every token and every adjacent pair
func (p *Phrases) Learn(docs [][]string) {
	for _, d := range docs {
		for i, w := range d {
			p.unigrams[w]++
			if i > 0 {
				p.bigrams[p.join(d[i-1], w)]++
			}
		}
	}
}

func (p *Phrases) join(a, b string) string {
	return a + p.Delim + b
}

// VocabSize - distinct unigrams plus distinct bigrams
func (p *Phrases) VocabSize() int {
	return len(p.unigrams) + len(p.bigrams)
}

// Score - (n(ab) - min_count) / (n(a) * n(b)) * |vocab|; -Inf if any count is zero
func (p *Phrases) Score(a, b string) float64 {
	na := p.unigrams[a]
	nb := p.unigrams[b]
	nab := p.bigrams[p.join(a, b)]
	if na == 0 || nb == 0 || nab == 0 {
		return math.Inf(-1)
	}
	return float64(nab-p.MinCount) / float64(na*nb) * float64(p.VocabSize())
}

// Accepts - is the pair a phrase?
func (p *Phrases) Accepts(a, b string) bool {
	return p.Score(a, b) > p.Threshold
}

// Apply - rewrite a document left to right, joining accepted pairs; a token joins at most one phrase
func (p *Phrases) Apply(doc []string) []string {
	out := make([]string, 0, len(doc))
	start := ""
	open := false
	for _, w := range doc {
		switch {
		case !open:
			start = w
			open = true
		case p.Accepts(start, w):
			out = append(out, p.join(start, w))
			open = false
		default:
			out = append(out, start)
			start = w
		}
	}
	if open {
		out = append(out, start)
	}
	return out
}

// AppendBigrams - add each document's phrase tokens to the end of that document; the unigrams stay
func (p *Phrases) AppendBigrams(docs [][]string) [][]string {
	out := make([][]string, len(docs))
	for i, d := range docs {
		nd := append([]string{}, d...)
		for _, t := range p.Apply(d) {
			if strings.Contains(t, p.Delim) {
				nd = append(nd, t)
			}
		}
		out[i] = nd
	}
	return out
}
