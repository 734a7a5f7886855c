//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"github.com/e-gun/nlp"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/vv"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"sort"
	"time"
)

//see https://github.com/james-bowman/nlp/blob/26d441fa0ded/lda.go
//DefaultLDA = nlp.LatentDirichletAllocation{
//	Iterations:                    1000,
//	PerplexityTolerance:           1e-2,
//	PerplexityEvaluationFrequency: 30,
//	BatchSize:                     100,
//	K:                             k,
//	BurnInPasses:                  1,
//	TransformationPasses:          500,
//	MeanChangeTolerance:           1e-5,
//	ChangeEvaluationFrequency:     30,
//	Alpha:                         0.1,
//	Eta:                           0.01,
//	...
//	Rnd:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
//	Processes: runtime.GOMAXPROCS(0),
//}

// Model - a fitted topic model: K topics over Vocab, and the topic mix of each fitted document
type Model struct {
	K          int
	Vocab      []string
	DocIDs     []string
	TopicWords *mat.Dense // K x len(Vocab)
	DocTopics  *mat.Dense // K x len(DocIDs); each column sums to 1
	Params     str.LDAConf
	Fitted     time.Time
}

// Fit - LDA over the prepared corpus; a fixed seed and a single process make the result repeatable
func Fit(p *Prepared, cfg str.LDAConf) (*Model, error) {
	const (
		FAIL1 = "lda fit failed: %w"
		MSG1  = "fitting %d topics to %d documents (%d passes; %d iterations; seed %d)"
	)

	if p == nil || p.Corpus.NumDocs() == 0 || p.Corpus.NumTerms == 0 {
		return nil, ErrEmptyCorpus
	}

	Msg.NOTE(fmt.Sprintf(MSG1, cfg.NumTopics, p.Corpus.NumDocs(), cfg.Passes, cfg.Iterations, cfg.Seed))

	lda := nlp.NewLatentDirichletAllocation(cfg.NumTopics)
	lda.Iterations = cfg.Passes
	lda.TransformationPasses = cfg.Iterations
	lda.BurnInPasses = vv.LDABURNINPASSES
	lda.ChangeEvaluationFrequency = vv.LDACHGEVALFRQ
	lda.PerplexityEvaluationFrequency = vv.LDAPERPEVALFRQ
	lda.PerplexityTolerance = vv.LDAPERPTOL
	lda.Processes = 1
	lda.Rnd = rand.New(rand.NewSource(uint64(cfg.Seed)))

	docsOverTopics, err := lda.FitTransform(p.Corpus.Matrix())
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	m := &Model{
		K:          cfg.NumTopics,
		Vocab:      p.Dict.ID2Token(),
		DocIDs:     append([]string{}, p.DocIDs...),
		TopicWords: mat.DenseCopyOf(lda.Components()),
		DocTopics:  mat.DenseCopyOf(docsOverTopics),
		Params:     cfg,
		Fitted:     time.Now(),
	}
	m.normalize()
	return m, nil
}

// normalize - every document column sums to 1 unless it is all zeros
func (m *Model) normalize() {
	r, c := m.DocTopics.Dims()
	col := make([]float64, r)
	for doc := 0; doc < c; doc++ {
		mat.Col(col, doc, m.DocTopics)
		s := floats.Sum(col)
		if s <= 0 {
			continue
		}
		floats.Scale(1/s, col)
		m.DocTopics.SetCol(doc, col)
	}
}

// DocumentTopics - the sparse (topic, weight) pairs of each document, keeping weights >= minprob
func (m *Model) DocumentTopics(minprob float64) []str.TopicAssignment {
	const (
		FLOOR = 1e-8
	)
	if minprob < FLOOR {
		minprob = FLOOR
	}

	_, c := m.DocTopics.Dims()
	out := make([]str.TopicAssignment, c)
	for doc := 0; doc < c; doc++ {
		ta := str.TopicAssignment{DocumentID: m.DocIDs[doc]}
		for topic := 0; topic < m.K; topic++ {
			w := m.DocTopics.At(topic, doc)
			if w >= minprob {
				ta.Pairs = append(ta.Pairs, str.TopicPair{Topic: topic, Weight: w})
			}
		}
		out[doc] = ta
	}
	return out
}

type topicsorter struct {
	W string
	V float64
}

// sortedtopics - the topn most significant words for each topic
func (m *Model) sortedtopics(topn int) [][]topicsorter {
	tr, tc := m.TopicWords.Dims()
	if topn > tc {
		topn = tc
	}

	tops := make([][]topicsorter, tr)
	for topic := 0; topic < tr; topic++ {
		tss := make([]topicsorter, tc)
		for word := 0; word < tc; word++ {
			tss[word] = topicsorter{
				W: m.Vocab[word],
				V: m.TopicWords.At(topic, word),
			}
		}
		sort.SliceStable(tss, func(i, j int) bool {
			return tss[i].V > tss[j].V
		})
		tops[topic] = tss[0:topn]
	}
	return tops
}

// DocsPerTopic - N documents have topic X as their dominant topic
func (m *Model) DocsPerTopic() []int {
	counter := make([]int, m.K)
	dr, dc := m.DocTopics.Dims()
	for doc := 0; doc < dc; doc++ {
		max := float64(0)
		winner := 0
		for topic := 0; topic < dr; topic++ {
			// any given doc will look like
			// Topic #0=0.006009, Topic #1=0.006915, Topic #2=0.000688, Topic #3=0.449514, Topic #4=0.536875
			if m.DocTopics.At(topic, doc) > max {
				winner = topic
				max = m.DocTopics.At(topic, doc)
			}
		}
		counter[winner] += 1
	}
	return counter
}

// DocsByWeight - scaled total accumulated weight of each topic; the heaviest topic is 1.0
func (m *Model) DocsByWeight() []float64 {
	counter := make([]float64, m.K)
	dr, dc := m.DocTopics.Dims()
	for doc := 0; doc < dc; doc++ {
		for topic := 0; topic < dr; topic++ {
			counter[topic] += m.DocTopics.At(topic, doc)
		}
	}

	high := floats.Max(counter)
	scaled := make([]float64, m.K)
	if high == 0 {
		return scaled
	}
	for i := 0; i < m.K; i++ {
		scaled[i] = counter[i] / high
	}
	return scaled
}

// Summaries - top words, dominant document count, and scaled weight per topic
func (m *Model) Summaries(topn int) []str.TopicSummary {
	tops := m.sortedtopics(topn)
	dpt := m.DocsPerTopic()
	dbw := m.DocsByWeight()

	ss := make([]str.TopicSummary, m.K)
	for topic := 0; topic < m.K; topic++ {
		ww := make([]string, len(tops[topic]))
		for i, t := range tops[topic] {
			ww[i] = t.W
		}
		ss[topic] = str.TopicSummary{
			Topic:    topic,
			Words:    ww,
			Dominant: dpt[topic],
			Weight:   dbw[topic],
		}
	}
	return ss
}
