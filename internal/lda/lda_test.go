package lda

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/e-gun/speechtopics/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// six documents that open with "united nations" and then run through eight words found nowhere else
func phrasedocs() [][]string {
	var docs [][]string
	for i := 0; i < 6; i++ {
		d := []string{"united", "nations"}
		for j := 0; j < 8; j++ {
			d = append(d, fmt.Sprintf("f%dx%d", i, j))
		}
		docs = append(docs, d)
	}
	return docs
}

func TestPhrasesAcceptsFrequentPair(t *testing.T) {
	p := NewPhrases(1, 10, "_")
	p.Learn(phrasedocs())

	assert.Equal(t, 99, p.VocabSize())
	assert.InDelta(t, 13.75, p.Score("united", "nations"), 1e-9)
	assert.True(t, p.Accepts("united", "nations"))
	assert.False(t, p.Accepts("f0x0", "f0x1"))
	assert.False(t, p.Accepts("nations", "united"))
}

func TestPhrasesApplyAndAppend(t *testing.T) {
	docs := phrasedocs()
	p := NewPhrases(1, 10, "_")
	p.Learn(docs)

	applied := p.Apply(docs[0])
	assert.Equal(t, "united_nations", applied[0])
	assert.Len(t, applied, len(docs[0])-1)

	out := p.AppendBigrams([][]string{{"united", "nations", "camp"}})
	assert.Equal(t, []string{"united", "nations", "camp", "united_nations"}, out[0])
}

func TestPhrasesRejectBelowMinCount(t *testing.T) {
	p := NewPhrases(20, 10, "_")
	p.Learn(phrasedocs())
	assert.False(t, p.Accepts("united", "nations"))
}

func TestDictionaryAssignsIdsLikeGensim(t *testing.T) {
	d := NewDictionary()
	d.AddDocuments([][]string{{"b", "a", "b"}, {"c", "a"}})

	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2}, d.Token2ID)
	assert.Equal(t, map[int]int{0: 2, 1: 1, 2: 1}, d.DFS)
	assert.Equal(t, 2, d.NumDocs)
	assert.Equal(t, []string{"a", "b", "c"}, d.ID2Token())

	assert.Equal(t, []BowEntry{{ID: 1, Count: 2}, {ID: 2, Count: 1}}, d.Doc2Bow([]string{"c", "b", "b", "z"}))
}

func TestDictionaryFilterTokensCompactifies(t *testing.T) {
	d := NewDictionary()
	d.AddDocuments([][]string{{"a", "b", "c"}})
	d.FilterTokens([]string{"b", "nope"})
	assert.Equal(t, map[string]int{"a": 0, "c": 1}, d.Token2ID)
	assert.Equal(t, map[int]int{0: 1, 1: 1}, d.DFS)
}

func TestDictionaryFilterExtremes(t *testing.T) {
	d := NewDictionary()
	d.AddDocuments([][]string{
		{"common", "rare", "mid"},
		{"common", "mid"},
		{"common", "other"},
		{"common", "mid", "other"},
	})
	// common: 4 docs; mid: 3; other: 2; rare: 1
	d.FilterExtremes(2, 0.75)

	assert.Equal(t, 2, d.Len())
	_, hasmid := d.Token2ID["mid"]
	_, hasother := d.Token2ID["other"]
	assert.True(t, hasmid)
	assert.True(t, hasother)
	assert.Less(t, d.Token2ID["mid"], d.Token2ID["other"])
}

func TestDictionaryTextRoundTrip(t *testing.T) {
	d := NewDictionary()
	d.AddDocuments([][]string{{"refugee", "camp"}, {"camp"}})

	var buf bytes.Buffer
	require.NoError(t, d.WriteText(&buf))
	assert.Equal(t, "2\n0\tcamp\t2\n1\trefugee\t1\n", buf.String())

	back, err := ReadDictionary(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.Token2ID, back.Token2ID)
	assert.Equal(t, d.DFS, back.DFS)
	assert.Equal(t, 2, back.NumDocs)
}

func TestCorpus(t *testing.T) {
	c := Corpus{
		Bows:     [][]BowEntry{{{ID: 0, Count: 2}, {ID: 2, Count: 1}}, {{ID: 1, Count: 1}}},
		NumTerms: 3,
	}

	m := c.Matrix()
	r, cc := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, cc)
	assert.Equal(t, 2.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(2, 0))
	assert.Equal(t, 1.0, m.At(1, 1))
	assert.Equal(t, 0.0, m.At(0, 1))

	var buf bytes.Buffer
	require.NoError(t, c.WriteMatrixMarket(&buf))
	assert.Equal(t, "%%MatrixMarket matrix coordinate real general\n2 3 3\n1 1 2\n1 3 1\n2 2 1\n", buf.String())
}

func TestMatrixKeepsBowOrder(t *testing.T) {
	c := Corpus{
		Bows:     [][]BowEntry{{{ID: 0, Count: 1}, {ID: 3, Count: 2}, {ID: 5, Count: 1}, {ID: 7, Count: 4}}, {}, {{ID: 2, Count: 1}, {ID: 6, Count: 3}}},
		NumTerms: 8,
	}

	walk := func() []int {
		var rows []int
		c.Matrix().DoNonZero(func(i, j int, v float64) {
			rows = append(rows, i)
		})
		return rows
	}

	first := walk()
	assert.Equal(t, []int{0, 3, 5, 7, 2, 6}, first)
	for i := 0; i < 25; i++ {
		assert.Equal(t, first, walk())
	}

	raw := c.Matrix().RawMatrix()
	assert.Equal(t, []int{0, 4, 4, 6}, raw.Indptr)
	assert.Equal(t, []float64{1, 2, 1, 4, 1, 3}, raw.Data)
}

func smalldocs() []str.Document {
	mk := func(id string, tt ...string) str.Document {
		return str.Document{ID: id, Tokens: tt, Empty: len(tt) == 0}
	}
	return []str.Document{
		mk("d1", "refugee", "camp", "shelter", "refugee", "camp"),
		mk("d2", "budget", "donor", "funding", "budget"),
		mk("d3", "refugee", "shelter", "camp"),
		mk("d4", "donor", "funding", "budget", "donor"),
		mk("d5"),
		mk("d6", "refugee", "camp", "donor"),
	}
}

func smallpre() str.Preprocessing {
	return str.Preprocessing{DF: str.DFBounds{Min: 1, Max: 1.0}}
}

func TestPrepareSetsAsideEmpties(t *testing.T) {
	p, err := Prepare(smalldocs(), smallpre(), str.PhraseConf{MinCount: 20, Threshold: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"d1", "d2", "d3", "d4", "d6"}, p.DocIDs)
	assert.Equal(t, 5, p.Corpus.NumDocs())
	assert.Equal(t, 6, p.Corpus.NumTerms)
	assert.Equal(t, p.Dict.Len(), p.Corpus.NumTerms)
}

func TestPrepareDropsConfiguredStopwords(t *testing.T) {
	pre := smallpre()
	pre.Stopwords = []string{"budget"}
	p, err := Prepare(smalldocs(), pre, str.PhraseConf{MinCount: 20, Threshold: 10})
	require.NoError(t, err)
	_, ok := p.Dict.Token2ID["budget"]
	assert.False(t, ok)
}

func TestPrepareEmptyCorpus(t *testing.T) {
	_, err := Prepare([]str.Document{{ID: "x", Empty: true}}, smallpre(), str.PhraseConf{MinCount: 20, Threshold: 10})
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	pre := smallpre()
	pre.DF.Min = 50
	_, err = Prepare(smalldocs(), pre, str.PhraseConf{MinCount: 20, Threshold: 10})
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = Fit(nil, str.LDAConf{NumTopics: 2})
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func fitsmall(t *testing.T) *Model {
	t.Helper()
	p, err := Prepare(smalldocs(), smallpre(), str.PhraseConf{MinCount: 20, Threshold: 10})
	require.NoError(t, err)
	m, err := Fit(p, str.LDAConf{NumTopics: 2, Passes: 5, Iterations: 20, Seed: 42, MinProb: 0.01, TopWords: 3})
	require.NoError(t, err)
	return m
}

func TestFit(t *testing.T) {
	m := fitsmall(t)

	r, c := m.DocTopics.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 5, c)
	r, c = m.TopicWords.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 6, c)

	col := make([]float64, 2)
	for doc := 0; doc < 5; doc++ {
		mat.Col(col, doc, m.DocTopics)
		assert.InDelta(t, 1.0, floats.Sum(col), 1e-9)
	}

	for _, ta := range m.DocumentTopics(0.01) {
		assert.LessOrEqual(t, ta.Sum(), 1.0+1e-9)
		for _, p := range ta.Pairs {
			assert.GreaterOrEqual(t, p.Weight, 0.01)
			assert.Less(t, p.Topic, 2)
		}
	}
}

func TestFitIsRepeatable(t *testing.T) {
	a := fitsmall(t)
	b := fitsmall(t)
	assert.InDeltaSlice(t, a.DocTopics.RawMatrix().Data, b.DocTopics.RawMatrix().Data, 1e-12)
}

func TestDocumentTopicsThreshold(t *testing.T) {
	m := &Model{
		K:         3,
		DocIDs:    []string{"a", "b"},
		DocTopics: mat.NewDense(3, 2, []float64{0.7, 0.005, 0.295, 0.5, 0.005, 0.495}),
	}
	got := m.DocumentTopics(0.01)
	assert.Equal(t, []str.TopicAssignment{
		{DocumentID: "a", Pairs: []str.TopicPair{{Topic: 0, Weight: 0.7}, {Topic: 1, Weight: 0.295}}},
		{DocumentID: "b", Pairs: []str.TopicPair{{Topic: 1, Weight: 0.5}, {Topic: 2, Weight: 0.495}}},
	}, got)
}

func TestSummaries(t *testing.T) {
	m := &Model{
		K:          2,
		Vocab:      []string{"camp", "donor", "refugee"},
		DocIDs:     []string{"a", "b", "c"},
		TopicWords: mat.NewDense(2, 3, []float64{5, 1, 4, 1, 9, 0}),
		DocTopics:  mat.NewDense(2, 3, []float64{0.9, 0.2, 0.6, 0.1, 0.8, 0.4}),
	}
	ss := m.Summaries(2)
	require.Len(t, ss, 2)

	assert.Equal(t, []string{"camp", "refugee"}, ss[0].Words)
	assert.Equal(t, []string{"donor", "camp"}, ss[1].Words)
	assert.Equal(t, 2, ss[0].Dominant)
	assert.Equal(t, 1, ss[1].Dominant)
	assert.InDelta(t, 1.0, ss[0].Weight, 1e-9)
	assert.InDelta(t, 1.3/1.7, ss[1].Weight, 1e-9)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	m := &Model{
		K:          2,
		Vocab:      []string{"camp", "donor", "refugee"},
		DocIDs:     []string{"a"},
		TopicWords: mat.NewDense(2, 3, []float64{5, 1, 4, 1, 9, 0}),
		Params:     str.LDAConf{NumTopics: 2, Seed: 42},
		Fitted:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, m.Save(dir))

	back, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, m.Vocab, back.Vocab)
	assert.Equal(t, m.Params, back.Params)
	assert.True(t, mat.Equal(m.TopicWords, back.TopicWords))
	assert.True(t, m.Fitted.Equal(back.Fitted))
}

func TestTopicLabels(t *testing.T) {
	assert.Equal(t, []string{"topic_1", "topic_2", "topic_3"}, TopicLabels(3))
}
