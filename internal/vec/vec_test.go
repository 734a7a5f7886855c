//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"bytes"
	"fmt"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func trainingdocs() []str.Document {
	var docs []str.Document
	for i := 0; i < 60; i++ {
		docs = append(docs,
			str.Document{ID: fmt.Sprintf("r%d", i), Tokens: []string{"refugee", "camp", "shelter", "water", "refugee", "camp", "food"}},
			str.Document{ID: fmt.Sprintf("f%d", i), Tokens: []string{"donor", "fund", "budget", "pledge", "donor", "fund", "appeal"}},
		)
	}
	docs = append(docs, str.Document{ID: "e", Tokens: []string{}, Empty: true})
	return docs
}

func TestTextBlock(t *testing.T) {
	docs := []str.Document{
		{ID: "a", Tokens: []string{"a", "b"}},
		{ID: "b", Tokens: []string{}, Empty: true},
		{ID: "c", Tokens: []string{"c"}},
	}
	assert.Equal(t, "a b\nc\n", TextBlock(docs))
}

func TestNeighbors(t *testing.T) {
	nn, err := Neighbors(trainingdocs(), "refugee", 3)
	require.NoError(t, err)
	require.Len(t, nn, 3)
	for _, n := range nn {
		assert.NotEqual(t, "refugee", n.Word)
		assert.LessOrEqual(t, n.Similarity, 1.0+1e-9)
	}
}

func TestNeighborsErrors(t *testing.T) {
	_, err := Neighbors(trainingdocs(), "elephant", 3)
	assert.ErrorIs(t, err, ErrUnknownTerm)

	_, err = Neighbors([]str.Document{{ID: "e", Empty: true}}, "refugee", 3)
	assert.ErrorIs(t, err, ErrNoText)

	// present but below min_count
	docs := append(trainingdocs(), str.Document{ID: "x", Tokens: []string{"elephant"}})
	_, err = Neighbors(docs, "elephant", 3)
	assert.ErrorIs(t, err, ErrUnknownTerm)
}

func TestNeighborsTwiceInARow(t *testing.T) {
	for i := 0; i < 2; i++ {
		nn, err := Neighbors(trainingdocs(), "donor", 2)
		require.NoError(t, err)
		assert.Len(t, nn, 2)
	}
}

func TestOccurrences(t *testing.T) {
	docs := trainingdocs()
	assert.Equal(t, 120, Occurrences(docs, "refugee"))
	assert.Equal(t, 60, Occurrences(docs, "appeal"))
	assert.Equal(t, 0, Occurrences(docs, "elephant"))
	assert.Equal(t, 0, Occurrences([]str.Document{{ID: "e", Tokens: []string{"refugee"}, Empty: true}}, "refugee"))
}

func TestOptions(t *testing.T) {
	o := Options(str.VecConf{Dim: 50, Model: "cbow"})
	assert.Equal(t, 50, o.Dim)
	assert.EqualValues(t, "cbow", o.ModelType)
	assert.Equal(t, W2VOptions.Window, o.Window)
	assert.Equal(t, 1, o.Goroutines)
}

func TestChart(t *testing.T) {
	pp := []str.YearlyTopicProfile{
		{Year: 1991, Documents: 2, Means: []float64{0.5, 0.5}},
		{Year: 1992, Documents: 1, Means: []float64{0.25, 0.75}},
	}
	var buf bytes.Buffer
	require.NoError(t, Chart(pp, 2, &buf))
	html := buf.String()
	assert.Contains(t, html, "topic_1")
	assert.Contains(t, html, "topic_2")
	assert.Contains(t, html, "1992")

	assert.Error(t, Chart(pp, 3, &bytes.Buffer{}))
}
