package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/e-gun/speechtopics/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "UNHCR\n\nOpening Statement to the Executive Committee, 1 October 1991\n\n" +
	"Statements by High Commissioner,\n1 October 1991\n\n" +
	"Mr Chairman,\nThe world  has changed since 12 March 1990 and refugees remain."

func TestExtract(t *testing.T) {
	s, err := Extract(str.RawSpeech{Author: "ogata", Content: sample}, 0)
	require.NoError(t, err)

	assert.Equal(t, "Ogata", s.Speaker)
	assert.Equal(t, "Opening Statement to the Executive Committee", s.Title)
	assert.Equal(t, time.Date(1991, time.October, 1, 0, 0, 0, 0, time.UTC), s.Date)
	assert.Equal(t, "Mr Chairman, The world has changed since  and refugees remain.", s.Speech)
	assert.NotEmpty(t, s.ID)
}

func TestExtractIsDeterministic(t *testing.T) {
	a, err := Extract(str.RawSpeech{Author: "ogata", Content: sample}, 0)
	require.NoError(t, err)
	b, err := Extract(str.RawSpeech{Author: "ogata", Content: sample}, 7)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestExtractMissingDate(t *testing.T) {
	bad := "UNHCR\n\nA title, 1 October 1991\n\nno header here"
	_, err := Extract(str.RawSpeech{Author: "lubbers", Content: bad}, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)

	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 3, ee.Index)
	assert.Equal(t, "lubbers", ee.Author)
	assert.Equal(t, "date", ee.Field)
	assert.Contains(t, err.Error(), "record 3 (lubbers)")
}

func TestExtractMissingTitle(t *testing.T) {
	_, err := Extract(str.RawSpeech{Author: "khan", Content: "nothing useful"}, 0)
	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "title", ee.Field)
}

func TestSpeaker(t *testing.T) {
	assert.Equal(t, "Hocké", Speaker("hocké"))
	assert.Equal(t, "Stoltenberg", Speaker(" stoltenberg "))
	assert.Equal(t, "van der x", Speaker("van der x"))
	assert.Equal(t, "de Mello", Speaker(" de Mello "))
	assert.Equal(t, "", Speaker("  "))
}

func TestReadLayouts(t *testing.T) {
	arr := `[{"author":"ogata","content":"x"},{"author":"khan","content":"y"}]`
	rr, err := Read(strings.NewReader(arr))
	require.NoError(t, err)
	assert.Equal(t, []str.RawSpeech{{Author: "ogata", Content: "x"}, {Author: "khan", Content: "y"}}, rr)

	cols := `{"author":{"10":"khan","2":"ogata"},"content":{"10":"y","2":"x"}}`
	rr, err = Read(strings.NewReader(cols))
	require.NoError(t, err)
	assert.Equal(t, []str.RawSpeech{{Author: "ogata", Content: "x"}, {Author: "khan", Content: "y"}}, rr)

	_, err = Read(strings.NewReader(`{"author":{"0":"x"}}`))
	assert.Error(t, err)
	_, err = Read(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	raws := []str.RawSpeech{
		{Author: "ogata", Content: sample},
		{Author: "khan", Content: "garbage"},
		{Author: "ogata", Content: sample},
	}

	_, err := Run(raws, str.IngestConf{})
	assert.ErrorIs(t, err, ErrExtraction)

	ss, err := Run(raws, str.IngestConf{SkipMalformed: true})
	require.NoError(t, err)
	assert.Len(t, ss, 1)
}
