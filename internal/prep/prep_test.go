package prep

import (
	"testing"
	"time"

	"github.com/e-gun/speechtopics/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testcfg() str.Preprocessing {
	return str.Preprocessing{
		Punctuation:   []string{".", ",", "-", "’"},
		Stopwords:     []string{"Mr", "unhcr"},
		DF:            str.DFBounds{Min: 1, Max: 1},
		Languages:     []string{"english", "spanish", "french"},
		KeepLanguages: []string{"en"},
		Lemmatizer:    "morphy",
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("UNHCR's Refugees, in 1991: returning home.")
	assert.Equal(t, []string{"unhcr", "refugees", "in", "1991", "returning", "home"}, got)
}

func TestLanguageStops(t *testing.T) {
	en, err := LanguageStops("english")
	require.NoError(t, err)
	assert.Contains(t, en, "the")
	assert.Contains(t, en, "and")

	es, err := LanguageStops("es")
	require.NoError(t, err)
	assert.Contains(t, es, "los")

	_, err = LanguageStops("klingon")
	assert.Error(t, err)
}

func TestBuildStopSetAddsConfiguredWords(t *testing.T) {
	s, err := BuildStopSet([]string{"english"}, []string{"Mr", " unhcr "})
	require.NoError(t, err)
	assert.Contains(t, s, "mr")
	assert.Contains(t, s, "unhcr")
	assert.Contains(t, s, "the")
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"The refugees are returning to their homes and the camps are empty", "en"},
		{"Los refugiados y las familias que vuelven a sus casas con el apoyo de la comunidad", "es"},
		{"Les réfugiés et leurs familles qui rentrent dans leurs maisons avec nous", "fr"},
		// no hits at all: english wins the tie
		{"zzz qqq", "en"},
	}
	for _, tt := range tests {
		got, err := DetectLanguage(Tokenize(tt.text))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestDefaultDetectorIsShared(t *testing.T) {
	a, err := DefaultDetector()
	require.NoError(t, err)
	b, err := DefaultDetector()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, []string{"en", "es", "fr"}, a.codes)
}

func TestNewDetectorRejectsUnknownLanguage(t *testing.T) {
	_, err := NewDetector("klingon")
	assert.Error(t, err)

	d, err := NewDetector("french", "english")
	require.NoError(t, err)
	assert.Equal(t, "fr", d.Detect([]string{"zzz"}))
}

func TestKeepWithEmptyListTakesEveryLanguage(t *testing.T) {
	cfg := testcfg()
	cfg.KeepLanguages = []string{}
	c, err := NewCleaner(cfg)
	require.NoError(t, err)
	for _, code := range []string{"en", "es", "fr"} {
		assert.True(t, c.Keep(code), code)
	}

	cfg.KeepLanguages = []string{"spanish"}
	c, err = NewCleaner(cfg)
	require.NoError(t, err)
	assert.True(t, c.Keep("es"))
	assert.False(t, c.Keep("en"))
}

func TestMorphy(t *testing.T) {
	m := NewMorphy()
	tests := map[string]string{
		"refugees":  "refugee",
		"countries": "country",
		"children":  "child",
		"women":     "woman",
		"crisis":    "crisis",
		"process":   "process",
		"churches":  "church",
		"classes":   "class",
		"boxes":     "box",
		"famous":    "famous",
		"politics":  "politics",
		"gas":       "gas",
		"series":    "series",
		"camp":      "camp",
	}
	for in, want := range tests {
		assert.Equal(t, want, m.Lemma(in), in)
	}
}

func TestNewLemmatizer(t *testing.T) {
	p, err := NewLemmatizer("porter")
	require.NoError(t, err)
	assert.Equal(t, "refuge", p.Lemma("refugees"))

	i, err := NewLemmatizer("none")
	require.NoError(t, err)
	assert.Equal(t, "refugees", i.Lemma("refugees"))

	_, err = NewLemmatizer("snowball")
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	when := time.Date(1994, time.May, 3, 0, 0, 0, 0, time.UTC)
	speeches := []str.Speech{
		{ID: "a", Speaker: "Ogata", Date: when, Title: "t1", Speech: "Mr Chairman, the refugees in the camps need protection and the countries must help."},
		{ID: "b", Speaker: "Ogata", Date: when, Title: "t2", Speech: "Los refugiados y las familias que vuelven a sus casas con el apoyo de la comunidad"},
		{ID: "c", Speaker: "Ogata", Date: when, Title: "t3", Speech: "The, and. Of the; UNHCR"},
	}

	docs, rep, err := Clean(speeches, testcfg())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, 1990, docs[0].Decade)
	assert.Equal(t, []string{"chairman", "refugee", "camp", "need", "protection", "country", "must", "help"}, docs[0].Tokens)
	assert.False(t, docs[0].Empty)

	assert.Equal(t, "c", docs[1].ID)
	assert.True(t, docs[1].Empty)
	assert.Empty(t, docs[1].Tokens)

	assert.Equal(t, 3, rep.Speeches)
	assert.Equal(t, 2, rep.Kept)
	assert.Equal(t, 1, rep.Empty)
	assert.Equal(t, 1, rep.DroppedBy["es"])
	assert.Equal(t, 1, rep.Dropped())

	cfg := testcfg()
	cfg.KeepLanguages = nil
	docs, rep, err = Clean(speeches, cfg)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, "b", docs[1].ID)
	assert.Zero(t, rep.Dropped())
}

func TestCleanRejectsUnknownLemmatizer(t *testing.T) {
	c := testcfg()
	c.Lemmatizer = "bogus"
	_, _, err := Clean(nil, c)
	assert.Error(t, err)
}

func TestDecade(t *testing.T) {
	assert.Equal(t, 1990, Decade(1999))
	assert.Equal(t, 2000, Decade(2000))
}

func TestDescribe(t *testing.T) {
	docs := []str.Document{
		{Tokens: []string{"refugee", "camp", "refugee"}},
		{Tokens: []string{"camp", "refugee", "aid"}},
	}
	got := Describe(docs, 2)
	assert.Equal(t, []str.TermCount{{Term: "refugee", Count: 3}, {Term: "camp", Count: 2}}, got)
	assert.Len(t, Describe(docs, 0), 3)
}
