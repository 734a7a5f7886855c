package lnch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeyaml(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	p := writeyaml(t, "lda:\n  num_topics: 7\npreprocessing:\n  stopwords: [unhcr]\n")

	c, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, 7, c.LDA.NumTopics)
	assert.Equal(t, vv.LDAPASSES, c.LDA.Passes)
	assert.Equal(t, int64(vv.LDASEED), c.LDA.Seed)
	assert.Equal(t, []string{"unhcr"}, c.Preprocessing.Stopwords)
	assert.Equal(t, vv.DefaultPunctuation, c.Preprocessing.Punctuation)
	assert.Equal(t, vv.DFMIN, c.Preprocessing.DF.Min)
	assert.Equal(t, vv.DEFAULTDATAFOLDER, c.Paths.Data)
	assert.Equal(t, vv.DefaultKeepLanguages, c.Preprocessing.KeepLanguages)
}

func TestLoadConfigHonoursEmptyKeepLanguages(t *testing.T) {
	p := writeyaml(t, "preprocessing:\n  keep_languages: []\n  punctuation: []\n")

	c, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Empty(t, c.Preprocessing.KeepLanguages)
	assert.NoError(t, Validate(*c))

	// punctuation is still refilled
	assert.Equal(t, vv.DefaultPunctuation, c.Preprocessing.Punctuation)

	p = writeyaml(t, "preprocessing:\n  keep_languages: [en, es]\n")
	c, err = LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es"}, c.Preprocessing.KeepLanguages)
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	p := writeyaml(t, vv.SAMPLECONFIG)
	c, err := LoadConfig(p)
	require.NoError(t, err)
	assert.NoError(t, Validate(*c))
	assert.Equal(t, 0.5, c.Preprocessing.DF.Max)
	assert.Equal(t, 0.01, c.LDA.MinProb)
	assert.Equal(t, "morphy", c.Preprocessing.Lemmatizer)
	assert.Equal(t, "skipgram", c.Vectors.Model)
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	p := writeyaml(t, "lda: [this is not a map")
	_, err := LoadConfig(p)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(c *str.CurrentConfiguration)
	}{
		{"zero topics", func(c *str.CurrentConfiguration) { c.LDA.NumTopics = 0 }},
		{"too many topics", func(c *str.CurrentConfiguration) { c.LDA.NumTopics = vv.LDAMAXTOPICS + 1 }},
		{"df max above one", func(c *str.CurrentConfiguration) { c.Preprocessing.DF.Max = 1.5 }},
		{"negative tolerance", func(c *str.CurrentConfiguration) { c.Aggregate.Tolerance = -1 }},
		{"unknown lemmatizer", func(c *str.CurrentConfiguration) { c.Preprocessing.Lemmatizer = "snowball" }},
		{"minprob of one", func(c *str.CurrentConfiguration) { c.LDA.MinProb = 1 }},
		{"zero vector dim", func(c *str.CurrentConfiguration) { c.Vectors.Dim = 0 }},
		{"glove", func(c *str.CurrentConfiguration) { c.Vectors.Model = "glove" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BuildDefaultConfig()
			tt.tweak(c)
			assert.ErrorIs(t, Validate(*c), ErrBadConfig)
		})
	}
	assert.NoError(t, Validate(*BuildDefaultConfig()))
}

func TestEnvAndFlagPrecedence(t *testing.T) {
	t.Setenv(vv.ENVDATA, "/tmp/from-env")
	t.Setenv(vv.ENVLOGLEVEL, "4")

	c := BuildDefaultConfig()
	require.NoError(t, ApplyEnv(c))
	assert.Equal(t, "/tmp/from-env", c.Paths.Data)
	assert.Equal(t, 4, c.LogLevel)

	d := "/tmp/from-flag"
	ll := 1
	ApplyOverrides(c, Overrides{Data: &d, LogLevel: &ll, BW: true})
	assert.Equal(t, d, c.Paths.Data)
	assert.Equal(t, 1, c.LogLevel)
	assert.True(t, c.BlackAndWhite)
}

func TestApplyEnvBadLogLevel(t *testing.T) {
	t.Setenv(vv.ENVLOGLEVEL, "loud")
	assert.Error(t, ApplyEnv(BuildDefaultConfig()))
}

func TestConfigAtLaunchFallsBackToDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	err = ConfigAtLaunch("params.yaml", false, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, vv.LDATOPICS, Config.LDA.NumTopics)

	err = ConfigAtLaunch("nope.yaml", true, Overrides{})
	assert.Error(t, err)
}

func TestWriteSampleConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, WriteSampleConfig(p))
	assert.Error(t, WriteSampleConfig(p))
}
