//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"errors"
	"fmt"
	"github.com/e-gun/speechtopics/internal/mm"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/vv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"os"
	"strconv"
)

var (
	Config *str.CurrentConfiguration
	Msg    = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
)

// ErrBadConfig - the configuration parsed but a value is unusable
var ErrBadConfig = errors.New("invalid configuration")

// Overrides - values supplied on the command line; a nil pointer means "not set"
type Overrides struct {
	Data       *string
	LogLevel   *int
	BW         bool
	ProfileCPU bool
	ProfileMEM bool
}

// ConfigAtLaunch - defaults, then params.yaml, then .env and the environment, then the flags
func ConfigAtLaunch(cfgpath string, explicit bool, ov Overrides) error {
	const (
		FAIL1 = "could not load configuration: %w"
		MSG1  = "'%s' not found; using built-in defaults"
		MSG2  = "'%s' loaded"
		MSG3  = ".env loaded"
	)

	if err := godotenv.Load(); err == nil {
		Msg.TMI(MSG3)
	}

	if p, ok := os.LookupEnv(vv.ENVCONFIG); ok && !explicit {
		cfgpath = p
		explicit = true
	}

	cfg, err := LoadConfig(cfgpath)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		Msg.FYI(fmt.Sprintf(MSG1, cfgpath))
		cfg = BuildDefaultConfig()
	case err != nil:
		return fmt.Errorf(FAIL1, err)
	default:
		Msg.TMI(fmt.Sprintf(MSG2, cfgpath))
	}

	if err = ApplyEnv(cfg); err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	ApplyOverrides(cfg, ov)

	if err = Validate(*cfg); err != nil {
		return err
	}

	Config = cfg
	UpdateMessageMakerWithConfig(Msg)
	return nil
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.Preprocessing.Punctuation = append([]string{}, vv.DefaultPunctuation...)
	c.Preprocessing.Stopwords = []string{}
	c.Preprocessing.DF = str.DFBounds{Min: vv.DFMIN, Max: vv.DFMAX}
	c.Preprocessing.Languages = append([]string{}, vv.DefaultStopLanguages...)
	c.Preprocessing.KeepLanguages = append([]string{}, vv.DefaultKeepLanguages...)
	c.Preprocessing.Lemmatizer = vv.DEFAULTLEMMATIZ
	c.Phrases = str.PhraseConf{MinCount: vv.PHRASEMINCOUNT, Threshold: vv.PHRASETHRESHOLD}
	c.LDA = str.LDAConf{
		NumTopics:  vv.LDATOPICS,
		Passes:     vv.LDAPASSES,
		Iterations: vv.LDAITER,
		Seed:       vv.LDASEED,
		MinProb:    vv.LDAMINPROB,
		TopWords:   vv.LDATOPWORDS,
	}
	c.Ingest = str.IngestConf{Input: vv.DEFAULTINPUT}
	c.Aggregate = str.AggConf{Tolerance: vv.TOTTOLERANCE}
	c.Paths = str.PathConf{Data: vv.DEFAULTDATAFOLDER}
	c.Vectors = str.VecConf{
		Dim:      vv.VECTORDIM,
		Window:   vv.VECTORWINDOW,
		Iter:     vv.VECTORITER,
		MinCount: vv.VECTORMINCOUNT,
		Model:    vv.VECTORMODEL,
	}
	c.LogLevel = vv.DEFAULTLOGLEVEL
	c.BlackAndWhite = vv.BLACKANDWHITE
	return &c
}

// LoadConfig - read a params.yaml on top of the defaults; keys the file omits keep their default values
func LoadConfig(path string) (*str.CurrentConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := BuildDefaultConfig()
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", path, err)
	}

	// an explicit "punctuation: []" or a missing lemmatizer should not leave the cleaner without its tools
	// an explicit "keep_languages: []" is honoured: every language is kept
	if len(c.Preprocessing.Punctuation) == 0 {
		c.Preprocessing.Punctuation = append([]string{}, vv.DefaultPunctuation...)
	}
	if c.Preprocessing.Lemmatizer == "" {
		c.Preprocessing.Lemmatizer = vv.DEFAULTLEMMATIZ
	}
	if c.Paths.Data == "" {
		c.Paths.Data = vv.DEFAULTDATAFOLDER
	}
	return c, nil
}

// ApplyEnv - STP_DATA and STP_LOGLEVEL beat the file
func ApplyEnv(c *str.CurrentConfiguration) error {
	if d, ok := os.LookupEnv(vv.ENVDATA); ok && d != "" {
		c.Paths.Data = d
	}
	if l, ok := os.LookupEnv(vv.ENVLOGLEVEL); ok && l != "" {
		ll, err := strconv.Atoi(l)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", vv.ENVLOGLEVEL, l, err)
		}
		c.LogLevel = ll
	}
	return nil
}

// ApplyOverrides - flags beat everything
func ApplyOverrides(c *str.CurrentConfiguration, ov Overrides) {
	if ov.Data != nil && *ov.Data != "" {
		c.Paths.Data = *ov.Data
	}
	if ov.LogLevel != nil {
		c.LogLevel = *ov.LogLevel
	}
	if ov.BW {
		c.BlackAndWhite = true
	}
	c.ProfileCPU = ov.ProfileCPU
	c.ProfileMEM = ov.ProfileMEM
}

// Validate - reject values that would make a stage fail halfway through
func Validate(c str.CurrentConfiguration) error {
	bad := func(f string, a ...any) error {
		return fmt.Errorf("%w: %s", ErrBadConfig, fmt.Sprintf(f, a...))
	}

	switch {
	case c.LDA.NumTopics < 1 || c.LDA.NumTopics > vv.LDAMAXTOPICS:
		return bad("lda.num_topics must be between 1 and %d (got %d)", vv.LDAMAXTOPICS, c.LDA.NumTopics)
	case c.LDA.Passes < 1:
		return bad("lda.passes must be positive (got %d)", c.LDA.Passes)
	case c.LDA.Iterations < 1:
		return bad("lda.iterations must be positive (got %d)", c.LDA.Iterations)
	case c.LDA.MinProb < 0 || c.LDA.MinProb >= 1:
		return bad("lda.minimum_probability must be in [0, 1) (got %g)", c.LDA.MinProb)
	case c.LDA.TopWords < 1:
		return bad("lda.top_words must be positive (got %d)", c.LDA.TopWords)
	case c.Preprocessing.DF.Min < 0:
		return bad("preprocessing.df.min must not be negative (got %d)", c.Preprocessing.DF.Min)
	case c.Preprocessing.DF.Max <= 0 || c.Preprocessing.DF.Max > 1:
		return bad("preprocessing.df.max must be in (0, 1] (got %g)", c.Preprocessing.DF.Max)
	case c.Phrases.MinCount < 0:
		return bad("phrases.min_count must not be negative (got %d)", c.Phrases.MinCount)
	case c.Aggregate.Tolerance < 0:
		return bad("aggregate.tolerance must not be negative (got %g)", c.Aggregate.Tolerance)
	case c.Vectors.Dim < 1 || c.Vectors.Window < 1 || c.Vectors.Iter < 1:
		return bad("vectors.dim, vectors.window and vectors.iter must be positive (got %d, %d, %d)", c.Vectors.Dim, c.Vectors.Window, c.Vectors.Iter)
	case c.Vectors.MinCount < 0:
		return bad("vectors.min_count must not be negative (got %d)", c.Vectors.MinCount)
	}

	switch c.Vectors.Model {
	case "skipgram", "cbow":
	default:
		return bad("vectors.model must be skipgram or cbow (got %q)", c.Vectors.Model)
	}

	switch c.Preprocessing.Lemmatizer {
	case "morphy", "porter", "none":
	default:
		return bad("preprocessing.lemmatizer must be morphy, porter or none (got %q)", c.Preprocessing.Lemmatizer)
	}
	return nil
}

// WriteSampleConfig - put a params.yaml with the default values at path unless something is already there
func WriteSampleConfig(path string) error {
	const (
		FAIL1 = "refusing to overwrite '%s'"
		MSG1  = "wrote sample configuration to '%s'"
	)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf(FAIL1, path)
	}
	if err := os.WriteFile(path, []byte(vv.SAMPLECONFIG), vv.WRITEPERMS); err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG1, path))
	return nil
}
