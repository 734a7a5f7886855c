//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// CurrentConfiguration - everything a stage needs to know; loaded from params.yaml and then adjusted by env and flags
type CurrentConfiguration struct {
	Preprocessing Preprocessing `yaml:"preprocessing"`
	Phrases       PhraseConf    `yaml:"phrases"`
	LDA           LDAConf       `yaml:"lda"`
	Ingest        IngestConf    `yaml:"ingest"`
	Aggregate     AggConf       `yaml:"aggregate"`
	Paths         PathConf      `yaml:"paths"`
	Store         StoreConf     `yaml:"store"`
	Vectors       VecConf       `yaml:"vectors"`
	LogLevel      int           `yaml:"loglevel"`
	BlackAndWhite bool          `yaml:"blackandwhite"`
	ProfileCPU    bool          `yaml:"-"`
	ProfileMEM    bool          `yaml:"-"`
}

type Preprocessing struct {
	Punctuation   []string `yaml:"punctuation"`
	Stopwords     []string `yaml:"stopwords"`
	DF            DFBounds `yaml:"df"`
	Languages     []string `yaml:"languages"`
	KeepLanguages []string `yaml:"keep_languages"`
	Lemmatizer    string   `yaml:"lemmatizer"`
}

// DFBounds - gensim's filter_extremes(no_below=Min, no_above=Max)
type DFBounds struct {
	Min int     `yaml:"min"`
	Max float64 `yaml:"max"`
}

type PhraseConf struct {
	MinCount  int     `yaml:"min_count"`
	Threshold float64 `yaml:"threshold"`
}

type LDAConf struct {
	NumTopics  int     `yaml:"num_topics"`
	Passes     int     `yaml:"passes"`
	Iterations int     `yaml:"iterations"`
	Seed       int64   `yaml:"seed"`
	MinProb    float64 `yaml:"minimum_probability"`
	TopWords   int     `yaml:"top_words"`
}

type IngestConf struct {
	Input         string `yaml:"input"`
	SkipMalformed bool   `yaml:"skip_malformed"`
}

type AggConf struct {
	Strict    bool    `yaml:"strict"`
	Tolerance float64 `yaml:"tolerance"`
}

type PathConf struct {
	Data string `yaml:"data"`
}

type StoreConf struct {
	SQLite string `yaml:"sqlite"`
}

// VecConf - the word2vec knobs exposed to the user; everything else stays at the package defaults
type VecConf struct {
	Dim      int    `yaml:"dim"`
	Window   int    `yaml:"window"`
	Iter     int    `yaml:"iter"`
	MinCount int    `yaml:"min_count"`
	Model    string `yaml:"model"`
}
