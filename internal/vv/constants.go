//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MYNAME    = "Speech Topics"
	SHORTNAME = "STP"
	VERSION   = "0.3.1"
	CLINAME   = "speechtopics"

	BLACKANDWHITE     = false
	CONFIGDEFAULT     = "params.yaml"
	DEFAULTDATAFOLDER = "data"
	DEFAULTINPUT      = "UNHCR speeches/speeches.json"
	DEFAULTLOGLEVEL   = 2
	JSONINDENT        = "  "
	READPERMS         = 0755
	WRITEPERMS        = 0644

	// environment overrides; a .env file in the working directory is read first
	ENVCONFIG   = "STP_CONFIG"
	ENVDATA     = "STP_DATA"
	ENVLOGLEVEL = "STP_LOGLEVEL"

	// artifact names inside the data folder
	ARTSPEECHES  = "cleaned_speeches.json"
	ARTDOCUMENTS = "documents.csv"
	ARTDICT      = "speech.dict"
	ARTCORPUS    = "speech.mm"
	ARTMODEL     = "lda_model"
	ARTMODELMETA = "lda_model.json"
	ARTDOCTOPICS = "doc_topics.csv"
	ARTTOPICS    = "topics.csv"
	ARTTOT       = "topics_over_time.csv"
	ARTTOTXLSX   = "topics_over_time.xlsx"
	ARTTOTHTML   = "topics_over_time.html"

	// cleaning defaults
	DFMIN           = 5
	DFMAX           = 0.5
	DEFAULTLEMMATIZ = "morphy"
	DESCRIBETOPN    = 30

	// phrase detection defaults: gensim.models.Phrases
	PHRASEMINCOUNT  = 20
	PHRASETHRESHOLD = 10.0
	PHRASEDELIM     = "_"

	// LDA defaults
	LDATOPICS       = 10
	LDAMAXTOPICS    = 100
	LDAPASSES       = 10
	LDAITER         = 100
	LDASEED         = 42
	LDAMINPROB      = 0.01
	LDATOPWORDS     = 8
	LDABURNINPASSES = 1
	LDACHGEVALFRQ   = 10
	LDAPERPEVALFRQ  = 10
	LDAPERPTOL      = 1e-2

	// topics over time
	TOTTOLERANCE = 0.05
	TOTCHARTWD   = "1200px"
	TOTCHARTHT   = "700px"

	// neighbors
	VECTORNEIGHBORS    = 10
	VECTORNEIGHBORSMAX = 40
	VECTORNEIGHBORSMIN = 1
	VECTORDIM          = 100
	VECTORWINDOW       = 8
	VECTORITER         = 15
	VECTORMINCOUNT     = 5
	VECTORMODEL        = "skipgram"
)

var (
	// DefaultPunctuation - the symbols stripped when no list is configured
	DefaultPunctuation = []string{".", ",", ";", ":", "!", "?", "'", "\"", "(", ")", "[", "]", "{", "}", "-", "–", "—",
		"’", "‘", "“", "”", "`", "``", "''", "...", "…", "/", "%", "&", "*", "$", "#", "@"}

	// DefaultStopLanguages - stopword lists merged into the configured stopwords; cf. nltk english+spanish+french
	DefaultStopLanguages = []string{"english", "spanish", "french"}

	// DefaultKeepLanguages - documents detected as anything else are dropped during cleaning
	DefaultKeepLanguages = []string{"en"}
)
