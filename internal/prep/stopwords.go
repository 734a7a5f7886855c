//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"fmt"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/lang/es"
	"github.com/blevesearch/bleve/v2/analysis/lang/fr"
	"github.com/e-gun/speechtopics/internal/gen"
	"strings"
	"sync"
)

//
// STOPWORDS
//

type stoplist struct {
	code string
	raw  []byte
}

var (
	// the order matters to DetectLanguage: ties go to the first entry
	stoplists = []struct {
		name string
		stoplist
	}{
		{"english", stoplist{"en", en.EnglishStopWords}},
		{"spanish", stoplist{"es", es.SpanishStopWords}},
		{"french", stoplist{"fr", fr.FrenchStopWords}},
	}

	stopcache   = make(map[string]map[string]struct{})
	stopcachemx sync.Mutex
)

// LanguageCode - "english" or "en" ==> "en"
func LanguageCode(lang string) (string, error) {
	l := strings.ToLower(strings.TrimSpace(lang))
	for _, s := range stoplists {
		if l == s.name || l == s.code {
			return s.code, nil
		}
	}
	return "", fmt.Errorf("no stopword list for language '%s'", lang)
}

// LanguageStops - the bleve stopword list for one language as a set
func LanguageStops(lang string) (map[string]struct{}, error) {
	const (
		FAIL = "could not parse the '%s' stopword list: %w"
	)

	code, err := LanguageCode(lang)
	if err != nil {
		return nil, err
	}

	stopcachemx.Lock()
	defer stopcachemx.Unlock()
	if s, ok := stopcache[code]; ok {
		return s, nil
	}

	for _, s := range stoplists {
		if s.code != code {
			continue
		}
		tm := analysis.NewTokenMap()
		if err = tm.LoadBytes(s.raw); err != nil {
			return nil, fmt.Errorf(FAIL, s.name, err)
		}
		set := make(map[string]struct{}, len(tm))
		for w := range tm {
			set[w] = struct{}{}
		}
		stopcache[code] = set
		return set, nil
	}
	return nil, fmt.Errorf("no stopword list for language '%s'", lang)
}

// BuildStopSet - the configured stopwords plus every requested language list
func BuildStopSet(langs []string, extra []string) (map[string]struct{}, error) {
	stops := gen.ToSet(lowered(extra))
	for _, l := range langs {
		ls, err := LanguageStops(l)
		if err != nil {
			return nil, err
		}
		for w := range ls {
			stops[w] = struct{}{}
		}
	}
	return stops, nil
}

func lowered(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
