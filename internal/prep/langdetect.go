//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"sync"
)

// Detector - guess a document's language by counting stopword hits
type Detector struct {
	codes []string
	sets  []map[string]struct{}
}

// NewDetector - english, spanish and french unless told otherwise
func NewDetector(langs ...string) (*Detector, error) {
	if len(langs) == 0 {
		for _, s := range stoplists {
			langs = append(langs, s.code)
		}
	}

	d := &Detector{}
	for _, l := range langs {
		c, err := LanguageCode(l)
		if err != nil {
			return nil, err
		}
		s, err := LanguageStops(c)
		if err != nil {
			return nil, err
		}
		d.codes = append(d.codes, c)
		d.sets = append(d.sets, s)
	}
	return d, nil
}

// Detect - the language with the most hits wins; a tie goes to whichever language was listed first
func (d *Detector) Detect(tokens []string) string {
	if len(d.codes) == 0 {
		return ""
	}
	hits := make([]int, len(d.codes))
	for _, w := range tokens {
		for i, s := range d.sets {
			if _, ok := s[w]; ok {
				hits[i]++
			}
		}
	}

	best := 0
	for i := 1; i < len(hits); i++ {
		if hits[i] > hits[best] {
			best = i
		}
	}
	return d.codes[best]
}

// DefaultDetector - the english/spanish/french detector, built once and shared; a Detector never changes after NewDetector()
var DefaultDetector = sync.OnceValues(func() (*Detector, error) {
	return NewDetector()
})

// DetectLanguage - Detect with the default detector
func DetectLanguage(tokens []string) (string, error) {
	d, err := DefaultDetector()
	if err != nil {
		return "", err
	}
	return d.Detect(tokens), nil
}
