//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"fmt"
	"github.com/blevesearch/go-porterstemmer"
	"strings"
)

//
// LEMMATIZERS
//

type Lemmatizer interface {
	Lemma(w string) string
}

// NewLemmatizer - "morphy", "porter", or "none"
func NewLemmatizer(name string) (Lemmatizer, error) {
	switch name {
	case "morphy", "":
		return NewMorphy(), nil
	case "porter":
		return Porter{}, nil
	case "none":
		return Identity{}, nil
	default:
		return nil, fmt.Errorf("unknown lemmatizer '%s'", name)
	}
}

type Identity struct{}

func (Identity) Lemma(w string) string { return w }

// Porter - stems rather than lemmatizes: "refugees" ==> "refuge"
type Porter struct{}

func (Porter) Lemma(w string) string {
	return porterstemmer.StemString(w)
}

// Morphy - noun-only lemmatization after the wordnet fashion: an exceptions table and then detachment rules
type Morphy struct {
	exc  map[string]string
	keep []string
}

var (
	morphyexceptions = map[string]string{
		"children": "child", "men": "man", "women": "woman", "feet": "foot", "teeth": "tooth",
		"mice": "mouse", "geese": "goose", "data": "datum", "crises": "crisis", "analyses": "analysis",
		"bases": "basis", "theses": "thesis", "criteria": "criterion", "phenomena": "phenomenon",
		"lives": "life", "wives": "wife", "knives": "knife", "leaves": "leaf", "halves": "half",
		"selves": "self", "thieves": "thief", "shelves": "shelf", "wolves": "wolf", "loaves": "loaf",
		"oases": "oasis", "diagnoses": "diagnosis", "hypotheses": "hypothesis", "media": "medium",
		"indices": "index", "appendices": "appendix", "matrices": "matrix", "alumni": "alumnus",
		"chairmen": "chairman", "spokesmen": "spokesman", "series": "series", "species": "species",
		"news": "news", "people": "people",
	}
	// endings that look plural but are not
	morphykeep = []string{"ss", "us", "is", "ous", "ics", "ness"}
	// suffix ==> replacement, first hit wins
	morphyrules = [][2]string{
		{"sses", "ss"},
		{"ches", "ch"},
		{"shes", "sh"},
		{"xes", "x"},
		{"zes", "z"},
		{"ies", "y"},
		{"s", ""},
	}
)

func NewMorphy() *Morphy {
	return &Morphy{exc: morphyexceptions, keep: morphykeep}
}

func (m *Morphy) Lemma(w string) string {
	const (
		MINLEN = 4
	)
	if l, ok := m.exc[w]; ok {
		return l
	}
	if len(w) < MINLEN {
		return w
	}
	for _, k := range m.keep {
		if strings.HasSuffix(w, k) {
			return w
		}
	}
	for _, r := range morphyrules {
		if strings.HasSuffix(w, r[0]) {
			stem := strings.TrimSuffix(w, r[0])
			if len(stem) < 2 {
				return w
			}
			return stem + r[1]
		}
	}
	return w
}
