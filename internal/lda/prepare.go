//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"errors"
	"fmt"
	"github.com/e-gun/speechtopics/internal/gen"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/prep"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/vv"
)

var (
	Msg = lnch.Msg

	// ErrEmptyCorpus - nothing survived to be modeled
	ErrEmptyCorpus = errors.New("empty corpus")
)

// Prepared - what the model is fit on: the surviving documents, their bags of words, and the dictionary behind them
type Prepared struct {
	DocIDs []string
	Docs   [][]string
	Dict   *Dictionary
	Corpus Corpus
}

// Prepare - documents ==> bigrams ==> dictionary ==> corpus; empty documents are set aside
func Prepare(docs []str.Document, pre str.Preprocessing, ph str.PhraseConf) (*Prepared, error) {
	const (
		MSG1 = "%s is empty and will not be modeled"
		MSG2 = "%s has nothing left after dictionary pruning and will not be modeled"
		MSG3 = "phrases: %d documents gained %d bigram tokens"
		MSG4 = "dictionary: %d tokens before pruning; %d after (df min %d; max %.2f)"
		MSG5 = "corpus: %d documents x %d terms; %d non-zero"
	)

	// [a] set aside the empties

	var ids []string
	var toks [][]string
	for _, d := range docs {
		if d.Empty || len(d.Tokens) == 0 {
			Msg.NOTE(fmt.Sprintf(MSG1, d.ID))
			continue
		}
		ids = append(ids, d.ID)
		toks = append(toks, d.Tokens)
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: every document is empty", ErrEmptyCorpus)
	}

	// [b] bigrams

	phr := NewPhrases(ph.MinCount, ph.Threshold, vv.PHRASEDELIM)
	phr.Learn(toks)
	withbigrams := phr.AppendBigrams(toks)

	added := 0
	for i := range withbigrams {
		added += len(withbigrams[i]) - len(toks[i])
	}
	Msg.FYI(fmt.Sprintf(MSG3, len(toks), added))

	// [c] dictionary: stopwords out, then the document frequency bounds

	dict := NewDictionary()
	dict.AddDocuments(withbigrams)
	before := dict.Len()

	stops, err := prep.BuildStopSet(pre.Languages, pre.Stopwords)
	if err != nil {
		return nil, err
	}
	dict.FilterTokens(gen.StringMapKeysIntoSlice(stops))
	dict.FilterExtremes(pre.DF.Min, pre.DF.Max)
	Msg.FYI(fmt.Sprintf(MSG4, before, dict.Len(), pre.DF.Min, pre.DF.Max))

	if dict.Len() == 0 {
		return nil, fmt.Errorf("%w: the dictionary is empty after pruning", ErrEmptyCorpus)
	}

	// [d] corpus

	p := &Prepared{Dict: dict, Corpus: Corpus{NumTerms: dict.Len()}}
	for i := range withbigrams {
		bow := dict.Doc2Bow(withbigrams[i])
		if len(bow) == 0 {
			Msg.NOTE(fmt.Sprintf(MSG2, ids[i]))
			continue
		}
		p.DocIDs = append(p.DocIDs, ids[i])
		p.Docs = append(p.Docs, withbigrams[i])
		p.Corpus.Bows = append(p.Corpus.Bows, bow)
	}

	if p.Corpus.NumDocs() == 0 {
		return nil, fmt.Errorf("%w: no document has a token in the dictionary", ErrEmptyCorpus)
	}

	Msg.FYI(fmt.Sprintf(MSG5, p.Corpus.NumDocs(), p.Corpus.NumTerms, p.Corpus.NNZ()))
	return p, nil
}
