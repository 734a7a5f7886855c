//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"fmt"
	"github.com/e-gun/speechtopics/internal/gen"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/str"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"sort"
)

var Msg = lnch.Msg

// Report - what happened to the speeches on the way to becoming documents
type Report struct {
	Speeches  int
	Kept      int
	Empty     int
	Tokens    int
	DroppedBy map[string]int
}

func (r Report) Dropped() int {
	t := 0
	for _, v := range r.DroppedBy {
		t += v
	}
	return t
}

func (r Report) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d speeches ==> %d documents (%d dropped by language; %d empty); %d tokens",
		r.Speeches, r.Kept, r.Dropped(), r.Empty, r.Tokens)
}

// Cleaner - the reusable parts of Clean: stopwords, punctuation, lemmatizer, language detector
type Cleaner struct {
	stops map[string]struct{}
	punct map[string]struct{}
	lemm  Lemmatizer
	det   *Detector
	keep  map[string]struct{}
}

func NewCleaner(cfg str.Preprocessing) (*Cleaner, error) {
	const (
		FAIL = "cannot build cleaner: %w"
	)

	stops, err := BuildStopSet(cfg.Languages, cfg.Stopwords)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	lemm, err := NewLemmatizer(cfg.Lemmatizer)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	det, err := DefaultDetector()
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	keep := make(map[string]struct{})
	for _, k := range cfg.KeepLanguages {
		c, e := LanguageCode(k)
		if e != nil {
			return nil, fmt.Errorf(FAIL, e)
		}
		keep[c] = struct{}{}
	}

	return &Cleaner{
		stops: stops,
		punct: gen.ToSet(cfg.Punctuation),
		lemm:  lemm,
		det:   det,
		keep:  keep,
	}, nil
}

// Tokens - lemmatize and filter already tokenized text
func (c *Cleaner) Tokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, w := range tokens {
		if c.isstop(w) {
			continue
		}
		l := c.lemm.Lemma(w)
		if c.isstop(l) || gen.IsAllPunct(l, c.punct) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (c *Cleaner) isstop(w string) bool {
	_, ok := c.stops[w]
	return ok
}

// Keep - is this language one we model?
func (c *Cleaner) Keep(code string) bool {
	if len(c.keep) == 0 {
		return true
	}
	_, ok := c.keep[code]
	return ok
}

// Clean - speeches ==> documents: tokenize, drop non-English, lemmatize, strip stopwords and punctuation, tag the decade
func Clean(speeches []str.Speech, cfg str.Preprocessing) ([]str.Document, Report, error) {
	const (
		MSG1 = "dropping %s: detected language '%s'"
		MSG2 = "%s ('%s') has no tokens left after cleaning"
	)

	rep := Report{Speeches: len(speeches), DroppedBy: make(map[string]int)}

	c, err := NewCleaner(cfg)
	if err != nil {
		return nil, rep, err
	}

	docs := make([]str.Document, 0, len(speeches))
	for _, s := range speeches {
		raw := Tokenize(s.Speech)

		lang := c.det.Detect(raw)
		if !c.Keep(lang) {
			Msg.PEEK(fmt.Sprintf(MSG1, s.ID, lang))
			rep.DroppedBy[lang]++
			continue
		}

		d := str.Document{
			ID:      s.ID,
			Speaker: s.Speaker,
			Date:    s.Date,
			Title:   s.Title,
			Decade:  Decade(s.Date.Year()),
			Tokens:  c.Tokens(raw),
		}
		if len(d.Tokens) == 0 {
			d.Empty = true
			rep.Empty++
			Msg.NOTE(fmt.Sprintf(MSG2, d.ID, d.Title))
		}
		rep.Tokens += len(d.Tokens)
		docs = append(docs, d)
	}
	rep.Kept = len(docs)

	Msg.NOTE(rep.String())
	return docs, rep, nil
}

// Decade - 1994 ==> 1990
func Decade(year int) int {
	return year / 10 * 10
}

// Describe - the n most frequent tokens across the corpus
func Describe(docs []str.Document, n int) []str.TermCount {
	counts := make(map[string]int)
	for _, d := range docs {
		for _, w := range d.Tokens {
			counts[w]++
		}
	}

	tc := make(str.TCList, 0, len(counts))
	for w, ct := range counts {
		tc = append(tc, str.TermCount{Term: w, Count: ct})
	}
	sort.Sort(tc)

	if n > 0 && n < len(tc) {
		tc = tc[:n]
	}
	return tc
}
