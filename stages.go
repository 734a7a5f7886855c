//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"github.com/e-gun/speechtopics/internal/ingest"
	"github.com/e-gun/speechtopics/internal/lda"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/prep"
	"github.com/e-gun/speechtopics/internal/store"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/tot"
	"github.com/e-gun/speechtopics/internal/vec"
	"github.com/e-gun/speechtopics/internal/vv"
	"io"
	"os"
	"strings"
	"time"
)

var Msg = lnch.Msg

// modeled - what the model stage hands to aggregate
type modeled struct {
	K           int
	Assignments []str.TopicAssignment
}

// withmirror - run fn against the sqlite mirror if one is configured
func withmirror(ctx context.Context, cfg str.CurrentConfiguration, fn func(m *store.Mirror) error) error {
	if cfg.Store.SQLite == "" {
		return nil
	}
	m, err := store.OpenMirror(cfg.Store.SQLite)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

//
// INGEST
//

func stageingest(ctx context.Context, cfg str.CurrentConfiguration) ([]str.Speech, error) {
	const (
		FAIL = "ingest: %w"
		MSG  = "ingest: %d speeches"
	)
	start := time.Now()

	f, err := os.Open(cfg.Ingest.Input)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}
	raws, err := ingest.Read(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	ss, err := ingest.Run(raws, cfg.Ingest)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	err = store.WriteFile(cfg.Paths.Data, vv.ARTSPEECHES, func(w io.Writer) error { return store.WriteSpeeches(w, ss) })
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}
	err = withmirror(ctx, cfg, func(m *store.Mirror) error { return m.WriteSpeeches(ctx, ss) })
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	Msg.Timer("I", fmt.Sprintf(MSG, len(ss)), start, start)
	return ss, nil
}

//
// CLEAN
//

func loadspeeches(cfg str.CurrentConfiguration) ([]str.Speech, error) {
	var ss []str.Speech
	err := store.ReadFile(cfg.Paths.Data, vv.ARTSPEECHES, func(r io.Reader) error {
		var e error
		ss, e = store.ReadSpeeches(r)
		return e
	})
	return ss, err
}

func stageclean(ctx context.Context, cfg str.CurrentConfiguration, ss []str.Speech) ([]str.Document, error) {
	const (
		FAIL = "clean: %w"
	)
	start := time.Now()

	docs, rep, err := prep.Clean(ss, cfg.Preprocessing)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	err = store.WriteFile(cfg.Paths.Data, vv.ARTDOCUMENTS, func(w io.Writer) error { return store.WriteDocuments(w, docs) })
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}
	err = withmirror(ctx, cfg, func(m *store.Mirror) error { return m.WriteDocuments(ctx, docs) })
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	Msg.Timer("C", "clean: "+rep.String(), start, start)
	return docs, nil
}

//
// MODEL
//

func loaddocuments(cfg str.CurrentConfiguration) ([]str.Document, error) {
	var docs []str.Document
	err := store.ReadFile(cfg.Paths.Data, vv.ARTDOCUMENTS, func(r io.Reader) error {
		var e error
		docs, e = store.ReadDocuments(r)
		return e
	})
	return docs, err
}

func stagemodel(ctx context.Context, cfg str.CurrentConfiguration, docs []str.Document) (modeled, error) {
	const (
		FAIL = "model: %w"
		MSG1 = "model: %d documents, %d terms, %d nonzero counts"
		MSG2 = "model: %d topics fitted"
		MSG3 = "C4%sC0 [%d docs] %s"
	)
	start := time.Now()
	var out modeled
	dir := cfg.Paths.Data

	// [a] phrases, dictionary, bags of words
	p, err := lda.Prepare(docs, cfg.Preprocessing, cfg.Phrases)
	if err != nil {
		return out, fmt.Errorf(FAIL, err)
	}
	Msg.NOTE(fmt.Sprintf(MSG1, p.Corpus.NumDocs(), p.Corpus.NumTerms, p.Corpus.NNZ()))

	if err = store.WriteFile(dir, vv.ARTDICT, p.Dict.WriteText); err != nil {
		return out, fmt.Errorf(FAIL, err)
	}
	if err = store.WriteFile(dir, vv.ARTCORPUS, p.Corpus.WriteMatrixMarket); err != nil {
		return out, fmt.Errorf(FAIL, err)
	}
	previous := time.Now()
	Msg.Timer("M1", "model: corpus prepared", start, start)

	// [b] fit
	model, err := lda.Fit(p, cfg.LDA)
	if err != nil {
		return out, fmt.Errorf(FAIL, err)
	}
	Msg.Timer("M2", fmt.Sprintf(MSG2, model.K), start, previous)

	// [c] persist
	if err = store.EnsureDir(dir); err != nil {
		return out, fmt.Errorf(FAIL, err)
	}
	if err = model.Save(dir); err != nil {
		return out, fmt.Errorf(FAIL, err)
	}

	tas := model.DocumentTopics(cfg.LDA.MinProb)
	sums := model.Summaries(cfg.LDA.TopWords)
	for _, s := range sums {
		Msg.NOTE(Msg.Color(fmt.Sprintf(MSG3, lda.TopicLabels(model.K)[s.Topic], s.Dominant, strings.Join(s.Words, ", "))))
	}

	if err = store.WriteFile(dir, vv.ARTDOCTOPICS, func(w io.Writer) error { return store.WriteDocTopics(w, tas) }); err != nil {
		return out, fmt.Errorf(FAIL, err)
	}
	if err = store.WriteFile(dir, vv.ARTTOPICS, func(w io.Writer) error { return store.WriteTopics(w, sums) }); err != nil {
		return out, fmt.Errorf(FAIL, err)
	}
	err = withmirror(ctx, cfg, func(m *store.Mirror) error {
		if e := m.WriteDocTopics(ctx, tas); e != nil {
			return e
		}
		return m.WriteTopics(ctx, sums)
	})
	if err != nil {
		return out, fmt.Errorf(FAIL, err)
	}

	out.K = model.K
	out.Assignments = tas
	Msg.Timer("M3", "model: artifacts written", start, time.Now())
	return out, nil
}

//
// AGGREGATE
//

// loadmodeled - k comes from the saved model; the assignments from doc_topics.csv
func loadmodeled(cfg str.CurrentConfiguration) (modeled, error) {
	var out modeled
	model, err := lda.Load(cfg.Paths.Data)
	if err != nil {
		return out, err
	}
	out.K = model.K
	err = store.ReadFile(cfg.Paths.Data, vv.ARTDOCTOPICS, func(r io.Reader) error {
		var e error
		out.Assignments, e = store.ReadDocTopics(r)
		return e
	})
	return out, err
}

func stageaggregate(ctx context.Context, cfg str.CurrentConfiguration, docs []str.Document, md modeled) ([]str.YearlyTopicProfile, error) {
	const (
		FAIL = "aggregate: %w"
		MSG  = "aggregate: %d years"
	)
	start := time.Now()
	dir := cfg.Paths.Data

	pp, err := tot.Aggregate(docs, md.Assignments, md.K, cfg.Aggregate)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	if err = store.WriteFile(dir, vv.ARTTOT, func(w io.Writer) error { return store.WriteTopicsOverTime(w, pp, md.K) }); err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}
	if err = store.WriteTopicsOverTimeXLSX(store.Path(dir, vv.ARTTOTXLSX), pp, md.K); err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}
	if err = store.WriteFile(dir, vv.ARTTOTHTML, func(w io.Writer) error { return vec.Chart(pp, md.K, w) }); err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}
	err = withmirror(ctx, cfg, func(m *store.Mirror) error { return m.WriteTopicsOverTime(ctx, pp) })
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	Msg.Timer("A", fmt.Sprintf(MSG, len(pp)), start, start)
	return pp, nil
}
