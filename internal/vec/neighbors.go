//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/model"
	"github.com/e-gun/wego/pkg/model/modelutil/vector"
	"github.com/e-gun/wego/pkg/model/word2vec"
	"github.com/e-gun/wego/pkg/search"
	"strings"
	"time"
)

var Msg = lnch.Msg

var (
	ErrNoText      = errors.New("no tokens to train on")
	ErrUnknownTerm = errors.New("term is not in the trained vocabulary")
)

// W2VOptions - the defaults under str.VecConf; training stays on one goroutine
// NB: neighbors do not repeat from run to run: word2vec.Train() draws its initial vectors from an unseeded rand
var W2VOptions = word2vec.Options{
	BatchSize:          1024,
	Dim:                100,
	DocInMemory:        true,
	Goroutines:         1,
	Initlr:             0.025,
	Iter:               15,
	LogBatch:           100000,
	MaxCount:           -1,
	MaxDepth:           150,
	MinCount:           5,
	MinLR:              0.0000025,
	ModelType:          "skipgram",
	NegativeSampleSize: 5,
	OptimizerType:      "hs",
	SubsampleThreshold: 0.001,
	ToLower:            false,
	UpdateLRBatch:      100000,
	Verbose:            false,
	Window:             8,
}

// Options - W2VOptions adjusted by the "vectors" section of params.yaml
func Options(vc str.VecConf) word2vec.Options {
	o := W2VOptions
	if vc.Dim > 0 {
		o.Dim = vc.Dim
	}
	if vc.Window > 0 {
		o.Window = vc.Window
	}
	if vc.Iter > 0 {
		o.Iter = vc.Iter
	}
	if vc.MinCount > 0 {
		o.MinCount = vc.MinCount
	}
	switch vc.Model {
	case "cbow":
		o.ModelType = "cbow"
	case "skipgram":
		o.ModelType = "skipgram"
	}
	return o
}

func configured() word2vec.Options {
	if lnch.Config == nil {
		return W2VOptions
	}
	return Options(lnch.Config.Vectors)
}

// Neighbor - one row of a nearest neighbors list
type Neighbor struct {
	Rank       int
	Word       string
	Similarity float64
}

// TextBlock - the non-empty documents as one line each
func TextBlock(docs []str.Document) string {
	var sb strings.Builder
	for _, d := range docs {
		if d.Empty || len(d.Tokens) == 0 {
			continue
		}
		sb.WriteString(strings.Join(d.Tokens, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Occurrences - how many times term turns up in the non-empty documents
func Occurrences(docs []str.Document, term string) int {
	ct := 0
	for _, d := range docs {
		if d.Empty {
			continue
		}
		for _, t := range d.Tokens {
			if t == term {
				ct++
			}
		}
	}
	return ct
}

// train - word2vec.Train() ends by handing a halt signal to Reporter(), so the reporter has to be running and drained
func train(m model.Model, txt string, iter int) error {
	const (
		MSG1 = "word2vec pass %d of %d"
	)

	finished := make(chan error)

	// .Train() but do not block; so we can also .Reporter()
	go func() {
		// input for Train() is an io.ReadSeeker
		finished <- m.Train(bytes.NewReader([]byte(txt)))
	}()

	ct := make(chan int)
	rep := make(chan string)
	done := make(chan bool)
	go m.Reporter(ct, rep)

	getreport := func() {
		last := 0
		for {
			select {
			case i := <-ct:
				if i != last {
					last = i
					Msg.TMI(fmt.Sprintf(MSG1, i, iter))
				}
			case <-rep:
			case <-done:
				return
			}
		}
	}

	go getreport()

	err := <-finished
	close(done)
	return err
}

// Neighbors - train word2vec over the cleaned documents and report the n terms closest to term
func Neighbors(docs []str.Document, term string, n int) ([]Neighbor, error) {
	const (
		FAIL1 = "word2vec.NewForOptions(): %w"
		FAIL2 = "word2vec.Train(): %w"
		FAIL3 = "saving the vectors: %w"
		FAIL4 = "embedding.Load(): %w"
		FAIL5 = "%w: '%s'"
		MSG1  = "training word2vec on %d tokens"
		MSG2  = "%d neighbors of '%s'"
	)

	start := time.Now()
	if n < vv.VECTORNEIGHBORSMIN {
		n = vv.VECTORNEIGHBORSMIN
	}
	if n > vv.VECTORNEIGHBORSMAX {
		n = vv.VECTORNEIGHBORSMAX
	}

	// [a] flatten the corpus
	txt := TextBlock(docs)
	if txt == "" {
		return nil, ErrNoText
	}

	// a term below min_count never makes it into the vocabulary: no need to train to find that out
	opts := configured()
	if Occurrences(docs, term) < max(opts.MinCount, 1) {
		return nil, fmt.Errorf(FAIL5, ErrUnknownTerm, term)
	}
	Msg.FYI(fmt.Sprintf(MSG1, len(strings.Fields(txt))))

	// [b] train
	vmodel, err := word2vec.NewForOptions(opts)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	if err = train(vmodel, txt, opts.Iter); err != nil {
		return nil, fmt.Errorf(FAIL2, err)
	}

	// [c] skip the disk: save to a buffer and load the embeddings back out of it
	var buf bytes.Buffer
	if err = vmodel.Save(&buf, vector.Agg); err != nil {
		return nil, fmt.Errorf(FAIL3, err)
	}
	embs, err := embedding.Load(&buf)
	if err != nil {
		return nil, fmt.Errorf(FAIL4, err)
	}

	// [d] search
	if len(embs) == 0 {
		return nil, fmt.Errorf(FAIL4, ErrNoText)
	}
	known := false
	for _, e := range embs {
		if e.Word == term {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf(FAIL5, ErrUnknownTerm, term)
	}

	searcher, err := search.New(embs...)
	if err != nil {
		return nil, err
	}
	nn, err := searcher.SearchInternal(term, n)
	if err != nil {
		return nil, err
	}

	res := make([]Neighbor, len(nn))
	for i, x := range nn {
		res[i] = Neighbor{Rank: int(x.Rank), Word: x.Word, Similarity: x.Similarity}
	}

	Msg.Timer("N", fmt.Sprintf(MSG2, len(res), term), start, start)
	return res, nil
}
