//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"encoding/json"
	"fmt"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/vv"
	"gonum.org/v1/gonum/mat"
	"os"
	"path/filepath"
	"time"
)

// modelmeta - the JSON sidecar that makes the binary topic-word matrix readable
type modelmeta struct {
	Version string      `json:"version"`
	K       int         `json:"num_topics"`
	Vocab   []string    `json:"vocab"`
	DocIDs  []string    `json:"document_ids"`
	Params  str.LDAConf `json:"params"`
	Fitted  time.Time   `json:"fitted"`
	Topics  []string    `json:"topic_labels"`
}

// Save - lda_model (gonum binary, K x vocab) and lda_model.json into dir
func (m *Model) Save(dir string) error {
	const (
		FAIL1 = "saving model: %w"
	)

	bin, err := m.TopicWords.MarshalBinary()
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	if err = os.WriteFile(filepath.Join(dir, vv.ARTMODEL), bin, vv.WRITEPERMS); err != nil {
		return fmt.Errorf(FAIL1, err)
	}

	meta := modelmeta{
		Version: vv.VERSION,
		K:       m.K,
		Vocab:   m.Vocab,
		DocIDs:  m.DocIDs,
		Params:  m.Params,
		Fitted:  m.Fitted,
		Topics:  TopicLabels(m.K),
	}
	js, err := json.MarshalIndent(meta, "", vv.JSONINDENT)
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	if err = os.WriteFile(filepath.Join(dir, vv.ARTMODELMETA), js, vv.WRITEPERMS); err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	return nil
}

// Load - the inverse of Save; DocTopics is not persisted here and comes back nil
func Load(dir string) (*Model, error) {
	const (
		FAIL1 = "loading model: %w"
		FAIL2 = "loading model: matrix is %d x %d but the sidecar says %d x %d"
	)

	js, err := os.ReadFile(filepath.Join(dir, vv.ARTMODELMETA))
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	var meta modelmeta
	if err = json.Unmarshal(js, &meta); err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	bin, err := os.ReadFile(filepath.Join(dir, vv.ARTMODEL))
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	var tw mat.Dense
	if err = tw.UnmarshalBinary(bin); err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	r, c := tw.Dims()
	if r != meta.K || c != len(meta.Vocab) {
		return nil, fmt.Errorf(FAIL2, r, c, meta.K, len(meta.Vocab))
	}

	return &Model{
		K:          meta.K,
		Vocab:      meta.Vocab,
		DocIDs:     meta.DocIDs,
		TopicWords: &tw,
		Params:     meta.Params,
		Fitted:     meta.Fitted,
	}, nil
}

// TopicLabels - "topic_1" ... "topic_K"
func TopicLabels(k int) []string {
	ll := make([]string, k)
	for i := range ll {
		ll[i] = fmt.Sprintf("topic_%d", i+1)
	}
	return ll
}
