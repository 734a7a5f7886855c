//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/e-gun/speechtopics/internal/vv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

//
// FLAT FILE ARTIFACTS
//

var (
	Msg = lnch.Msg

	// ErrSchemaMismatch - an artifact lacks a column (or a key) that the next stage needs
	ErrSchemaMismatch = errors.New("schema mismatch")

	DocumentColumns  = []string{"id", "speaker", "date", "title", "speech", "decade"}
	DocTopicColumns  = []string{"document_id", "topic_index", "weight"}
	TopicColumns     = []string{"topic", "top_words", "dominant_documents", "scaled_weight"}
	TOTYearColumn    = "year"
	TOTTopicColLabel = "topic_%d"
)

const (
	DATELAYOUT = time.DateOnly
	TOKENSEP   = " "
	FLOATFMT   = 'g'
)

// Path - where an artifact lives inside the data folder
func Path(dir, artifact string) string {
	return filepath.Join(dir, artifact)
}

// EnsureDir - create the data folder if need be
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, vv.READPERMS)
}

// header - map each required column to its position; a missing column is fatal
func header(r *csv.Reader, want []string, what string) (map[string]int, error) {
	hdr, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", what, err)
	}
	idx := make(map[string]int, len(hdr))
	for i, h := range hdr {
		idx[strings.TrimSpace(h)] = i
	}
	for _, w := range want {
		if _, ok := idx[w]; !ok {
			return nil, fmt.Errorf("%w: %s lacks column '%s'", ErrSchemaMismatch, what, w)
		}
	}
	return idx, nil
}

//
// SPEECHES (JSON)
//

func WriteSpeeches(w io.Writer, ss []str.Speech) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", vv.JSONINDENT)
	return enc.Encode(ss)
}

func ReadSpeeches(r io.Reader) ([]str.Speech, error) {
	var ss []str.Speech
	if err := json.NewDecoder(r).Decode(&ss); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrSchemaMismatch, vv.ARTSPEECHES, err.Error())
	}
	for i, s := range ss {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: %s record %d has no id", ErrSchemaMismatch, vv.ARTSPEECHES, i)
		}
	}
	return ss, nil
}

//
// DOCUMENTS (CSV)
//

// WriteDocuments - {id, speaker, date, title, speech, decade}; tokens are space-joined and an empty document has an empty speech cell
func WriteDocuments(w io.Writer, docs []str.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DocumentColumns); err != nil {
		return err
	}
	for _, d := range docs {
		rec := []string{
			d.ID,
			d.Speaker,
			d.Date.Format(DATELAYOUT),
			d.Title,
			strings.Join(d.Tokens, TOKENSEP),
			strconv.Itoa(d.Decade),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadDocuments(r io.Reader) ([]str.Document, error) {
	const (
		FAIL = "%w: %s line %d: %s"
	)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	idx, err := header(cr, DocumentColumns, vv.ARTDOCUMENTS)
	if err != nil {
		return nil, err
	}

	var docs []str.Document
	line := 1
	for {
		rec, e := cr.Read()
		if errors.Is(e, io.EOF) {
			break
		}
		if e != nil {
			return nil, e
		}
		line++
		if len(rec) < len(idx) {
			return nil, fmt.Errorf(FAIL, ErrSchemaMismatch, vv.ARTDOCUMENTS, line, "short record")
		}

		when, e := time.Parse(DATELAYOUT, rec[idx["date"]])
		if e != nil {
			return nil, fmt.Errorf(FAIL, ErrSchemaMismatch, vv.ARTDOCUMENTS, line, e.Error())
		}
		dec, e := strconv.Atoi(rec[idx["decade"]])
		if e != nil {
			return nil, fmt.Errorf(FAIL, ErrSchemaMismatch, vv.ARTDOCUMENTS, line, e.Error())
		}

		d := str.Document{
			ID:      rec[idx["id"]],
			Speaker: rec[idx["speaker"]],
			Date:    when,
			Title:   rec[idx["title"]],
			Decade:  dec,
			Tokens:  strings.Fields(rec[idx["speech"]]),
		}
		d.Empty = len(d.Tokens) == 0
		if d.Tokens == nil {
			d.Tokens = []string{}
		}
		docs = append(docs, d)
	}
	return docs, nil
}

//
// DOCUMENT TOPICS (CSV, long form)
//

func WriteDocTopics(w io.Writer, tas []str.TopicAssignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DocTopicColumns); err != nil {
		return err
	}
	for _, ta := range tas {
		for _, p := range ta.Pairs {
			rec := []string{ta.DocumentID, strconv.Itoa(p.Topic), strconv.FormatFloat(p.Weight, FLOATFMT, -1, 64)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadDocTopics - regroup the long form by document, keeping first-appearance order
func ReadDocTopics(r io.Reader) ([]str.TopicAssignment, error) {
	const (
		FAIL = "%w: %s line %d: %s"
	)
	cr := csv.NewReader(r)
	idx, err := header(cr, DocTopicColumns, vv.ARTDOCTOPICS)
	if err != nil {
		return nil, err
	}

	var out []str.TopicAssignment
	where := make(map[string]int)
	line := 1
	for {
		rec, e := cr.Read()
		if errors.Is(e, io.EOF) {
			break
		}
		if e != nil {
			return nil, e
		}
		line++

		id := rec[idx["document_id"]]
		topic, e := strconv.Atoi(rec[idx["topic_index"]])
		if e != nil {
			return nil, fmt.Errorf(FAIL, ErrSchemaMismatch, vv.ARTDOCTOPICS, line, e.Error())
		}
		wt, e := strconv.ParseFloat(rec[idx["weight"]], 64)
		if e != nil {
			return nil, fmt.Errorf(FAIL, ErrSchemaMismatch, vv.ARTDOCTOPICS, line, e.Error())
		}

		i, ok := where[id]
		if !ok {
			i = len(out)
			where[id] = i
			out = append(out, str.TopicAssignment{DocumentID: id})
		}
		out[i].Pairs = append(out[i].Pairs, str.TopicPair{Topic: topic, Weight: wt})
	}
	return out, nil
}

//
// TOPICS OVER TIME (CSV, wide form)
//

// TOTHeader - year, topic_1 ... topic_K
func TOTHeader(k int) []string {
	h := []string{TOTYearColumn}
	for i := 1; i <= k; i++ {
		h = append(h, fmt.Sprintf(TOTTopicColLabel, i))
	}
	return h
}

func WriteTopicsOverTime(w io.Writer, pp []str.YearlyTopicProfile, k int) error {
	const (
		FAIL = "year %d has %d means; expected %d"
	)
	cw := csv.NewWriter(w)
	if err := cw.Write(TOTHeader(k)); err != nil {
		return err
	}
	for _, p := range pp {
		if len(p.Means) != k {
			return fmt.Errorf(FAIL, p.Year, len(p.Means), k)
		}
		rec := []string{strconv.Itoa(p.Year)}
		for _, m := range p.Means {
			rec = append(rec, strconv.FormatFloat(m, FLOATFMT, -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTopicsOverTime - k comes from the header; the csv does not carry document counts
func ReadTopicsOverTime(r io.Reader) ([]str.YearlyTopicProfile, int, error) {
	cr := csv.NewReader(r)
	hdr, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: reading header: %w", vv.ARTTOT, err)
	}
	if len(hdr) < 2 || hdr[0] != TOTYearColumn {
		return nil, 0, fmt.Errorf("%w: %s header is %v", ErrSchemaMismatch, vv.ARTTOT, hdr)
	}
	k := len(hdr) - 1
	want := TOTHeader(k)
	for i := range want {
		if hdr[i] != want[i] {
			return nil, 0, fmt.Errorf("%w: %s column %d is '%s', expected '%s'", ErrSchemaMismatch, vv.ARTTOT, i, hdr[i], want[i])
		}
	}

	var pp []str.YearlyTopicProfile
	for {
		rec, e := cr.Read()
		if errors.Is(e, io.EOF) {
			break
		}
		if e != nil {
			return nil, 0, e
		}
		y, e := strconv.Atoi(rec[0])
		if e != nil {
			return nil, 0, fmt.Errorf("%w: %s: %s", ErrSchemaMismatch, vv.ARTTOT, e.Error())
		}
		p := str.YearlyTopicProfile{Year: y, Means: make([]float64, k)}
		for i := 0; i < k; i++ {
			if p.Means[i], e = strconv.ParseFloat(rec[i+1], 64); e != nil {
				return nil, 0, fmt.Errorf("%w: %s: %s", ErrSchemaMismatch, vv.ARTTOT, e.Error())
			}
		}
		pp = append(pp, p)
	}
	return pp, k, nil
}

//
// TOPIC SUMMARIES (CSV)
//

func WriteTopics(w io.Writer, ss []str.TopicSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TopicColumns); err != nil {
		return err
	}
	for _, s := range ss {
		rec := []string{
			fmt.Sprintf(TOTTopicColLabel, s.Topic+1),
			strings.Join(s.Words, TOKENSEP),
			strconv.Itoa(s.Dominant),
			strconv.FormatFloat(s.Weight, 'f', 4, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

//
// FILE HELPERS
//

// WriteFile - create dir/artifact and hand the writer to fn
func WriteFile(dir, artifact string, fn func(io.Writer) error) error {
	const (
		MSG = "wrote '%s'"
	)
	if err := EnsureDir(dir); err != nil {
		return err
	}
	p := Path(dir, artifact)
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err = fn(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", p, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	Msg.FYI(fmt.Sprintf(MSG, p))
	return nil
}

// ReadFile - open dir/artifact and hand the reader to fn
func ReadFile(dir, artifact string, fn func(io.Reader) error) error {
	p := Path(dir, artifact)
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = fn(f); err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	return nil
}
