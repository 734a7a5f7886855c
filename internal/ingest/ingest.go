//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/str"
	"io"
	"sort"
	"strconv"
)

var Msg = lnch.Msg

// Read - accept either a JSON array of {author, content} records or pandas' "columns" layout:
// {"author": {"0": "ogata", ...}, "content": {"0": "...", ...}}
func Read(r io.Reader) ([]str.RawSpeech, error) {
	const (
		FAIL1 = "input is neither an array of records nor a column table: %w"
		FAIL2 = "column table lacks '%s'"
		FAIL3 = "column table: bad row key '%s'"
	)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var rr []str.RawSpeech
		if err = json.Unmarshal(data, &rr); err != nil {
			return nil, fmt.Errorf(FAIL1, err)
		}
		return rr, nil
	}

	var cols map[string]map[string]string
	if err = json.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	authors, ok := cols["author"]
	if !ok {
		return nil, fmt.Errorf(FAIL2, "author")
	}
	content, ok := cols["content"]
	if !ok {
		return nil, fmt.Errorf(FAIL2, "content")
	}

	// row keys are stringified integers; keep the numeric order
	type row struct {
		n int
		k string
	}
	var rows []row
	for k := range content {
		n, e := strconv.Atoi(k)
		if e != nil {
			return nil, fmt.Errorf(FAIL3, k)
		}
		rows = append(rows, row{n, k})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].n < rows[j].n })

	rr := make([]str.RawSpeech, len(rows))
	for i, x := range rows {
		rr[i] = str.RawSpeech{Author: authors[x.k], Content: content[x.k]}
	}
	return rr, nil
}

// Run - extract every record; stop at the first bad one unless told to skip malformed records
func Run(raws []str.RawSpeech, cfg str.IngestConf) ([]str.Speech, error) {
	const (
		MSG1 = "skipping malformed record: %s"
		MSG2 = "dropped duplicate of %s (record %d)"
		MSG3 = "extracted %d speeches from %d records (%d skipped, %d duplicates)"
	)

	var (
		out     []str.Speech
		skipped int
		dupes   int
		seen    = make(map[string]struct{}, len(raws))
	)

	for i, r := range raws {
		s, err := Extract(r, i)
		if err != nil {
			var ee *ExtractionError
			if cfg.SkipMalformed && errors.As(err, &ee) {
				Msg.WARN(fmt.Sprintf(MSG1, err.Error()))
				skipped++
				continue
			}
			return nil, err
		}
		if _, ok := seen[s.ID]; ok {
			Msg.FYI(fmt.Sprintf(MSG2, s.ID, i))
			dupes++
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}

	Msg.NOTE(fmt.Sprintf(MSG3, len(out), len(raws), skipped, dupes))
	return out, nil
}
