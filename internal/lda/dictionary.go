//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"bufio"
	"fmt"
	"github.com/e-gun/speechtopics/internal/gen"
	"io"
	"sort"
	"strconv"
	"strings"
)

// BowEntry - (token id, count)
type BowEntry struct {
	ID    int
	Count int
}

// Dictionary - token <-> id plus the number of documents each token appears in
type Dictionary struct {
	Token2ID map[string]int
	DFS      map[int]int
	NumDocs  int
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		Token2ID: make(map[string]int),
		DFS:      make(map[int]int),
	}
}

// AddDocuments - a document's unseen tokens get the next ids in sorted order
func (d *Dictionary) AddDocuments(docs [][]string) {
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		var missing []string
		for _, w := range doc {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			if _, known := d.Token2ID[w]; !known {
				missing = append(missing, w)
			}
		}
		sort.Strings(missing)
		for _, w := range missing {
			d.Token2ID[w] = len(d.Token2ID)
		}
		for w := range seen {
			d.DFS[d.Token2ID[w]]++
		}
		d.NumDocs++
	}
}

func (d *Dictionary) Len() int {
	return len(d.Token2ID)
}

// ID2Token - the inverse mapping as a slice
func (d *Dictionary) ID2Token() []string {
	vocab := make([]string, len(d.Token2ID))
	for k, v := range d.Token2ID {
		vocab[v] = k
	}
	return vocab
}

// FilterTokens - drop the given tokens (unknown ones are ignored) and compactify
func (d *Dictionary) FilterTokens(tokens []string) {
	for _, t := range tokens {
		if id, ok := d.Token2ID[t]; ok {
			delete(d.Token2ID, t)
			delete(d.DFS, id)
		}
	}
	d.Compactify()
}

// FilterExtremes - keep tokens found in at least noBelow documents and in no more than noAbove (a fraction) of them
func (d *Dictionary) FilterExtremes(noBelow int, noAbove float64) {
	abs := int(noAbove * float64(d.NumDocs))
	for t, id := range d.Token2ID {
		df := d.DFS[id]
		if df < noBelow || df > abs {
			delete(d.Token2ID, t)
			delete(d.DFS, id)
		}
	}
	d.Compactify()
}

// Compactify - close the gaps in the id space; surviving tokens keep their relative order
func (d *Dictionary) Compactify() {
	type pair struct {
		t  string
		id int
	}
	pp := make([]pair, 0, len(d.Token2ID))
	for t, id := range d.Token2ID {
		pp = append(pp, pair{t, id})
	}
	sort.Slice(pp, func(i, j int) bool { return pp[i].id < pp[j].id })

	t2i := make(map[string]int, len(pp))
	dfs := make(map[int]int, len(pp))
	for n, p := range pp {
		t2i[p.t] = n
		dfs[n] = d.DFS[p.id]
	}
	d.Token2ID = t2i
	d.DFS = dfs
}

// Doc2Bow - token counts for the known tokens of doc, ordered by id
func (d *Dictionary) Doc2Bow(doc []string) []BowEntry {
	counts := make(map[int]int)
	for _, w := range doc {
		if id, ok := d.Token2ID[w]; ok {
			counts[id]++
		}
	}
	bow := make([]BowEntry, 0, len(counts))
	for id, c := range counts {
		bow = append(bow, BowEntry{ID: id, Count: c})
	}
	sort.Slice(bow, func(i, j int) bool { return bow[i].ID < bow[j].ID })
	return bow
}

// WriteText - first line is the document count, then "id<TAB>token<TAB>docfreq" sorted by token
func (d *Dictionary) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", d.NumDocs); err != nil {
		return err
	}
	for _, t := range gen.SortedKeys(d.Token2ID) {
		id := d.Token2ID[t]
		if _, err := fmt.Fprintf(bw, "%d\t%s\t%d\n", id, t, d.DFS[id]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadDictionary - the inverse of WriteText
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	const (
		FAIL1 = "dictionary: bad document count: %w"
		FAIL2 = "dictionary line %d: %s"
	)
	d := NewDictionary()
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, fmt.Errorf(FAIL1, io.ErrUnexpectedEOF)
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	d.NumDocs = n

	ln := 1
	for sc.Scan() {
		ln++
		parts := strings.Split(sc.Text(), "\t")
		if len(parts) != 3 {
			return nil, fmt.Errorf(FAIL2, ln, "expected 3 fields")
		}
		id, e1 := strconv.Atoi(parts[0])
		df, e2 := strconv.Atoi(parts[2])
		if e1 != nil || e2 != nil {
			return nil, fmt.Errorf(FAIL2, ln, "non-numeric id or docfreq")
		}
		d.Token2ID[parts[1]] = id
		d.DFS[id] = df
	}
	return d, sc.Err()
}
