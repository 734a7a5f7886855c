//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package prep

import (
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"strings"
)

var possessives = []string{"'s", "’s"}

// Tokenize - split on unicode word boundaries and lowercase; "UNHCR's" ==> "unhcr"
func Tokenize(text string) []string {
	lc := cases.Lower(language.Und)
	ts := unicode.NewUnicodeTokenizer().Tokenize([]byte(text))

	out := make([]string, 0, len(ts))
	for _, t := range ts {
		w := lc.String(string(t.Term))
		for _, p := range possessives {
			if strings.HasSuffix(w, p) && len(w) > len(p) {
				w = strings.TrimSuffix(w, p)
				break
			}
		}
		out = append(out, w)
	}
	return out
}
