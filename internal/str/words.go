//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type TermCount struct {
	Term  string
	Count int
}

// TCList - most frequent first; ties in alphabetical order
type TCList []TermCount

func (t TCList) Len() int {
	return len(t)
}

func (t TCList) Less(i, j int) bool {
	if t[i].Count == t[j].Count {
		return t[i].Term < t[j].Term
	}
	return t[i].Count > t[j].Count
}

func (t TCList) Swap(i, j int) {
	t[i], t[j] = t[j], t[i]
}
