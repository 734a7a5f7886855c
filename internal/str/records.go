//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "time"

// RawSpeech - one record of the input dump
type RawSpeech struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// Speech - what ingest extracts from a RawSpeech
type Speech struct {
	ID      string    `json:"id"`
	Speaker string    `json:"speaker"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Speech  string    `json:"speech"`
}

// Document - a cleaned speech; Empty marks a document that lost every token to the filters
type Document struct {
	ID      string
	Speaker string
	Date    time.Time
	Title   string
	Decade  int
	Tokens  []string
	Empty   bool
}

func (d Document) Year() int {
	return d.Date.Year()
}

// TopicPair - (topic_index, weight)
type TopicPair struct {
	Topic  int
	Weight float64
}

// TopicAssignment - the sparse topic distribution of one document
type TopicAssignment struct {
	DocumentID string
	Pairs      []TopicPair
}

// Sum - total weight carried by the pairs
func (ta TopicAssignment) Sum() float64 {
	t := 0.0
	for _, p := range ta.Pairs {
		t += p.Weight
	}
	return t
}

// YearlyTopicProfile - mean topic weight for every document dated to Year
type YearlyTopicProfile struct {
	Year      int
	Documents int
	Means     []float64
}

// Mass - sum of the means; ≈1 only if nothing was pruned upstream
func (y YearlyTopicProfile) Mass() float64 {
	t := 0.0
	for _, m := range y.Means {
		t += m
	}
	return t
}

// TopicSummary - per topic report: top words, # of docs where it dominates, scaled total weight
type TopicSummary struct {
	Topic    int
	Words    []string
	Dominant int
	Weight   float64
}
