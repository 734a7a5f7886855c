//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ingest

import (
	"errors"
	"fmt"
	"github.com/e-gun/speechtopics/internal/str"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrExtraction - a record did not yield a title/date/speech triple
	ErrExtraction = errors.New("extraction failed")

	// text up until the first date is mentioned
	titlepattern = regexp.MustCompile(`\n+([\s\S]+), \d+\s\w+\s\d+`)
	// speeches follow "Statements by High Commissioner" and the date
	datepattern = regexp.MustCompile(`Statements by High Commissioner,\s*(\d+\s\w+\s\d+)[\s\n\r]+([\s\S]+)`)
	anydate     = regexp.MustCompile(`(\d+\s\w+\s\d+)`)
	breaks      = []string{"\n", "  "}

	datelayouts = []string{"2 January 2006", "2 Jan 2006"}

	// uuid.NewSHA1 namespace for speech ids
	speechspace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/e-gun/speechtopics/speech"))

	titler = cases.Title(language.Und)
)

// ExtractionError - names the offending record
type ExtractionError struct {
	Index  int
	Author string
	Field  string
	Detail string
}

func (e *ExtractionError) Error() string {
	m := fmt.Sprintf("record %d (%s): could not extract %s", e.Index, e.Author, e.Field)
	if e.Detail != "" {
		m += ": " + e.Detail
	}
	return m
}

func (e *ExtractionError) Unwrap() error {
	return ErrExtraction
}

// Extract - pull title, date and speech out of the content blob of one record
func Extract(raw str.RawSpeech, index int) (str.Speech, error) {
	fail := func(field string, detail string) (str.Speech, error) {
		return str.Speech{}, &ExtractionError{Index: index, Author: raw.Author, Field: field, Detail: detail}
	}

	tm := titlepattern.FindStringSubmatch(raw.Content)
	if tm == nil || strings.TrimSpace(tm[1]) == "" {
		return fail("title", "")
	}

	dm := datepattern.FindStringSubmatch(raw.Content)
	if dm == nil {
		return fail("date", "no 'Statements by High Commissioner' header")
	}

	when, err := ParseDate(dm[1])
	if err != nil {
		return fail("date", err.Error())
	}

	speech := CleanSpeech(dm[2])
	if speech == "" {
		return fail("speech", "")
	}

	s := str.Speech{
		Speaker: Speaker(raw.Author),
		Date:    when,
		Title:   strings.TrimSpace(tm[1]),
		Speech:  speech,
	}
	s.ID = SpeechID(s)
	return s, nil
}

// ParseDate - "13 December 1990"
func ParseDate(d string) (time.Time, error) {
	d = strings.Join(strings.Fields(d), " ")
	var err error
	for _, l := range datelayouts {
		var t time.Time
		t, err = time.Parse(l, d)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// CleanSpeech - line breaks and double spaces become single spaces; embedded dates go away
func CleanSpeech(s string) string {
	for _, b := range breaks {
		s = strings.ReplaceAll(s, b, " ")
	}
	s = anydate.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Speaker - "ogata" ==> "Ogata"; "hocké" ==> "Hocké"; a name with more than one part ("van der x") is left as written
func Speaker(author string) string {
	a := strings.TrimSpace(author)
	if len(strings.Fields(a)) != 1 {
		return a
	}
	return titler.String(a)
}

// SpeechID - the same speech always gets the same id
func SpeechID(s str.Speech) string {
	k := strings.Join([]string{s.Speaker, s.Date.Format(time.DateOnly), s.Title, s.Speech}, "|")
	return uuid.NewSHA1(speechspace, []byte(k)).String()
}
