//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tot

import (
	"errors"
	"fmt"
	"github.com/e-gun/speechtopics/internal/lnch"
	"github.com/e-gun/speechtopics/internal/store"
	"github.com/e-gun/speechtopics/internal/str"
	"math"
)

var (
	Msg = lnch.Msg

	// ErrMassDeviation - strict mode and at least one year does not sum to 1
	ErrMassDeviation = errors.New("yearly topic mass deviates from 1")
)

// Years - docID ==> year; one id with two different dates means the tables disagree
func Years(docs []str.Document) (map[string]int, error) {
	yy := make(map[string]int, len(docs))
	for _, d := range docs {
		y := d.Year()
		if prev, ok := yy[d.ID]; ok && prev != y {
			return nil, fmt.Errorf("%w: document %s is dated to both %d and %d", store.ErrSchemaMismatch, d.ID, prev, y)
		}
		yy[d.ID] = y
	}
	return yy, nil
}

// Aggregate - dates + assignments ==> yearly profiles, with the mass check logged or enforced
func Aggregate(docs []str.Document, assignments []str.TopicAssignment, k int, cfg str.AggConf) ([]str.YearlyTopicProfile, error) {
	const (
		MSG1 = "%d of %d documents carry a topic mass more than %.2f away from 1"
		MSG2 = "year %d: mean topic weights sum to %.4f"
		MSG3 = "aggregated %d documents into %d years"
	)

	years, err := Years(docs)
	if err != nil {
		return nil, err
	}

	short := 0
	for _, ta := range assignments {
		if math.Abs(ta.Sum()-1) > cfg.Tolerance {
			short++
		}
	}
	if short > 0 {
		Msg.FYI(fmt.Sprintf(MSG1, short, len(assignments), cfg.Tolerance))
	}

	r, err := Reshape(assignments, years, k)
	if err != nil {
		return nil, err
	}

	dev := r.Validate(cfg.Tolerance)
	for _, d := range dev {
		Msg.WARN(fmt.Sprintf(MSG2, d.Year, d.Mass))
	}
	if cfg.Strict && len(dev) > 0 {
		return nil, fmt.Errorf("%w: %d year(s), first is %d (%.4f)", ErrMassDeviation, len(dev), dev[0].Year, dev[0].Mass)
	}

	Msg.NOTE(fmt.Sprintf(MSG3, len(assignments), len(r.Years())))
	return r.Profiles(), nil
}
