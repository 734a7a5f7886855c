//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package store

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/e-gun/speechtopics/internal/str"
	_ "modernc.org/sqlite"
	"strings"
)

//
// SQLITE MIRROR
//

// the flat files are authoritative; the mirror is there so the tables can be queried with sql

var schema = map[string]string{
	"speeches": `CREATE TABLE IF NOT EXISTS speeches (
					id text PRIMARY KEY,
					speaker text,
					date text,
					title text,
					speech text
				)`,
	"documents": `CREATE TABLE IF NOT EXISTS documents (
					id text PRIMARY KEY,
					speaker text,
					date text,
					title text,
					speech text,
					decade integer,
					empty integer
				)`,
	"doc_topics": `CREATE TABLE IF NOT EXISTS doc_topics (
					document_id text,
					topic_index integer,
					weight real
				)`,
	"topics_over_time": `CREATE TABLE IF NOT EXISTS topics_over_time (
					year integer,
					topic integer,
					mean_weight real,
					documents integer
				)`,
	"topics": `CREATE TABLE IF NOT EXISTS topics (
					topic integer PRIMARY KEY,
					top_words text,
					dominant_documents integer,
					scaled_weight real
				)`,
}

// Mirror - a SQLite copy of the pipeline's tables
type Mirror struct {
	db *sql.DB
}

// OpenMirror - path may be ":memory:"
func OpenMirror(path string) (*Mirror, error) {
	const (
		FAIL = "could not open sqlite mirror '%s': %w"
	)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf(FAIL, path, err)
	}
	// one connection: ":memory:" databases are per connection
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(FAIL, path, err)
	}
	return &Mirror{db: db}, nil
}

func (m *Mirror) Close() error {
	return m.db.Close()
}

// DB - for callers that want to query the mirror directly
func (m *Mirror) DB() *sql.DB {
	return m.db
}

// replace - create the table if needed, empty it, and insert rows, all inside one transaction
func (m *Mirror) replace(ctx context.Context, table string, columns []string, rows func(ins func(args ...any) error) error) error {
	const (
		FAIL = "sqlite mirror: %s: %w"
		INS  = "INSERT INTO %s (%s) VALUES (%s)"
	)

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf(FAIL, table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, schema[table]); err != nil {
		return fmt.Errorf(FAIL, table, err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf(FAIL, table, err)
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(INS, table, strings.Join(columns, ", "), marks))
	if err != nil {
		return fmt.Errorf(FAIL, table, err)
	}
	defer stmt.Close()

	ins := func(args ...any) error {
		_, e := stmt.ExecContext(ctx, args...)
		return e
	}
	if err = rows(ins); err != nil {
		return fmt.Errorf(FAIL, table, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf(FAIL, table, err)
	}
	return nil
}

func (m *Mirror) WriteSpeeches(ctx context.Context, ss []str.Speech) error {
	cols := []string{"id", "speaker", "date", "title", "speech"}
	return m.replace(ctx, "speeches", cols, func(ins func(args ...any) error) error {
		for _, s := range ss {
			if err := ins(s.ID, s.Speaker, s.Date.Format(DATELAYOUT), s.Title, s.Speech); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *Mirror) WriteDocuments(ctx context.Context, docs []str.Document) error {
	cols := []string{"id", "speaker", "date", "title", "speech", "decade", "empty"}
	return m.replace(ctx, "documents", cols, func(ins func(args ...any) error) error {
		for _, d := range docs {
			if err := ins(d.ID, d.Speaker, d.Date.Format(DATELAYOUT), d.Title, strings.Join(d.Tokens, TOKENSEP), d.Decade, d.Empty); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *Mirror) WriteDocTopics(ctx context.Context, tas []str.TopicAssignment) error {
	return m.replace(ctx, "doc_topics", DocTopicColumns, func(ins func(args ...any) error) error {
		for _, ta := range tas {
			for _, p := range ta.Pairs {
				if err := ins(ta.DocumentID, p.Topic, p.Weight); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteTopicsOverTime - long form: one row per (year, topic)
func (m *Mirror) WriteTopicsOverTime(ctx context.Context, pp []str.YearlyTopicProfile) error {
	cols := []string{"year", "topic", "mean_weight", "documents"}
	return m.replace(ctx, "topics_over_time", cols, func(ins func(args ...any) error) error {
		for _, p := range pp {
			for t, w := range p.Means {
				if err := ins(p.Year, t, w, p.Documents); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (m *Mirror) WriteTopics(ctx context.Context, ss []str.TopicSummary) error {
	cols := []string{"topic", "top_words", "dominant_documents", "scaled_weight"}
	return m.replace(ctx, "topics", cols, func(ins func(args ...any) error) error {
		for _, s := range ss {
			if err := ins(s.Topic, strings.Join(s.Words, TOKENSEP), s.Dominant, s.Weight); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count - rows in a mirrored table
func (m *Mirror) Count(ctx context.Context, table string) (int, error) {
	if _, ok := schema[table]; !ok {
		return 0, fmt.Errorf("sqlite mirror: unknown table '%s'", table)
	}
	var n int
	err := m.db.QueryRowContext(ctx, "SELECT count(*) FROM "+table).Scan(&n)
	return n, err
}
