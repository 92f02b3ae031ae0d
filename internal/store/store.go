// Package store exports published build series into a relational database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"wasmweight/internal/model"
)

// Point is one output size of one benchmark at one build date.
type Point struct {
	Date  string `json:"date"`
	Name  string `json:"name"`
	Bytes uint64 `json:"bytes"`
}

// Store persists build series.
type Store interface {
	// SaveBuilds replaces everything stored for the dates of builds. Builds
	// sharing a date keep all their outputs.
	SaveBuilds(ctx context.Context, builds []model.Build) error
	// Outputs lists every stored output of a benchmark ordered by date.
	Outputs(ctx context.Context, benchmark string) ([]Point, error)
	Close() error
}

// sqlStore holds the queries shared by the SQLite and Postgres backends.
// Queries are written with ? placeholders and rebound per dialect.
type sqlStore struct {
	db     *sql.DB
	rebind func(string) string
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) SaveBuilds(ctx context.Context, builds []model.Build) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Builds sharing a date are stored as one, their outputs appended in order.
	next := make(map[string]int)
	for _, b := range builds {
		ordinal, seen := next[b.Date]
		if !seen {
			if err := s.replaceBuild(ctx, tx, b.Date); err != nil {
				return fmt.Errorf("build %s: %w", b.Date, err)
			}
		}
		if next[b.Date], err = s.saveOutputs(ctx, tx, b, ordinal); err != nil {
			return fmt.Errorf("build %s: %w", b.Date, err)
		}
	}
	return tx.Commit()
}

func (s *sqlStore) replaceBuild(ctx context.Context, tx *sql.Tx, date string) error {
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM outputs WHERE date = ?`), date); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM builds WHERE date = ?`), date); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, s.rebind(`INSERT INTO builds (date) VALUES (?)`), date)
	return err
}

// saveOutputs inserts the outputs of b starting at ordinal and returns the
// next free ordinal.
func (s *sqlStore) saveOutputs(ctx context.Context, tx *sql.Tx, b model.Build, ordinal int) (int, error) {
	insert := s.rebind(`INSERT INTO outputs (date, ordinal, benchmark, name, bytes) VALUES (?, ?, ?, ?, ?)`)
	for _, bench := range b.Data {
		for _, o := range bench.Outputs {
			if _, err := tx.ExecContext(ctx, insert, b.Date, ordinal, bench.Name, o.Name, int64(o.Bytes)); err != nil {
				return ordinal, err
			}
			ordinal++
		}
	}
	return ordinal, nil
}

func (s *sqlStore) Outputs(ctx context.Context, benchmark string) ([]Point, error) {
	query := s.rebind(`SELECT date, name, bytes FROM outputs WHERE benchmark = ? ORDER BY date, ordinal`)
	rows, err := s.db.QueryContext(ctx, query, benchmark)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		var bytes int64
		if err := rows.Scan(&p.Date, &p.Name, &bytes); err != nil {
			return nil, err
		}
		p.Bytes = uint64(bytes)
		points = append(points, p)
	}
	return points, rows.Err()
}

func questionMarks(query string) string {
	return query
}

// dollarPlaceholders rewrites ? placeholders as $1, $2, ...
func dollarPlaceholders(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
