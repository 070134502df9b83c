// Package knowledge loads the reference table of accepted (head, relation, tail) facts.
//
// The table is read in full at startup and never modified afterwards.
// Delimited files (.csv, .tsv) must have a header row naming at least the
// head, relation and tail columns; other columns are ignored. SQLite files
// (.db, .sqlite, .sqlite3) are opened read-only and queried for the same columns.
package knowledge

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/ppiankov/relcheck/internal/model"
)

// ErrMissingColumn is returned when a required column is absent from the header
var ErrMissingColumn = errors.New("missing required column")

// Columns lists the header names every knowledge source must provide
var Columns = []string{"head", "relation", "tail"}

// Table is the read-only in-memory knowledge table
type Table struct {
	source string
	rows   []model.KnowledgeRow
}

// Rows returns the table rows. Callers must not modify the returned slice.
func (t *Table) Rows() []model.KnowledgeRow {
	return t.rows
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Source returns the path the table was loaded from
func (t *Table) Source() string {
	return t.source
}

// Load reads the knowledge table at path, choosing the reader by file extension.
// A missing file is an error wrapping os.ErrNotExist.
func Load(path string, sqliteTable string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("knowledge base not found: %w", err)
	}

	var (
		rows []model.KnowledgeRow
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		rows, err = loadSQLite(path, sqliteTable)
	case ".tsv", ".tab":
		rows, err = loadDelimited(path, '\t')
	default:
		rows, err = loadDelimited(path, ',')
	}
	if err != nil {
		return nil, fmt.Errorf("load knowledge base %s: %w", path, err)
	}

	return &Table{source: path, rows: rows}, nil
}

func loadDelimited(path string, comma rune) ([]model.KnowledgeRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, comma)
}

// Parse reads delimited rows with a header line from r
func Parse(r io.Reader, comma rune) ([]model.KnowledgeRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []model.KnowledgeRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		rows = append(rows, model.KnowledgeRow{
			Head:     field(record, index["head"]),
			Relation: field(record, index["relation"]),
			Tail:     field(record, index["tail"]),
		})
	}

	return rows, nil
}

// columnIndex maps each required column to its position in the header
func columnIndex(header []string) (map[string]int, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(Columns))
	for _, name := range Columns {
		_, pos, found := lo.FindIndexOf(header, func(h string) bool {
			return strings.TrimSpace(h) == name
		})
		if !found {
			return nil, fmt.Errorf("%w %q (header: %s)", ErrMissingColumn, name, strings.Join(header, ","))
		}
		index[name] = pos
	}
	return index, nil
}

// field returns record[i], or "" for short rows
func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
