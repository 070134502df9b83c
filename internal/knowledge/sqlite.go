package knowledge

import (
	"database/sql"
	"fmt"
	"net/url"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ppiankov/relcheck/internal/model"
)

const defaultSQLiteTable = "knowledge"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// loadSQLite reads head, relation, tail from table in a read-only connection
func loadSQLite(path, table string) ([]model.KnowledgeRow, error) {
	if table == "" {
		table = defaultSQLiteTable
	}
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(fmt.Sprintf("SELECT head, relation, tail FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.KnowledgeRow
	for rows.Next() {
		var row model.KnowledgeRow
		if err := rows.Scan(&row.Head, &row.Relation, &row.Tail); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}
