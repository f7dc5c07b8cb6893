package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/nordicdata/tap-inventio/pkg/errors"
)

// SQLiteSink writes records into one table per stream. Every run is a full
// table replication, so WriteSchema truncates the stream's table before the
// first record arrives.
type SQLiteSink struct {
	conn *sql.DB
}

// OpenSQLite opens (and initializes) the database file at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WrapError(err, errors.ErrSink, "create database directory")
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrSink, "open database")
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, errors.WrapError(err, errors.ErrSink, "set journal mode")
	}

	s := &SQLiteSink{conn: conn}
	if err := s.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSink) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS sync_state (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  value TEXT NOT NULL,
  writtenAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.conn.Exec(schema); err != nil {
		return errors.WrapError(err, errors.ErrSink, "initialize database")
	}
	return nil
}

// WriteSchema creates the stream's table and clears out the previous run.
func (s *SQLiteSink) WriteSchema(stream string, schema map[string]interface{}, keyProperties []string) error {
	table, err := tableName(stream)
	if err != nil {
		return err
	}

	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company_name TEXT,
  raw_json TEXT NOT NULL,
  extractedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_%s_company ON %s(company_name);
`, table, stream, table)

	if _, err := s.conn.Exec(ddl); err != nil {
		return errors.WrapError(err, errors.ErrSink, fmt.Sprintf("create table for %s", stream))
	}
	if _, err := s.conn.Exec(fmt.Sprintf(`DELETE FROM %s;`, table)); err != nil {
		return errors.WrapError(err, errors.ErrSink, fmt.Sprintf("truncate table for %s", stream))
	}
	return nil
}

// WriteRecord inserts one record as JSON alongside its company label.
func (s *SQLiteSink) WriteRecord(stream string, record map[string]interface{}) error {
	table, err := tableName(stream)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return errors.WrapError(err, errors.ErrSink, "marshal record")
	}

	company, _ := record["company_name"].(string)
	_, err = s.conn.Exec(
		fmt.Sprintf(`INSERT INTO %s (company_name, raw_json) VALUES (?, ?);`, table),
		company, string(raw),
	)
	if err != nil {
		return errors.WrapError(err, errors.ErrSink, fmt.Sprintf("insert into %s", stream))
	}
	return nil
}

// WriteState appends the state value to the sync_state table.
func (s *SQLiteSink) WriteState(value map[string]interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.WrapError(err, errors.ErrSink, "marshal state")
	}
	if _, err := s.conn.Exec(`INSERT INTO sync_state (value) VALUES (?);`, string(raw)); err != nil {
		return errors.WrapError(err, errors.ErrSink, "insert state")
	}
	return nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.conn.Close()
}

// tableName quotes a stream name for use as a table identifier. Stream names
// come from the endpoint catalogue, but reject anything surprising anyway.
func tableName(stream string) (string, error) {
	for _, r := range stream {
		ok := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if !ok {
			return "", errors.WrapError(
				fmt.Errorf("stream name %q contains %q", stream, r),
				errors.ErrSink,
				"table name",
			)
		}
	}
	return `"` + strings.ToLower(stream) + `"`, nil
}
