// Package store persists the study lists and hands out cached snapshots of them.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/kotoba/pkg/model"
	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// ErrExists is returned when adding an entity whose identifier is already stored.
var ErrExists = errors.New("entity already exists")

//go:embed schema.sql
var schemaSQL string

// DBExecutor accepts either *sql.DB or *sql.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InitDB creates the schema on db.
func InitDB(db *sql.DB) error {
	for _, s := range strings.Split(schemaSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SQLite is the study-list database.
type SQLite struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := InitDB(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Debugf("Opened study list database at %s", path)
	return &SQLite{db: db, path: path}, nil
}

// Path returns the database location.
func (s *SQLite) Path() string { return s.path }

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// AddWord stores w. A word that is already stored yields ErrExists.
func (s *SQLite) AddWord(ctx context.Context, w model.Word) error {
	readings, err := json.Marshal(w.KanjiReadings)
	if err != nil {
		return fmt.Errorf("encode readings: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO words (id, word, meaning, kanji_readings) VALUES (?, ?, ?, ?)`,
		w.ID, w.Word, w.Meaning, string(readings))
	if isUniqueConstraintErr(err) {
		return fmt.Errorf("word %q: %w", w.Word, ErrExists)
	}
	if err != nil {
		return fmt.Errorf("insert word: %w", err)
	}
	return nil
}

// ListWords returns every stored word in insertion order.
func (s *SQLite) ListWords(ctx context.Context) ([]model.Word, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, word, meaning, kanji_readings FROM words ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	words := []model.Word{}
	for rows.Next() {
		var (
			w        model.Word
			readings string
		)
		if err := rows.Scan(&w.ID, &w.Word, &w.Meaning, &readings); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		if err := json.Unmarshal([]byte(readings), &w.KanjiReadings); err != nil {
			return nil, fmt.Errorf("decode readings of %q: %w", w.Word, err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// HasWord reports whether word is stored.
func (s *SQLite) HasWord(ctx context.Context, word string) (bool, error) {
	return exists(ctx, s.db, `SELECT 1 FROM words WHERE word = ?`, word)
}

// AddKanji stores k. A kanji that is already stored yields ErrExists.
func (s *SQLite) AddKanji(ctx context.Context, k model.Kanji) error {
	readings, err := json.Marshal(k.Readings)
	if err != nil {
		return fmt.Errorf("encode readings: %w", err)
	}
	tags, err := json.Marshal(k.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kanji (id, kanji, readings, tags, writing_mnemonic, reading_mnemonic) VALUES (?, ?, ?, ?, ?, ?)`,
		k.ID, k.Kanji, string(readings), string(tags), k.WritingMnemonic, k.ReadingMnemonic)
	if isUniqueConstraintErr(err) {
		return fmt.Errorf("kanji %q: %w", k.Kanji, ErrExists)
	}
	if err != nil {
		return fmt.Errorf("insert kanji: %w", err)
	}
	return nil
}

// ListKanji returns every stored kanji in insertion order.
func (s *SQLite) ListKanji(ctx context.Context) ([]model.Kanji, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kanji, readings, tags, writing_mnemonic, reading_mnemonic FROM kanji ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list kanji: %w", err)
	}
	defer rows.Close()

	out := []model.Kanji{}
	for rows.Next() {
		var (
			k                model.Kanji
			readings, tags   string
			writing, reading sql.NullString
		)
		if err := rows.Scan(&k.ID, &k.Kanji, &readings, &tags, &writing, &reading); err != nil {
			return nil, fmt.Errorf("scan kanji: %w", err)
		}
		if err := json.Unmarshal([]byte(readings), &k.Readings); err != nil {
			return nil, fmt.Errorf("decode readings of %q: %w", k.Kanji, err)
		}
		if err := json.Unmarshal([]byte(tags), &k.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of %q: %w", k.Kanji, err)
		}
		if writing.Valid {
			k.WritingMnemonic = &writing.String
		}
		if reading.Valid {
			k.ReadingMnemonic = &reading.String
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// HasKanji reports whether the character is stored.
func (s *SQLite) HasKanji(ctx context.Context, kanji string) (bool, error) {
	return exists(ctx, s.db, `SELECT 1 FROM kanji WHERE kanji = ?`, kanji)
}

func exists(ctx context.Context, db DBExecutor, query string, arg any) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, query, arg).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}
