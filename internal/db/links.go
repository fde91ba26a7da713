package db

import (
	"database/sql"
	"errors"
	"strings"
	"time"
	"valentine/internal/model"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a history entry does not exist.
var ErrNotFound = errors.New("link not found")

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const linkColumns = `id, sender, recipient, question, style, COALESCE(yes_text, ''), token, link, created_at`

// InsertLink stores a newly created link and returns it with its ID and
// creation time filled in.
func InsertLink(db *sql.DB, rec model.Record, token, link string) (model.LinkEntry, error) {
	entry := model.LinkEntry{
		ID:        uuid.NewString(),
		Record:    rec,
		Token:     token,
		Link:      link,
		CreatedAt: time.Now().UTC(),
	}

	if err := insertEntry(db, entry); err != nil {
		return model.LinkEntry{}, err
	}
	return entry, nil
}

// ListLinks returns stored links, newest first. A non-empty filter matches
// sender or recipient names case-insensitively.
func ListLinks(db *sql.DB, filter string) ([]model.LinkEntry, error) {
	query := `SELECT ` + linkColumns + ` FROM links`
	var args []any
	if filter = strings.TrimSpace(filter); filter != "" {
		query += ` WHERE sender LIKE ? OR recipient LIKE ?`
		pattern := "%" + filter + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.LinkEntry
	for rows.Next() {
		entry, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}

	return results, rows.Err()
}

// GetLink returns a single history entry by ID.
func GetLink(db *sql.DB, id string) (model.LinkEntry, error) {
	row := db.QueryRow(`SELECT `+linkColumns+` FROM links WHERE id = ?`, id)
	entry, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LinkEntry{}, ErrNotFound
	}
	return entry, err
}

// DeleteLink removes a history entry.
func DeleteLink(db *sql.DB, id string) error {
	result, err := db.Exec("DELETE FROM links WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLink(s scanner) (model.LinkEntry, error) {
	var entry model.LinkEntry
	var createdAt string
	err := s.Scan(
		&entry.ID,
		&entry.Record.From,
		&entry.Record.To,
		&entry.Record.Question,
		&entry.Record.Style,
		&entry.Record.YesText,
		&entry.Token,
		&entry.Link,
		&createdAt,
	)
	if err != nil {
		return model.LinkEntry{}, err
	}
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		entry.CreatedAt = t
	}
	return entry, nil
}
