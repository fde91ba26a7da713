package db

import (
	"database/sql"
	"fmt"
	"time"
	"valentine/internal/model"
)

// RestoreLink puts a deleted history entry back under its original ID and
// creation time, so it sorts where it was before.
func RestoreLink(db *sql.DB, entry model.LinkEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("cannot restore link without an id")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return insertEntry(db, entry)
}

func insertEntry(db *sql.DB, entry model.LinkEntry) error {
	var yesText any
	if entry.Record.YesText != "" {
		yesText = entry.Record.YesText
	}

	_, err := db.Exec(`
		INSERT INTO links (id, sender, recipient, question, style, yes_text, token, link, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Record.From, entry.Record.To, entry.Record.Question, entry.Record.Style,
		yesText, entry.Token, entry.Link, entry.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert link: %w", err)
	}
	return nil
}
