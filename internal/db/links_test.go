package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
	"valentine/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInsertAndGetLink(t *testing.T) {
	database := openTestDB(t)
	rec := model.Record{From: "Маша", To: "Петя", Question: "Будешь?", Style: "cute", YesText: "Ура!"}

	entry, err := InsertLink(database, rec, "tok", "https://example.com/valentine.html?d=tok")
	if err != nil {
		t.Fatalf("InsertLink failed: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("Expected an ID")
	}

	got, err := GetLink(database, entry.ID)
	if err != nil {
		t.Fatalf("GetLink failed: %v", err)
	}
	if got.Record != rec {
		t.Errorf("Expected record %+v, got %+v", rec, got.Record)
	}
	if got.Token != "tok" || got.Link != entry.Link {
		t.Errorf("Unexpected token/link %q %q", got.Token, got.Link)
	}
	if !got.CreatedAt.Equal(entry.CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", entry.CreatedAt, got.CreatedAt)
	}
}

func TestListLinksNewestFirst(t *testing.T) {
	database := openTestDB(t)

	names := []string{"Sam", "Kim", "Lee"}
	for _, name := range names {
		rec := model.Record{From: "Alex", To: name, Question: "q", Style: "cats"}
		if _, err := InsertLink(database, rec, "t-"+name, "l-"+name); err != nil {
			t.Fatalf("InsertLink failed: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	entries, err := ListLinks(database, "")
	if err != nil {
		t.Fatalf("ListLinks failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	want := []string{"Lee", "Kim", "Sam"}
	for i, name := range want {
		if entries[i].Record.To != name {
			t.Errorf("Entry %d: expected %q, got %q", i, name, entries[i].Record.To)
		}
		if entries[i].Record.YesText != "" {
			t.Errorf("Entry %d: expected empty yes text", i)
		}
	}

	filtered, err := ListLinks(database, "kim")
	if err != nil {
		t.Fatalf("ListLinks with filter failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Record.To != "Kim" {
		t.Errorf("Expected only Kim, got %+v", filtered)
	}
}

func TestDeleteLink(t *testing.T) {
	database := openTestDB(t)
	entry, err := InsertLink(database, model.Record{From: "a", To: "b", Question: "q", Style: "dogs"}, "t", "l")
	if err != nil {
		t.Fatalf("InsertLink failed: %v", err)
	}

	if err := DeleteLink(database, entry.ID); err != nil {
		t.Fatalf("DeleteLink failed: %v", err)
	}
	if _, err := GetLink(database, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteLink(database, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRestoreLink(t *testing.T) {
	database := openTestDB(t)
	entry, err := InsertLink(database, model.Record{From: "a", To: "b", Question: "q", Style: "memes", YesText: "yay"}, "t", "l")
	if err != nil {
		t.Fatalf("InsertLink failed: %v", err)
	}
	if err := DeleteLink(database, entry.ID); err != nil {
		t.Fatalf("DeleteLink failed: %v", err)
	}

	if err := RestoreLink(database, entry); err != nil {
		t.Fatalf("RestoreLink failed: %v", err)
	}
	got, err := GetLink(database, entry.ID)
	if err != nil {
		t.Fatalf("GetLink failed: %v", err)
	}
	if got.Record != entry.Record || !got.CreatedAt.Equal(entry.CreatedAt) {
		t.Errorf("Expected %+v, got %+v", entry, got)
	}

	if err := RestoreLink(database, entry); err == nil {
		t.Error("Expected restoring a live entry to fail")
	}
	if err := RestoreLink(database, model.LinkEntry{}); err == nil {
		t.Error("Expected an entry without an ID to be rejected")
	}
}
