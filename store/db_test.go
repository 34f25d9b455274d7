package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *DeliveryLog {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), "", 0)
	if err != nil {
		t.Fatalf("unable to open DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndSeen(t *testing.T) {
	db := openTestDB(t)
	sentAt := time.Date(2014, time.February, 18, 14, 39, 42, 0, time.UTC)
	db.now = func() time.Time { return sentAt }

	payload := []byte(`{"text":"hello","username":"bot"}`)
	seen, err := db.Seen(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen {
		t.Fatal("empty log should not contain the payload")
	}

	d, err := db.Record(payload, "#general", "ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(d.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", d.ID, err)
	}

	got, ok, err := db.Lookup(payload)
	if err != nil || !ok {
		t.Fatalf("Lookup() = (%v, %v), want a recorded delivery", ok, err)
	}
	if got.ID != d.ID || got.Channel != "#general" || got.Response != "ok" || !got.SentAt.Equal(sentAt) {
		t.Errorf("Lookup() = %+v, want %+v", got, d)
	}

	if seen, _ := db.Seen([]byte(`{"text":"other","username":"bot"}`)); seen {
		t.Error("a different payload should not be seen")
	}
}

func TestRecordOverwrites(t *testing.T) {
	db := openTestDB(t)
	payload := []byte("payload")

	first, err := db.Record(payload, "", "rate_limited")
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.Record(payload, "", "ok")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("each delivery should get its own ID")
	}

	got, _, err := db.Lookup(payload)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != second.ID || got.Response != "ok" {
		t.Errorf("Lookup() = %+v, want the latest delivery", got)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path, "custom", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Record([]byte("payload"), "C1", "ok"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path, "custom", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if seen, err := db.Seen([]byte("payload")); err != nil || !seen {
		t.Errorf("Seen() = (%v, %v), want true after reopening", seen, err)
	}
}

func TestKey(t *testing.T) {
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Key(nil); got != empty {
		t.Errorf("Key(nil) = %q, want %q", got, empty)
	}
	if Key([]byte("a")) == Key([]byte("b")) {
		t.Error("different payloads should have different keys")
	}
}
