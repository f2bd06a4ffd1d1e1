package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func TestBoltStoreRecordsNewestFirst(t *testing.T) {
	store, err := openBolt(filepath.Join(t.TempDir(), "journal.db"), normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	base := time.Now().UTC()
	for i, url := range []string{"http://a.test", "http://b.test", "http://c.test"} {
		err := store.Record(Entry{Method: "GET", URL: url, StatusCode: 200, At: base.Add(time.Duration(i) * time.Second)})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].URL != "http://c.test" || entries[1].URL != "http://b.test" {
		t.Fatalf("unexpected order %+v", entries)
	}
	if entries[0].ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestBoltStoreExpiresEntries(t *testing.T) {
	store, err := openBolt(filepath.Join(t.TempDir(), "journal.db"), Options{
		TTL:             time.Hour,
		CleanupInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	if err := store.Record(Entry{Method: "GET", URL: "http://old.test"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Move the clock past the ttl and the cleanup cadence.
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if err := store.Record(Entry{Method: "GET", URL: "http://new.test"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].URL != "http://new.test" {
		t.Fatalf("expected only the fresh entry, got %+v", entries)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("", Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Record(Entry{URL: "x"}); err != nil {
		t.Fatalf("noop store Record: %v", err)
	}
	entries, err := store.Recent(5)
	if err != nil || len(entries) != 0 {
		t.Fatalf("noop store Recent = %v, %v", entries, err)
	}
}
