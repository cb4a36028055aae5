package history

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	appErrors "issuedeck/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", FileName))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return store
}

func TestRecordAndRecentOrdering(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, path := range []string{"acme/widgets", "acme/gadgets", "acme/widgets", "facebook/react"} {
		if err := store.Record(ctx, path); err != nil {
			t.Fatalf("Record(%q) returned error: %v", path, err)
		}
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	want := []string{"facebook/react", "acme/widgets", "acme/gadgets"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("Recent paths = %v, want %v", paths, want)
	}
	if entries[1].Uses != 2 {
		t.Fatalf("expected acme/widgets to be used twice, got %d", entries[1].Uses)
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	for _, path := range []string{"a/1", "a/2", "a/3"} {
		if err := store.Record(ctx, path); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	paths, err := store.Paths(ctx, 2)
	if err != nil {
		t.Fatalf("Paths returned error: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"a/3", "a/2"}) {
		t.Fatalf("unexpected paths %v", paths)
	}
	if none, _ := store.Recent(ctx, 0); none != nil {
		t.Fatalf("expected nil for zero limit, got %v", none)
	}
}

func TestRecordIgnoresBlank(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	if err := store.Record(ctx, "   "); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	entries, _ := store.Recent(ctx, 5)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}

func TestPruneKeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	for _, path := range []string{"a/1", "a/2", "a/3", "a/4"} {
		_ = store.Record(ctx, path)
	}
	if err := store.Prune(ctx, 2); err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}
	paths, _ := store.Paths(ctx, 10)
	if !reflect.DeepEqual(paths, []string{"a/4", "a/3"}) {
		t.Fatalf("unexpected paths after prune %v", paths)
	}
}

func TestHistoryPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := first.Record(ctx, "acme/widgets"); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	_ = first.Close()

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer func() { _ = second.Close() }()
	paths, err := second.Paths(ctx, 5)
	if err != nil {
		t.Fatalf("Paths returned error: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"acme/widgets"}) {
		t.Fatalf("expected persisted path, got %v", paths)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	if !appErrors.IsCode(err, appErrors.CodeHistoryFailed) {
		t.Fatalf("expected history_failed, got %v", err)
	}
}
