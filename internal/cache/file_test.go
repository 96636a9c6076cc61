package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fplcentral/recommender-api/internal/models"
)

func snapshotFixture(fetchedAt time.Time) Snapshot {
	return Snapshot{
		FetchedAt: fetchedAt,
		Players: []models.Player{
			{ID: 1, Name: "Saka", Position: models.Midfielder, Price: 8.5},
			{ID: 2, Name: "Haaland", Position: models.Forward, Price: 14.0},
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir(), 15*time.Minute)
	ctx := context.Background()

	want := snapshotFixture(time.Now().UTC())
	if err := store.Save(ctx, "current", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "current")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Players) != 2 || got.Players[0].ID != 1 {
		t.Errorf("loaded players = %v, want saved fixture", got.Players)
	}
	if !got.FetchedAt.Equal(want.FetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, want.FetchedAt)
	}
}

func TestFileStore_AbsentIsMiss(t *testing.T) {
	store := NewFileStore(t.TempDir(), 15*time.Minute)

	_, err := store.Load(context.Background(), "current")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("err = %v, want ErrMiss", err)
	}
}

func TestFileStore_StaleIsMiss(t *testing.T) {
	store := NewFileStore(t.TempDir(), 15*time.Minute)
	ctx := context.Background()

	fetched := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if err := store.Save(ctx, "current", snapshotFixture(fetched)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	store.now = func() time.Time { return fetched.Add(15 * time.Minute) }
	if _, err := store.Load(ctx, "current"); !errors.Is(err, ErrMiss) {
		t.Fatalf("err = %v, want ErrMiss at exactly the freshness boundary", err)
	}

	store.now = func() time.Time { return fetched.Add(14 * time.Minute) }
	if _, err := store.Load(ctx, "current"); err != nil {
		t.Fatalf("Load inside the window: %v", err)
	}
}

func TestFileStore_CorruptIsMiss(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, 15*time.Minute)

	if err := os.WriteFile(filepath.Join(dir, "current.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load(context.Background(), "current")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("err = %v, want ErrMiss for a corrupt entry", err)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := NewFileStore(t.TempDir(), 15*time.Minute)
	ctx := context.Background()

	first := snapshotFixture(time.Now().UTC())
	if err := store.Save(ctx, "current", first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := first
	second.Players = second.Players[:1]
	if err := store.Save(ctx, "current", second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := store.Load(ctx, "current")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Players) != 1 {
		t.Errorf("loaded %d players, want the overwritten snapshot with 1", len(got.Players))
	}
}

func TestSnapshot_Stale(t *testing.T) {
	fetched := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{FetchedAt: fetched}

	if snap.Stale(15*time.Minute, fetched.Add(10*time.Minute)) {
		t.Error("snapshot inside the window reported stale")
	}
	if !snap.Stale(15*time.Minute, fetched.Add(15*time.Minute)) {
		t.Error("snapshot at the boundary must be stale")
	}
	if !snap.Stale(15*time.Minute, fetched.Add(time.Hour)) {
		t.Error("old snapshot reported fresh")
	}
}
