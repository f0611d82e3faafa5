package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("pyro", 42); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("pyro")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 42 {
		t.Errorf("HighScore() = %d, expected 42", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 200, 150} {
		if _, err := store.SaveScore("pyro", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("pyro_endless", 50); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("pyro", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d entries, expected 3", len(scores))
	}

	want := []int{200, 150, 100}
	for i, e := range scores {
		if e.Score != want[i] {
			t.Errorf("scores[%d].Score = %d, expected %d", i, e.Score, want[i])
		}
		if e.GameID != "pyro" {
			t.Errorf("scores[%d].GameID = %q, expected pyro", i, e.GameID)
		}
		if e.CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt is zero", i)
		}
	}

	endless, err := store.TopScores("pyro_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 || endless[0].Score != 50 {
		t.Errorf("TopScores(pyro_endless) = %+v, expected one score of 50", endless)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("pyro", i*10)
	}

	tests := []struct {
		limit    int
		expected int
	}{
		{5, 5},
		{0, 10},
		{50, 20},
	}
	for _, tt := range tests {
		scores, err := store.TopScores("pyro", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(scores) != tt.expected {
			t.Errorf("TopScores(%d) returned %d entries, expected %d", tt.limit, len(scores), tt.expected)
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("pyro")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d for an empty game, expected 0", high)
	}

	store.SaveScore("pyro", 100)
	store.SaveScore("pyro", 300)
	store.SaveScore("pyro", 200)

	high, err = store.HighScore("pyro")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	levels := []LevelRecord{
		{Number: 1, Outcome: "escaped", WallsLeft: 80, Baseline: 120, Increment: 3333, Ticks: 140, Explosions: 2},
		{Number: 2, Outcome: "burned", WallsLeft: 100, Baseline: 118, Increment: 1525, Ticks: 61},
	}
	runID, err := store.SaveRun("pyro", 4858, 1, levels)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	scores, err := store.TopScores("pyro", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].ID != runID || scores[0].Levels != 1 || scores[0].Score != 4858 {
		t.Errorf("TopScores() = %+v, expected run %d with score 4858 and 1 level", scores, runID)
	}

	got, err := store.RunLevels(runID)
	if err != nil {
		t.Fatalf("RunLevels() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RunLevels() returned %d records, expected 2", len(got))
	}
	for i, r := range got {
		w := levels[i]
		if r.RunID != runID || r.GameID != "pyro" {
			t.Errorf("record %d run/game = %d/%q, expected %d/pyro", i, r.RunID, r.GameID, runID)
		}
		if r.Number != w.Number || r.Outcome != w.Outcome || r.WallsLeft != w.WallsLeft ||
			r.Baseline != w.Baseline || r.Increment != w.Increment || r.Ticks != w.Ticks ||
			r.Explosions != w.Explosions {
			t.Errorf("record %d = %+v, expected %+v", i, r, w)
		}
	}
}

func TestStoreRecentLevels(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("pyro_endless", 10, 2, []LevelRecord{
		{Number: 1, Outcome: "escaped"},
		{Number: 2, Outcome: "escaped"},
	})
	store.SaveRun("pyro_endless", 5, 0, []LevelRecord{
		{Number: 1, Outcome: "burned"},
	})
	store.SaveRun("pyro", 7, 0, []LevelRecord{
		{Number: 1, Outcome: "burned"},
	})

	recent, err := store.RecentLevels("pyro_endless", 2)
	if err != nil {
		t.Fatalf("RecentLevels() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentLevels() returned %d records, expected 2", len(recent))
	}
	if recent[0].Outcome != "burned" || recent[1].Number != 2 {
		t.Errorf("RecentLevels() = %+v, expected newest first", recent)
	}

	all, _ := store.RecentLevels("pyro_endless", 0)
	if len(all) != 3 {
		t.Errorf("RecentLevels() with default limit returned %d records, expected 3", len(all))
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("pyro", 100, 1, []LevelRecord{{Number: 1, Outcome: "escaped"}})
	store.SaveScore("pyro", 200)
	store.SaveRun("pyro_endless", 300, 1, []LevelRecord{{Number: 1, Outcome: "escaped"}})

	if err := store.ClearScores("pyro"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("pyro", 10); len(scores) != 0 {
		t.Errorf("expected 0 pyro scores after clear, got %d", len(scores))
	}
	if levels, _ := store.RecentLevels("pyro", 10); len(levels) != 0 {
		t.Errorf("expected 0 pyro levels after clear, got %d", len(levels))
	}

	if scores, _ := store.TopScores("pyro_endless", 10); len(scores) != 1 {
		t.Error("pyro_endless scores should not be affected by clearing pyro")
	}
	if levels, _ := store.RecentLevels("pyro_endless", 10); len(levels) != 1 {
		t.Error("pyro_endless levels should not be affected by clearing pyro")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
