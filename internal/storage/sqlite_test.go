package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "flappy", Profile: "ann", Score: 10, Coins: 3, Seed: 1, Duration: 1500 * time.Millisecond, Biome: "Meadow"},
		{GameID: "flappy", Profile: "bob", Score: 5},
		{GameID: "flappy", Profile: "ann", Score: 20, Perfect: true},
		{GameID: "flappy_classic", Profile: "ann", Score: 50},
	}
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("SaveRun() id %q is not a uuid: %v", id, err)
		}
	}

	top, err := store.TopRuns("flappy", "", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 flappy runs, got %d", len(top))
	}
	if top[0].Score != 20 || top[1].Score != 10 || top[2].Score != 5 {
		t.Errorf("Runs not in expected order: %+v", top)
	}
	if !top[0].Perfect {
		t.Error("Perfect flag was not stored")
	}
	if top[1].Duration != 1500*time.Millisecond || top[1].Biome != "Meadow" || top[1].Coins != 3 {
		t.Errorf("Run fields not round-tripped: %+v", top[1])
	}

	mine, err := store.TopRuns("flappy", "ann", 10)
	if err != nil {
		t.Fatalf("TopRuns(profile) failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("Expected 2 runs for ann, got %d", len(mine))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{GameID: "test", Profile: "p", Score: (i + 1) * 100})
	}

	runs, err := store.TopRuns("test", "", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveRun(RunRecord{GameID: "flappy", Profile: "p", Score: 100})
	store.SaveRun(RunRecord{GameID: "flappy", Profile: "p", Score: 300})
	store.SaveRun(RunRecord{GameID: "flappy", Profile: "p", Score: 200})

	high, err = store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "flappy", Profile: "p", Score: 100})
	store.SaveRun(RunRecord{GameID: "flappy_classic", Profile: "p", Score: 300})

	if err := store.ClearRuns("flappy"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.TopRuns("flappy", "", 10); len(runs) != 0 {
		t.Errorf("Expected 0 flappy runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("flappy_classic", "", 10); len(runs) != 1 {
		t.Error("Classic runs should not be affected by clearing flappy")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() on empty db failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(RunRecord{GameID: "flappy", Profile: "p", Score: 10, Coins: 4})
	store.SaveRun(RunRecord{GameID: "flappy", Profile: "p", Score: 30, Coins: 6})

	stats, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.TotalCoins != 10 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["flappy"] == nil {
		t.Errorf("Expected stats for flappy only, got %v", all)
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("flappy/p/best"); err != nil || ok {
		t.Fatalf("Get() on missing key = ok %v, err %v", ok, err)
	}

	if err := store.Set("flappy/p/best", "12"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("flappy/p/best", "15"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	store.Set("flappy/p/coins", "3")
	store.Set("flappy/q/coins", "9")

	v, ok, err := store.Get("flappy/p/best")
	if err != nil || !ok || v != "15" {
		t.Errorf("Get() = %q, %v, %v; expected 15", v, ok, err)
	}

	keys, err := store.Keys("flappy/p/")
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "flappy/p/best" || keys[1] != "flappy/p/coins" {
		t.Errorf("Keys() = %v", keys)
	}

	if err := store.Delete("flappy/p/best"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("flappy/p/best"); ok {
		t.Error("Deleted key still present")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	store.Set("flappy/p/coins", "42")
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if v, ok, _ := store.Get("flappy/p/coins"); !ok || v != "42" {
		t.Errorf("value lost across reopen: %q %v", v, ok)
	}
}
