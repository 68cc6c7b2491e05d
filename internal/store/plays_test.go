package store

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/annavogt-hci/ascend/internal/models"
)

func newTestPlayStore(t *testing.T) *GormPlayStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "plays.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %s", err)
	}
	s := NewGormPlayStore(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %s", err)
	}
	return s
}

func TestSaveBatchAndReadBack(t *testing.T) {
	s := newTestPlayStore(t)
	ctx := context.Background()

	batch := []models.Play{
		{GameSessionID: "ABCD", RoundNumber: 1, SetNumber: 1, PlayNumberInRound: 1, PlayerID: "p1", ValuePlayed: 3, TimeSincePrevious: 1.5, WasMistake: false, ObserverInput: "calm"},
		{GameSessionID: "ABCD", RoundNumber: 1, SetNumber: 1, PlayNumberInRound: 2, PlayerID: "p2", ValuePlayed: 7, WasMistake: true, ObserverInput: "rushed"},
		{GameSessionID: "ABCD", RoundNumber: 1, SetNumber: 1, PlayNumberInRound: 3, PlayerID: "p2", ValuePlayed: 9},
	}
	if err := s.SaveBatch(ctx, batch); err != nil {
		t.Fatalf("SaveBatch: %s", err)
	}

	plays, err := s.AllPlays(ctx)
	if err != nil {
		t.Fatalf("AllPlays: %s", err)
	}
	if len(plays) != 3 {
		t.Fatalf("got %d plays, want 3", len(plays))
	}
	for i, p := range plays {
		if p.ID != uint(i+1) {
			t.Errorf("plays not ordered by id: %+v", plays)
			break
		}
	}
	first := plays[0]
	if first.GameSessionID != "ABCD" || first.ValuePlayed != 3 ||
		first.TimeSincePrevious != 1.5 || first.ObserverInput != "calm" {
		t.Errorf("record did not round-trip: %+v", first)
	}
	if !plays[1].WasMistake {
		t.Error("mistake flag lost")
	}
}

func TestSaveBatchEmptyIsNoop(t *testing.T) {
	s := newTestPlayStore(t)
	if err := s.SaveBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch should be a no-op, got %s", err)
	}
	plays, err := s.AllPlays(context.Background())
	if err != nil {
		t.Fatalf("AllPlays: %s", err)
	}
	if len(plays) != 0 {
		t.Errorf("expected empty table, got %d rows", len(plays))
	}
}
