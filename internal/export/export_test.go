package export

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/annavogt-hci/ascend/internal/models"
	"github.com/annavogt-hci/ascend/internal/store"
)

type fakePlays struct {
	plays []models.Play
	err   error
}

func (f *fakePlays) SaveBatch(ctx context.Context, plays []models.Play) error { return nil }

func (f *fakePlays) AllPlays(ctx context.Context) ([]models.Play, error) {
	return f.plays, f.err
}

func TestExportRejectsWrongSecret(t *testing.T) {
	h := NewHandler(&fakePlays{}, "letmein", zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/export/wrong", nil))

	if rec.Code != 403 {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "Not authorized" {
		t.Errorf("body = %q, want Not authorized", body)
	}
}

func TestExportRejectsWhenUnconfigured(t *testing.T) {
	h := NewHandler(&fakePlays{}, "", zap.NewNop())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/export/", nil))
	if rec.Code != 403 {
		t.Fatalf("status = %d, want 403 when no secret is configured", rec.Code)
	}
}

func TestExportStreamsCSV(t *testing.T) {
	plays := &fakePlays{plays: []models.Play{
		{ID: 1, GameSessionID: "ABCD", RoundNumber: 1, SetNumber: 1, PlayNumberInRound: 1, PlayerID: "p1", ValuePlayed: 3, TimeSincePrevious: 1.5, ObserverInput: "calm"},
		{ID: 2, GameSessionID: "ABCD", RoundNumber: 1, SetNumber: 1, PlayNumberInRound: 2, PlayerID: "p2", ValuePlayed: 7, WasMistake: true},
	}}
	h := NewHandler(plays, "letmein", zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/export/letmein", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %s", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][9] != "observer_input" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][1] != "ABCD" || rows[1][6] != "3" || rows[1][7] != "1.5" || rows[1][9] != "calm" {
		t.Errorf("unexpected first row %v", rows[1])
	}
	if rows[2][8] != "true" {
		t.Errorf("mistake flag missing from %v", rows[2])
	}
}

func TestExportQueryFailure(t *testing.T) {
	h := NewHandler(&fakePlays{err: errors.New("db down")}, "letmein", zap.NewNop())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/export/letmein", nil))
	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestQRServesActiveRoomsOnly(t *testing.T) {
	sessions := store.NewSessionStore()
	sessions.Set("ABCD", &models.Session{Code: "ABCD", Players: []string{"p1"}})
	h := NewQRHandler("https://play.example.org", sessions, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/qr/ZZZZ", nil))
	if rec.Code != 404 {
		t.Fatalf("unknown room: status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/qr/abcd", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected PNG bytes")
	}
}
