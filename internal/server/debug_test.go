package server

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/engine"
	"cognitive-intel/internal/report"
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()
	os.Exit(m.Run())
}

func newDebugServer(t *testing.T) (*engine.GameService, *http.ServeMux) {
	t.Helper()
	cfg := engine.NewConfig()
	cfg.Seed = 7
	svc := engine.NewService(cfg, report.Default())

	mux := http.NewServeMux()
	NewDebugHandler(svc).RegisterRoutes(mux)
	return svc, mux
}

// ownOutpost возвращает аванпост игрока 1.
func ownOutpost(t *testing.T, svc *engine.GameService) *domain.Entity {
	t.Helper()
	var found *domain.Entity
	svc.Instance.Inspect(func(i *engine.Instance) {
		for _, e := range i.World.Entities() {
			if e.Kind == enums.EntityKindOutpost && e.Owner == 1 {
				found = e
				return
			}
		}
	})
	if found == nil {
		t.Fatal("generated sector has no outpost for P1")
	}
	return found
}

func get(mux *http.ServeMux, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestDebugReport(t *testing.T) {
	svc, mux := newDebugServer(t)
	outpost := ownOutpost(t, svc)
	id := outpost.ID.Wire()

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"owner report", "/debug/report?entity=" + id + "&player=P1", http.StatusOK},
		{"bad entity", "/debug/report?entity=abc&player=1", http.StatusBadRequest},
		{"bad player", "/debug/report?entity=" + id + "&player=x", http.StatusBadRequest},
		{"player outside roster", "/debug/report?entity=" + id + "&player=9", http.StatusBadRequest},
		{"unknown entity", "/debug/report?entity=12345&player=1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(mux, tt.url)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	var view api.ReportView
	if err := json.Unmarshal(get(mux, "/debug/report?entity="+id+"&player=1").Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.ID != id || view.Coverage != "comprehensive" {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestDebugReport_Destroyed(t *testing.T) {
	svc, mux := newDebugServer(t)
	outpost := ownOutpost(t, svc)

	svc.Instance.Inspect(func(*engine.Instance) { outpost.Destroyed = true })

	rec := get(mux, "/debug/report?entity="+outpost.ID.Wire()+"&player=1")
	if rec.Code != http.StatusGone {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGone)
	}
}

func TestDebugIntel(t *testing.T) {
	svc, mux := newDebugServer(t)
	outpost := ownOutpost(t, svc)

	rec := get(mux, "/debug/intel?entity="+outpost.ID.Wire())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var records []IntelRecordView
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 || records[0].Player != types.PlayerID(1).String() {
		t.Errorf("records = %+v, want only the owner", records)
	}

	if rec := get(mux, "/debug/intel?entity=1"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown entity status = %d, want 404", rec.Code)
	}
}

func TestDebugQueueAndEntities(t *testing.T) {
	_, mux := newDebugServer(t)

	rec := get(mux, "/debug/queue")
	var queue []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &queue); err != nil {
		t.Fatalf("decode queue: %v", err)
	}
	if len(queue) == 0 {
		t.Error("generated sector must have scheduled sensors")
	}

	rec = get(mux, "/debug/entities")
	var entities []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &entities); err != nil {
		t.Fatalf("decode entities: %v", err)
	}
	if len(entities) == 0 {
		t.Error("entities dump is empty")
	}
}

func TestHealthAndVersion(t *testing.T) {
	svc, _ := newDebugServer(t)
	srv := New(svc, "0")
	svc.Instance.Step()

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var status HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if status.Status != "ok" || status.Tick != 1 || status.Entities == 0 {
		t.Errorf("health = %+v", status)
	}

	rec = httptest.NewRecorder()
	srv.handleVersion(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if info["service"] != "cognitive-intel" {
		t.Errorf("version = %v", info)
	}
}
