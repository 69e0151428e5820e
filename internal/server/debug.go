package server

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/engine"
	"cognitive-intel/internal/intel"
	"cognitive-intel/internal/report"
	"encoding/json"
	"errors"
	"net/http"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Истинные данные сущностей здесь видны целиком, поэтому эти роуты
// не предназначены для игроков.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/intel", h.handleIntel)
	mux.HandleFunc("/debug/report", h.handleReport)
	mux.HandleFunc("/debug/queue", h.handleScanQueue)
}

// /debug/entities - дамп всех сущностей сектора с истинными данными
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	var data []byte
	var err error
	h.Service.Instance.Inspect(func(i *engine.Instance) {
		// Кодируем под мьютексом: сущности меняются только внутри тика
		data, err = json.Marshal(i.World.Entities())
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRaw(w, data)
}

// IntelRecordView - состояние записи одного игрока для отладки.
type IntelRecordView struct {
	Player   string                    `json:"player"`
	Policy   intel.Policy              `json:"policy"`
	Coverage intel.CoverageLevel       `json:"coverage"`
	Floor    intel.CoverageLevel       `json:"floor"`
	Contacts map[intel.SensorClass]int `json:"contacts"`
}

// /debug/intel?entity=ID - записи разведданных всех игроков о сущности
func (h *DebugHandler) handleIntel(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseEntityID(r.URL.Query().Get("entity"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records := make([]IntelRecordView, 0)
	found := false
	h.Service.Instance.Inspect(func(i *engine.Instance) {
		e := i.World.GetEntity(id)
		if e == nil {
			return
		}
		found = true
		for _, p := range e.IntelPlayers() {
			rec, _ := e.Intel(p)
			view := IntelRecordView{
				Player:   p.String(),
				Policy:   rec.Policy(),
				Coverage: rec.Coverage(),
				Floor:    rec.Floor(),
				Contacts: make(map[intel.SensorClass]int),
			}
			for _, class := range intel.SensorClasses {
				if n := rec.Contacts(class); n > 0 {
					view.Contacts[class] = n
				}
			}
			records = append(records, view)
		}
	})
	if !found {
		http.Error(w, "Entity not found", http.StatusNotFound)
		return
	}
	writeJSON(w, records)
}

// /debug/report?entity=ID&player=P1 - отчёт издателя, как его видит игрок
func (h *DebugHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := types.ParseEntityID(q.Get("entity"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	player, err := types.ParsePlayerID(q.Get("player"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.Service.Instance.Report(id, player)
	switch {
	case err == nil:
		writeJSON(w, view)
	case engine.IsDestroyed(err):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.Is(err, report.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// /debug/queue - очередь обзоров сенсоров
func (h *DebugHandler) handleScanQueue(w http.ResponseWriter, r *http.Request) {
	// ScanQueue - это куча, порядок в слайсе может не соответствовать порядку извлечения,
	// но для дебага сойдет.
	var dump []map[string]any
	h.Service.Instance.Inspect(func(i *engine.Instance) {
		dump = i.Scheduler.DebugDump()
	})
	writeJSON(w, dump)
}

func setDebugHeaders(w http.ResponseWriter) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, data any) {
	setDebugHeaders(w)

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}

func writeRaw(w http.ResponseWriter, data []byte) {
	setDebugHeaders(w)
	w.Write(data)
}
