package domain

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/intel"
)

// IntelEntry - сохранённая запись одного игрока об одной сущности.
type IntelEntry struct {
	Entity types.EntityID    `json:"entity"`
	Player types.PlayerID    `json:"player"`
	State  intel.RecordState `json:"state"`
}

// IntelSnapshot - полное сохранение покрытия разведки.
// Покрытие - это состояние, а не производная величина, поэтому оно
// сохраняется и восстанавливается как есть.
type IntelSnapshot struct {
	ID        string       `json:"id"`
	Tick      int          `json:"tick"`
	Seed      int64        `json:"seed"`
	Timestamp int64        `json:"timestamp"`
	Entries   []IntelEntry `json:"entries"`
}

// CaptureIntel собирает записи всех сущностей в детерминированном порядке
// (сущность, затем игрок).
func CaptureIntel(entities []*Entity) []IntelEntry {
	entries := make([]IntelEntry, 0, len(entities))
	for _, e := range entities {
		for _, p := range e.IntelPlayers() {
			rec, _ := e.Intel(p)
			entries = append(entries, IntelEntry{Entity: e.ID, Player: p, State: rec.State()})
		}
	}
	return entries
}

// ApplySnapshot восстанавливает записи в мире. Записи для неизвестных
// сущностей пропускаются. Возвращает число восстановленных и пропущенных.
func ApplySnapshot(w *GameWorld, snap *IntelSnapshot) (restored, skipped int) {
	for _, entry := range snap.Entries {
		e := w.GetEntity(entry.Entity)
		if e == nil || !entry.Player.Valid() {
			skipped++
			continue
		}
		e.RestoreIntel(entry.Player, entry.State)
		restored++
	}
	return restored, skipped
}
