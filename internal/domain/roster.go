package domain

import (
	"cognitive-intel/internal/core/types"
	"sort"
)

// Roster - игроки текущей партии.
// Заполняется при построении мира и дальше только читается.
type Roster struct {
	names map[types.PlayerID]string
}

func NewRoster() *Roster {
	return &Roster{names: make(map[types.PlayerID]string)}
}

// Add регистрирует игрока. Невалидные ID игнорируются.
func (r *Roster) Add(id types.PlayerID, name string) {
	if !id.Valid() {
		return
	}
	r.names[id] = name
}

// HasPlayer сообщает, участвует ли игрок в партии.
func (r *Roster) HasPlayer(id types.PlayerID) bool {
	_, ok := r.names[id]
	return ok
}

// Name возвращает имя игрока.
func (r *Roster) Name(id types.PlayerID) string {
	return r.names[id]
}

// Players возвращает участников в порядке возрастания ID.
func (r *Roster) Players() []types.PlayerID {
	ids := make([]types.PlayerID, 0, len(r.names))
	for id := range r.names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
