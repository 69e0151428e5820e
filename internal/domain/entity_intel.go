package domain

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/intel"
	"sort"
)

// Intel возвращает запись игрока, если он когда-либо наблюдал сущность.
func (e *Entity) Intel(player types.PlayerID) (*intel.Record, bool) {
	rec, ok := e.intel[player]
	return rec, ok
}

// Coverage возвращает текущее покрытие игрока. Нет записи - CoverageNone.
func (e *Entity) Coverage(player types.PlayerID) intel.CoverageLevel {
	if rec, ok := e.intel[player]; ok {
		return rec.Coverage()
	}
	return intel.CoverageNone
}

// IntelPlayers возвращает игроков с записями в порядке возрастания ID.
func (e *Entity) IntelPlayers() []types.PlayerID {
	players := make([]types.PlayerID, 0, len(e.intel))
	for p := range e.intel {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })
	return players
}

// ApplyContact применяет сенсорное событие к записи игрока.
//
// Запись создаётся лениво при первом наблюдении с ненулевым потолком.
// Потеря контакта без записи ничего не делает. Возвращает уровни до и
// после и признак изменения.
func (e *Entity) ApplyContact(
	player types.PlayerID,
	class intel.SensorClass,
	state intel.ContactState,
	ceilings intel.Ceilings,
) (from, to intel.CoverageLevel, changed bool) {
	from = e.Coverage(player)

	rec, ok := e.intel[player]
	if !ok {
		if state != intel.ContactGained || ceilings.Of(class) == intel.CoverageNone {
			return from, from, false
		}
		rec = e.newRecord(player)
		e.setRecord(player, rec)
	}

	rec.Apply(class, state, ceilings)
	to = rec.Coverage()
	return from, to, from != to
}

// RestoreIntel заменяет запись игрока сохранённым состоянием.
func (e *Entity) RestoreIntel(player types.PlayerID, state intel.RecordState) {
	if state.Policy == intel.PolicyUnknown {
		state.Policy = e.policy()
	}
	e.setRecord(player, intel.RestoreRecord(state))
}

// SetOwner меняет владельца. Для типов, которые владелец видит всегда
// полностью, новый владелец получает нижнюю границу MaxCoverage, а
// прежний её теряет: его покрытие сразу опускается до уровня, который
// обеспечивают его текущие контакты.
func (e *Entity) SetOwner(owner types.PlayerID, ceilings intel.Ceilings) {
	if e.Owner == owner {
		return
	}
	prev := e.Owner
	e.Owner = owner
	if !e.OwnerAlwaysComprehensive {
		return
	}

	if rec, ok := e.intel[prev]; ok {
		rec.SetFloor(intel.CoverageNone)
		rec.Reconcile(ceilings)
	}
	if owner == types.NoPlayer {
		return
	}
	if rec, ok := e.intel[owner]; ok {
		rec.SetFloor(intel.MaxCoverage)
		return
	}
	e.setRecord(owner, intel.NewRecord(e.policy(), intel.MaxCoverage, intel.MaxCoverage))
}

// ReconcileIntel сверяет все записи с текущими контактами и возвращает
// игроков, чьё покрытие изменилось.
func (e *Entity) ReconcileIntel(ceilings intel.Ceilings) []types.PlayerID {
	var changed []types.PlayerID
	for _, p := range e.IntelPlayers() {
		if e.intel[p].Reconcile(ceilings) {
			changed = append(changed, p)
		}
	}
	return changed
}

// newRecord создает первую запись игрока с учетом правил типа.
func (e *Entity) newRecord(player types.PlayerID) *intel.Record {
	if e.OwnerAlwaysComprehensive {
		if player == e.Owner {
			return intel.NewRecord(e.policy(), intel.MaxCoverage, intel.MaxCoverage)
		}
		return intel.NewRecord(e.policy(), intel.CoverageAware, intel.CoverageNone)
	}
	return intel.NewRecord(e.policy(), intel.CoverageNone, intel.CoverageNone)
}

func (e *Entity) setRecord(player types.PlayerID, rec *intel.Record) {
	if e.intel == nil {
		e.intel = make(map[types.PlayerID]*intel.Record)
	}
	e.intel[player] = rec
}

func (e *Entity) policy() intel.Policy {
	if e.IntelPolicy == intel.PolicyUnknown {
		return intel.PolicyRevertible
	}
	return e.IntelPolicy
}
