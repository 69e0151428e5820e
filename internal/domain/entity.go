package domain

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/intel"
)

// --- СУЩНОСТЬ ---

// Entity - истинные данные наблюдаемой сущности.
//
// Сущность единолично владеет записями разведданных (по одной на каждого
// игрока, который её когда-либо наблюдал). Мутирует сущность только
// игровой цикл; тот, кто меняет раскрываемые поля, обязан после этого
// инвалидировать издателя отчётов.
type Entity struct {
	// Идентификация (не меняется)
	ID   types.EntityID   `json:"id"`
	Kind enums.EntityKind `json:"kind"`
	Name string           `json:"name"`

	// Истинное состояние
	Owner      types.PlayerID   `json:"owner"`
	Pos        Position         `json:"pos"`
	Topography enums.Topography `json:"topography"` // Выводится из клетки под Pos

	// Компоненты (Если nil - значит свойство отсутствует)
	Hull      *HullComponent      `json:"hull,omitempty"`
	Colony    *ColonyComponent    `json:"colony,omitempty"`
	Stellar   *StellarComponent   `json:"stellar,omitempty"`
	Resources *ResourcesComponent `json:"resources,omitempty"`
	Command   *CommandComponent   `json:"command,omitempty"`
	Sensors   *SensorComponent    `json:"sensors,omitempty"`
	Patrol    *PatrolComponent    `json:"patrol,omitempty"`

	// Свойства разведки, взятые из схемы типа при создании
	IntelPolicy              intel.Policy `json:"intelPolicy"`
	OwnerAlwaysComprehensive bool         `json:"ownerAlwaysComprehensive"`

	Destroyed bool `json:"destroyed"`

	intel map[types.PlayerID]*intel.Record
}

// IsCommand сообщает, является ли сущность командованием с членами.
func (e *Entity) IsCommand() bool {
	return e.Command != nil
}

// HasSensors сообщает, может ли сущность наблюдать другие.
func (e *Entity) HasSensors() bool {
	return e.Sensors != nil && len(e.Sensors.Suite) > 0 && e.Owner != types.NoPlayer
}
