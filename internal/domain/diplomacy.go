package domain

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
)

// Diplomacy - минимальная таблица отношений между игроками.
// Полноценный учёт дипломатии живёт вне этого сервиса; здесь только то,
// что нужно для вычисления поля "владелец" относительно наблюдателя.
type Diplomacy struct {
	relations map[[2]types.PlayerID]enums.Relation
}

func NewDiplomacy() *Diplomacy {
	return &Diplomacy{relations: make(map[[2]types.PlayerID]enums.Relation)}
}

// SetRelation задаёт симметричное отношение двух игроков.
func (d *Diplomacy) SetRelation(a, b types.PlayerID, rel enums.Relation) {
	d.relations[pairKey(a, b)] = rel
}

// RelationBetween возвращает отношение владельца к наблюдателю.
// Не заданные пары считаются нейтральными.
func (d *Diplomacy) RelationBetween(observer, owner types.PlayerID) enums.Relation {
	switch {
	case owner == types.NoPlayer:
		return enums.RelationNone
	case observer == owner:
		return enums.RelationSelf
	}
	if rel, ok := d.relations[pairKey(observer, owner)]; ok {
		return rel
	}
	return enums.RelationNeutral
}

func pairKey(a, b types.PlayerID) [2]types.PlayerID {
	if a > b {
		a, b = b, a
	}
	return [2]types.PlayerID{a, b}
}
