package report

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
)

// Relations - внешний учёт дипломатии. Нужен только для поля "владелец".
type Relations interface {
	RelationBetween(observer, owner types.PlayerID) enums.Relation
}

// Observer - тот, для кого строится отчёт.
type Observer struct {
	Player    types.PlayerID
	Relations Relations
}

// Accessor читает истинное значение поля из данных сущности.
// Возвращаемое значение не должно ссылаться на изменяемые данные сущности.
type Accessor func(e *domain.Entity, obs Observer) any

// OwnerView - владелец глазами наблюдателя.
type OwnerView struct {
	Player   types.PlayerID `json:"player"`
	Relation enums.Relation `json:"relation"`
}

// ResourcesView - копия ресурсов объекта.
type ResourcesView struct {
	Organics int `json:"organics"`
	Minerals int `json:"minerals"`
	Energy   int `json:"energy"`
}

type accessorDef struct {
	typ  FieldType
	read Accessor
}

// accessors - все поля, которые умеет раскрывать слой отчётов.
// Схема типа выбирает из них подмножество и задаёт пороги.
// Значения копируются в отчёт, поэтому аксессор возвращает значение,
// а не ссылку на данные сущности.
var accessors = map[string]accessorDef{
	"name": {FieldString, func(e *domain.Entity, _ Observer) any {
		return e.Name
	}},
	"owner": {FieldOwner, func(e *domain.Entity, obs Observer) any {
		view := OwnerView{Player: e.Owner, Relation: enums.RelationNone}
		if e.Owner == types.NoPlayer {
			return view
		}
		if e.Owner == obs.Player {
			view.Relation = enums.RelationSelf
		} else if obs.Relations != nil {
			view.Relation = obs.Relations.RelationBetween(obs.Player, e.Owner)
		} else {
			view.Relation = enums.RelationUnknown
		}
		return view
	}},
	"topography": {FieldTopography, func(e *domain.Entity, _ Observer) any {
		return e.Topography
	}},
	"position": {FieldPosition, func(e *domain.Entity, _ Observer) any {
		return e.Pos
	}},

	// Звёзды
	"category": {FieldString, func(e *domain.Entity, _ Observer) any {
		if e.Stellar == nil {
			return ""
		}
		return e.Stellar.Category
	}},
	"luminosity": {FieldFloat, func(e *domain.Entity, _ Observer) any {
		if e.Stellar == nil {
			return 0.0
		}
		return e.Stellar.Luminosity
	}},
	"resources": {FieldResources, func(e *domain.Entity, _ Observer) any {
		if e.Resources == nil {
			return ResourcesView{}
		}
		return ResourcesView{
			Organics: e.Resources.Organics,
			Minerals: e.Resources.Minerals,
			Energy:   e.Resources.Energy,
		}
	}},

	// Колонии
	"population": {FieldInt, func(e *domain.Entity, _ Observer) any {
		if e.Colony == nil {
			return 0
		}
		return e.Colony.Population
	}},
	"defense": {FieldInt, func(e *domain.Entity, _ Observer) any {
		if e.Colony == nil {
			return 0
		}
		return e.Colony.Defense
	}},

	// Корабли
	"hull_class": {FieldString, func(e *domain.Entity, _ Observer) any {
		if e.Hull == nil {
			return ""
		}
		return e.Hull.Class
	}},
	"speed": {FieldFloat, func(e *domain.Entity, _ Observer) any {
		if e.Hull == nil {
			return 0.0
		}
		return e.Hull.MaxSpeed
	}},
	"mass": {FieldFloat, func(e *domain.Entity, _ Observer) any {
		if e.Hull == nil {
			return 0.0
		}
		return e.Hull.Mass
	}},
	"hit_points": {FieldInt, func(e *domain.Entity, _ Observer) any {
		if e.Hull == nil {
			return 0
		}
		return e.Hull.HitPoints
	}},
	"max_hit_points": {FieldInt, func(e *domain.Entity, _ Observer) any {
		if e.Hull == nil {
			return 0
		}
		return e.Hull.MaxHitPoints
	}},
	"weapons": {FieldInt, func(e *domain.Entity, _ Observer) any {
		if e.Hull == nil {
			return 0
		}
		return e.Hull.Weapons
	}},

	// Командования
	"member_count": {FieldInt, func(e *domain.Entity, _ Observer) any {
		if e.Command == nil {
			return 0
		}
		return len(e.Command.Members)
	}},
	"formation": {FieldString, func(e *domain.Entity, _ Observer) any {
		if e.Command == nil {
			return ""
		}
		return e.Command.Formation
	}},
	"flagship": {FieldEntityID, func(e *domain.Entity, _ Observer) any {
		if e.Command == nil {
			return types.EntityID(0)
		}
		return e.Command.Flagship
	}},
}
