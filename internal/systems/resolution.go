package systems

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"cognitive-intel/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Invalidator - контракт сброса кэша отчётов. Его вызывает каждый, кто
// меняет раскрываемые данные сущности или покрытие игрока.
type Invalidator interface {
	Invalidate(id types.EntityID)
	InvalidateFor(id types.EntityID, player types.PlayerID)
}

// Transition - изменение покрытия в результате разрешения контактов.
type Transition struct {
	Entity types.EntityID      `json:"entity"`
	Player types.PlayerID      `json:"player"`
	From   intel.CoverageLevel `json:"from"`
	To     intel.CoverageLevel `json:"to"`
}

// ResolveContacts применяет события тика к записям разведданных.
//
// События сортируются, поэтому результат не зависит от порядка обзора.
// Для каждого изменившегося покрытия сбрасывается кэш отчёта игрока.
// Фаза полностью завершается до того, как у публикаторов запросят отчёты.
func ResolveContacts(w *domain.GameWorld, events []ContactEvent, ceilings intel.Ceilings, inv Invalidator) []Transition {
	log := logger.Log.WithField("component", "contact_resolution")
	SortEvents(events)

	var transitions []Transition
	for _, ev := range events {
		e := w.GetEntity(ev.Target)
		if e == nil || e.Destroyed {
			continue
		}

		from, to, changed := e.ApplyContact(ev.Player, ev.Class, ev.State, ceilings)
		if !changed {
			continue
		}
		inv.InvalidateFor(e.ID, ev.Player)
		transitions = append(transitions, Transition{Entity: e.ID, Player: ev.Player, From: from, To: to})

		log.WithFields(logrus.Fields{
			"entity_id": e.ID,
			"player":    ev.Player,
			"class":     ev.Class,
			"from":      from,
			"to":        to,
		}).Debug("Coverage changed")
	}
	return transitions
}
