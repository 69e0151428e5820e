// Package publisher кэширует отчёты по игрокам и собирает составные
// отчёты командований из отчётов их членов.
//
// Кэш явный, не по времени: тот, кто меняет данные сущности или покрытие
// игрока, обязан вызвать Invalidate/InvalidateFor. Публикаторы не имеют
// собственной блокировки и вызываются только из потока тика (или под его
// мьютексом).
package publisher

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/report"
	"cognitive-intel/pkg/logger"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrEntityDestroyed - сущность уничтожена, отчёта больше нет.
var ErrEntityDestroyed = errors.New("entity destroyed")

// Publisher - фасад одной сущности: отчёт для игрока по запросу.
type Publisher struct {
	entity *domain.Entity
	gen    *report.Generator
	cache  map[types.PlayerID]*report.Report

	// Составные публикаторы, в чьи отчёты входит наш
	watchers map[*CompositePublisher]struct{}

	log *logrus.Entry
}

// New создает публикатор сущности.
func New(e *domain.Entity, gen *report.Generator) *Publisher {
	return &Publisher{
		entity:   e,
		gen:      gen,
		cache:    make(map[types.PlayerID]*report.Report),
		watchers: make(map[*CompositePublisher]struct{}),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "publisher",
			"entity_id": e.ID,
		}),
	}
}

func (p *Publisher) Entity() *domain.Entity { return p.entity }

// Report возвращает отчёт для игрока.
//
// В пределах одной эпохи кэша возвращается один и тот же экземпляр.
func (p *Publisher) Report(player types.PlayerID) (*report.Report, error) {
	if err := p.gen.ValidatePlayer(player); err != nil {
		return nil, err
	}
	if p.entity.Destroyed {
		return nil, fmt.Errorf("%w: %s", ErrEntityDestroyed, p.entity.ID)
	}

	if rep, ok := p.cache[player]; ok {
		return rep, nil
	}

	rep, err := p.gen.Generate(p.entity, player)
	if err != nil {
		return nil, err
	}
	p.cache[player] = rep

	p.log.WithFields(logrus.Fields{
		"player":   player,
		"coverage": rep.Coverage(),
		"known":    rep.KnownCount(),
	}).Debug("Report regenerated")
	return rep, nil
}

// Cached сообщает, есть ли у игрока отчёт в кэше.
func (p *Publisher) Cached(player types.PlayerID) bool {
	_, ok := p.cache[player]
	return ok
}

// Invalidate сбрасывает кэш всех игроков (изменились данные сущности).
// Повторный вызов ничего не меняет.
func (p *Publisher) Invalidate() {
	clear(p.cache)
	for w := range p.watchers {
		w.Invalidate()
	}
}

// InvalidateFor сбрасывает кэш одного игрока (изменилось его покрытие).
func (p *Publisher) InvalidateFor(player types.PlayerID) {
	delete(p.cache, player)
	for w := range p.watchers {
		w.InvalidateFor(player)
	}
}

func (p *Publisher) watch(c *CompositePublisher) {
	p.watchers[c] = struct{}{}
}

func (p *Publisher) unwatch(c *CompositePublisher) {
	delete(p.watchers, c)
}
