package publisher

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/report"
	"fmt"
	"sort"
)

// Registry - публикаторы всех сущностей партии.
//
// Вариант публикатора (обычный или составной) выбирается по таблице типа
// при регистрации. Реестр реализует контракт инвалидации, которым
// пользуются разрешение контактов и обработчики изменений.
type Registry struct {
	gen        *report.Generator
	plain      map[types.EntityID]*Publisher
	composites map[types.EntityID]*CompositePublisher
}

func NewRegistry(gen *report.Generator) *Registry {
	return &Registry{
		gen:        gen,
		plain:      make(map[types.EntityID]*Publisher),
		composites: make(map[types.EntityID]*CompositePublisher),
	}
}

// Generator возвращает генератор, которым пользуются публикаторы.
func (r *Registry) Generator() *report.Generator { return r.gen }

// Register создает публикатор для сущности. Повторная регистрация
// возвращает уже существующий.
func (r *Registry) Register(e *domain.Entity) *Publisher {
	if c, ok := r.composites[e.ID]; ok {
		return c.own
	}
	if p, ok := r.plain[e.ID]; ok {
		return p
	}

	p := New(e, r.gen)
	if schema, ok := r.gen.Registry().Schema(e.Kind); ok && schema.Composite {
		r.composites[e.ID] = NewComposite(p, r.member)
		return p
	}
	r.plain[e.ID] = p
	return p
}

// RegisterAll регистрирует сущности мира.
func (r *Registry) RegisterAll(entities []*domain.Entity) {
	for _, e := range entities {
		r.Register(e)
	}
}

func (r *Registry) member(id types.EntityID) (*Publisher, bool) {
	p, ok := r.plain[id]
	return p, ok
}

// Publisher возвращает публикатор собственного отчёта сущности.
// Для командований это базовая часть составного публикатора.
func (r *Registry) Publisher(id types.EntityID) (*Publisher, bool) {
	if c, ok := r.composites[id]; ok {
		return c.own, true
	}
	p, ok := r.plain[id]
	return p, ok
}

// Composite возвращает составной публикатор командования.
func (r *Registry) Composite(id types.EntityID) (*CompositePublisher, bool) {
	c, ok := r.composites[id]
	return c, ok
}

// Report возвращает отчёт любой зарегистрированной сущности.
func (r *Registry) Report(id types.EntityID, player types.PlayerID) (*report.Report, error) {
	p, ok := r.Publisher(id)
	if !ok {
		return nil, fmt.Errorf("%w: no publisher for %s", report.ErrInvalidArgument, id)
	}
	return p.Report(player)
}

// IDs возвращает идентификаторы в каноническом порядке.
func (r *Registry) IDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(r.plain)+len(r.composites))
	for id := range r.plain {
		ids = append(ids, id)
	}
	for id := range r.composites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// Invalidate сбрасывает кэш сущности для всех игроков.
func (r *Registry) Invalidate(id types.EntityID) {
	if p, ok := r.Publisher(id); ok {
		p.Invalidate()
	}
}

// InvalidateFor сбрасывает кэш сущности для одного игрока.
func (r *Registry) InvalidateFor(id types.EntityID, player types.PlayerID) {
	if p, ok := r.Publisher(id); ok {
		p.InvalidateFor(player)
	}
}

// InvalidateAll сбрасывает все кэши (после восстановления из сохранения).
func (r *Registry) InvalidateAll() {
	for _, p := range r.plain {
		p.Invalidate()
	}
	for _, c := range r.composites {
		c.Invalidate()
	}
}
