package report

import (
	"cognitive-intel/internal/core/assert"
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument - нарушение контракта вызывающей стороной
	// (например, игрок, которого нет в партии).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownKind - для типа сущности нет таблицы раскрытия.
	ErrUnknownKind = errors.New("no schema for entity kind")
)

// Players - участники партии.
type Players interface {
	HasPlayer(id types.PlayerID) bool
}

// Generator строит отчёты по таблицам реестра.
// Генератор ничего не хранит между вызовами.
type Generator struct {
	registry  *Registry
	relations Relations
	players   Players
}

// NewGenerator создает генератор. players может быть nil: тогда
// проверяется только диапазон PlayerID.
func NewGenerator(registry *Registry, relations Relations, players Players) *Generator {
	return &Generator{registry: registry, relations: relations, players: players}
}

func (g *Generator) Registry() *Registry { return g.registry }

// ValidatePlayer проверяет, что игрок известен системе.
func (g *Generator) ValidatePlayer(player types.PlayerID) error {
	valid := player.Valid() && (g.players == nil || g.players.HasPlayer(player))
	assert.That(valid, fmt.Sprintf("report requested for unknown player %d", player))
	if !valid {
		return fmt.Errorf("%w: unknown player %d", ErrInvalidArgument, player)
	}
	return nil
}

// Generate строит отчёт о сущности для игрока.
//
// Игрок без записи разведданных получает отчёт на уровне CoverageNone:
// это законное состояние, а не ошибка.
func (g *Generator) Generate(e *domain.Entity, player types.PlayerID) (*Report, error) {
	if err := g.ValidatePlayer(player); err != nil {
		return nil, err
	}

	schema, ok := g.registry.Schema(e.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, e.Kind)
	}

	coverage := e.Coverage(player)
	obs := Observer{Player: player, Relations: g.relations}

	fields := make([]Field, len(schema.Fields))
	for i, spec := range schema.Fields {
		fields[i] = Field{Name: spec.Name, Type: spec.Type, Min: spec.Min, Value: Unknown}
		if coverage.AtLeast(spec.Min) {
			fields[i].Value = Known(spec.read(e, obs))
		}
	}

	return &Report{
		entity:   e.ID,
		kind:     e.Kind,
		observer: player,
		coverage: coverage,
		fields:   fields,
	}, nil
}
