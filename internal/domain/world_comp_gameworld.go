package domain

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"errors"
	"sort"
)

// ErrOutOfBounds - позиция вне сектора.
var ErrOutOfBounds = errors.New("out of bounds")

func (w *GameWorld) GetIndex(x, y int) int {
	return y*w.Width + x
}

// InBounds проверяет, лежит ли клетка внутри сектора.
func (w *GameWorld) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// TopographyAt возвращает классификацию клетки.
func (w *GameWorld) TopographyAt(x, y int) enums.Topography {
	if !w.InBounds(x, y) {
		return enums.TopographyUnknown
	}
	return w.Map[y][x].Terrain
}

// BlocksSensors проверяет, перекрывает ли клетка линию обзора.
// Выход за границы считается перекрывающим.
func (w *GameWorld) BlocksSensors(x, y int) bool {
	if !w.InBounds(x, y) {
		return true
	}
	return w.Map[y][x].Terrain.BlocksSensors()
}

// GetEntitiesAt возвращает список сущностей в конкретной клетке
func (w *GameWorld) GetEntitiesAt(x, y int) []*Entity {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.SpatialHash[w.GetIndex(x, y)]
}

// GetEntity ищет сущность по ID
func (w *GameWorld) GetEntity(id types.EntityID) *Entity {
	if w.EntityRegistry == nil {
		return nil
	}
	return w.EntityRegistry[id]
}

// RegisterEntity добавляет сущность в реестр
func (w *GameWorld) RegisterEntity(e *Entity) {
	if w.EntityRegistry == nil {
		w.EntityRegistry = make(map[types.EntityID]*Entity)
	}
	w.EntityRegistry[e.ID] = e
}

// UnregisterEntity удаляет сущность из реестра
func (w *GameWorld) UnregisterEntity(id types.EntityID) {
	if w.EntityRegistry != nil {
		delete(w.EntityRegistry, id)
	}
}

// AddEntity добавляет сущность в пространственный индекс и выводит её топографию.
func (w *GameWorld) AddEntity(e *Entity) {
	if w.SpatialHash == nil {
		w.SpatialHash = make(map[int][]*Entity)
	}
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	w.SpatialHash[idx] = append(w.SpatialHash[idx], e)
	e.Topography = w.TopographyAt(e.Pos.X, e.Pos.Y)
}

// RemoveEntity удаляет сущность из индекса (при уничтожении или перемещении)
func (w *GameWorld) RemoveEntity(e *Entity) {
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	entities := w.SpatialHash[idx]

	for i, other := range entities {
		if other.ID == e.ID {
			// Swap with last: порядок внутри клетки не важен
			lastIdx := len(entities) - 1
			entities[i] = entities[lastIdx]
			entities[lastIdx] = nil
			w.SpatialHash[idx] = entities[:lastIdx]
			return
		}
	}
}

// UpdateEntityPos перемещает сущность в индексе. Топография пересчитывается.
func (w *GameWorld) UpdateEntityPos(e *Entity, newX, newY int) error {
	if !w.InBounds(newX, newY) {
		return ErrOutOfBounds
	}

	w.RemoveEntity(e)
	e.Pos.X = newX
	e.Pos.Y = newY
	w.AddEntity(e)
	return nil
}

// Entities возвращает все зарегистрированные сущности в каноническом порядке.
func (w *GameWorld) Entities() []*Entity {
	all := make([]*Entity, 0, len(w.EntityRegistry))
	for _, e := range w.EntityRegistry {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.Less(all[j].ID) })
	return all
}
