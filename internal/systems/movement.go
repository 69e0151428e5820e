package systems

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	NewX, NewY int
	HasMoved   bool
	OutOfMap   bool // Если уткнулись в край сектора
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(e *domain.Entity, dx, dy int, w *domain.GameWorld) MovementResult {
	targetPos := e.Pos.Shift(dx, dy)
	res := MovementResult{NewX: targetPos.X, NewY: targetPos.Y}

	if !w.InBounds(targetPos.X, targetPos.Y) {
		res.OutOfMap = true
		return res
	}

	res.HasMoved = targetPos != e.Pos
	return res
}

// AdvancePatrols сдвигает патрульные сущности на одну клетку к текущей
// точке маршрута. Члены командования движутся вместе с ним.
//
// Позиция и топография раскрываются в отчётах, поэтому каждая сдвинутая
// сущность инвалидируется. Возвращает сдвинутые сущности.
func AdvancePatrols(w *domain.GameWorld, inv Invalidator) []types.EntityID {
	var moved []types.EntityID
	for _, e := range w.Entities() {
		if e.Destroyed || e.Patrol == nil || len(e.Patrol.Waypoints) == 0 {
			continue
		}

		p := e.Patrol
		if e.Pos == p.Waypoints[p.Next%len(p.Waypoints)] {
			p.Next = (p.Next + 1) % len(p.Waypoints)
		}
		target := p.Waypoints[p.Next%len(p.Waypoints)]
		step := e.Pos.StepToward(target)

		res := CalculateMove(e, step.X-e.Pos.X, step.Y-e.Pos.Y, w)
		if !res.HasMoved {
			continue
		}

		dx, dy := res.NewX-e.Pos.X, res.NewY-e.Pos.Y
		if err := w.UpdateEntityPos(e, res.NewX, res.NewY); err != nil {
			continue
		}
		inv.Invalidate(e.ID)
		moved = append(moved, e.ID)

		if e.IsCommand() {
			moved = append(moved, moveMembers(w, e, dx, dy, inv)...)
		}
	}
	return moved
}

func moveMembers(w *domain.GameWorld, cmd *domain.Entity, dx, dy int, inv Invalidator) []types.EntityID {
	var moved []types.EntityID
	for _, id := range cmd.Command.Members {
		m := w.GetEntity(id)
		if m == nil || m.Destroyed || m.Patrol != nil {
			continue
		}
		res := CalculateMove(m, dx, dy, w)
		if !res.HasMoved {
			continue
		}
		if err := w.UpdateEntityPos(m, res.NewX, res.NewY); err != nil {
			continue
		}
		inv.Invalidate(m.ID)
		moved = append(moved, m.ID)
	}
	return moved
}
