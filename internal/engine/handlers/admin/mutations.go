package admin

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/engine/handlers"
	"cognitive-intel/pkg/api"
	"fmt"
)

// findTarget ищет живую сущность по ID из протокола.
func findTarget(ctx handlers.Context, wireID string) (*domain.Entity, string) {
	id, err := types.ParseEntityID(wireID)
	if err != nil {
		return nil, fmt.Sprintf("Bad target id %q", wireID)
	}
	target := ctx.Finder.GetEntity(id)
	if target == nil || target.Destroyed {
		return nil, "Target not found"
	}
	return target, ""
}

// HandleRename меняет имя сущности. Имя раскрывается в отчётах всегда,
// поэтому кэш отчётов сбрасывается у всех игроков.
func HandleRename(ctx handlers.Context, p api.RenamePayload) (handlers.Result, error) {
	target, msg := findTarget(ctx, p.TargetID)
	if target == nil {
		return handlers.ErrorResult(msg), nil
	}

	old := target.Name
	target.Name = p.Name
	ctx.Invalidator.Invalidate(target.ID)

	return handlers.Result{
		Msg:     fmt.Sprintf("%s renamed %s to %s", ctx.Actor, old, p.Name),
		MsgType: "ADMIN",
	}, nil
}

// HandleSetOwner передаёт сущность другому игроку (0 - ничья).
func HandleSetOwner(ctx handlers.Context, p api.SetOwnerPayload) (handlers.Result, error) {
	target, msg := findTarget(ctx, p.TargetID)
	if target == nil {
		return handlers.ErrorResult(msg), nil
	}

	owner := types.PlayerID(p.Owner)
	if owner != types.NoPlayer && (ctx.Roster == nil || !ctx.Roster.HasPlayer(owner)) {
		return handlers.ErrorResult(fmt.Sprintf("Unknown player %d", p.Owner)), nil
	}

	target.SetOwner(owner, ctx.Ceilings)
	ctx.Invalidator.Invalidate(target.ID)

	return handlers.Result{
		Msg:     fmt.Sprintf("%s transferred %s to %s", ctx.Actor, target.Name, owner),
		MsgType: "ADMIN",
	}, nil
}

// HandleSetPopulation меняет население колонии.
func HandleSetPopulation(ctx handlers.Context, p api.SetPopulationPayload) (handlers.Result, error) {
	target, msg := findTarget(ctx, p.TargetID)
	if target == nil {
		return handlers.ErrorResult(msg), nil
	}
	if target.Colony == nil {
		return handlers.ErrorResult(fmt.Sprintf("%s has no colony", target.Name)), nil
	}

	target.Colony.Population = p.Population
	ctx.Invalidator.Invalidate(target.ID)

	return handlers.Result{
		Msg:     fmt.Sprintf("%s set population of %s to %d", ctx.Actor, target.Name, p.Population),
		MsgType: "ADMIN",
	}, nil
}

// HandleDestroy уничтожает сущность. Запись о ней остаётся в реестре,
// издатель с этого момента отвечает ErrEntityDestroyed.
func HandleDestroy(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	target, msg := findTarget(ctx, p.TargetID)
	if target == nil {
		return handlers.ErrorResult(msg), nil
	}

	target.Destroyed = true
	if ctx.OnDestroy != nil {
		ctx.OnDestroy(target)
	}
	ctx.Invalidator.Invalidate(target.ID)

	return handlers.Result{
		Msg:     fmt.Sprintf("%s destroyed %s", ctx.Actor, target.Name),
		MsgType: "ADMIN",
	}, nil
}
