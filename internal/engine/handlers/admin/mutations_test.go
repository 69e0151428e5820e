package admin

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/engine/handlers"
	"cognitive-intel/internal/intel"
	"cognitive-intel/pkg/api"
	"testing"
)

type countingInvalidator struct {
	calls map[types.EntityID]int
}

func (c *countingInvalidator) Invalidate(id types.EntityID) { c.calls[id]++ }

func (c *countingInvalidator) InvalidateFor(id types.EntityID, _ types.PlayerID) { c.calls[id]++ }

func newContext(t *testing.T) (handlers.Context, *domain.Entity, *countingInvalidator) {
	t.Helper()
	w := domain.NewGameWorld(10, 10)
	alloc := types.NewIDAllocator(0)
	outpost := &domain.Entity{
		ID:                       alloc.Next(enums.EntityKindOutpost),
		Kind:                     enums.EntityKindOutpost,
		Name:                     "Outpost-7",
		Owner:                    1,
		Pos:                      domain.Position{X: 3, Y: 3},
		Colony:                   &domain.ColonyComponent{Population: 1200, Defense: 40},
		IntelPolicy:              intel.PolicyRevertible,
		OwnerAlwaysComprehensive: true,
	}
	w.AddEntity(outpost)
	w.RegisterEntity(outpost)

	roster := domain.NewRoster()
	roster.Add(1, "Red")
	roster.Add(2, "Blue")

	inv := &countingInvalidator{calls: make(map[types.EntityID]int)}
	ctx := handlers.Context{
		Finder:      w,
		World:       w,
		Roster:      roster,
		Invalidator: inv,
		Actor:       1,
	}
	return ctx, outpost, inv
}

func TestHandleRename(t *testing.T) {
	ctx, outpost, inv := newContext(t)

	res, err := HandleRename(ctx, api.RenamePayload{TargetID: outpost.ID.Wire(), Name: "Outpost-8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MsgType != "ADMIN" {
		t.Errorf("MsgType = %q, want ADMIN", res.MsgType)
	}
	if outpost.Name != "Outpost-8" {
		t.Errorf("Name = %q, want Outpost-8", outpost.Name)
	}
	if inv.calls[outpost.ID] != 1 {
		t.Errorf("expected one invalidation, got %d", inv.calls[outpost.ID])
	}
}

func TestHandleSetOwner(t *testing.T) {
	tests := []struct {
		name      string
		owner     int
		wantOwner types.PlayerID
		wantError bool
	}{
		{"transfer to roster player", 2, 2, false},
		{"release to nobody", 0, types.NoPlayer, false},
		{"unknown player rejected", 7, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, outpost, inv := newContext(t)

			res, err := HandleSetOwner(ctx, api.SetOwnerPayload{TargetID: outpost.ID.Wire(), Owner: tt.owner})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := res.MsgType == "ERROR"; got != tt.wantError {
				t.Fatalf("error result = %v, want %v (%s)", got, tt.wantError, res.Msg)
			}
			if outpost.Owner != tt.wantOwner {
				t.Errorf("Owner = %s, want %s", outpost.Owner, tt.wantOwner)
			}
			wantCalls := 1
			if tt.wantError {
				wantCalls = 0
			}
			if inv.calls[outpost.ID] != wantCalls {
				t.Errorf("invalidations = %d, want %d", inv.calls[outpost.ID], wantCalls)
			}
		})
	}
}

func TestHandleSetOwner_NewOwnerSeesEverything(t *testing.T) {
	ctx, outpost, _ := newContext(t)

	if _, err := HandleSetOwner(ctx, api.SetOwnerPayload{TargetID: outpost.ID.Wire(), Owner: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := outpost.Coverage(2); got != intel.MaxCoverage {
		t.Errorf("new owner coverage = %s, want %s", got, intel.MaxCoverage)
	}
}

func TestHandleSetPopulation(t *testing.T) {
	ctx, outpost, inv := newContext(t)

	if _, err := HandleSetPopulation(ctx, api.SetPopulationPayload{TargetID: outpost.ID.Wire(), Population: 1500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outpost.Colony.Population != 1500 {
		t.Errorf("Population = %d, want 1500", outpost.Colony.Population)
	}
	if inv.calls[outpost.ID] != 1 {
		t.Errorf("expected one invalidation, got %d", inv.calls[outpost.ID])
	}

	outpost.Colony = nil
	res, _ := HandleSetPopulation(ctx, api.SetPopulationPayload{TargetID: outpost.ID.Wire(), Population: 10})
	if res.MsgType != "ERROR" {
		t.Errorf("expected ERROR for entity without colony, got %q", res.MsgType)
	}
}

func TestHandleDestroy(t *testing.T) {
	ctx, outpost, inv := newContext(t)

	var destroyed []types.EntityID
	ctx.OnDestroy = func(e *domain.Entity) { destroyed = append(destroyed, e.ID) }

	if _, err := HandleDestroy(ctx, api.EntityPayload{TargetID: outpost.ID.Wire()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outpost.Destroyed {
		t.Error("entity should be marked destroyed")
	}
	if len(destroyed) != 1 || destroyed[0] != outpost.ID {
		t.Errorf("OnDestroy calls = %v", destroyed)
	}
	if inv.calls[outpost.ID] != 1 {
		t.Errorf("expected one invalidation, got %d", inv.calls[outpost.ID])
	}

	// Повторное уничтожение - цели уже нет
	res, _ := HandleDestroy(ctx, api.EntityPayload{TargetID: outpost.ID.Wire()})
	if res.MsgType != "ERROR" {
		t.Errorf("expected ERROR for destroyed target, got %q", res.MsgType)
	}
}

func TestFindTarget_BadID(t *testing.T) {
	ctx, _, inv := newContext(t)

	for _, id := range []string{"abc", "999999"} {
		res, err := HandleRename(ctx, api.RenamePayload{TargetID: id, Name: "X"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.MsgType != "ERROR" {
			t.Errorf("id %q: expected ERROR, got %q", id, res.MsgType)
		}
	}
	if len(inv.calls) != 0 {
		t.Errorf("rejected commands must not invalidate, got %v", inv.calls)
	}
}
