package domain

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"testing"
)

func TestGameWorld_AddRemoveEntity(t *testing.T) {
	world := NewGameWorld(10, 10)
	id := types.PackEntityID(0, enums.EntityKindShip, 0, 1)

	e := &Entity{
		ID:  id,
		Pos: Position{X: 5, Y: 5},
	}

	// Test Add
	world.AddEntity(e)
	world.RegisterEntity(e)

	if len(world.GetEntitiesAt(5, 5)) != 1 {
		t.Error("SpatialHash should contain the entity after adding")
	}

	retrieved := world.GetEntity(id)
	if retrieved != e {
		t.Errorf("GetEntity returned wrong entity: got %v want %v", retrieved, e)
	}

	// Test Remove
	world.RemoveEntity(e)
	world.UnregisterEntity(id)

	if world.GetEntity(id) != nil {
		t.Error("Entity should be nil after removal")
	}
	if len(world.GetEntitiesAt(5, 5)) != 0 {
		t.Error("SpatialHash cell should be empty after removal")
	}
}

func TestGameWorld_TopographyFollowsPosition(t *testing.T) {
	world := NewGameWorld(10, 10)
	world.Map[2][3].Terrain = enums.TopographyNebula

	e := &Entity{ID: types.PackEntityID(0, enums.EntityKindShip, 0, 1), Pos: Position{X: 1, Y: 1}}
	world.AddEntity(e)
	if e.Topography != enums.TopographyOpenSpace {
		t.Fatalf("Topography = %s, want OPEN_SPACE", e.Topography)
	}

	if err := world.UpdateEntityPos(e, 3, 2); err != nil {
		t.Fatalf("UpdateEntityPos error: %v", err)
	}
	if e.Topography != enums.TopographyNebula {
		t.Errorf("Topography = %s, want NEBULA", e.Topography)
	}
	if !world.BlocksSensors(3, 2) {
		t.Error("nebula must block sensors")
	}

	if err := world.UpdateEntityPos(e, 42, 0); err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestGameWorld_EntitiesCanonicalOrder(t *testing.T) {
	world := NewGameWorld(4, 4)
	alloc := types.NewIDAllocator(0)

	first := &Entity{ID: alloc.Next(enums.EntityKindFleet)}
	second := &Entity{ID: alloc.Next(enums.EntityKindStar)}
	third := &Entity{ID: alloc.Next(enums.EntityKindShip)}

	for _, e := range []*Entity{third, first, second} {
		world.RegisterEntity(e)
	}

	got := world.Entities()
	if got[0] != first || got[1] != second || got[2] != third {
		t.Errorf("Entities() not in creation order: %v %v %v", got[0].ID, got[1].ID, got[2].ID)
	}
}
