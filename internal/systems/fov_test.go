package systems

import (
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
	"testing"
)

func TestComputeSensorCoverage(t *testing.T) {
	w := domain.NewGameWorld(11, 11)
	pos := domain.Position{X: 5, Y: 5}

	open := ComputeSensorCoverage(w, pos, 3)
	if !open[w.GetIndex(5, 5)] {
		t.Error("sensor tile must always be visible")
	}
	if !open[w.GetIndex(8, 5)] {
		t.Error("tile at exact radius must be visible in open space")
	}
	if open[w.GetIndex(9, 5)] {
		t.Error("tile beyond radius must not be visible")
	}

	// Стена туманности между сенсором и целью
	for y := 3; y <= 7; y++ {
		w.Map[y][7].Terrain = enums.TopographyNebula
	}
	shaded := ComputeSensorCoverage(w, pos, 3)
	if !shaded[w.GetIndex(7, 5)] {
		t.Error("nebula tile itself must be visible")
	}
	if shaded[w.GetIndex(8, 5)] {
		t.Error("tile behind nebula must be hidden")
	}
	if !shaded[w.GetIndex(3, 5)] {
		t.Error("tile on the open side must stay visible")
	}
}

func TestComputeSensorCoverage_Blind(t *testing.T) {
	w := domain.NewGameWorld(5, 5)

	tests := []struct {
		name   string
		pos    domain.Position
		radius int
	}{
		{"zero radius", domain.Position{X: 2, Y: 2}, 0},
		{"out of bounds", domain.Position{X: 9, Y: 9}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeSensorCoverage(w, tt.pos, tt.radius); len(got) != 0 {
				t.Errorf("expected no visible tiles, got %d", len(got))
			}
		})
	}
}
