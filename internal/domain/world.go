package domain

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Tile struct {
	X       int              `json:"x"`
	Y       int              `json:"y"`
	Terrain enums.Topography `json:"terrain"`
}

// GameWorld - сетка сектора и индексы сущностей.
type GameWorld struct {
	Map    [][]Tile `json:"map"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tick   int      `json:"tick"`

	// SpatialHash: Индекс позиции -> Список сущностей
	// Ключ: Y * Width + X
	SpatialHash    map[int][]*Entity          `json:"-"`
	EntityRegistry map[types.EntityID]*Entity `json:"-"`
}

// NewGameWorld создает сектор, заполненный открытым космосом.
func NewGameWorld(width, height int) *GameWorld {
	grid := make([][]Tile, height)
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			row[x] = Tile{X: x, Y: y, Terrain: enums.TopographyOpenSpace}
		}
		grid[y] = row
	}
	return &GameWorld{
		Map:            grid,
		Width:          width,
		Height:         height,
		SpatialHash:    make(map[int][]*Entity),
		EntityRegistry: make(map[types.EntityID]*Entity),
	}
}
