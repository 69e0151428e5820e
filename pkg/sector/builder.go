// Package sector генерирует стартовый сектор: карту с туманностями и
// астероидами, звёзды и планеты, аванпосты и флоты игроков.
// Генерация детерминирована: один seed - один сектор.
package sector

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"cognitive-intel/internal/report"
	"fmt"
	"math/rand"
)

const (
	MapWidth  = 48
	MapHeight = 32

	MinCloud = 2
	MaxCloud = 5
)

// Rect - Вспомогательная структура для облаков туманности
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Sector - результат генерации.
type Sector struct {
	World     *domain.GameWorld
	Entities  []*domain.Entity
	Roster    *domain.Roster
	Diplomacy *domain.Diplomacy
}

// SectorBuilder предоставляет fluent API для создания сектора
type SectorBuilder struct {
	width, height int
	rng           *rand.Rand
	schemas       *report.Registry
	alloc         *types.IDAllocator

	world    *domain.GameWorld
	clouds   []Rect
	entities []*domain.Entity
	roster   *domain.Roster
	players  []types.PlayerID
}

// NewSector создает builder. Все случайные решения берутся из seed.
func NewSector(seed int64, shard uint8, schemas *report.Registry) *SectorBuilder {
	return &SectorBuilder{
		width:   MapWidth,
		height:  MapHeight,
		rng:     rand.New(rand.NewSource(seed)),
		schemas: schemas,
		alloc:   types.NewIDAllocator(shard),
		roster:  domain.NewRoster(),
	}
}

// WithSize устанавливает размер карты
func (b *SectorBuilder) WithSize(width, height int) *SectorBuilder {
	b.width = width
	b.height = height
	b.world = nil
	return b
}

func (b *SectorBuilder) grid() *domain.GameWorld {
	if b.world == nil {
		b.world = domain.NewGameWorld(b.width, b.height)
	}
	return b.world
}

func (b *SectorBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// WithNebulae разбрасывает непересекающиеся облака туманности.
func (b *SectorBuilder) WithNebulae(maxClouds int) *SectorBuilder {
	w := b.grid()
	for i := 0; i < maxClouds; i++ {
		cw := b.randRange(MinCloud, MaxCloud)
		ch := b.randRange(MinCloud, MaxCloud)
		if cw+2 >= b.width || ch+2 >= b.height {
			continue
		}
		cloud := Rect{
			X: b.randRange(1, b.width-cw-1),
			Y: b.randRange(1, b.height-ch-1),
			W: cw, H: ch,
		}

		failed := false
		for _, other := range b.clouds {
			if cloud.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		for y := cloud.Y; y < cloud.Y+cloud.H; y++ {
			for x := cloud.X; x < cloud.X+cloud.W; x++ {
				w.Map[y][x].Terrain = enums.TopographyNebula
			}
		}
		b.clouds = append(b.clouds, cloud)
	}
	return b
}

// WithAsteroids размечает одиночные клетки астероидных полей.
func (b *SectorBuilder) WithAsteroids(count int) *SectorBuilder {
	w := b.grid()
	for i := 0; i < count; i++ {
		pos := b.openPos()
		w.Map[pos.Y][pos.X].Terrain = enums.TopographyAsteroidField
	}
	return b
}

// WithPlayers регистрирует игроков P1..Pn. При сборке все пары игроков
// объявляются враждующими.
func (b *SectorBuilder) WithPlayers(n int) *SectorBuilder {
	for i := 1; i <= n && i <= types.MaxPlayers; i++ {
		id := types.PlayerID(i)
		b.roster.Add(id, fmt.Sprintf("Empire %d", i))
		b.players = append(b.players, id)
	}
	return b
}

// openPos ищет клетку открытого космоса (макс 50 попыток).
func (b *SectorBuilder) openPos() domain.Position {
	w := b.grid()
	var pos domain.Position
	for attempt := 0; attempt < 50; attempt++ {
		pos = domain.Position{X: b.rng.Intn(b.width), Y: b.rng.Intn(b.height)}
		if w.Map[pos.Y][pos.X].Terrain == enums.TopographyOpenSpace && len(w.GetEntitiesAt(pos.X, pos.Y)) == 0 {
			return pos
		}
	}
	return pos
}

// nearPos возвращает клетку рядом с центром (в пределах карты).
func (b *SectorBuilder) nearPos(center domain.Position, spread int) domain.Position {
	pos := center.Shift(b.randRange(-spread, spread), b.randRange(-spread, spread))
	pos.X = min(max(pos.X, 0), b.width-1)
	pos.Y = min(max(pos.Y, 0), b.height-1)
	return pos
}

// spawn создает сущность и переносит на неё свойства разведки из схемы типа.
func (b *SectorBuilder) spawn(kind enums.EntityKind, name string, owner types.PlayerID, pos domain.Position) *domain.Entity {
	e := &domain.Entity{
		ID:    b.alloc.Next(kind),
		Kind: kind,
		Name: name,
		Pos:  pos,
	}
	if schema, ok := b.schemas.Schema(kind); ok {
		e.IntelPolicy = schema.Policy
		e.OwnerAlwaysComprehensive = schema.OwnerSeesAll
	}
	// Через SetOwner, чтобы владелец сразу получил полную запись
	e.SetOwner(owner, b.schemas.Ceilings())

	w := b.grid()
	w.AddEntity(e)
	w.RegisterEntity(e)
	b.entities = append(b.entities, e)
	return e
}

// Build собирает и возвращает готовый сектор
func (b *SectorBuilder) Build() *Sector {
	diplomacy := domain.NewDiplomacy()
	for i, a := range b.players {
		for _, c := range b.players[i+1:] {
			diplomacy.SetRelation(a, c, enums.RelationEnemy)
		}
	}

	return &Sector{
		World:     b.grid(),
		Entities:  b.entities,
		Roster:    b.roster,
		Diplomacy: diplomacy,
	}
}

// --- Стандартные наборы сенсоров ---

func shipSensors() *domain.SensorComponent {
	return &domain.SensorComponent{Suite: []domain.Sensor{
		{Class: intel.SensorShortRange, Range: 3},
		{Class: intel.SensorLongRange, Range: 10},
	}}
}

func outpostSensors() *domain.SensorComponent {
	return &domain.SensorComponent{Suite: []domain.Sensor{
		{Class: intel.SensorMediumRange, Range: 6},
		{Class: intel.SensorLongRange, Range: 12},
	}}
}
