package sector

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/report"
	"fmt"
)

// StarTemplate описывает тип звезды
type StarTemplate struct {
	Category   string
	Luminosity float64
	Energy     int
}

var StarTemplates = []StarTemplate{
	{Category: "M5V", Luminosity: 0.02, Energy: 5},
	{Category: "K2V", Luminosity: 0.35, Energy: 20},
	{Category: "G2V", Luminosity: 1.0, Energy: 40},
	{Category: "F0IV", Luminosity: 6.2, Energy: 70},
	{Category: "B3III", Luminosity: 900, Energy: 150},
}

var starNames = []string{
	"Achernar", "Bellatrix", "Capella", "Deneb", "Elnath",
	"Fomalhaut", "Gacrux", "Hadar", "Izar", "Jabbah",
}

// HullTemplate описывает класс корабля
type HullTemplate struct {
	Class     string
	HitPoints int
	Mass      float64
	MaxSpeed  float64
	Weapons   int
}

var HullTemplates = map[string]HullTemplate{
	"corvette": {Class: "corvette", HitPoints: 40, Mass: 800, MaxSpeed: 3, Weapons: 1},
	"frigate":  {Class: "frigate", HitPoints: 90, Mass: 2400, MaxSpeed: 2, Weapons: 3},
	"cruiser":  {Class: "cruiser", HitPoints: 220, Mass: 9000, MaxSpeed: 1, Weapons: 6},
}

// fleetHulls - состав флота по порядку кораблей
var fleetHulls = []string{"cruiser", "frigate", "corvette", "corvette", "frigate"}

// WithStars создает звёздные системы. Клетка звезды получает топографию SYSTEM.
func (b *SectorBuilder) WithStars(count int) *SectorBuilder {
	w := b.grid()
	for i := 0; i < count; i++ {
		tmpl := StarTemplates[b.rng.Intn(len(StarTemplates))]
		pos := b.openPos()
		w.Map[pos.Y][pos.X].Terrain = enums.TopographySystem

		name := starNames[i%len(starNames)]
		if i >= len(starNames) {
			name = fmt.Sprintf("%s %d", name, i/len(starNames)+1)
		}

		star := b.spawn(enums.EntityKindStar, name, types.NoPlayer, pos)
		star.Stellar = &domain.StellarComponent{Category: tmpl.Category, Luminosity: tmpl.Luminosity}
		star.Resources = &domain.ResourcesComponent{Energy: tmpl.Energy}
	}
	return b
}

// WithPlanets добавляет по perStar планет возле каждой звезды.
func (b *SectorBuilder) WithPlanets(perStar int) *SectorBuilder {
	stars := b.ofKind(enums.EntityKindStar)
	for _, star := range stars {
		for i := 0; i < perStar; i++ {
			pos := b.nearPos(star.Pos, 2)
			planet := b.spawn(enums.EntityKindPlanet, fmt.Sprintf("%s %c", star.Name, 'b'+i), types.NoPlayer, pos)
			planet.Colony = &domain.ColonyComponent{}
			planet.Resources = &domain.ResourcesComponent{
				Organics: b.rng.Intn(100),
				Minerals: b.rng.Intn(100),
				Energy:   star.Resources.Energy / 2,
			}
		}
	}
	return b
}

// WithOutposts дает каждому игроку аванпост с сенсорами.
func (b *SectorBuilder) WithOutposts() *SectorBuilder {
	for _, p := range b.players {
		outpost := b.spawn(enums.EntityKindOutpost, fmt.Sprintf("Outpost-%d", p), p, b.openPos())
		outpost.Colony = &domain.ColonyComponent{
			Population: 500 + b.rng.Intn(1000),
			Defense:    20 + b.rng.Intn(40),
		}
		outpost.Sensors = outpostSensors()
	}
	return b
}

// WithFleets дает каждому игроку флот из ships кораблей с маршрутом патруля.
func (b *SectorBuilder) WithFleets(ships int) *SectorBuilder {
	for _, p := range b.players {
		start := b.openPos()
		fleet := b.spawn(enums.EntityKindFleet, fmt.Sprintf("%s Fleet", p), p, start)
		fleet.Command = &domain.CommandComponent{Formation: "wedge"}
		fleet.Patrol = &domain.PatrolComponent{Waypoints: []domain.Position{
			start, b.openPos(), b.openPos(),
		}}

		for i := 0; i < ships; i++ {
			tmpl := HullTemplates[fleetHulls[i%len(fleetHulls)]]
			ship := b.spawn(enums.EntityKindShip, fmt.Sprintf("%s-%s-%d", p, tmpl.Class, i+1), p, b.nearPos(start, 1))
			ship.Hull = &domain.HullComponent{
				Class:        tmpl.Class,
				HitPoints:    tmpl.HitPoints,
				MaxHitPoints: tmpl.HitPoints,
				Mass:         tmpl.Mass,
				MaxSpeed:     tmpl.MaxSpeed,
				Weapons:      tmpl.Weapons,
			}
			ship.Sensors = shipSensors()
			fleet.Command.Members = append(fleet.Command.Members, ship.ID)
			if i == 0 {
				fleet.Command.Flagship = ship.ID
			}
		}
	}
	return b
}

// WithScouts дает каждому игроку одиночный разведчик на патруле.
func (b *SectorBuilder) WithScouts() *SectorBuilder {
	for _, p := range b.players {
		tmpl := HullTemplates["corvette"]
		start := b.openPos()
		scout := b.spawn(enums.EntityKindShip, fmt.Sprintf("%s-scout", p), p, start)
		scout.Hull = &domain.HullComponent{
			Class: tmpl.Class, HitPoints: tmpl.HitPoints, MaxHitPoints: tmpl.HitPoints,
			Mass: tmpl.Mass, MaxSpeed: tmpl.MaxSpeed, Weapons: tmpl.Weapons,
		}
		scout.Sensors = shipSensors()
		scout.Patrol = &domain.PatrolComponent{Waypoints: []domain.Position{
			start, b.openPos(), b.openPos(), b.openPos(),
		}}
	}
	return b
}

func (b *SectorBuilder) ofKind(kind enums.EntityKind) []*domain.Entity {
	var out []*domain.Entity
	for _, e := range b.entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Generate собирает сектор по умолчанию для заданного числа игроков.
func Generate(seed int64, shard uint8, players int, schemas *report.Registry) *Sector {
	return NewSector(seed, shard, schemas).
		WithNebulae(6).
		WithAsteroids(20).
		WithPlayers(players).
		WithStars(6).
		WithPlanets(2).
		WithOutposts().
		WithFleets(3).
		WithScouts().
		Build()
}
