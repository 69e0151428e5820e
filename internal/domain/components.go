package domain

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/intel"
)

// --- КОМПОНЕНТЫ ---
//
// Компоненты хранят истинные физические данные сущности. Слой отчётов
// читает их через аксессоры схемы и ничего не знает об их устройстве.

// HullComponent - Корпус корабля
type HullComponent struct {
	Class        string  `json:"class"` // "corvette", "frigate", "cruiser"
	HitPoints    int     `json:"hitPoints"`
	MaxHitPoints int     `json:"maxHitPoints"`
	Mass         float64 `json:"mass"`
	MaxSpeed     float64 `json:"maxSpeed"`
	Weapons      int     `json:"weapons"` // Количество орудийных установок
}

// ColonyComponent - Населённый объект (планета, аванпост)
type ColonyComponent struct {
	Population int `json:"population"`
	Defense    int `json:"defense"`
}

// StellarComponent - Параметры звезды
type StellarComponent struct {
	Category   string  `json:"category"` // Спектральный класс: "G2V", "M5"
	Luminosity float64 `json:"luminosity"`
}

// ResourcesComponent - Ресурсы объекта
type ResourcesComponent struct {
	Organics int `json:"organics"`
	Minerals int `json:"minerals"`
	Energy   int `json:"energy"`
}

// CommandComponent - Командование (флот), состоящее из кораблей
type CommandComponent struct {
	Members   []types.EntityID `json:"members"`
	Flagship  types.EntityID   `json:"flagship"`
	Formation string           `json:"formation"`
}

// Sensor - Один сенсор на борту
type Sensor struct {
	Class intel.SensorClass `json:"class"`
	Range int               `json:"range"` // Радиус в клетках
}

// SensorComponent - Набор сенсоров сущности
type SensorComponent struct {
	Suite []Sensor `json:"suite"`
}

// PatrolComponent - Маршрут патрулирования (источник движения в симуляции)
type PatrolComponent struct {
	Waypoints []Position `json:"waypoints"`
	Next      int        `json:"next"`
}
