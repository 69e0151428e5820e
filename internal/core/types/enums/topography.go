package enums

import "strings"

// Topography - пространственная классификация клетки сектора.
// У сущности она выводится из позиции и меняется при перемещении.
type Topography uint8

const (
	TopographyUnknown Topography = iota
	TopographyOpenSpace
	TopographyNebula
	TopographyAsteroidField
	TopographySystem
)

var topographyToString = map[Topography]string{
	TopographyOpenSpace:     "OPEN_SPACE",
	TopographyNebula:        "NEBULA",
	TopographyAsteroidField: "ASTEROID_FIELD",
	TopographySystem:        "SYSTEM",
}

var topographyStringToType = map[string]Topography{
	"OPEN_SPACE":     TopographyOpenSpace,
	"NEBULA":         TopographyNebula,
	"ASTEROID_FIELD": TopographyAsteroidField,
	"SYSTEM":         TopographySystem,
}

func (t Topography) String() string {
	if val, ok := topographyToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseTopography(s string) Topography {
	upper := strings.ToUpper(s)
	if val, ok := topographyStringToType[upper]; ok {
		return val
	}
	return TopographyUnknown
}

// BlocksSensors сообщает, перекрывает ли клетка линию обзора сенсоров.
func (t Topography) BlocksSensors() bool {
	return t == TopographyNebula
}

func (t Topography) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
