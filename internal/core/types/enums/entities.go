package enums

import "strings"

// EntityKind - тип наблюдаемой сущности.
// Значение хранится в битах Kind у EntityID, поэтому должно помещаться в uint8.
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindStar
	EntityKindPlanet
	EntityKindOutpost
	EntityKindShip
	EntityKindFleet
)

var entityKindToString = map[EntityKind]string{
	EntityKindStar:    "STAR",
	EntityKindPlanet:  "PLANET",
	EntityKindOutpost: "OUTPOST",
	EntityKindShip:    "SHIP",
	EntityKindFleet:   "FLEET",
}

var entityKindStringToType = map[string]EntityKind{
	"STAR":    EntityKindStar,
	"PLANET":  EntityKindPlanet,
	"OUTPOST": EntityKindOutpost,
	"SHIP":    EntityKindShip,
	"FLEET":   EntityKindFleet,
}

// String возвращает строковое представление (для логов и дебага)
func (e EntityKind) String() string {
	if val, ok := entityKindToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityKind конвертирует строку в Enum (нужно для загрузки схем из YAML)
func ParseEntityKind(s string) EntityKind {
	upper := strings.ToUpper(s)
	if val, ok := entityKindStringToType[upper]; ok {
		return val
	}
	return EntityKindUnknown
}

func (e EntityKind) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EntityKind) UnmarshalText(text []byte) error {
	*e = ParseEntityKind(string(text))
	return nil
}
