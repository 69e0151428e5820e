package enums

// Relation - отношение владельца сущности к наблюдателю.
// Значение имеет смысл только относительно конкретного наблюдателя.
type Relation uint8

const (
	RelationUnknown Relation = iota
	RelationNone             // ничейная сущность
	RelationSelf             // наблюдатель сам владелец
	RelationAlly
	RelationNeutral
	RelationEnemy
)

var relationToString = map[Relation]string{
	RelationNone:    "NONE",
	RelationSelf:    "SELF",
	RelationAlly:    "ALLY",
	RelationNeutral: "NEUTRAL",
	RelationEnemy:   "ENEMY",
}

func (r Relation) String() string {
	if val, ok := relationToString[r]; ok {
		return val
	}
	return "UNKNOWN"
}

func (r Relation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// IsHostile - удобный предикат для ИИ.
func (r Relation) IsHostile() bool {
	return r == RelationEnemy
}
