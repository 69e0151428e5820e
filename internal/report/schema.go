package report

import (
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/intel"
	"fmt"
)

// FieldType - семантический тип раскрываемого поля.
type FieldType uint8

const (
	FieldUnknown FieldType = iota
	FieldString
	FieldInt
	FieldFloat
	FieldOwner      // OwnerView, вычисляется относительно наблюдателя
	FieldTopography // enums.Topography
	FieldEntityID   // types.EntityID
	FieldPosition   // domain.Position
	FieldResources  // ResourcesView
)

var fieldTypeToString = map[FieldType]string{
	FieldUnknown:    "unknown",
	FieldString:     "string",
	FieldInt:        "int",
	FieldFloat:      "float",
	FieldOwner:      "owner",
	FieldTopography: "topography",
	FieldEntityID:   "entity_id",
	FieldPosition:   "position",
	FieldResources:  "resources",
}

var stringToFieldType = map[string]FieldType{
	"string":     FieldString,
	"int":        FieldInt,
	"float":      FieldFloat,
	"owner":      FieldOwner,
	"topography": FieldTopography,
	"entity_id":  FieldEntityID,
	"position":   FieldPosition,
	"resources":  FieldResources,
}

func (t FieldType) String() string {
	if s, ok := fieldTypeToString[t]; ok {
		return s
	}
	return "unknown"
}

func ParseFieldType(s string) (FieldType, error) {
	if t, ok := stringToFieldType[s]; ok {
		return t, nil
	}
	return FieldUnknown, fmt.Errorf("unknown field type %q", s)
}

func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// FieldSpec - правило раскрытия одного поля: имя, тип и минимальное
// покрытие, начиная с которого поле известно.
type FieldSpec struct {
	Name string
	Type FieldType
	Min  intel.CoverageLevel

	read Accessor
}

// KindSchema - таблица раскрытия для одного типа сущности.
type KindSchema struct {
	Kind         enums.EntityKind
	Policy       intel.Policy
	OwnerSeesAll bool
	Composite    bool
	Fields       []FieldSpec // Порядок полей фиксирован и совпадает с порядком в отчёте
}

// Field возвращает правило поля по имени.
func (s *KindSchema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
