package intel

import (
	"fmt"
	"strings"
)

// SensorClass - класс сенсора. Каждому классу соответствует потолок покрытия:
// ближние сенсоры раскрывают больше, чем дальние.
type SensorClass uint8

const (
	SensorUnknown SensorClass = iota
	SensorShortRange
	SensorMediumRange
	SensorLongRange

	sensorClassCount
)

// SensorClasses - все классы в порядке от ближнего к дальнему.
var SensorClasses = []SensorClass{SensorShortRange, SensorMediumRange, SensorLongRange}

var sensorClassToString = map[SensorClass]string{
	SensorShortRange:  "short_range",
	SensorMediumRange: "medium_range",
	SensorLongRange:   "long_range",
}

func (s SensorClass) String() string {
	if val, ok := sensorClassToString[s]; ok {
		return val
	}
	return "unknown"
}

// Valid сообщает, является ли класс одним из известных.
func (s SensorClass) Valid() bool {
	return s > SensorUnknown && s < sensorClassCount
}

func ParseSensorClass(s string) (SensorClass, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for class, name := range sensorClassToString {
		if name == key {
			return class, nil
		}
	}
	return SensorUnknown, fmt.Errorf("unknown sensor class %q", s)
}

func (s SensorClass) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SensorClass) UnmarshalText(text []byte) error {
	parsed, err := ParseSensorClass(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ContactState - приобретён или потерян контакт.
type ContactState uint8

const (
	ContactLost ContactState = iota + 1
	ContactGained
)

func (c ContactState) String() string {
	switch c {
	case ContactGained:
		return "gained"
	case ContactLost:
		return "lost"
	}
	return "unknown"
}

// Ceilings - таблица "класс сенсора → максимально достижимое покрытие".
// Таблица заполняется при старте и дальше только читается.
type Ceilings [sensorClassCount]CoverageLevel

// DefaultCeilings возвращает потолки по умолчанию.
func DefaultCeilings() Ceilings {
	var c Ceilings
	c[SensorShortRange] = CoverageComprehensive
	c[SensorMediumRange] = CoverageBasic
	c[SensorLongRange] = CoverageAware
	return c
}

// Of возвращает потолок класса. Для неизвестного класса - CoverageNone.
func (c Ceilings) Of(class SensorClass) CoverageLevel {
	if !class.Valid() {
		return CoverageNone
	}
	return c[class]
}

// With возвращает копию таблицы с изменённым потолком.
func (c Ceilings) With(class SensorClass, level CoverageLevel) Ceilings {
	if class.Valid() {
		c[class] = level
	}
	return c
}
