// Package intel описывает знание игрока о сущности: шкалу покрытия,
// политику изменения и машину состояний записи разведданных.
package intel

import (
	"fmt"
	"strings"
)

// CoverageLevel - уровень покрытия (насколько полно игрок знает сущность).
//
// Порядок уровней зафиксирован на этапе компиляции. Остальные компоненты
// используют только сравнения (AtLeast, Less, Max) и не опираются на
// числовое представление.
type CoverageLevel uint8

const (
	CoverageNone CoverageLevel = iota
	CoverageAware
	CoverageBasic
	CoverageEssential
	CoverageComprehensive
)

// MaxCoverage - наибольший уровень шкалы.
const MaxCoverage = CoverageComprehensive

var coverageToString = map[CoverageLevel]string{
	CoverageNone:          "none",
	CoverageAware:         "aware",
	CoverageBasic:         "basic",
	CoverageEssential:     "essential",
	CoverageComprehensive: "comprehensive",
}

var coverageStringToLevel = map[string]CoverageLevel{
	"none":          CoverageNone,
	"aware":         CoverageAware,
	"basic":         CoverageBasic,
	"essential":     CoverageEssential,
	"comprehensive": CoverageComprehensive,
}

func (c CoverageLevel) String() string {
	if val, ok := coverageToString[c]; ok {
		return val
	}
	return fmt.Sprintf("coverage(%d)", uint8(c))
}

// ParseCoverage конвертирует строку (без учета регистра) в уровень.
func ParseCoverage(s string) (CoverageLevel, error) {
	if val, ok := coverageStringToLevel[strings.ToLower(strings.TrimSpace(s))]; ok {
		return val, nil
	}
	return CoverageNone, fmt.Errorf("unknown coverage level %q", s)
}

// Valid сообщает, входит ли значение в шкалу.
func (c CoverageLevel) Valid() bool {
	return c <= MaxCoverage
}

// AtLeast - c >= min.
func (c CoverageLevel) AtLeast(min CoverageLevel) bool {
	return c >= min
}

// Less - c < other.
func (c CoverageLevel) Less(other CoverageLevel) bool {
	return c < other
}

// Max возвращает больший из двух уровней.
func Max(a, b CoverageLevel) CoverageLevel {
	if a >= b {
		return a
	}
	return b
}

func (c CoverageLevel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid coverage level %d", uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *CoverageLevel) UnmarshalText(text []byte) error {
	level, err := ParseCoverage(string(text))
	if err != nil {
		return err
	}
	*c = level
	return nil
}
