package types

import (
	"cognitive-intel/internal/core/types/enums"
	"fmt"
	"strconv"
)

// EntityID - 64-битный идентификатор наблюдаемой сущности.
//
// Формат битов (от старших к младшим):
//
//	[ Shard (8) | Kind (8) | Generation (16) | Index (32) ]
//
// Где:
//   - Shard - идентификатор симуляции / сервера
//   - Kind - тип сущности (звезда, планета, аванпост, корабль, флот)
//   - Generation - версия слота (защита от устаревших ссылок)
//   - Index - порядковый номер создания внутри шарда
//
// Index монотонно растёт при создании сущностей, поэтому сортировка по
// Index даёт порядок создания. На этом построен стабильный порядок
// членов командования в составных отчётах.
type EntityID uint64

// NilEntityID - нулевой идентификатор сущности.
const NilEntityID EntityID = 0

// Конфигурация битов EntityID.
const (
	bitsIndex = 32
	bitsGen   = 16
	bitsKind  = 8
	bitsShard = 8

	shiftGen   = bitsIndex
	shiftKind  = bitsIndex + bitsGen
	shiftShard = bitsIndex + bitsGen + bitsKind

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskKind  = (1 << bitsKind) - 1
	maskShard = (1 << bitsShard) - 1
)

// PackEntityID собирает EntityID из составных частей.
//
// Функция не выполняет проверок диапазонов значений: лишние старшие биты
// каждой части отбрасываются масками.
func PackEntityID(shardID uint8, kind enums.EntityKind, gen uint16, index uint32) EntityID {
	return EntityID(
		(uint64(shardID)&maskShard)<<shiftShard |
			(uint64(kind)&maskKind)<<shiftKind |
			(uint64(gen)&maskGen)<<shiftGen |
			uint64(index)&maskIndex,
	)
}

// Index возвращает порядковый номер сущности.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота сущности.
func (id EntityID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

// Kind возвращает тип сущности.
func (id EntityID) Kind() enums.EntityKind {
	return enums.EntityKind((id >> shiftKind) & maskKind)
}

// Shard возвращает идентификатор шарда, которому принадлежит сущность.
func (id EntityID) Shard() uint8 {
	return uint8((id >> shiftShard) & maskShard)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// IsLocal проверяет, принадлежит ли сущность текущему шарду.
func (id EntityID) IsLocal(currentShard uint8) bool {
	return id.Shard() == currentShard
}

// Less задаёт канонический порядок: сначала по Index, затем по полному значению.
func (id EntityID) Less(other EntityID) bool {
	if id.Index() != other.Index() {
		return id.Index() < other.Index()
	}
	return id < other
}

// String возвращает человекочитаемое представление (для логов и отладки).
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[shard=%d kind=%s gen=%d idx=%d]", id.Shard(), id.Kind(), id.Generation(), id.Index())
}

// Wire возвращает десятичное представление для JSON и query-параметров.
func (id EntityID) Wire() string {
	return strconv.FormatUint(uint64(id), 10)
}

// MarshalJSON сериализует EntityID в JSON как строку.
//
// JavaScript не поддерживает uint64 без потери точности.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.Wire() + `"`), nil
}

// UnmarshalJSON десериализует EntityID из JSON.
//
// Поддерживаются как строковое, так и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		*id = NilEntityID
		return nil
	}
	parsed, err := ParseEntityID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseEntityID разбирает десятичное представление EntityID (query-параметры, команды).
func ParseEntityID(s string) (EntityID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NilEntityID, fmt.Errorf("invalid entity id %q: %w", s, err)
	}
	return EntityID(v), nil
}

// IDAllocator выдаёт идентификаторы сущностей внутри одного шарда.
//
// Не потокобезопасен: сущности создаются только в фазе построения мира
// или внутри тика.
type IDAllocator struct {
	shard uint8
	next  uint32
}

// NewIDAllocator создает аллокатор для шарда. Нумерация начинается с 1.
func NewIDAllocator(shard uint8) *IDAllocator {
	return &IDAllocator{shard: shard, next: 1}
}

// Next выдаёт новый идентификатор для сущности типа kind.
func (a *IDAllocator) Next(kind enums.EntityKind) EntityID {
	id := PackEntityID(a.shard, kind, 0, a.next)
	a.next++
	return id
}
