// Package report превращает истинные данные сущности в частичный отчёт
// для конкретного игрока. Какие поля раскрываются на каком уровне
// покрытия, задаёт таблица типа из реестра схем.
package report

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"reflect"
)

// Field - одно поле отчёта.
type Field struct {
	Name  string              `json:"name"`
	Type  FieldType           `json:"type"`
	Min   intel.CoverageLevel `json:"min"`
	Value Value               `json:"value"`
}

// Report - неизменяемый снимок того, что игрок знает о сущности.
//
// После создания отчёт не меняется, поэтому его можно читать из любого
// числа горутин. Методы, возвращающие срезы, отдают копии.
type Report struct {
	entity   types.EntityID
	kind     enums.EntityKind
	observer types.PlayerID
	coverage intel.CoverageLevel
	fields   []Field
}

func (r *Report) EntityID() types.EntityID      { return r.entity }
func (r *Report) Kind() enums.EntityKind        { return r.kind }
func (r *Report) Observer() types.PlayerID      { return r.observer }
func (r *Report) Coverage() intel.CoverageLevel { return r.coverage }

// Fields возвращает копию полей в порядке схемы.
func (r *Report) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Value возвращает слот поля. ok=false, если у типа нет такого поля.
func (r *Report) Value(name string) (v Value, ok bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Unknown, false
}

// Known сообщает, известно ли поле игроку.
func (r *Report) Known(name string) bool {
	v, _ := r.Value(name)
	return v.IsKnown()
}

// KnownCount возвращает число известных полей.
func (r *Report) KnownCount() int {
	n := 0
	for _, f := range r.fields {
		if f.Value.IsKnown() {
			n++
		}
	}
	return n
}

func (r *Report) String(name string) (string, bool) {
	return typed[string](r, name)
}

func (r *Report) Int(name string) (int, bool) {
	return typed[int](r, name)
}

func (r *Report) Float(name string) (float64, bool) {
	return typed[float64](r, name)
}

func (r *Report) Owner(name string) (OwnerView, bool) {
	return typed[OwnerView](r, name)
}

func (r *Report) Topography(name string) (enums.Topography, bool) {
	return typed[enums.Topography](r, name)
}

func (r *Report) Position(name string) (domain.Position, bool) {
	return typed[domain.Position](r, name)
}

func (r *Report) EntityRef(name string) (types.EntityID, bool) {
	return typed[types.EntityID](r, name)
}

func (r *Report) Resources(name string) (ResourcesView, bool) {
	return typed[ResourcesView](r, name)
}

// typed достаёт известное значение поля нужного типа.
func typed[T any](r *Report, name string) (T, bool) {
	var zero T
	v, ok := r.Value(name)
	if !ok {
		return zero, false
	}
	raw, known := v.Get()
	if !known {
		return zero, false
	}
	val, ok := raw.(T)
	return val, ok
}

// Equal сравнивает отчёты поле за полем.
func (r *Report) Equal(other *Report) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	if r.entity != other.entity || r.kind != other.kind ||
		r.observer != other.observer || r.coverage != other.coverage ||
		len(r.fields) != len(other.fields) {
		return false
	}
	for i := range r.fields {
		a, b := r.fields[i], other.fields[i]
		if a.Name != b.Name || a.Value.known != b.Value.known || !sameValue(a.Value.v, b.Value.v) {
			return false
		}
	}
	return true
}

// sameValue сравнивает значения полей. Несравнимые через == типы (срезы,
// мапы) сравниваются по содержимому, чтобы не было паники.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// CompositeReport - отчёт командования вместе с отчётами его членов.
type CompositeReport struct {
	*Report
	members []*Report
}

// NewCompositeReport собирает составной отчёт. Порядок членов сохраняется.
func NewCompositeReport(base *Report, members []*Report) *CompositeReport {
	out := make([]*Report, len(members))
	copy(out, members)
	return &CompositeReport{Report: base, members: out}
}

// Members возвращает копию списка отчётов членов.
func (c *CompositeReport) Members() []*Report {
	out := make([]*Report, len(c.members))
	copy(out, c.members)
	return out
}
