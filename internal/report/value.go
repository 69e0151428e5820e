package report

import (
	"encoding/json"
	"fmt"
)

// Value - слот поля отчёта: либо Known(значение), либо Unknown.
//
// Нулевое значение Value - это Unknown.
type Value struct {
	v     any
	known bool
}

// Unknown - явная метка "неизвестно".
var Unknown = Value{}

// Known оборачивает истинное значение поля.
func Known(v any) Value {
	return Value{v: v, known: true}
}

func (v Value) IsKnown() bool { return v.known }

// Get возвращает значение и признак того, что оно известно.
func (v Value) Get() (any, bool) {
	return v.v, v.known
}

func (v Value) String() string {
	if !v.known {
		return "?"
	}
	return fmt.Sprint(v.v)
}

// MarshalJSON кодирует Unknown как null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.known {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}
