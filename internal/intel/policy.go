package intel

import (
	"fmt"
	"strings"
)

// Policy - правило изменения покрытия записи.
type Policy uint8

const (
	PolicyUnknown Policy = iota
	// PolicyMonotonic: покрытие только растёт (неподвижные ориентиры вроде звёзд).
	PolicyMonotonic
	// PolicyRevertible: покрытие падает при потере сенсорного контакта.
	PolicyRevertible
)

var policyToString = map[Policy]string{
	PolicyMonotonic:  "monotonic",
	PolicyRevertible: "revertible",
}

// Valid сообщает, что значение входит в перечисление. PolicyUnknown
// допустим: он означает политику типа по умолчанию.
func (p Policy) Valid() bool {
	return p <= PolicyRevertible
}

func (p Policy) String() string {
	if val, ok := policyToString[p]; ok {
		return val
	}
	return "unknown"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monotonic":
		return PolicyMonotonic, nil
	case "revertible":
		return PolicyRevertible, nil
	}
	return PolicyUnknown, fmt.Errorf("unknown intel policy %q", s)
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
