package handlers

import (
	"cognitive-intel/internal/core/types"
	"encoding/json"
)

// ActionType - тип команды от клиента
type ActionType int

const (
	ActionUnknown ActionType = iota
	ActionLogin
	ActionRename
	ActionSetOwner
	ActionSetPopulation
	ActionDestroy
)

var actionNames = map[string]ActionType{
	"LOGIN":          ActionLogin,
	"RENAME":         ActionRename,
	"SET_OWNER":      ActionSetOwner,
	"SET_POPULATION": ActionSetPopulation,
	"DESTROY":        ActionDestroy,
}

// ParseAction переводит строку протокола в ActionType.
func ParseAction(s string) ActionType {
	if a, ok := actionNames[s]; ok {
		return a
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "UNKNOWN"
}

// Command - команда, прошедшая разбор на сетевом уровне
type Command struct {
	Action  ActionType
	Actor   types.PlayerID
	Payload json.RawMessage
}
