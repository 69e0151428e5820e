package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой "снимок" разведданных конкретного игрока:
// только то, что игрок знает о сущностях сектора.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE", "LOGIN_OK" или "ERROR".
	Type string `json:"type"`

	// Tick текущее время симуляции.
	Tick int `json:"tick"`

	// Player игрок, для которого собран снимок ("P1").
	Player string `json:"player,omitempty"`

	// Grid метаданные о размере сектора.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map клетки сектора, отличающиеся от открытого космоса.
	// Карта сектора общая для всех игроков.
	Map []TileView `json:"map,omitempty"`

	// Entities отчёты обо всех сущностях, о которых игрок знает хоть что-то.
	Entities []ReportView `json:"entities,omitempty"`

	// Logs сообщения, накопившиеся с прошлого тика.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`
}

// GridMeta содержит общие размеры сектора.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одной клетки карты.
type TileView struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Terrain string `json:"terrain"` // NEBULA, ASTEROID_FIELD, SYSTEM
}

// ReportView это DTO отчёта об одной сущности.
type ReportView struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`     // STAR, PLANET, OUTPOST, SHIP, FLEET
	Coverage string `json:"coverage"` // none, aware, basic, essential, comprehensive

	// Fields поля в порядке схемы типа. Неизвестные поля присутствуют
	// с Known=false, чтобы клиент мог показать "?".
	Fields []FieldView `json:"fields"`

	// Members отчёты членов командования (только для FLEET).
	Members []ReportView `json:"members,omitempty"`
}

// FieldView это DTO одного поля отчёта.
type FieldView struct {
	Name  string `json:"name"`
	Known bool   `json:"known"`
	Value any    `json:"value,omitempty"`
}

// LogEntry представляет одну запись в журнале (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, INTEL, ADMIN, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор игрока ("1" или "P1").
	// Обязателен только для первого сообщения "LOGIN".
	Token string `json:"token,omitempty"`

	// Action название действия: LOGIN, RENAME, SET_OWNER, SET_POPULATION, DESTROY.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// EntityPayload используется для действий над сущностью (DESTROY).
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// RenamePayload: { "targetId": "...", "name": "Outpost-8" }
type RenamePayload struct {
	TargetID string `json:"targetId"`
	Name     string `json:"name"`
}

// SetOwnerPayload: { "targetId": "...", "owner": 2 }. Owner 0 - ничья.
type SetOwnerPayload struct {
	TargetID string `json:"targetId"`
	Owner    int    `json:"owner"`
}

// SetPopulationPayload: { "targetId": "...", "population": 1500 }
type SetPopulationPayload struct {
	TargetID   string `json:"targetId"`
	Population int    `json:"population"`
}
