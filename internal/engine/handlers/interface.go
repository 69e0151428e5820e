package handlers

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"cognitive-intel/internal/systems"
	"encoding/json"
)

// EntityFinder описывает любую структуру, которая может находить сущность по ID.
// domain.GameWorld неявно реализует этот интерфейс.
type EntityFinder interface {
	GetEntity(id types.EntityID) *domain.Entity
}

// PlayerRoster отвечает, участвует ли игрок в партии.
type PlayerRoster interface {
	HasPlayer(id types.PlayerID) bool
}

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
//
// Хендлер, изменивший раскрываемые данные сущности, обязан вызвать
// Invalidator.Invalidate, иначе игроки получат устаревший отчёт.
type Context struct {
	Finder      EntityFinder
	World       *domain.GameWorld
	Roster      PlayerRoster
	Invalidator systems.Invalidator
	Ceilings    intel.Ceilings
	Actor       types.PlayerID // Игрок, приславший команду

	// OnDestroy снимает уничтоженную сущность с сенсоров и планировщика.
	OnDestroy func(e *domain.Entity)
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи инстанса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ADMIN, ERROR)
}

// HandlerFunc - это контракт для любой команды (RENAME, DESTROY, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// ErrorResult - ответ для отвергнутой команды. Это не ошибка сервера,
// поэтому она уходит в лог игроку, а не наверх.
func ErrorResult(msg string) Result {
	return Result{Msg: msg, MsgType: "ERROR"}
}
