package handlers

import (
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrEmptyPayload - команда пришла без данных.
var ErrEmptyPayload = errors.New("payload is required")

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// WithPayload берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя Unmarshal и Validate.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		if len(raw) == 0 || string(raw) == "null" {
			return Result{}, ErrEmptyPayload
		}

		var payload T
		if err := json.Unmarshal(raw, &payload); err != nil {
			return Result{}, fmt.Errorf("invalid payload format: %w", err)
		}

		// Проверяем, реализует ли структура T интерфейс Validator
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Result{}, fmt.Errorf("validation failed: %w", err)
			}
		}

		return handler(ctx, payload)
	}
}

// Logged пишет в лог сервера, кто и что выполнил. Журнал инстанса
// (то, что видят игроки) заполняется отдельно, из Result.
func Logged(action ActionType, handler HandlerFunc) HandlerFunc {
	log := logger.For("handlers")
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		result, err := handler(ctx, raw)

		entry := log.WithFields(logrus.Fields{
			"action": action.String(),
			"actor":  ctx.Actor,
		})
		switch {
		case err != nil:
			entry.WithError(err).Warn("Command failed")
		case result.MsgType == "ERROR":
			entry.WithField("reason", result.Msg).Info("Command rejected")
		default:
			entry.Debug("Command applied")
		}
		return result, err
	}
}
