// Package assert содержит проверки контрактов между компонентами.
//
// В обычной сборке нарушение только логируется: вызывающий код всё равно
// получает ошибку и обрабатывает её сам. В сборке с тегом debug
// (go build -tags debug) нарушение контракта приводит к панике, чтобы
// ошибки интеграции ловились как можно раньше.
package assert

import "cognitive-intel/pkg/logger"

// That проверяет условие контракта.
func That(cond bool, msg string) {
	if cond {
		return
	}
	logger.For("assert").Error(msg)
	if failFast {
		panic("contract violation: " + msg)
	}
}
