package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
//
// Логгер создаётся сразу при загрузке пакета, чтобы библиотечный код
// (intel, report, publisher) можно было вызывать из тестов без Init.
// Init только перенастраивает уровень, формат и вывод.
var Log = logrus.New()

// Init инициализирует глобальный логгер из переменных окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	// 1. Уровень логирования из LOG_LEVEL. По умолчанию - "info".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence отключает вывод логов (для тестов и CLI-утилит).
func Silence() {
	Log.SetOutput(io.Discard)
}

// For возвращает логгер с полем component.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
