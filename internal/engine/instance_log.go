package engine

import (
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AddLog добавляет сообщение в журнал, который уйдёт подписчикам со следующей рассылкой
func (i *Instance) AddLog(text, logType string) {
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.For("game_log").WithFields(logrus.Fields{
		"tick":     i.CurrentTick,
		"log_type": logType,
	}).Info(text)
}
