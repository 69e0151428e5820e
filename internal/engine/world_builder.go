package engine

import (
	"cognitive-intel/internal/report"
	"cognitive-intel/pkg/logger"
	"cognitive-intel/pkg/sector"

	"github.com/sirupsen/logrus"
)

// buildInitialWorld генерирует сектор, игроков и все сущности по сиду конфига.
func buildInitialWorld(cfg Config, schemas *report.Registry) *sector.Sector {
	sec := sector.Generate(cfg.Seed, cfg.ShardID, cfg.Players, schemas)

	logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"seed":      cfg.Seed,
		"shard":     cfg.ShardID,
		"players":   len(sec.Roster.Players()),
		"entities":  len(sec.Entities),
	}).Info("Sector generated")

	return sec
}
