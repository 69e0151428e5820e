package systems

import (
	"cognitive-intel/internal/domain"
	"cognitive-intel/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeSensorCoverage возвращает индексы клеток {index: true}, которые
// сенсор с радиусом radius видит из pos. Туманности перекрывают обзор:
// сама клетка туманности видна, всё за ней скрыто.
func ComputeSensorCoverage(w *domain.GameWorld, pos domain.Position, radius int) map[int]bool {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":  "fov_system",
		"sensor_pos": pos,
		"radius":     radius,
	})

	visible := make(map[int]bool)
	if radius <= 0 || !w.InBounds(pos.X, pos.Y) {
		fovLogger.Debug("Sensor sweep skipped.")
		return visible
	}

	// Клетка носителя видна всегда
	visible[w.GetIndex(pos.X, pos.Y)] = true

	for i := 0; i < 8; i++ {
		castLight(w, pos.X, pos.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], visible)
	}

	fovLogger.WithField("visible_tiles", len(visible)).Debug("Sensor sweep complete.")
	return visible
}

// castLight - рекурсивный shadowcasting одного октанта.
func castLight(w *domain.GameWorld, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, visible map[int]bool) {
	if start < end {
		return
	}

	radiusSq := radius * radius

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			x := cx + dx*xx + dy*xy
			y := cy + dx*yx + dy*yy

			if w.InBounds(x, y) && dx*dx+dy*dy <= radiusSq {
				visible[w.GetIndex(x, y)] = true
			}

			opaque := w.BlocksSensors(x, y)
			switch {
			case blocked && opaque:
				// Продолжаем идти вдоль туманности
				newStart = rSlope
			case blocked:
				// Туманность кончилась
				blocked = false
				start = newStart
			case opaque && j < radius:
				blocked = true
				castLight(w, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
