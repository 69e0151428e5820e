package engine

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/intel"
	"cognitive-intel/internal/publisher"
	"cognitive-intel/internal/report"
	"cognitive-intel/pkg/api"
	"errors"
)

// BuildStateFor создает персональный снимок разведданных игрока.
//
// Карта сектора общая: отдаются только клетки, отличные от открытого
// космоса. Сущности попадают в снимок, только если игрок знает о них
// хоть что-то (покрытие выше None).
func (i *Instance) BuildStateFor(player types.PlayerID) *api.ServerResponse {
	// 1. Формирование карты (Map DTO)
	var mapDTO []api.TileView
	for y := 0; y < i.World.Height; y++ {
		for x := 0; x < i.World.Width; x++ {
			tile := i.World.Map[y][x]
			if tile.Terrain == enums.TopographyOpenSpace {
				continue
			}
			mapDTO = append(mapDTO, api.TileView{X: x, Y: y, Terrain: tile.Terrain.String()})
		}
	}

	// 2. Формирование списка отчётов (Entities DTO)
	var views []api.ReportView
	for _, id := range i.Publishers.IDs() {
		e := i.World.GetEntity(id)
		if e == nil || e.Destroyed || e.Coverage(player) == intel.CoverageNone {
			continue
		}

		view, err := i.reportView(id, player)
		if err != nil {
			i.log.WithError(err).WithField("entity_id", id).Warn("Report skipped")
			continue
		}
		views = append(views, view)
	}

	// Копия логов, чтобы не было гонки данных
	logsCopy := make([]api.LogEntry, len(i.Logs))
	copy(logsCopy, i.Logs)

	return &api.ServerResponse{
		Type:     "UPDATE",
		Tick:     i.CurrentTick,
		Player:   player.String(),
		Grid:     &api.GridMeta{Width: i.World.Width, Height: i.World.Height},
		Map:      mapDTO,
		Entities: views,
		Logs:     logsCopy,
	}
}

// reportView берет отчёт у издателя сущности. Для командований отчёт
// составной, с отчётами членов.
func (i *Instance) reportView(id types.EntityID, player types.PlayerID) (api.ReportView, error) {
	if c, ok := i.Publishers.Composite(id); ok {
		rep, err := c.Report(player)
		if err != nil {
			return api.ReportView{}, err
		}
		view := toReportView(rep.Report)
		for _, m := range rep.Members() {
			view.Members = append(view.Members, toReportView(m))
		}
		return view, nil
	}

	rep, err := i.Publishers.Report(id, player)
	if err != nil {
		return api.ReportView{}, err
	}
	return toReportView(rep), nil
}

// toReportView конвертирует отчёт в DTO. Неизвестные поля остаются в
// списке с Known=false.
func toReportView(rep *report.Report) api.ReportView {
	fields := rep.Fields()
	view := api.ReportView{
		ID:       rep.EntityID().Wire(),
		Kind:     rep.Kind().String(),
		Coverage: rep.Coverage().String(),
		Fields:   make([]api.FieldView, 0, len(fields)),
	}
	for _, f := range fields {
		fv := api.FieldView{Name: f.Name}
		if v, known := f.Value.Get(); known {
			fv.Known = true
			fv.Value = wireValue(v)
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

// wireValue приводит значения, которые плохо выглядят в JSON, к строкам.
func wireValue(v any) any {
	switch val := v.(type) {
	case enums.Topography:
		return val.String()
	case report.OwnerView:
		return map[string]string{"player": val.Player.String(), "relation": val.Relation.String()}
	case types.EntityID:
		return val.Wire()
	default:
		return v
	}
}

// IsDestroyed сообщает, что отчёт не выдан, потому что сущность уничтожена.
func IsDestroyed(err error) bool {
	return errors.Is(err, publisher.ErrEntityDestroyed)
}
