package publisher

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/intel"
	"cognitive-intel/internal/report"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
)

// MemberLookup находит публикатор члена командования.
type MemberLookup func(id types.EntityID) (*Publisher, bool)

// CompositePublisher - публикатор командования. Его отчёт состоит из
// собственного отчёта командования и отчётов членов, запрошенных через
// их публикаторы.
type CompositePublisher struct {
	own     *Publisher
	members MemberLookup
	cache   map[types.PlayerID]*report.CompositeReport

	// Члены, на которые мы подписаны в текущей эпохе
	watched map[types.EntityID]*Publisher
}

// NewComposite создает публикатор командования.
func NewComposite(own *Publisher, members MemberLookup) *CompositePublisher {
	c := &CompositePublisher{
		own:     own,
		members: members,
		cache:   make(map[types.PlayerID]*report.CompositeReport),
		watched: make(map[types.EntityID]*Publisher),
	}
	// Изменение самого командования сбрасывает и составной кэш
	own.watch(c)
	return c
}

// Own возвращает публикатор собственного отчёта командования.
func (c *CompositePublisher) Own() *Publisher { return c.own }

// Report возвращает составной отчёт для игрока.
//
// Члены идут в каноническом порядке EntityID. Уничтоженные члены
// пропускаются без ошибки.
//
// Список членов сам закрыт покрытием: пока покрытие игрока по самому
// командованию CoverageNone, членов в отчёте нет, даже если отдельные
// члены игроку известны. Их отчёты по-прежнему доступны через
// собственных издателей.
func (c *CompositePublisher) Report(player types.PlayerID) (*report.CompositeReport, error) {
	if rep, ok := c.cache[player]; ok {
		return rep, nil
	}

	base, err := c.own.Report(player)
	if err != nil {
		return nil, err
	}

	var members []*report.Report
	if base.Coverage() > intel.CoverageNone {
		members, err = c.memberReports(player)
		if err != nil {
			return nil, err
		}
	}

	rep := report.NewCompositeReport(base, members)
	c.cache[player] = rep
	return rep, nil
}

func (c *CompositePublisher) memberReports(player types.PlayerID) ([]*report.Report, error) {
	var ids []types.EntityID
	if cmd := c.own.entity.Command; cmd != nil {
		ids = make([]types.EntityID, len(cmd.Members))
		copy(ids, cmd.Members)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	out := make([]*report.Report, 0, len(ids))
	for _, id := range ids {
		member, ok := c.members(id)
		if !ok {
			c.own.log.WithField("member_id", id).Debug("Member has no publisher, skipped")
			continue
		}
		c.watch(id, member)

		rep, err := member.Report(player)
		if errors.Is(err, ErrEntityDestroyed) {
			c.own.log.WithFields(logrus.Fields{
				"member_id": id,
				"player":    player,
			}).Debug("Destroyed member omitted")
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}

func (c *CompositePublisher) watch(id types.EntityID, member *Publisher) {
	if _, ok := c.watched[id]; ok {
		return
	}
	member.watch(c)
	c.watched[id] = member
}

// Cached сообщает, есть ли у игрока составной отчёт в кэше.
func (c *CompositePublisher) Cached(player types.PlayerID) bool {
	_, ok := c.cache[player]
	return ok
}

// Invalidate сбрасывает весь кэш командования.
// Подписки на членов снимаются: при следующей сборке они будут
// оформлены заново по актуальному составу.
func (c *CompositePublisher) Invalidate() {
	clear(c.own.cache)
	clear(c.cache)
	for id, member := range c.watched {
		member.unwatch(c)
		delete(c.watched, id)
	}
}

// InvalidateFor сбрасывает кэш одного игрока.
func (c *CompositePublisher) InvalidateFor(player types.PlayerID) {
	delete(c.own.cache, player)
	delete(c.cache, player)
}
