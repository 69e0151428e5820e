package agent

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/network"
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"context"
	"sort"

	"github.com/sirupsen/logrus"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он подписывается на снимки разведданных так же, как обычный клиент,
// и выбирает цель удара только по полям отчётов. Истинных данных
// сущностей бот не видит: чего нет в отчёте, того бот не знает.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, слушает свой Inbox.
//  3. На каждый UPDATE пересчитывается цель (ChooseTarget).
type Bot struct {
	Player types.PlayerID
	Hub    *network.Broadcaster
	Inbox  chan api.ServerResponse

	target *Target
	log    *logrus.Entry
}

// Target - выбранная ботом цель.
type Target struct {
	ID   string
	Kind string
	// Strength - известная прочность цели (defense или hit_points).
	Strength      int
	StrengthKnown bool
}

func NewBot(player types.PlayerID, hub *network.Broadcaster) *Bot {
	log := logger.For("agent").WithField("player", player)
	log.Info("Creating agent")
	return &Bot{
		Player: player,
		Hub:    hub,
		// Бот регистрируется в хабе как обычный клиент и получает свой канал для обновлений.
		Inbox: hub.Register(player),
		log:   log,
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Hub.Unregister(b.Player, b.Inbox)

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Agent shut down")
			return
		case state, ok := <-b.Inbox:
			if !ok {
				// Канал закрыт повторной регистрацией игрока
				b.log.Info("Agent inbox closed")
				return
			}
			b.observe(state)
		}
	}
}

// Target возвращает текущую цель. Вызывать из той же горутины, что и Run,
// или после его завершения.
func (b *Bot) Target() (Target, bool) {
	if b.target == nil {
		return Target{}, false
	}
	return *b.target, true
}

func (b *Bot) observe(state api.ServerResponse) {
	if state.Type != "UPDATE" && state.Type != "LOGIN_OK" {
		return
	}

	target, ok := ChooseTarget(state.Entities)
	if !ok {
		if b.target != nil {
			b.log.WithField("tick", state.Tick).Info("Target lost")
		}
		b.target = nil
		return
	}

	if b.target == nil || b.target.ID != target.ID {
		b.log.WithFields(logrus.Fields{
			"tick":     state.Tick,
			"target":   target.ID,
			"kind":     target.Kind,
			"strength": target.Strength,
			"known":    target.StrengthKnown,
		}).Info("Target acquired")
	}
	b.target = &target
}

// ChooseTarget выбирает цель среди отчётов (включая членов флотов).
//
// Кандидат - сущность, чей владелец известен и враждебен. Из кандидатов
// предпочитаются те, чья прочность известна, и среди них самая слабая.
// При равенстве решает ID, чтобы выбор был воспроизводимым.
func ChooseTarget(reports []api.ReportView) (Target, bool) {
	var candidates []Target
	var walk func(views []api.ReportView)
	walk = func(views []api.ReportView) {
		for _, v := range views {
			if isHostile(v) {
				t := Target{ID: v.ID, Kind: v.Kind}
				t.Strength, t.StrengthKnown = strength(v)
				candidates = append(candidates, t)
			}
			walk(v.Members)
		}
	}
	walk(reports)

	if len(candidates) == 0 {
		return Target{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, c := candidates[i], candidates[j]
		if a.StrengthKnown != c.StrengthKnown {
			return a.StrengthKnown
		}
		if a.StrengthKnown && a.Strength != c.Strength {
			return a.Strength < c.Strength
		}
		return a.ID < c.ID
	})
	return candidates[0], true
}

func isHostile(v api.ReportView) bool {
	raw, ok := knownField(v, "owner")
	if !ok {
		return false
	}
	// Из хаба приходит map[string]string, после JSON - map[string]any
	switch owner := raw.(type) {
	case map[string]string:
		return owner["relation"] == enums.RelationEnemy.String()
	case map[string]any:
		rel, _ := owner["relation"].(string)
		return rel == enums.RelationEnemy.String()
	}
	return false
}

// strength берет известную прочность: defense для аванпостов, hit_points для кораблей.
func strength(v api.ReportView) (int, bool) {
	for _, name := range []string{"defense", "hit_points"} {
		raw, ok := knownField(v, name)
		if !ok {
			continue
		}
		if n, ok := toInt(raw); ok {
			return n, true
		}
	}
	return 0, false
}

func knownField(v api.ReportView, name string) (any, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, f.Known
		}
	}
	return nil, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
