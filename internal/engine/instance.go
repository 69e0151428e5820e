package engine

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/engine/handlers"
	"cognitive-intel/internal/engine/handlers/admin"
	"cognitive-intel/internal/intel"
	"cognitive-intel/internal/network"
	"cognitive-intel/internal/publisher"
	"cognitive-intel/internal/report"
	"cognitive-intel/internal/systems"
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"cognitive-intel/pkg/sector"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrCommandQueueFull - очередь команд инстанса переполнена.
	ErrCommandQueueFull = errors.New("command queue full")
	// ErrSeedMismatch - снимок сделан для сектора с другим сидом.
	ErrSeedMismatch = errors.New("snapshot seed mismatch")
)

// Instance - один запущенный сектор со всеми его подсистемами.
//
// Все изменения мира происходят внутри Step под mu. Читатели снаружи
// цикла (отладочный HTTP, сохранение) заходят через Inspect.
type Instance struct {
	mu sync.Mutex

	World     *domain.GameWorld
	Roster    *domain.Roster
	Diplomacy *domain.Diplomacy

	Publishers *publisher.Registry
	Tracker    *systems.ContactTracker
	Scheduler  *ScanScheduler
	Ceilings   intel.Ceilings

	// Каналы коммуникации
	CommandChan chan handlers.Command

	Hub *network.Broadcaster

	CurrentTick int
	Seed        int64

	Logs []api.LogEntry // Сообщения, накопившиеся с прошлой рассылки

	handlers map[handlers.ActionType]handlers.HandlerFunc
	pending  []systems.ContactEvent // Потери контактов от уничтоженных носителей
	// После загрузки снимка счётчики контактов пусты: покрытие сверяется
	// с контактами после первого полного обзора.
	reconcilePending bool
	log              *logrus.Entry
}

// NewInstance собирает инстанс вокруг готового сектора.
func NewInstance(sec *sector.Sector, schemas *report.Registry, hub *network.Broadcaster, seed int64) *Instance {
	gen := report.NewGenerator(schemas, sec.Diplomacy, sec.Roster)
	pubs := publisher.NewRegistry(gen)
	pubs.RegisterAll(sec.Entities)

	i := &Instance{
		World:       sec.World,
		Roster:      sec.Roster,
		Diplomacy:   sec.Diplomacy,
		Publishers:  pubs,
		Tracker:     systems.NewContactTracker(),
		Scheduler:   NewScanScheduler(schemas),
		Ceilings:    schemas.Ceilings(),
		CommandChan: make(chan handlers.Command, 100),
		Hub:         hub,
		Seed:        seed,
		Logs:        []api.LogEntry{},
		handlers:    make(map[handlers.ActionType]handlers.HandlerFunc),
		log:         logger.For("instance"),
	}
	for _, e := range sec.World.Entities() {
		i.Scheduler.AddHost(e, 0)
	}
	i.registerHandlers()
	return i
}

func (i *Instance) registerHandlers() {
	i.register(handlers.ActionRename, handlers.WithPayload(admin.HandleRename))
	i.register(handlers.ActionSetOwner, handlers.WithPayload(admin.HandleSetOwner))
	i.register(handlers.ActionSetPopulation, handlers.WithPayload(admin.HandleSetPopulation))
	i.register(handlers.ActionDestroy, handlers.WithPayload(admin.HandleDestroy))
}

func (i *Instance) register(action handlers.ActionType, h handlers.HandlerFunc) {
	i.handlers[action] = handlers.Logged(action, h)
}

// Submit ставит команду в очередь до следующего тика. Не блокирует.
func (i *Instance) Submit(cmd handlers.Command) error {
	select {
	case i.CommandChan <- cmd:
		return nil
	default:
		return ErrCommandQueueFull
	}
}

// Run гоняет тики с заданным интервалом до отмены контекста.
func (i *Instance) Run(ctx context.Context, interval time.Duration) {
	i.log.WithFields(logrus.Fields{
		"seed":     i.Seed,
		"interval": interval,
		"entities": len(i.World.EntityRegistry),
	}).Info("Instance loop started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			i.log.WithField("tick", i.CurrentTick).Info("Instance loop stopped")
			return
		case <-ticker.C:
			i.Step()
		}
	}
}

// Step выполняет один тик: команды, движение, обзор, разрешение контактов,
// рассылка. Разрешение полностью завершается до того, как у издателей
// запрашивают отчёты.
func (i *Instance) Step() {
	i.mu.Lock()
	defer i.mu.Unlock()

	tick := i.CurrentTick

	// 1. Команды администрирования
	i.drainCommands()

	// 2. Движение патрулей
	systems.AdvancePatrols(i.World, i.Publishers)

	// 3. Обзор
	events := append(i.pending, i.scan(tick)...)
	i.pending = nil

	// 4. Разрешение контактов
	transitions := systems.ResolveContacts(i.World, events, i.Ceilings, i.Publishers)
	if len(transitions) > 0 {
		i.log.WithFields(logrus.Fields{
			"tick":        tick,
			"events":      len(events),
			"transitions": len(transitions),
		}).Debug("Contacts resolved")
	}

	if i.reconcilePending {
		i.reconcileIntel(tick)
		i.reconcilePending = false
	}

	// 5. Рассылка
	i.publishUpdate()

	i.CurrentTick++
	i.World.Tick = i.CurrentTick
}

func (i *Instance) drainCommands() {
	for {
		select {
		case cmd := <-i.CommandChan:
			i.executeCommand(cmd)
		default:
			return
		}
	}
}

// scan опрашивает сенсоры, чей обзор наступил, и планирует следующий.
func (i *Instance) scan(tick int) []systems.ContactEvent {
	var events []systems.ContactEvent
	for _, item := range i.Scheduler.Due(tick) {
		host := i.World.GetEntity(item.Host)
		if host == nil {
			events = append(events, i.Tracker.DropHost(item.Host)...)
			continue
		}

		events = append(events, i.Tracker.ScanSensor(i.World, host, item.Slot)...)

		if host.Destroyed || host.Sensors == nil || item.Slot >= len(host.Sensors.Suite) {
			continue
		}
		i.Scheduler.Requeue(item, host.Sensors.Suite[item.Slot].Class, tick)
	}
	return events
}

// executeCommand выполняет хендлер и пишет лог результата
func (i *Instance) executeCommand(cmd handlers.Command) {
	handler, ok := i.handlers[cmd.Action]
	if !ok {
		i.log.WithField("action", cmd.Action).Warn("No handler for action")
		return
	}

	ctx := handlers.Context{
		Finder:      i.World,
		World:       i.World,
		Roster:      i.Roster,
		Invalidator: i.Publishers,
		Ceilings:    i.Ceilings,
		Actor:       cmd.Actor,
		OnDestroy:   i.onDestroy,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		i.AddLog(err.Error(), "ERROR")
		return
	}
	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		i.AddLog(result.Msg, msgType)
	}
}

// reconcileIntel опускает отменяемое покрытие до уровня, который
// держат текущие контакты. Вызывается после первого обзора всех
// сенсоров, когда контакты собраны заново.
func (i *Instance) reconcileIntel(tick int) {
	dropped := 0
	for _, e := range i.World.Entities() {
		if e.Destroyed {
			continue
		}
		for _, p := range e.ReconcileIntel(i.Ceilings) {
			i.Publishers.InvalidateFor(e.ID, p)
			dropped++
		}
	}
	i.log.WithFields(logrus.Fields{
		"tick":    tick,
		"dropped": dropped,
	}).Info("Restored intel reconciled with contacts")
}

// onDestroy снимает уничтоженную сущность со всех подсистем.
// Контакты её сенсоров теряются на ближайшем разрешении.
func (i *Instance) onDestroy(e *domain.Entity) {
	i.World.RemoveEntity(e)
	i.pending = append(i.pending, i.Tracker.DropHost(e.ID)...)
	i.Tracker.ForgetTarget(e.ID)
	i.Scheduler.RemoveHost(e.ID)
}

// publishUpdate рассылает снимок разведданных каждому подписанному игроку.
func (i *Instance) publishUpdate() {
	for _, player := range i.Hub.Subscribers() {
		state := i.BuildStateFor(player)
		i.Hub.SendTo(player, *state)
	}

	// Очищаем логи после рассылки
	i.Logs = []api.LogEntry{}
}

// Inspect выполняет fn под мьютексом инстанса (между тиками).
func (i *Instance) Inspect(fn func(*Instance)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	fn(i)
}

// Snapshot сохраняет покрытие всех игроков по всем сущностям.
func (i *Instance) Snapshot() *domain.IntelSnapshot {
	i.mu.Lock()
	defer i.mu.Unlock()

	return &domain.IntelSnapshot{
		ID:        uuid.NewString(),
		Tick:      i.CurrentTick,
		Seed:      i.Seed,
		Timestamp: time.Now().Unix(),
		Entries:   domain.CaptureIntel(i.World.Entities()),
	}
}

// Restore восстанавливает покрытие из снимка.
//
// ID сущностей выводятся из сида генерации, поэтому снимок другого
// сектора отвергается с ErrSeedMismatch. Счётчики контактов в снимок не
// входят: трекер сбрасывается, все сенсоры делают обзор на ближайшем
// тике, после чего отменяемое покрытие без контактов опускается. Все
// кэши отчётов сбрасываются.
func (i *Instance) Restore(snap *domain.IntelSnapshot) (restored, skipped int, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if snap.Seed != i.Seed {
		return 0, 0, fmt.Errorf("%w: snapshot %d, sector %d", ErrSeedMismatch, snap.Seed, i.Seed)
	}

	restored, skipped = domain.ApplySnapshot(i.World, snap)

	i.Tracker = systems.NewContactTracker()
	i.pending = nil
	i.Scheduler = NewScanScheduler(i.Scheduler.intervals)
	for _, e := range i.World.Entities() {
		i.Scheduler.AddHost(e, i.CurrentTick)
	}
	i.Publishers.InvalidateAll()
	i.reconcilePending = true

	i.log.WithFields(logrus.Fields{
		"snapshot": snap.ID,
		"restored": restored,
		"skipped":  skipped,
	}).Info("Intel snapshot restored")
	return restored, skipped, nil
}

// Report возвращает отчёт о сущности для игрока (с учётом состава флотов).
func (i *Instance) Report(id types.EntityID, player types.PlayerID) (api.ReportView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.reportView(id, player)
}
