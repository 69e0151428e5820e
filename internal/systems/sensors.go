package systems

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"sort"
)

// ContactEvent - изменение контакта одного сенсора игрока с сущностью.
type ContactEvent struct {
	Player types.PlayerID     `json:"player"`
	Target types.EntityID     `json:"target"`
	Class  intel.SensorClass  `json:"class"`
	State  intel.ContactState `json:"state"`
}

// sensorKey - конкретный сенсор на конкретном носителе.
type sensorKey struct {
	host types.EntityID
	slot int
}

// sensorContacts - цели, с которыми сенсор держит контакт, и игрок,
// которому эти контакты засчитаны.
type sensorContacts struct {
	player  types.PlayerID
	class   intel.SensorClass
	targets map[types.EntityID]struct{}
}

// ContactTracker помнит контакты каждого сенсора между обзорами и
// превращает результаты обзора в события Gained/Lost.
type ContactTracker struct {
	sensors map[sensorKey]*sensorContacts
}

func NewContactTracker() *ContactTracker {
	return &ContactTracker{sensors: make(map[sensorKey]*sensorContacts)}
}

// Scan выполняет обзор всеми сенсорами носителя и возвращает изменения
// контактов с прошлого обзора.
//
// Уничтоженный носитель или носитель без владельца теряет все контакты.
func (t *ContactTracker) Scan(w *domain.GameWorld, host *domain.Entity) []ContactEvent {
	if host.Destroyed || !host.HasSensors() {
		return t.DropHost(host.ID)
	}

	var events []ContactEvent
	for slot := range host.Sensors.Suite {
		events = append(events, t.scanSlot(w, host, slot)...)
	}
	return append(events, t.dropRemovedSlots(host)...)
}

// ScanSensor выполняет обзор одним сенсором носителя. Используется
// планировщиком, у которого у каждого класса свой период обзора.
func (t *ContactTracker) ScanSensor(w *domain.GameWorld, host *domain.Entity, slot int) []ContactEvent {
	if host.Destroyed || !host.HasSensors() {
		return t.DropHost(host.ID)
	}
	if slot < 0 || slot >= len(host.Sensors.Suite) {
		return t.dropRemovedSlots(host)
	}
	return t.scanSlot(w, host, slot)
}

func (t *ContactTracker) scanSlot(w *domain.GameWorld, host *domain.Entity, slot int) []ContactEvent {
	sensor := host.Sensors.Suite[slot]
	key := sensorKey{host: host.ID, slot: slot}
	prev := t.sensors[key]

	var events []ContactEvent

	// Сменился владелец носителя или класс сенсора: старые контакты
	// засчитаны не тому игроку
	if prev != nil && (prev.player != host.Owner || prev.class != sensor.Class) {
		events = append(events, prev.lostAll()...)
		prev = nil
	}
	if prev == nil {
		prev = &sensorContacts{
			player:  host.Owner,
			class:   sensor.Class,
			targets: make(map[types.EntityID]struct{}),
		}
		t.sensors[key] = prev
	}

	seen := detect(w, host, sensor)
	inView := make(map[types.EntityID]struct{}, len(seen))
	for _, id := range seen {
		inView[id] = struct{}{}
		if _, ok := prev.targets[id]; !ok {
			prev.targets[id] = struct{}{}
			events = append(events, prev.event(id, intel.ContactGained))
		}
	}

	for _, id := range sortedTargets(prev.targets) {
		if _, ok := inView[id]; ok {
			continue
		}
		delete(prev.targets, id)
		if target := w.GetEntity(id); target == nil || target.Destroyed {
			continue
		}
		events = append(events, prev.event(id, intel.ContactLost))
	}
	return events
}

// dropRemovedSlots снимает контакты сенсоров, которых больше нет в наборе носителя.
func (t *ContactTracker) dropRemovedSlots(host *domain.Entity) []ContactEvent {
	suite := 0
	if host.Sensors != nil {
		suite = len(host.Sensors.Suite)
	}

	var events []ContactEvent
	for _, key := range t.keys() {
		if key.host == host.ID && key.slot >= suite {
			events = append(events, t.sensors[key].lostAll()...)
			delete(t.sensors, key)
		}
	}
	return events
}

// DropHost снимает все контакты носителя.
func (t *ContactTracker) DropHost(host types.EntityID) []ContactEvent {
	var events []ContactEvent
	for _, key := range t.keys() {
		if key.host != host {
			continue
		}
		events = append(events, t.sensors[key].lostAll()...)
		delete(t.sensors, key)
	}
	return events
}

// ForgetTarget убирает уничтоженную цель из всех контактов без событий.
func (t *ContactTracker) ForgetTarget(target types.EntityID) {
	for _, contacts := range t.sensors {
		delete(contacts.targets, target)
	}
}

// Contacts возвращает текущие цели сенсора (для отладки).
func (t *ContactTracker) Contacts(host types.EntityID, slot int) []types.EntityID {
	contacts, ok := t.sensors[sensorKey{host: host, slot: slot}]
	if !ok {
		return nil
	}
	return sortedTargets(contacts.targets)
}

func (t *ContactTracker) keys() []sensorKey {
	keys := make([]sensorKey, 0, len(t.sensors))
	for k := range t.sensors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].host != keys[j].host {
			return keys[i].host.Less(keys[j].host)
		}
		return keys[i].slot < keys[j].slot
	})
	return keys
}

func (c *sensorContacts) event(target types.EntityID, state intel.ContactState) ContactEvent {
	return ContactEvent{Player: c.player, Target: target, Class: c.class, State: state}
}

func (c *sensorContacts) lostAll() []ContactEvent {
	events := make([]ContactEvent, 0, len(c.targets))
	for _, id := range sortedTargets(c.targets) {
		events = append(events, c.event(id, intel.ContactLost))
	}
	clear(c.targets)
	return events
}

// detect возвращает цели в поле обзора сенсора в каноническом порядке.
func detect(w *domain.GameWorld, host *domain.Entity, sensor domain.Sensor) []types.EntityID {
	visible := ComputeSensorCoverage(w, host.Pos, sensor.Range)

	var seen []types.EntityID
	for idx := range visible {
		x, y := idx%w.Width, idx/w.Width
		for _, e := range w.GetEntitiesAt(x, y) {
			if e.ID == host.ID || e.Destroyed {
				continue
			}
			seen = append(seen, e.ID)
		}
	}
	sort.Slice(seen, func(i, j int) bool { return seen[i].Less(seen[j]) })
	return seen
}

func sortedTargets(set map[types.EntityID]struct{}) []types.EntityID {
	ids := make([]types.EntityID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// SortEvents упорядочивает события тика: по цели, игроку, затем потери
// раньше приобретений, затем по классу сенсора.
func SortEvents(events []ContactEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Target != b.Target {
			return a.Target.Less(b.Target)
		}
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		if a.State != b.State {
			return a.State < b.State
		}
		return a.Class < b.Class
	})
}
