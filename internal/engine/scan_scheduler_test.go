package engine

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"container/heap"
	"testing"
)

type fixedIntervals map[intel.SensorClass]int

func (f fixedIntervals) Interval(class intel.SensorClass) int { return f[class] }

func TestScanQueue(t *testing.T) {
	pq := make(ScanQueue, 0)
	heap.Init(&pq)

	alloc := types.NewIDAllocator(0)
	a := alloc.Next(enums.EntityKindShip)
	b := alloc.Next(enums.EntityKindShip)

	item1 := &ScanItem{Host: a, Slot: 0, Priority: 10}
	item2 := &ScanItem{Host: b, Slot: 0, Priority: 5}
	item3 := &ScanItem{Host: a, Slot: 1, Priority: 20}

	heap.Push(&pq, item1)
	heap.Push(&pq, item2)
	heap.Push(&pq, item3)

	if pq.Len() != 3 {
		t.Errorf("Expected length 3, got %d", pq.Len())
	}

	// Первым выходит тик 5
	first := heap.Pop(&pq).(*ScanItem)
	if first != item2 {
		t.Errorf("Expected item with priority 5, got %d", first.Priority)
	}

	// Сдвигаем item1 на 30: теперь раньше item3 (20)
	pq.Update(item1, 30)

	second := heap.Pop(&pq).(*ScanItem)
	if second != item3 {
		t.Errorf("Expected item with priority 20, got %d", second.Priority)
	}

	third := heap.Pop(&pq).(*ScanItem)
	if third != item1 {
		t.Errorf("Expected item with priority 30, got %d", third.Priority)
	}
}

func TestScanQueue_TieBreak(t *testing.T) {
	pq := make(ScanQueue, 0)
	alloc := types.NewIDAllocator(0)
	first := alloc.Next(enums.EntityKindShip)
	second := alloc.Next(enums.EntityKindShip)

	heap.Push(&pq, &ScanItem{Host: second, Slot: 0, Priority: 1})
	heap.Push(&pq, &ScanItem{Host: first, Slot: 1, Priority: 1})
	heap.Push(&pq, &ScanItem{Host: first, Slot: 0, Priority: 1})

	want := []struct {
		host types.EntityID
		slot int
	}{{first, 0}, {first, 1}, {second, 0}}

	for i, w := range want {
		got := heap.Pop(&pq).(*ScanItem)
		if got.Host != w.host || got.Slot != w.slot {
			t.Errorf("pop %d: got %s/%d, want %s/%d", i, got.Host, got.Slot, w.host, w.slot)
		}
	}
}

func newHost(alloc *types.IDAllocator, sensors ...domain.Sensor) *domain.Entity {
	return &domain.Entity{
		ID:      alloc.Next(enums.EntityKindShip),
		Kind:    enums.EntityKindShip,
		Owner:   1,
		Sensors: &domain.SensorComponent{Suite: sensors},
	}
}

func TestScanScheduler_IntervalsPerClass(t *testing.T) {
	s := NewScanScheduler(fixedIntervals{
		intel.SensorShortRange: 1,
		intel.SensorLongRange:  4,
	})
	alloc := types.NewIDAllocator(0)
	host := newHost(alloc,
		domain.Sensor{Class: intel.SensorShortRange, Range: 3},
		domain.Sensor{Class: intel.SensorLongRange, Range: 10},
	)
	s.AddHost(host, 0)

	// Считаем, сколько раз сработал каждый сенсор за тики 0..8
	scans := make(map[int]int)
	for tick := 0; tick <= 8; tick++ {
		for _, item := range s.Due(tick) {
			scans[item.Slot]++
			s.Requeue(item, host.Sensors.Suite[item.Slot].Class, tick)
		}
	}

	if scans[0] != 9 {
		t.Errorf("short range scans = %d, want 9", scans[0])
	}
	if scans[1] != 3 { // тики 0, 4, 8
		t.Errorf("long range scans = %d, want 3", scans[1])
	}
}

func TestScanScheduler_RemoveHost(t *testing.T) {
	s := NewScanScheduler(nil)
	alloc := types.NewIDAllocator(0)
	a := newHost(alloc, domain.Sensor{Class: intel.SensorShortRange, Range: 3}, domain.Sensor{Class: intel.SensorLongRange, Range: 9})
	b := newHost(alloc, domain.Sensor{Class: intel.SensorMediumRange, Range: 5})

	s.AddHost(a, 0)
	s.AddHost(b, 0)
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	s.RemoveHost(a.ID)
	if s.HasHost(a.ID) {
		t.Error("removed host is still scheduled")
	}
	if !s.HasHost(b.ID) || s.Len() != 1 {
		t.Errorf("other host must stay, Len = %d", s.Len())
	}

	due := s.Due(0)
	if len(due) != 1 || due[0].Host != b.ID {
		t.Errorf("Due = %+v, want only %s", due, b.ID)
	}
}

func TestScanScheduler_AddHostSkipsEntitiesWithoutSensors(t *testing.T) {
	s := NewScanScheduler(nil)
	alloc := types.NewIDAllocator(0)

	star := &domain.Entity{ID: alloc.Next(enums.EntityKindStar), Kind: enums.EntityKindStar}
	s.AddHost(star, 0)

	destroyed := newHost(alloc, domain.Sensor{Class: intel.SensorShortRange, Range: 3})
	destroyed.Destroyed = true
	s.AddHost(destroyed, 0)

	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if dump := s.DebugDump(); dump == nil || len(dump) != 0 {
		t.Errorf("DebugDump = %v, want empty non-nil slice", dump)
	}
}
