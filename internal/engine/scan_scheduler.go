package engine

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"cognitive-intel/pkg/logger"
	"container/heap"

	"github.com/sirupsen/logrus"
)

// Intervals отдаёт период обзора (в тиках) для класса сенсора.
// report.Registry реализует этот интерфейс.
type Intervals interface {
	Interval(class intel.SensorClass) int
}

type scanKey struct {
	host types.EntityID
	slot int
}

// ScanScheduler решает, какие сенсоры делают обзор на текущем тике.
// У каждого класса сенсоров свой период: дальний обзор идёт реже ближнего.
type ScanScheduler struct {
	queue     ScanQueue
	itemMap   map[scanKey]*ScanItem
	intervals Intervals
}

func NewScanScheduler(intervals Intervals) *ScanScheduler {
	return &ScanScheduler{
		queue:     make(ScanQueue, 0),
		itemMap:   make(map[scanKey]*ScanItem),
		intervals: intervals,
	}
}

// AddHost ставит в очередь все сенсоры носителя с первым обзором на тике tick.
// Повторный вызов пересобирает сенсоры носителя (например, после замены набора).
func (s *ScanScheduler) AddHost(e *domain.Entity, tick int) {
	if e.Sensors == nil || e.Destroyed {
		return
	}
	s.RemoveHost(e.ID)

	for slot := range e.Sensors.Suite {
		item := &ScanItem{Host: e.ID, Slot: slot, Priority: tick}
		heap.Push(&s.queue, item)
		s.itemMap[scanKey{host: e.ID, slot: slot}] = item
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "scan_scheduler",
		"entity_id": e.ID,
		"sensors":   len(e.Sensors.Suite),
	}).Debug("Sensor host added to scheduler")
}

// Due извлекает из очереди все сенсоры, чей обзор наступил к тику tick.
// Извлечённые сенсоры нужно вернуть через Requeue.
func (s *ScanScheduler) Due(tick int) []ScanItem {
	var due []ScanItem
	for s.queue.Len() > 0 && s.queue[0].Priority <= tick {
		item := heap.Pop(&s.queue).(*ScanItem)
		delete(s.itemMap, scanKey{host: item.Host, slot: item.Slot})
		due = append(due, *item)
	}
	return due
}

// Requeue планирует следующий обзор сенсора через период его класса.
func (s *ScanScheduler) Requeue(item ScanItem, class intel.SensorClass, tick int) {
	key := scanKey{host: item.Host, slot: item.Slot}
	next := tick + s.interval(class)
	if existing, ok := s.itemMap[key]; ok {
		s.queue.Update(existing, next)
		return
	}
	queued := &ScanItem{Host: item.Host, Slot: item.Slot, Priority: next}
	heap.Push(&s.queue, queued)
	s.itemMap[key] = queued
}

func (s *ScanScheduler) interval(class intel.SensorClass) int {
	if s.intervals == nil {
		return 1
	}
	if n := s.intervals.Interval(class); n > 0 {
		return n
	}
	return 1
}

// RemoveHost убирает все сенсоры носителя (например, при уничтожении).
func (s *ScanScheduler) RemoveHost(id types.EntityID) {
	for key, item := range s.itemMap {
		if key.host != id {
			continue
		}
		heap.Remove(&s.queue, item.Index)
		delete(s.itemMap, key)
	}
}

// HasHost сообщает, стоит ли в очереди хотя бы один сенсор носителя.
func (s *ScanScheduler) HasHost(id types.EntityID) bool {
	for key := range s.itemMap {
		if key.host == id {
			return true
		}
	}
	return false
}

// PeekNext возвращает ближайший обзор, не извлекая его.
func (s *ScanScheduler) PeekNext() *ScanItem {
	if s.queue.Len() == 0 {
		return nil
	}
	return s.queue[0]
}

func (s *ScanScheduler) Len() int {
	return s.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (s *ScanScheduler) DebugDump() []map[string]any {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]any, 0, len(s.queue))

	for _, item := range s.queue {
		result = append(result, map[string]any{
			"host":     item.Host,
			"slot":     item.Slot,
			"priority": item.Priority,
			"index":    item.Index,
		})
	}
	return result
}
