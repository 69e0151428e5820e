package engine

import (
	"cognitive-intel/internal/core/types"
	"container/heap"
)

// ScanItem обертка для одного сенсора в очереди приоритетов
type ScanItem struct {
	Host     types.EntityID // Носитель сенсора
	Slot     int            // Номер сенсора в наборе носителя
	Priority int            // Тик следующего обзора. Чем меньше, тем раньше.
	Index    int            // Индекс в куче (нужен для update)
}

// ScanQueue реализует heap.Interface и хранит ScanItems
type ScanQueue []*ScanItem

func (pq ScanQueue) Len() int { return len(pq) }

// Less: MinHeap по тику. При равенстве - канонический порядок носителя
// и номер сенсора, чтобы обзоры одного тика шли в предсказуемом порядке.
func (pq ScanQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.Host != b.Host {
		return a.Host.Less(b.Host)
	}
	return a.Slot < b.Slot
}

func (pq ScanQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *ScanQueue) Push(x any) {
	n := len(*pq)
	item := x.(*ScanItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *ScanQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update изменяет приоритет элемента в очереди
func (pq *ScanQueue) Update(item *ScanItem, priority int) {
	item.Priority = priority
	heap.Fix(pq, item.Index)
}
