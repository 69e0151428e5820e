package network

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"sync"
)

// Broadcaster занимается только рассылкой снимков подписчикам.
//
// Подписчик - игрок (живой клиент или бот). У игрока один канал:
// повторная регистрация закрывает предыдущий.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: PlayerID -> Личный канал
	subscribers map[types.PlayerID]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[types.PlayerID]chan api.ServerResponse),
	}
}

// Register создает личный канал для игрока
func (b *Broadcaster) Register(player types.PlayerID) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[player]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[player] = ch
	return ch
}

// Unregister удаляет подписчика, если канал всё ещё его.
func (b *Broadcaster) Unregister(player types.PlayerID, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[player]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, player)
	}
}

// SendTo отправляет снимок конкретному игроку (Unicast).
// Переполненный канал не блокирует тик: снимок отбрасывается.
func (b *Broadcaster) SendTo(player types.PlayerID, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[player]; ok {
		select {
		case ch <- msg:
		default:
			logger.For("broadcaster").WithField("player", player).Warn("Channel full, update dropped")
		}
	}
}

// HasSubscriber проверяет, смотрит ли кто-то за игрока
func (b *Broadcaster) HasSubscriber(player types.PlayerID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[player]
	return ok
}

// Subscribers возвращает подписанных игроков в порядке возрастания.
func (b *Broadcaster) Subscribers() []types.PlayerID {
	b.mu.RLock()
	defer b.mu.RUnlock()

	players := make([]types.PlayerID, 0, len(b.subscribers))
	for id := types.PlayerID(1); id <= types.MaxPlayers; id++ {
		if _, ok := b.subscribers[id]; ok {
			players = append(players, id)
		}
	}
	return players
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
