package engine

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/engine/handlers"
	"cognitive-intel/internal/network"
	"cognitive-intel/internal/report"
	"cognitive-intel/pkg/api"
	"context"
	"fmt"
)

// SnapshotStore - хранилище снимков разведданных.
// Реализации лежат в internal/infrastructure/storage.
type SnapshotStore interface {
	Save(ctx context.Context, snap *domain.IntelSnapshot) error
	LoadLatest(ctx context.Context) (*domain.IntelSnapshot, error)
}

// GameService - фасад движка для сетевого слоя и main.
type GameService struct {
	Config   Config
	Schemas  *report.Registry
	Hub      *network.Broadcaster
	Instance *Instance
}

// NewService генерирует сектор и собирает вокруг него инстанс.
func NewService(cfg Config, schemas *report.Registry) *GameService {
	hub := network.NewBroadcaster()
	sec := buildInitialWorld(cfg, schemas)

	return &GameService{
		Config:   cfg,
		Schemas:  schemas,
		Hub:      hub,
		Instance: NewInstance(sec, schemas, hub, cfg.Seed),
	}
}

// Start запускает игровой цикл в отдельной горутине.
func (s *GameService) Start(ctx context.Context) {
	go s.Instance.Run(ctx, s.Config.TickInterval)
}

// HasPlayer сообщает, участвует ли игрок в партии. Ростер после
// построения мира только читается, поэтому блокировка не нужна.
func (s *GameService) HasPlayer(player types.PlayerID) bool {
	return s.Instance.Roster.HasPlayer(player)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// LOGIN обрабатывает сетевой слой, сюда он не доходит.
func (s *GameService) ProcessCommand(player types.PlayerID, cmd api.ClientCommand) error {
	action := handlers.ParseAction(cmd.Action)
	if action == handlers.ActionUnknown || action == handlers.ActionLogin {
		return fmt.Errorf("unknown action %q", cmd.Action)
	}

	return s.Instance.Submit(handlers.Command{
		Action:  action,
		Actor:   player,
		Payload: cmd.Payload,
	})
}

// SaveSnapshot сохраняет текущее покрытие в хранилище.
func (s *GameService) SaveSnapshot(ctx context.Context, store SnapshotStore) (*domain.IntelSnapshot, error) {
	snap := s.Instance.Snapshot()
	if err := store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

// RestoreLatest восстанавливает покрытие из последнего снимка хранилища.
func (s *GameService) RestoreLatest(ctx context.Context, store SnapshotStore) (*domain.IntelSnapshot, error) {
	snap, err := store.LoadLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err := s.Restore(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Restore восстанавливает покрытие из уже загруженного снимка.
func (s *GameService) Restore(snap *domain.IntelSnapshot) error {
	if _, _, err := s.Instance.Restore(snap); err != nil {
		return fmt.Errorf("restore snapshot %s: %w", snap.ID, err)
	}
	return nil
}
