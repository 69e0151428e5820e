// Package storage сохраняет и восстанавливает покрытие разведки.
//
// Сохраняется только состояние записей (политика, покрытие, нижняя
// граница). Счётчики контактов принадлежат сессии и после загрузки
// заново набираются ближайшим обзором.
package storage

import (
	"cognitive-intel/internal/domain"
	"context"
	"errors"
	"fmt"
)

// ErrNoSnapshot - в хранилище нет ни одного снимка.
var ErrNoSnapshot = errors.New("no snapshot")

// SnapshotStore - хранилище снимков разведданных.
type SnapshotStore interface {
	Save(ctx context.Context, snap *domain.IntelSnapshot) error
	LoadLatest(ctx context.Context) (*domain.IntelSnapshot, error)
	Close() error
}

// Open создает хранилище выбранного бэкенда в каталоге dir.
func Open(backend, dir string) (SnapshotStore, error) {
	switch backend {
	case "file":
		return NewFileStore(dir)
	case "sqlite":
		return NewSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", backend)
	}
}
