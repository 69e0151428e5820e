package storage

import (
	"bufio"
	"cognitive-intel/internal/domain"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	MagicHeader string = `CDIS` // 4 байта
	Version1    uint32 = 1

	fileExt = ".cdis"
)

// IntelFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type IntelFileHeader struct {
	Magic      [4]byte  // 4 байта
	Version    uint32   // 4 байта
	ID         [16]byte // 16 байт, UUID снимка
	Seed       int64    // 8 байт
	Tick       int64    // 8 байт
	Timestamp  int64    // 8 байт
	EntryCount int32    // 4 байта
}

// IntelFileEntry - одна запись (сущность, игрок). Размер фиксирован.
type IntelFileEntry struct {
	Entity   uint64 // 8
	Player   uint8  // 1
	Policy   uint8  // 1
	Coverage uint8  // 1
	Floor    uint8  // 1
}

// FileStore хранит каждый снимок в отдельном бинарном файле.
type FileStore struct {
	SaveDir string
}

func NewFileStore(dir string) (*FileStore, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{SaveDir: dir}, nil
}

func (s *FileStore) Save(_ context.Context, snap *domain.IntelSnapshot) error {
	filename := fmt.Sprintf("intel_%d_t%d_%d%s", snap.Seed, snap.Tick, snap.Timestamp, fileExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteSnapshot(w, snap); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return f.Sync()
}

func (s *FileStore) Close() error { return nil }

// WriteSnapshot пишет снимок в бинарном формате (little-endian).
func WriteSnapshot(w io.Writer, snap *domain.IntelSnapshot) error {
	// 1. Подготавливаем и пишем ЗАГОЛОВОК
	header := IntelFileHeader{
		Version:    Version1,
		Seed:       snap.Seed,
		Tick:       int64(snap.Tick),
		Timestamp:  snap.Timestamp,
		EntryCount: int32(len(snap.Entries)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if snap.ID != "" {
		id, err := uuid.Parse(snap.ID)
		if err != nil {
			return fmt.Errorf("invalid snapshot id: %w", err)
		}
		header.ID = id
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Пишем записи
	for _, entry := range snap.Entries {
		rec := IntelFileEntry{
			Entity:   uint64(entry.Entity),
			Player:   uint8(entry.Player),
			Policy:   uint8(entry.State.Policy),
			Coverage: uint8(entry.State.Coverage),
			Floor:    uint8(entry.State.Floor),
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}

	return nil
}
