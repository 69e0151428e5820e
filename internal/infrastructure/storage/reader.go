package storage

import (
	"bufio"
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LoadLatest читает самый свежий снимок каталога (по времени создания,
// затем по тику).
func (s *FileStore) LoadLatest(_ context.Context) (*domain.IntelSnapshot, error) {
	paths, err := filepath.Glob(filepath.Join(s.SaveDir, "*"+fileExt))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var latest string
	var best IntelFileHeader
	for _, path := range paths {
		header, err := readHeaderFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if latest == "" || header.Timestamp > best.Timestamp ||
			(header.Timestamp == best.Timestamp && header.Tick > best.Tick) {
			latest, best = path, header
		}
	}
	if latest == "" {
		return nil, ErrNoSnapshot
	}
	return s.Load(latest)
}

// Load читает снимок из конкретного файла.
func (s *FileStore) Load(path string) (*domain.IntelSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSnapshot(bufio.NewReader(f))
}

func readHeaderFile(path string) (IntelFileHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return IntelFileHeader{}, err
	}
	defer f.Close()

	return readHeader(f)
}

func readHeader(r io.Reader) (IntelFileHeader, error) {
	var header IntelFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return header, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return header, errors.New("invalid magic")
	}
	if header.Version != Version1 {
		return header, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.EntryCount < 0 {
		return header, fmt.Errorf("negative entry count: %d", header.EntryCount)
	}
	return header, nil
}

// maxPrealloc ограничивает заранее выделяемое число записей.
const maxPrealloc = 4096

// ReadSnapshot читает снимок, записанный WriteSnapshot.
func ReadSnapshot(r io.Reader) (*domain.IntelSnapshot, error) {
	// 1. Читаем заголовок целиком
	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	// Счётчику из файла не доверяем: слайс растёт по мере чтения
	snap := &domain.IntelSnapshot{
		Seed:      header.Seed,
		Tick:      int(header.Tick),
		Timestamp: header.Timestamp,
		Entries:   make([]domain.IntelEntry, 0, min(int(header.EntryCount), maxPrealloc)),
	}
	if id := uuid.UUID(header.ID); id != uuid.Nil {
		snap.ID = id.String()
	}

	// 2. Читаем записи
	for i := 0; i < int(header.EntryCount); i++ {
		var rec IntelFileEntry
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read entry %d: %w", i, err)
		}

		state := intel.RecordState{
			Policy:   intel.Policy(rec.Policy),
			Coverage: intel.CoverageLevel(rec.Coverage),
			Floor:    intel.CoverageLevel(rec.Floor),
		}
		if !state.Policy.Valid() {
			return nil, fmt.Errorf("entry %d: invalid policy %d", i, rec.Policy)
		}
		if !state.Coverage.Valid() || !state.Floor.Valid() {
			return nil, fmt.Errorf("entry %d: invalid coverage %d/%d", i, rec.Coverage, rec.Floor)
		}

		snap.Entries = append(snap.Entries, domain.IntelEntry{
			Entity: types.EntityID(rec.Entity),
			Player: types.PlayerID(rec.Player),
			State:  state,
		})
	}

	return snap, nil
}
