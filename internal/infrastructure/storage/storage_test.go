package storage

import (
	"bytes"
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/intel"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func sampleSnapshot(tick int, ts int64) *domain.IntelSnapshot {
	alloc := types.NewIDAllocator(3)
	outpost := alloc.Next(enums.EntityKindOutpost)
	fleet := alloc.Next(enums.EntityKindFleet)

	return &domain.IntelSnapshot{
		ID:        uuid.NewString(),
		Tick:      tick,
		Seed:      42,
		Timestamp: ts,
		Entries: []domain.IntelEntry{
			{Entity: outpost, Player: 1, State: intel.RecordState{
				Policy: intel.PolicyRevertible, Coverage: intel.CoverageComprehensive, Floor: intel.CoverageComprehensive,
			}},
			{Entity: outpost, Player: 2, State: intel.RecordState{
				Policy: intel.PolicyRevertible, Coverage: intel.CoverageEssential, Floor: intel.CoverageNone,
			}},
			{Entity: fleet, Player: 2, State: intel.RecordState{
				Policy: intel.PolicyMonotonic, Coverage: intel.CoverageBasic, Floor: intel.CoverageNone,
			}},
		},
	}
}

type entryKey struct {
	entity types.EntityID
	player types.PlayerID
}

func assertSameSnapshot(t *testing.T, got, want *domain.IntelSnapshot) {
	t.Helper()
	if got.ID != want.ID || got.Tick != want.Tick || got.Seed != want.Seed || got.Timestamp != want.Timestamp {
		t.Errorf("header mismatch: got %+v, want %+v", got, want)
	}
	if len(got.Entries) != len(want.Entries) {
		t.Fatalf("entries = %d, want %d", len(got.Entries), len(want.Entries))
	}
	states := make(map[entryKey]intel.RecordState)
	for _, e := range got.Entries {
		states[entryKey{e.Entity, e.Player}] = e.State
	}
	for _, e := range want.Entries {
		if s, ok := states[entryKey{e.Entity, e.Player}]; !ok || s != e.State {
			t.Errorf("entry %s/%s = %+v, want %+v", e.Entity, e.Player, s, e.State)
		}
	}
}

func TestWriteReadSnapshot(t *testing.T) {
	want := sampleSnapshot(17, 1000)

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, want); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	// Заголовок 52 байта + 3 записи по 12 байт
	if buf.Len() != 52+3*12 {
		t.Errorf("encoded size = %d, want %d", buf.Len(), 52+3*12)
	}

	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	assertSameSnapshot(t, got, want)
}

func TestReadSnapshot_Errors(t *testing.T) {
	var valid bytes.Buffer
	if err := WriteSnapshot(&valid, sampleSnapshot(1, 1)); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	raw := valid.Bytes()

	badMagic := append([]byte("XXXX"), raw[4:]...)

	badVersion := append([]byte(nil), raw...)
	badVersion[4] = 9

	truncated := raw[:len(raw)-5]

	badCoverage := append([]byte(nil), raw...)
	badCoverage[52+10] = 200 // coverage первой записи

	badPolicy := append([]byte(nil), raw...)
	badPolicy[52+9] = 7 // policy первой записи

	// Заголовок обещает 2^31-1 записей, а записей нет
	hugeCount := append([]byte(nil), raw[:52]...)
	binary.LittleEndian.PutUint32(hugeCount[48:], 1<<31-1)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", badMagic},
		{"bad version", badVersion},
		{"truncated", truncated},
		{"bad coverage", badCoverage},
		{"bad policy", badPolicy},
		{"huge entry count", hugeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadSnapshot(bytes.NewReader(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteSnapshot_InvalidID(t *testing.T) {
	snap := sampleSnapshot(1, 1)
	snap.ID = "not-a-uuid"
	if err := WriteSnapshot(&bytes.Buffer{}, snap); err == nil {
		t.Error("expected error for invalid id")
	}
}

func TestStores(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			store, err := Open(backend, filepath.Join(t.TempDir(), "snapshots"))
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer store.Close()

			if _, err := store.LoadLatest(ctx); !errors.Is(err, ErrNoSnapshot) {
				t.Fatalf("empty store: expected ErrNoSnapshot, got %v", err)
			}

			older := sampleSnapshot(5, 100)
			newer := sampleSnapshot(9, 200)
			newer.Entries = newer.Entries[:1]
			for _, snap := range []*domain.IntelSnapshot{newer, older} {
				if err := store.Save(ctx, snap); err != nil {
					t.Fatalf("Save: %v", err)
				}
			}

			got, err := store.LoadLatest(ctx)
			if err != nil {
				t.Fatalf("LoadLatest: %v", err)
			}
			assertSameSnapshot(t, got, newer)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestFileStore_CorruptFileReported(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken"+fileExt), []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadLatest(context.Background()); err == nil || errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected decode error, got %v", err)
	}
}
