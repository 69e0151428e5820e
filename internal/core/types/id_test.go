package types

import (
	"cognitive-intel/internal/core/types/enums"
	"encoding/json"
	"sort"
	"testing"
)

func TestPackEntityID(t *testing.T) {
	tests := []struct {
		name  string
		shard uint8
		kind  enums.EntityKind
		gen   uint16
		index uint32
	}{
		{"All zero", 0, enums.EntityKindUnknown, 0, 0},
		{"Simple values", 1, enums.EntityKindOutpost, 3, 4},
		{"Max values", maskShard, enums.EntityKind(maskKind), maskGen, maskIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := PackEntityID(tt.shard, tt.kind, tt.gen, tt.index)

			if id.Shard() != tt.shard {
				t.Errorf("Shard() = %v, want %v", id.Shard(), tt.shard)
			}
			if id.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", id.Kind(), tt.kind)
			}
			if id.Generation() != tt.gen {
				t.Errorf("Generation() = %v, want %v", id.Generation(), tt.gen)
			}
			if id.Index() != tt.index {
				t.Errorf("Index() = %v, want %v", id.Index(), tt.index)
			}
		})
	}
}

func TestEntityID_IsNil(t *testing.T) {
	tests := []struct {
		name string
		id   EntityID
		want bool
	}{
		{"Zero is Nil", 0, true},
		{"NilEntityID constant", NilEntityID, true},
		{"Non-zero is not Nil", PackEntityID(1, enums.EntityKindShip, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsNil(); got != tt.want {
				t.Errorf("IsNil() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntityID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    EntityID
		wantErr bool
	}{
		{name: "String ID", data: []byte(`"123"`), want: EntityID(123)},
		{name: "Number ID", data: []byte(`456`), want: EntityID(456)},
		{name: "Empty string", data: []byte(`""`), want: NilEntityID},
		{name: "Invalid format", data: []byte(`"abc"`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id EntityID
			err := id.UnmarshalJSON(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.want {
				t.Errorf("UnmarshalJSON() = %v, want %v", id, tt.want)
			}
		})
	}
}

func TestEntityID_JSONRoundTrip(t *testing.T) {
	original := PackEntityID(3, enums.EntityKindFleet, 5, 6)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var decoded EntityID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if decoded != original {
		t.Errorf("JSON round-trip failed: got %v, want %v", decoded, original)
	}
}

func TestIDAllocator_CreationOrder(t *testing.T) {
	alloc := NewIDAllocator(2)

	ship := alloc.Next(enums.EntityKindShip)
	star := alloc.Next(enums.EntityKindStar)
	fleet := alloc.Next(enums.EntityKindFleet)

	if ship.IsNil() {
		t.Fatal("first allocated id must not be nil")
	}
	if star.Kind() != enums.EntityKindStar || star.Shard() != 2 {
		t.Errorf("unexpected star id %v", star)
	}

	// Сортировка по Less даёт порядок создания, независимо от типа.
	ids := []EntityID{fleet, ship, star}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	if ids[0] != ship || ids[1] != star || ids[2] != fleet {
		t.Errorf("canonical order broken: %v", ids)
	}
}

func TestParsePlayerID(t *testing.T) {
	tests := []struct {
		in      string
		want    PlayerID
		wantErr bool
	}{
		{"1", 1, false},
		{"P7", 7, false},
		{" p3 ", 3, false},
		{"0", NoPlayer, true},
		{"999", NoPlayer, true},
		{"abc", NoPlayer, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlayerID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlayerID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlayerID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// FuzzPackEntityID проверяет инвариант:
// PackEntityID → извлечение полей → равенство исходным значениям.
func FuzzPackEntityID(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint16(0), uint32(0))
	f.Add(uint8(1), uint8(2), uint16(3), uint32(4))
	f.Add(uint8(255), uint8(255), uint16(65535), uint32(4294967295))

	f.Fuzz(func(t *testing.T, shard uint8, kind uint8, gen uint16, index uint32) {
		id := PackEntityID(shard, enums.EntityKind(kind), gen, index)

		if got := id.Shard(); got != shard {
			t.Fatalf("Shard mismatch: got %d, want %d", got, shard)
		}
		if got := id.Kind(); got != enums.EntityKind(kind) {
			t.Fatalf("Kind mismatch: got %d, want %d", got, kind)
		}
		if got := id.Generation(); got != gen {
			t.Fatalf("Generation mismatch: got %d, want %d", got, gen)
		}
		if got := id.Index(); got != index {
			t.Fatalf("Index mismatch: got %d, want %d", got, index)
		}
	})
}
