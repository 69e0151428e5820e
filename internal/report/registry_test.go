package report

import (
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/intel"
	"strings"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	if reg != Default() {
		t.Fatal("Default() must return the same registry")
	}

	wantKinds := []enums.EntityKind{
		enums.EntityKindStar, enums.EntityKindPlanet, enums.EntityKindOutpost,
		enums.EntityKindShip, enums.EntityKindFleet,
	}
	for _, k := range wantKinds {
		if _, ok := reg.Schema(k); !ok {
			t.Errorf("no schema for %s", k)
		}
	}

	star, _ := reg.Schema(enums.EntityKindStar)
	if star.Policy != intel.PolicyMonotonic {
		t.Errorf("star policy = %s, want monotonic", star.Policy)
	}
	fleet, _ := reg.Schema(enums.EntityKindFleet)
	if !fleet.Composite {
		t.Error("fleet must be composite")
	}
	outpost, _ := reg.Schema(enums.EntityKindOutpost)
	if !outpost.OwnerSeesAll {
		t.Error("outpost must be owner_sees_all")
	}
	if f, ok := outpost.Field("population"); !ok || f.Min != intel.CoverageEssential {
		t.Errorf("outpost population min = %s", f.Min)
	}

	if reg.Ceilings() != intel.DefaultCeilings() {
		t.Errorf("ceilings = %v, want defaults", reg.Ceilings())
	}
	if got := reg.Interval(intel.SensorLongRange); got != 4 {
		t.Errorf("long range interval = %d, want 4", got)
	}
}

func TestLoadRegistry_Overrides(t *testing.T) {
	data := `
sensors:
  - class: long_range
    ceiling: basic
kinds:
  - kind: star
    policy: monotonic
    fields:
      - { name: name, type: string, min: none }
`
	reg, err := LoadRegistry([]byte(data))
	if err != nil {
		t.Fatalf("LoadRegistry error: %v", err)
	}
	if got := reg.Ceilings().Of(intel.SensorLongRange); got != intel.CoverageBasic {
		t.Errorf("long range ceiling = %s, want basic", got)
	}
	if got := reg.Ceilings().Of(intel.SensorShortRange); got != intel.CoverageComprehensive {
		t.Errorf("short range ceiling = %s, want default comprehensive", got)
	}
	if got := reg.Interval(intel.SensorLongRange); got != 4 {
		t.Errorf("omitted interval must keep default, got %d", got)
	}
	if len(reg.Kinds()) != 1 {
		t.Errorf("Kinds() = %v", reg.Kinds())
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "unknown kind",
			data:    "kinds:\n  - kind: comet\n    policy: monotonic\n",
			wantErr: "unknown entity kind",
		},
		{
			name:    "unknown policy",
			data:    "kinds:\n  - kind: star\n    policy: sticky\n",
			wantErr: "unknown intel policy",
		},
		{
			name:    "no accessor",
			data:    "kinds:\n  - kind: star\n    policy: monotonic\n    fields:\n      - { name: warp, type: int, min: none }\n",
			wantErr: "no accessor",
		},
		{
			name:    "type mismatch",
			data:    "kinds:\n  - kind: star\n    policy: monotonic\n    fields:\n      - { name: name, type: int, min: none }\n",
			wantErr: "accessor returns string",
		},
		{
			name:    "bad coverage",
			data:    "kinds:\n  - kind: star\n    policy: monotonic\n    fields:\n      - { name: name, type: string, min: total }\n",
			wantErr: "name",
		},
		{
			name:    "duplicate field",
			data:    "kinds:\n  - kind: star\n    policy: monotonic\n    fields:\n      - { name: name, type: string, min: none }\n      - { name: name, type: string, min: none }\n",
			wantErr: "declared twice",
		},
		{
			name:    "duplicate kind",
			data:    "kinds:\n  - kind: star\n    policy: monotonic\n  - kind: STAR\n    policy: monotonic\n",
			wantErr: "declared twice",
		},
		{
			name:    "unknown sensor",
			data:    "sensors:\n  - class: psychic\n    ceiling: basic\n",
			wantErr: "unknown sensor class",
		},
		{
			name:    "broken yaml",
			data:    "kinds: [",
			wantErr: "failed to parse schemas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegistry([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
