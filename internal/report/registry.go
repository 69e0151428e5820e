package report

import (
	"cognitive-intel/internal/core/types/enums"
	"cognitive-intel/internal/intel"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schemas/default.yaml
var defaultSchemas []byte

// Registry - таблицы раскрытия всех типов сущностей и потолки сенсоров.
//
// Реестр строится один раз при старте и дальше только читается, поэтому
// его можно разделять между горутинами без блокировок.
type Registry struct {
	kinds     map[enums.EntityKind]*KindSchema
	ceilings  intel.Ceilings
	intervals map[intel.SensorClass]int
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default возвращает реестр, собранный из встроенного файла схем.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := LoadRegistry(defaultSchemas)
		if err != nil {
			panic(fmt.Sprintf("embedded schemas are invalid: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// LoadRegistryFile читает схемы из файла. Пустой путь означает встроенные схемы.
func LoadRegistryFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schemas: %w", err)
	}
	return LoadRegistry(data)
}

// --- YAML ---

type schemaDoc struct {
	Sensors []sensorDoc `yaml:"sensors"`
	Kinds   []kindDoc   `yaml:"kinds"`
}

type sensorDoc struct {
	Class    string `yaml:"class"`
	Ceiling  string `yaml:"ceiling"`
	Interval int    `yaml:"interval"`
}

type kindDoc struct {
	Kind         string     `yaml:"kind"`
	Policy       string     `yaml:"policy"`
	OwnerSeesAll bool       `yaml:"owner_sees_all"`
	Composite    bool       `yaml:"composite"`
	Fields       []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Min  string `yaml:"min"`
}

// LoadRegistry разбирает и проверяет YAML со схемами.
// Классы сенсоров, не указанные в файле, получают значения по умолчанию.
func LoadRegistry(data []byte) (*Registry, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schemas: %w", err)
	}

	reg := &Registry{
		kinds:    make(map[enums.EntityKind]*KindSchema),
		ceilings: intel.DefaultCeilings(),
		intervals: map[intel.SensorClass]int{
			intel.SensorShortRange:  1,
			intel.SensorMediumRange: 2,
			intel.SensorLongRange:   4,
		},
	}

	for _, s := range doc.Sensors {
		class, err := intel.ParseSensorClass(s.Class)
		if err != nil {
			return nil, err
		}
		ceiling, err := intel.ParseCoverage(s.Ceiling)
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", class, err)
		}
		reg.ceilings = reg.ceilings.With(class, ceiling)
		if s.Interval < 0 {
			return nil, fmt.Errorf("sensor %s: negative interval %d", class, s.Interval)
		}
		if s.Interval > 0 {
			reg.intervals[class] = s.Interval
		}
	}

	for _, k := range doc.Kinds {
		schema, err := buildKind(k)
		if err != nil {
			return nil, err
		}
		if _, dup := reg.kinds[schema.Kind]; dup {
			return nil, fmt.Errorf("kind %s: declared twice", schema.Kind)
		}
		reg.kinds[schema.Kind] = schema
	}
	return reg, nil
}

func buildKind(k kindDoc) (*KindSchema, error) {
	kind := enums.ParseEntityKind(k.Kind)
	if kind == enums.EntityKindUnknown {
		return nil, fmt.Errorf("unknown entity kind %q", k.Kind)
	}
	policy, err := intel.ParsePolicy(k.Policy)
	if err != nil {
		return nil, fmt.Errorf("kind %s: %w", kind, err)
	}

	schema := &KindSchema{
		Kind:         kind,
		Policy:       policy,
		OwnerSeesAll: k.OwnerSeesAll,
		Composite:    k.Composite,
		Fields:       make([]FieldSpec, 0, len(k.Fields)),
	}

	seen := make(map[string]bool, len(k.Fields))
	for _, f := range k.Fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("kind %s: field %q declared twice", kind, f.Name)
		}
		seen[f.Name] = true

		def, ok := accessors[f.Name]
		if !ok {
			return nil, fmt.Errorf("kind %s: no accessor for field %q", kind, f.Name)
		}
		typ, err := ParseFieldType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("kind %s: field %q: %w", kind, f.Name, err)
		}
		if typ != def.typ {
			return nil, fmt.Errorf("kind %s: field %q has type %s, accessor returns %s", kind, f.Name, typ, def.typ)
		}
		minimum, err := intel.ParseCoverage(f.Min)
		if err != nil {
			return nil, fmt.Errorf("kind %s: field %q: %w", kind, f.Name, err)
		}

		schema.Fields = append(schema.Fields, FieldSpec{
			Name: f.Name,
			Type: typ,
			Min:  minimum,
			read: def.read,
		})
	}
	return schema, nil
}

// --- Чтение ---

// Schema возвращает таблицу раскрытия типа.
func (r *Registry) Schema(kind enums.EntityKind) (*KindSchema, bool) {
	s, ok := r.kinds[kind]
	return s, ok
}

// Kinds возвращает описанные типы в порядке возрастания.
func (r *Registry) Kinds() []enums.EntityKind {
	kinds := make([]enums.EntityKind, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Ceilings возвращает потолки покрытия по классам сенсоров.
func (r *Registry) Ceilings() intel.Ceilings {
	return r.ceilings
}

// Interval возвращает период обзора класса сенсоров в тиках.
func (r *Registry) Interval(class intel.SensorClass) int {
	if n, ok := r.intervals[class]; ok {
		return n
	}
	return 1
}
