package engine

import (
	"cognitive-intel/internal/core/types"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Бэкенды сохранения разведданных
const (
	SnapshotBackendFile   = "file"
	SnapshotBackendSQLite = "sqlite"
)

// Config хранит параметры запуска движка
type Config struct {
	Port string `env:"CD_PORT" envDefault:"8080"`

	// Seed - мастер-зерно генерации сектора. 0 - взять текущее время.
	Seed    int64 `env:"CD_SEED"`
	ShardID uint8 `env:"CD_SHARD"`

	TickInterval time.Duration `env:"CD_TICK_INTERVAL" envDefault:"500ms"`
	Players      int           `env:"CD_PLAYERS"       envDefault:"2"`

	// SchemaPath - файл схем типов. Пусто - встроенные схемы.
	SchemaPath string `env:"CD_SCHEMA_PATH"`

	SnapshotBackend string `env:"CD_SNAPSHOT_BACKEND" envDefault:"file"`
	SnapshotDir     string `env:"CD_SNAPSHOT_DIR"     envDefault:"snapshots"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Port:            "8080",
		Seed:            time.Now().UnixNano(),
		TickInterval:    500 * time.Millisecond,
		Players:         2,
		SnapshotBackend: SnapshotBackendFile,
		SnapshotDir:     "snapshots",
	}
}

// LoadConfig читает конфиг из переменных окружения и проверяет его.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые env не может проверить сам.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.Players < 1 || c.Players > types.MaxPlayers {
		return fmt.Errorf("players must be in 1..%d, got %d", types.MaxPlayers, c.Players)
	}
	switch c.SnapshotBackend {
	case SnapshotBackendFile, SnapshotBackendSQLite:
	default:
		return fmt.Errorf("unknown snapshot backend %q", c.SnapshotBackend)
	}
	return nil
}
