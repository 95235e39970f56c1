package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// RoomServer holds all configuration for the room server.
type RoomServer struct {
	LogLevel string `yaml:"log_level"`

	// Terrain persistence
	UseDatabase bool           `yaml:"use_database"`
	Database    DatabaseConfig `yaml:"database"`

	World   World      `yaml:"world"`
	Scanner Scanner    `yaml:"scanner"`
	Watch   []Position `yaml:"watch"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// World describes the voxel volume in blocks.
type World struct {
	SizeX         int32 `yaml:"size_x"`
	SizeY         int32 `yaml:"size_y"`
	SizeZ         int32 `yaml:"size_z"`
	SunBrightness uint8 `yaml:"sun_brightness"`

	// Generated terrain, used when the database is off or empty
	Seed   uint64 `yaml:"seed"`
	Ground int32  `yaml:"ground"`
}

// Options converts the world section to store options.
func (w World) Options() voxel.Options {
	return voxel.Options{
		SizeX:         w.SizeX,
		SizeY:         w.SizeY,
		SizeZ:         w.SizeZ,
		SunBrightness: w.SunBrightness,
	}
}

// Generator returns the terrain generator for the world section.
func (w World) Generator() voxel.Generator {
	return voxel.Generator{Seed: w.Seed, Ground: w.Ground, Fill: voxel.StoneID}
}

// Scanner configures the background room scanner.
type Scanner struct {
	Interval          time.Duration `yaml:"interval"`
	Workers           int           `yaml:"workers"`            // 0 = runtime.NumCPU()
	ParallelThreshold int           `yaml:"parallel_threshold"` // watch count from which scans fan out
}

// Position is a watched seed position.
type Position struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
	Z int32 `yaml:"z"`
}

// BlockPos converts p to a block position.
func (p Position) BlockPos() voxel.BlockPos {
	return voxel.BlockPos{X: p.X, Y: p.Y, Z: p.Z}
}

// DefaultRoomServer returns RoomServer config with sensible defaults.
func DefaultRoomServer() RoomServer {
	opts := voxel.DefaultOptions()
	return RoomServer{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "voxelroom",
			Password: "voxelroom",
			DBName:   "voxelroom",
			SSLMode:  "disable",
		},
		World: World{
			SizeX:         opts.SizeX,
			SizeY:         opts.SizeY,
			SizeZ:         opts.SizeZ,
			SunBrightness: opts.SunBrightness,
			Seed:          1,
			Ground:        64,
		},
		Scanner: Scanner{
			Interval:          time.Second,
			ParallelThreshold: 64,
		},
	}
}

// Validate rejects configs the store cannot be built from.
func (c RoomServer) Validate() error {
	w := c.World
	if w.SizeX <= 0 || w.SizeY <= 0 || w.SizeZ <= 0 {
		return fmt.Errorf("world size %dx%dx%d must be positive", w.SizeX, w.SizeY, w.SizeZ)
	}
	if w.SizeX%voxel.ChunkSize != 0 || w.SizeY%voxel.ChunkSize != 0 || w.SizeZ%voxel.ChunkSize != 0 {
		return fmt.Errorf("world size %dx%dx%d must be a multiple of %d", w.SizeX, w.SizeY, w.SizeZ, voxel.ChunkSize)
	}
	if w.Ground < 0 || w.Ground > w.SizeY {
		return fmt.Errorf("ground level %d outside world height %d", w.Ground, w.SizeY)
	}
	if w.SunBrightness == 0 {
		return fmt.Errorf("sun brightness must be positive")
	}
	if c.Scanner.Interval <= 0 {
		return fmt.Errorf("scanner interval %s must be positive", c.Scanner.Interval)
	}
	if c.Scanner.Workers < 0 {
		return fmt.Errorf("scanner workers %d must not be negative", c.Scanner.Workers)
	}
	return nil
}

// LoadRoomServer loads room server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadRoomServer(path string) (RoomServer, error) {
	cfg := DefaultRoomServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
