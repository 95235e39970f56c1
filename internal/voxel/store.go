package voxel

import (
	"fmt"
	"log/slog"
	"sync"
)

// Options configures a Store.
type Options struct {
	SizeX, SizeY, SizeZ int32
	SunBrightness       uint8
}

// DefaultOptions returns the default world dimensions.
func DefaultOptions() Options {
	return Options{
		SizeX:         DefaultWorldSizeX,
		SizeY:         DefaultWorldSizeY,
		SizeZ:         DefaultWorldSizeZ,
		SunBrightness: DefaultSunBrightness,
	}
}

// Store is an in-memory chunked voxel world.
// Thread-safe: the chunk map is guarded by mu, cell data by each Chunk's own lock.
type Store struct {
	opts     Options
	registry *Registry
	bus      *DirtyBus

	mu     sync.RWMutex
	chunks map[ChunkPos]*Chunk
}

// NewStore creates an empty world (no chunks loaded).
// bus may be nil when nobody needs dirty notifications.
func NewStore(opts Options, registry *Registry, bus *DirtyBus) *Store {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Store{
		opts:     opts,
		registry: registry,
		bus:      bus,
		chunks:   make(map[ChunkPos]*Chunk, 256),
	}
}

// Registry returns the block registry used to resolve ids.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Bus returns the dirty bus (may be nil).
func (s *Store) Bus() *DirtyBus {
	return s.bus
}

// SunBrightness returns the sunlight level of a cell open to the sky.
func (s *Store) SunBrightness() uint8 {
	return s.opts.SunBrightness
}

// Size returns the world dimensions in blocks.
func (s *Store) Size() (x, y, z int32) {
	return s.opts.SizeX, s.opts.SizeY, s.opts.SizeZ
}

// IsValidPos reports whether pos lies inside the world volume.
func (s *Store) IsValidPos(pos BlockPos) bool {
	return pos.X >= 0 && pos.X < s.opts.SizeX &&
		pos.Y >= 0 && pos.Y < s.opts.SizeY &&
		pos.Z >= 0 && pos.Z < s.opts.SizeZ
}

// IsValidChunk reports whether cp addresses a chunk inside the world volume.
func (s *Store) IsValidChunk(cp ChunkPos) bool {
	return s.IsValidPos(cp.Origin())
}

// chunk returns the loaded chunk at cp (nil if not loaded).
func (s *Store) chunk(cp ChunkPos) *Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunks[cp]
}

// Chunk returns the loaded chunk at cp.
func (s *Store) Chunk(cp ChunkPos) (*Chunk, bool) {
	c := s.chunk(cp)
	return c, c != nil
}

// IsChunkLoaded reports whether the chunk at cp is in memory.
func (s *Store) IsChunkLoaded(cp ChunkPos) bool {
	return s.chunk(cp) != nil
}

// LoadedChunks returns a snapshot of loaded chunk coordinates.
func (s *Store) LoadedChunks() []ChunkPos {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChunkPos, 0, len(s.chunks))
	for cp := range s.chunks {
		out = append(out, cp)
	}
	return out
}

// LoadedCount returns the number of chunks in memory.
func (s *Store) LoadedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// LoadChunk puts c into the world, replacing any chunk at the same position.
func (s *Store) LoadChunk(c *Chunk) error {
	if !s.IsValidChunk(c.Pos()) {
		return fmt.Errorf("loading %s: %w", c.Pos(), ErrChunkOutOfBounds)
	}

	s.mu.Lock()
	s.chunks[c.Pos()] = c
	s.mu.Unlock()

	s.publish(c.Pos(), DirtyLoaded)
	return nil
}

// UnloadChunk removes the chunk at cp from memory and returns it.
func (s *Store) UnloadChunk(cp ChunkPos) (*Chunk, bool) {
	s.mu.Lock()
	c, ok := s.chunks[cp]
	delete(s.chunks, cp)
	s.mu.Unlock()

	if ok {
		s.publish(cp, DirtyUnloaded)
	}
	return c, ok
}

// Block returns the block at pos and whether its chunk is loaded.
// Invalid positions return air and true: there is nothing to load there.
func (s *Store) Block(pos BlockPos) (Block, bool) {
	if !s.IsValidPos(pos) {
		return AirBlock{}, true
	}
	c := s.chunk(pos.Chunk())
	if c == nil {
		return AirBlock{}, false
	}
	return s.registry.Get(c.BlockAt(LocalIndex(pos))), true
}

// LightLevel returns the light at pos and whether its chunk is loaded.
// Block light is not simulated and always reads zero.
func (s *Store) LightLevel(pos BlockPos, kind LightKind) (uint8, bool) {
	if kind == LightBlock {
		return 0, true
	}
	switch {
	case pos.Y >= s.opts.SizeY:
		return s.opts.SunBrightness, true
	case !s.IsValidPos(pos):
		return 0, true
	}
	c := s.chunk(pos.Chunk())
	if c == nil {
		return 0, false
	}
	return c.LightAt(LocalIndex(pos)), true
}

// SetBlock stores a block id, relights the column and publishes dirty
// notifications for every chunk that changed.
func (s *Store) SetBlock(pos BlockPos, id BlockID) error {
	if !s.IsValidPos(pos) {
		return fmt.Errorf("set block at %s: %w", pos, ErrInvalidPos)
	}
	c := s.chunk(pos.Chunk())
	if c == nil {
		return fmt.Errorf("set block at %s: %w", pos, ErrChunkNotLoaded)
	}
	if !c.SetBlockAt(LocalIndex(pos), id) {
		return nil
	}
	s.publish(c.Pos(), DirtyBlock)
	s.RelightColumn(pos.X, pos.Z)
	return nil
}

// RelightColumn recomputes sunlight for column (x, z) top-down: full brightness
// down to the first non-air block, dark below. Unloaded chunks are skipped.
func (s *Store) RelightColumn(x, z int32) {
	if x < 0 || x >= s.opts.SizeX || z < 0 || z >= s.opts.SizeZ {
		return
	}

	level := s.opts.SunBrightness
	var changed []ChunkPos

	for y := s.opts.SizeY - 1; y >= 0; y-- {
		pos := BlockPos{X: x, Y: y, Z: z}
		c := s.chunk(pos.Chunk())
		if c == nil {
			// Skip to the chunk below.
			y = (y >> ChunkShift) << ChunkShift
			continue
		}
		idx := LocalIndex(pos)
		if level > 0 && c.BlockAt(idx) != AirID {
			level = 0
		}
		if c.SetLightAt(idx, level) && (len(changed) == 0 || changed[len(changed)-1] != c.Pos()) {
			changed = append(changed, c.Pos())
		}
	}

	for _, cp := range changed {
		s.publish(cp, DirtyLight)
	}
}

// RelightChunkColumns relights every column passing through chunk cp.
// Used after bulk terrain generation or loading.
func (s *Store) RelightChunkColumns(cp ChunkPos) {
	origin := cp.Origin()
	for dx := range int32(ChunkSize) {
		for dz := range int32(ChunkSize) {
			s.RelightColumn(origin.X+dx, origin.Z+dz)
		}
	}
}

// NewAccessor creates a caching accessor bound to this store.
func (s *Store) NewAccessor() *Accessor {
	return &Accessor{store: s, lastLoaded: true}
}

func (s *Store) publish(cp ChunkPos, reason DirtyReason) {
	if s.bus == nil {
		return
	}
	slog.Debug("chunk dirty", "chunk", cp, "reason", reason)
	s.bus.Publish(cp, reason)
}
