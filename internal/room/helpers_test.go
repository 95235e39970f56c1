package room

import (
	"sync/atomic"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// fakeTerrain is a map-backed world for cases the voxel store cannot set up
// directly, such as exact light levels. It is read-only once built.
type fakeTerrain struct {
	size     int32
	sun      uint8
	light    uint8
	blocks   map[voxel.BlockPos]voxel.Block
	unloaded map[voxel.ChunkPos]bool

	created atomic.Int64
}

func newFakeTerrain(size int32) *fakeTerrain {
	return &fakeTerrain{
		size:     size,
		sun:      24,
		blocks:   make(map[voxel.BlockPos]voxel.Block),
		unloaded: make(map[voxel.ChunkPos]bool),
	}
}

func (w *fakeTerrain) IsChunkLoaded(cp voxel.ChunkPos) bool {
	return !w.unloaded[cp]
}

func (w *fakeTerrain) SunBrightness() uint8 {
	return w.sun
}

func (w *fakeTerrain) valid(pos voxel.BlockPos) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.Z >= 0 &&
		pos.X < w.size && pos.Y < w.size && pos.Z < w.size
}

// enclose surrounds pos with solid on all six faces.
func (w *fakeTerrain) enclose(pos voxel.BlockPos, solid voxel.Block) {
	for _, f := range voxel.AllFacings {
		w.blocks[pos.Offset(f)] = solid
	}
}

func (w *fakeTerrain) newAccessor() BlockAccessor {
	w.created.Add(1)
	return &fakeAccessor{terrain: w, loaded: true}
}

type fakeAccessor struct {
	terrain  *fakeTerrain
	loaded   bool
	begins   int
	disposed atomic.Bool
}

func (a *fakeAccessor) Begin() {
	a.begins++
	a.loaded = true
}

func (a *fakeAccessor) Block(pos voxel.BlockPos) voxel.Block {
	if !a.terrain.valid(pos) {
		a.loaded = true
		return voxel.AirBlock{}
	}
	a.loaded = !a.terrain.unloaded[pos.Chunk()]
	if !a.loaded {
		return voxel.AirBlock{}
	}
	if b, ok := a.terrain.blocks[pos]; ok {
		return b
	}
	return voxel.AirBlock{}
}

func (a *fakeAccessor) IsValidPos(pos voxel.BlockPos) bool {
	return a.terrain.valid(pos)
}

func (a *fakeAccessor) LightLevel(pos voxel.BlockPos, _ voxel.LightKind) uint8 {
	a.loaded = !a.terrain.valid(pos) || !a.terrain.unloaded[pos.Chunk()]
	return a.terrain.light
}

func (a *fakeAccessor) LastChunkLoaded() bool {
	return a.loaded
}

func (a *fakeAccessor) Dispose() {
	a.disposed.Store(true)
}
