package room

import "github.com/udisondev/voxelroom/internal/voxel"

// BlockAccessor is the per-goroutine block and light query facade the flood
// fill reads the world through. Implementations may keep internal read caches
// and need not be safe for concurrent use. *voxel.Accessor satisfies it.
type BlockAccessor interface {
	// Begin resets per-scan cached state.
	Begin()
	Block(pos voxel.BlockPos) voxel.Block
	IsValidPos(pos voxel.BlockPos) bool
	LightLevel(pos voxel.BlockPos, kind voxel.LightKind) uint8
	// LastChunkLoaded reports whether the chunk touched by the latest
	// Block or LightLevel call was fully loaded.
	LastChunkLoaded() bool
	// Dispose releases the accessor for good.
	Dispose()
}

// World is the shared, thread-safe view of load state the cache needs.
// *voxel.Store satisfies it.
type World interface {
	IsChunkLoaded(cp voxel.ChunkPos) bool
	SunBrightness() uint8
}

// AccessorFactory creates a fresh accessor for a new scratch.
type AccessorFactory func() BlockAccessor
