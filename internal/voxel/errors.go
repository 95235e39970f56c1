package voxel

import "errors"

var (
	// ErrChunkOutOfBounds is returned for chunk coordinates outside the world.
	ErrChunkOutOfBounds = errors.New("chunk outside world bounds")
	// ErrInvalidPos is returned when writing to a position outside the world.
	ErrInvalidPos = errors.New("position outside world bounds")
	// ErrChunkNotLoaded is returned when writing into a chunk that is not in memory.
	ErrChunkNotLoaded = errors.New("chunk not loaded")
	// ErrCorruptChunk is returned by DecodeChunk for malformed blobs.
	ErrCorruptChunk = errors.New("corrupt chunk data")
)
