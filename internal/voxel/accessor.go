package voxel

// Accessor is a caching read facade over a Store. It remembers the last chunk it
// touched so scans with strong locality skip the chunk map lookup.
//
// NOT safe for concurrent use: one Accessor per goroutine.
type Accessor struct {
	store *Store

	lastPos    ChunkPos
	lastChunk  *Chunk
	lastValid  bool
	lastLoaded bool

	disposed bool
}

// Begin drops the chunk cache. Call before each independent scan so chunks
// unloaded since the previous scan are not read through a stale pointer.
func (a *Accessor) Begin() {
	a.lastChunk = nil
	a.lastValid = false
	a.lastLoaded = true
}

// chunkFor resolves the chunk for pos through the one-entry cache and records
// whether it was loaded.
func (a *Accessor) chunkFor(pos BlockPos) *Chunk {
	cp := pos.Chunk()
	if !a.lastValid || cp != a.lastPos {
		a.lastPos = cp
		a.lastChunk = a.store.chunk(cp)
		a.lastValid = true
	}
	a.lastLoaded = a.lastChunk != nil
	return a.lastChunk
}

// Block returns the block at pos. Positions in unloaded chunks read as air;
// check LastChunkLoaded afterwards.
func (a *Accessor) Block(pos BlockPos) Block {
	if !a.store.IsValidPos(pos) {
		a.lastLoaded = true
		return AirBlock{}
	}
	c := a.chunkFor(pos)
	if c == nil {
		return AirBlock{}
	}
	return a.store.registry.Get(c.BlockAt(LocalIndex(pos)))
}

// LightLevel returns the light at pos. See Store.LightLevel.
func (a *Accessor) LightLevel(pos BlockPos, kind LightKind) uint8 {
	if kind == LightBlock || !a.store.IsValidPos(pos) {
		level, _ := a.store.LightLevel(pos, kind)
		a.lastLoaded = true
		return level
	}
	c := a.chunkFor(pos)
	if c == nil {
		return 0
	}
	return c.LightAt(LocalIndex(pos))
}

// IsValidPos reports whether pos lies inside the world volume.
func (a *Accessor) IsValidPos(pos BlockPos) bool {
	return a.store.IsValidPos(pos)
}

// LastChunkLoaded reports whether the chunk read by the latest Block or
// LightLevel call was loaded.
func (a *Accessor) LastChunkLoaded() bool {
	return a.lastLoaded
}

// Dispose releases the chunk cache. The accessor must not be used afterwards.
func (a *Accessor) Dispose() {
	a.lastChunk = nil
	a.lastValid = false
	a.disposed = true
}

// Disposed reports whether Dispose was called.
func (a *Accessor) Disposed() bool {
	return a.disposed
}
