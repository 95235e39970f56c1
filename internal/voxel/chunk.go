package voxel

import "sync"

// Chunk holds the block ids and sunlight of a ChunkSize³ cube.
// Cell layout follows LocalIndex.
type Chunk struct {
	pos ChunkPos

	mu     sync.RWMutex
	blocks [ChunkVolume]BlockID
	light  [ChunkVolume]uint8
}

// NewChunk creates an all-air, unlit chunk.
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{pos: pos}
}

// Pos returns the chunk coordinate.
func (c *Chunk) Pos() ChunkPos {
	return c.pos
}

// BlockAt returns the block id at cell index idx.
func (c *Chunk) BlockAt(idx int) BlockID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[idx]
}

// SetBlockAt stores a block id and reports whether it changed.
func (c *Chunk) SetBlockAt(idx int, id BlockID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.blocks[idx] == id {
		return false
	}
	c.blocks[idx] = id
	return true
}

// LightAt returns the sunlight level at cell index idx.
func (c *Chunk) LightAt(idx int) uint8 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.light[idx]
}

// SetLightAt stores a sunlight level and reports whether it changed.
func (c *Chunk) SetLightAt(idx int, level uint8) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.light[idx] == level {
		return false
	}
	c.light[idx] = level
	return true
}

// Fill sets every cell to id. Used by generators and tests.
func (c *Chunk) Fill(id BlockID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.blocks {
		c.blocks[i] = id
	}
}

// FillLight sets every cell's sunlight to level.
func (c *Chunk) FillLight(level uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.light {
		c.light[i] = level
	}
}
