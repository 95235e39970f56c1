package voxel

import "fmt"

// BlockPos is an integer block position in world space.
type BlockPos struct {
	X, Y, Z int32
}

// NewBlockPos is shorthand for a BlockPos literal.
func NewBlockPos(x, y, z int32) BlockPos {
	return BlockPos{X: x, Y: y, Z: z}
}

// Add returns the position offset by (dx, dy, dz).
func (p BlockPos) Add(dx, dy, dz int32) BlockPos {
	return BlockPos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Offset returns the neighbour of p across face f.
func (p BlockPos) Offset(f Facing) BlockPos {
	n := f.Normal()
	return BlockPos{X: p.X + n.X, Y: p.Y + n.Y, Z: p.Z + n.Z}
}

// Chunk returns the chunk containing p.
func (p BlockPos) Chunk() ChunkPos {
	// Arithmetic shift floors negative coordinates.
	return ChunkPos{X: p.X >> ChunkShift, Y: p.Y >> ChunkShift, Z: p.Z >> ChunkShift}
}

func (p BlockPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// ChunkPos is a chunk coordinate (block coordinate >> ChunkShift).
type ChunkPos struct {
	X, Y, Z int32
}

// Origin returns the lowest block position inside the chunk.
func (c ChunkPos) Origin() BlockPos {
	return BlockPos{X: c.X << ChunkShift, Y: c.Y << ChunkShift, Z: c.Z << ChunkShift}
}

func (c ChunkPos) String() string {
	return fmt.Sprintf("chunk(%d, %d, %d)", c.X, c.Y, c.Z)
}

// LocalIndex returns the index of p inside its chunk's cell arrays.
// Layout is y-major: (y*ChunkSize + z)*ChunkSize + x.
func LocalIndex(p BlockPos) int {
	lx := int(p.X & ChunkMask)
	ly := int(p.Y & ChunkMask)
	lz := int(p.Z & ChunkMask)
	return (ly*ChunkSize+lz)*ChunkSize + lx
}
