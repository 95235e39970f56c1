package room

import (
	"fmt"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// Cuboid is an inclusive integer box in world coordinates.
type Cuboid struct {
	Min, Max voxel.BlockPos
}

// SizeX returns the number of cells along X.
func (c Cuboid) SizeX() int { return int(c.Max.X-c.Min.X) + 1 }

// SizeY returns the number of cells along Y.
func (c Cuboid) SizeY() int { return int(c.Max.Y-c.Min.Y) + 1 }

// SizeZ returns the number of cells along Z.
func (c Cuboid) SizeZ() int { return int(c.Max.Z-c.Min.Z) + 1 }

// Volume returns the number of cells in the box.
func (c Cuboid) Volume() int {
	return c.SizeX() * c.SizeY() * c.SizeZ()
}

// Contains reports whether p lies inside the box (faces included).
func (c Cuboid) Contains(p voxel.BlockPos) bool {
	return p.X >= c.Min.X && p.X <= c.Max.X &&
		p.Y >= c.Min.Y && p.Y <= c.Max.Y &&
		p.Z >= c.Min.Z && p.Z <= c.Max.Z
}

// Grow returns the box expanded by n cells on every side.
func (c Cuboid) Grow(n int32) Cuboid {
	return Cuboid{
		Min: c.Min.Add(-n, -n, -n),
		Max: c.Max.Add(n, n, n),
	}
}

// Chunks returns every chunk coordinate the box spans, without duplicates.
// Boxes narrower than a chunk span at most two chunks per axis, so this is
// the set of the eight corner chunks.
func (c Cuboid) Chunks() []voxel.ChunkPos {
	lo := c.Min.Chunk()
	hi := c.Max.Chunk()
	out := make([]voxel.ChunkPos, 0, 8)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				out = append(out, voxel.ChunkPos{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

func (c Cuboid) String() string {
	return fmt.Sprintf("%s..%s", c.Min, c.Max)
}
