package testutil

import (
	"testing"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// Block ids registered by NewTestStore.
const (
	Stone voxel.BlockID = 1 // insulating, heat retention +6
	Ice   voxel.BlockID = 2 // cooling, heat retention -2
	Glass voxel.BlockID = 3 // weakly insulating, heat retention +1
	Slab  voxel.BlockID = 4 // bottom slab: retains on its Down face only
	Grass voxel.BlockID = 5 // plant: occupies a cell but retains nothing
)

// TestRegistry returns a registry with the test block set.
func TestRegistry() *voxel.Registry {
	reg := voxel.NewRegistry()
	reg.MustRegister(
		voxel.NewSolidBlock(Stone, 6),
		voxel.NewSolidBlock(Ice, -2),
		voxel.NewSolidBlock(Glass, 1),
		voxel.NewFacedBlock(Slab, [6]int{voxel.Down: 3}),
		voxel.NewFacedBlock(Grass, [6]int{}),
	)
	return reg
}

// NewTestStore creates a 128×64×128 world with sun brightness 24 and the
// test block set. bus may be nil.
func NewTestStore(tb testing.TB, bus *voxel.DirtyBus) *voxel.Store {
	tb.Helper()
	return voxel.NewStore(voxel.Options{
		SizeX:         128,
		SizeY:         64,
		SizeZ:         128,
		SunBrightness: 24,
	}, TestRegistry(), bus)
}

// LoadArea loads empty chunks covering the inclusive box [min, max].
func LoadArea(tb testing.TB, s *voxel.Store, min, max voxel.BlockPos) {
	tb.Helper()
	lo, hi := min.Chunk(), max.Chunk()
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				cp := voxel.ChunkPos{X: x, Y: y, Z: z}
				if s.IsChunkLoaded(cp) {
					continue
				}
				if err := s.LoadChunk(voxel.NewChunk(cp)); err != nil {
					tb.Fatalf("loading %s: %v", cp, err)
				}
			}
		}
	}
}

// LoadAll loads every chunk of the world.
func LoadAll(tb testing.TB, s *voxel.Store) {
	tb.Helper()
	x, y, z := s.Size()
	LoadArea(tb, s, voxel.BlockPos{}, voxel.BlockPos{X: x - 1, Y: y - 1, Z: z - 1})
}

// Fill sets every block of the inclusive box [min, max] to id.
func Fill(tb testing.TB, s *voxel.Store, min, max voxel.BlockPos, id voxel.BlockID) {
	tb.Helper()
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				pos := voxel.BlockPos{X: x, Y: y, Z: z}
				if err := s.SetBlock(pos, id); err != nil {
					tb.Fatalf("setting block at %s: %v", pos, err)
				}
			}
		}
	}
}

// HollowBox builds a shell of wall blocks around the inclusive interior box
// [min, max]: the interior stays air, the shell is one block thick.
func HollowBox(tb testing.TB, s *voxel.Store, min, max voxel.BlockPos, wall voxel.BlockID) {
	tb.Helper()
	Fill(tb, s, min.Add(-1, -1, -1), max.Add(1, 1, 1), wall)
	Fill(tb, s, min, max, voxel.AirID)
}

// RelightAll recomputes sunlight for every column of the world.
func RelightAll(s *voxel.Store) {
	x, _, z := s.Size()
	for cx := int32(0); cx < x; cx += voxel.ChunkSize {
		for cz := int32(0); cz < z; cz += voxel.ChunkSize {
			s.RelightChunkColumns(voxel.BlockPos{X: cx, Z: cz}.Chunk())
		}
	}
}
