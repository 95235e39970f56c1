package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Deterministic(t *testing.T) {
	g := Generator{Seed: 42, Ground: 40, Fill: testStone}
	a := g.Generate(ChunkPos{X: 1, Y: 0, Z: 1})
	b := g.Generate(ChunkPos{X: 1, Y: 0, Z: 1})
	assert.Equal(t, EncodeChunk(a), EncodeChunk(b))

	other := Generator{Seed: 43, Ground: 40, Fill: testStone}.Generate(ChunkPos{X: 1, Y: 0, Z: 1})
	assert.NotEqual(t, EncodeChunk(a), EncodeChunk(other))
}

func TestGenerator_CellarIsEnclosed(t *testing.T) {
	g := Generator{Seed: 7, Ground: 40, Fill: testStone}
	s := newTestStore(t, nil)

	n, err := GenerateWorld(s, g)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	for cx := range int32(2) {
		for cz := range int32(2) {
			lo, hi, ok := g.Cellar(cx, cz)
			require.True(t, ok)

			assert.Equal(t, lo.Chunk().X, hi.Chunk().X)
			assert.Equal(t, lo.Chunk().Z, hi.Chunk().Z)
			assert.Less(t, hi.Y, g.Ground-1)

			inside, _ := s.Block(lo)
			assert.Equal(t, AirID, inside.ID())
			inside, _ = s.Block(hi)
			assert.Equal(t, AirID, inside.ID())

			for _, wall := range []BlockPos{lo.Add(-1, 0, 0), lo.Add(0, -1, 0), hi.Add(0, 1, 0), hi.Add(1, 0, 0)} {
				b, _ := s.Block(wall)
				assert.Equal(t, testStone, b.ID(), "wall at %s", wall)
			}

			light, _ := s.LightLevel(lo, LightSun)
			assert.Zero(t, light)
		}
	}

	above, _ := s.Block(BlockPos{X: 5, Y: 40, Z: 5})
	assert.Equal(t, AirID, above.ID())
	light, _ := s.LightLevel(BlockPos{X: 5, Y: 40, Z: 5}, LightSun)
	assert.Equal(t, uint8(24), light)
}

func TestGenerator_ShallowGround(t *testing.T) {
	g := Generator{Seed: 1, Ground: 3, Fill: testStone}
	_, _, ok := g.Cellar(0, 0)
	assert.False(t, ok)
}

func TestGenerateWorld_RejectsAirFill(t *testing.T) {
	_, err := GenerateWorld(newTestStore(t, nil), Generator{Ground: 10})
	assert.Error(t, err)
}
