package voxel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeChunk_Uniform(t *testing.T) {
	c := NewChunk(ChunkPos{1, 2, 3})
	c.Fill(4)
	c.FillLight(DefaultSunBrightness)

	data := EncodeChunk(c)
	assert.Len(t, data, 5, "uniform blocks (3 bytes) + uniform light (2 bytes)")

	got, err := DecodeChunk(c.Pos(), data)
	require.NoError(t, err)
	assert.Equal(t, ChunkPos{1, 2, 3}, got.Pos())
	assert.Equal(t, BlockID(4), got.BlockAt(0))
	assert.Equal(t, BlockID(4), got.BlockAt(ChunkVolume-1))
	assert.Equal(t, DefaultSunBrightness, got.LightAt(100))
}

func TestEncodeChunk_Dense(t *testing.T) {
	c := NewChunk(ChunkPos{})
	c.SetBlockAt(LocalIndex(BlockPos{3, 4, 5}), 9)
	c.SetLightAt(LocalIndex(BlockPos{1, 1, 1}), 12)

	data := EncodeChunk(c)
	assert.Len(t, data, 1+ChunkVolume*2+1+ChunkVolume)

	got, err := DecodeChunk(c.Pos(), data)
	require.NoError(t, err)
	assert.Equal(t, BlockID(9), got.BlockAt(LocalIndex(BlockPos{3, 4, 5})))
	assert.Equal(t, AirID, got.BlockAt(LocalIndex(BlockPos{3, 4, 6})))
	assert.Equal(t, uint8(12), got.LightAt(LocalIndex(BlockPos{1, 1, 1})))
	assert.Zero(t, got.LightAt(0))
}

func TestDecodeChunk_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"unknown block kind", []byte{0x7F, 0, 0, 0x00, 0}},
		{"short uniform blocks", []byte{sectionUniform, 1}},
		{"short dense blocks", []byte{sectionDense, 1, 0, 1, 0}},
		{"missing light", []byte{sectionUniform, 1, 0}},
		{"unknown light kind", []byte{sectionUniform, 1, 0, 0x09, 0}},
		{"short uniform light", []byte{sectionUniform, 1, 0, sectionUniform}},
		{"trailing bytes", []byte{sectionUniform, 1, 0, sectionUniform, 0, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeChunk(ChunkPos{}, tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptChunk))
		})
	}
}
