package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockPos_Chunk(t *testing.T) {
	tests := []struct {
		name string
		pos  BlockPos
		want ChunkPos
	}{
		{"origin", BlockPos{0, 0, 0}, ChunkPos{0, 0, 0}},
		{"last cell of first chunk", BlockPos{31, 31, 31}, ChunkPos{0, 0, 0}},
		{"first cell of second chunk", BlockPos{32, 0, 64}, ChunkPos{1, 0, 2}},
		{"negative floors", BlockPos{-1, -32, -33}, ChunkPos{-1, -1, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.Chunk())
		})
	}
}

func TestChunkPos_Origin(t *testing.T) {
	assert.Equal(t, BlockPos{32, 64, 0}, ChunkPos{1, 2, 0}.Origin())
	assert.Equal(t, ChunkPos{3, 1, 7}, ChunkPos{3, 1, 7}.Origin().Chunk())
}

func TestLocalIndex(t *testing.T) {
	assert.Equal(t, 0, LocalIndex(BlockPos{32, 64, 96}))
	assert.Equal(t, 1, LocalIndex(BlockPos{1, 0, 0}))
	assert.Equal(t, ChunkSize, LocalIndex(BlockPos{0, 0, 1}))
	assert.Equal(t, ChunkArea, LocalIndex(BlockPos{0, 1, 0}))
	assert.Equal(t, ChunkVolume-1, LocalIndex(BlockPos{31, 31, 31}))
	assert.Equal(t, ChunkVolume-1, LocalIndex(BlockPos{-1, -1, -1}))
}

func TestBlockPos_Offset(t *testing.T) {
	p := NewBlockPos(5, 5, 5)
	assert.Equal(t, NewBlockPos(6, 5, 5), p.Offset(East))
	assert.Equal(t, NewBlockPos(5, 4, 5), p.Offset(Down))
	assert.Equal(t, NewBlockPos(5, 5, 4), p.Offset(North))
	assert.Equal(t, p, p.Offset(Up).Offset(Down))
}
