package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/voxelroom/internal/voxel"
)

func TestCuboid(t *testing.T) {
	c := Cuboid{Min: voxel.BlockPos{X: 1, Y: 2, Z: 3}, Max: voxel.BlockPos{X: 3, Y: 2, Z: 6}}

	assert.Equal(t, 3, c.SizeX())
	assert.Equal(t, 1, c.SizeY())
	assert.Equal(t, 4, c.SizeZ())
	assert.Equal(t, 12, c.Volume())

	assert.True(t, c.Contains(voxel.BlockPos{X: 1, Y: 2, Z: 3}))
	assert.True(t, c.Contains(voxel.BlockPos{X: 3, Y: 2, Z: 6}))
	assert.False(t, c.Contains(voxel.BlockPos{X: 4, Y: 2, Z: 6}))
	assert.False(t, c.Contains(voxel.BlockPos{X: 2, Y: 3, Z: 4}))

	g := c.Grow(1)
	assert.Equal(t, voxel.BlockPos{X: 0, Y: 1, Z: 2}, g.Min)
	assert.Equal(t, voxel.BlockPos{X: 4, Y: 3, Z: 7}, g.Max)
}

func TestCuboid_Chunks(t *testing.T) {
	tests := []struct {
		name string
		box  Cuboid
		want []voxel.ChunkPos
	}{
		{
			name: "inside one chunk",
			box:  Cuboid{Min: voxel.BlockPos{X: 1, Y: 1, Z: 1}, Max: voxel.BlockPos{X: 5, Y: 5, Z: 5}},
			want: []voxel.ChunkPos{{X: 0, Y: 0, Z: 0}},
		},
		{
			name: "straddles X edge",
			box:  Cuboid{Min: voxel.BlockPos{X: 30, Y: 1, Z: 1}, Max: voxel.BlockPos{X: 33, Y: 5, Z: 5}},
			want: []voxel.ChunkPos{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}},
		},
		{
			name: "straddles every edge",
			box:  Cuboid{Min: voxel.BlockPos{X: 31, Y: 31, Z: 31}, Max: voxel.BlockPos{X: 32, Y: 32, Z: 32}},
			want: []voxel.ChunkPos{
				{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1},
				{X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1},
			},
		},
		{
			name: "negative coordinates",
			box:  Cuboid{Min: voxel.BlockPos{X: -2, Y: 0, Z: 0}, Max: voxel.BlockPos{X: 1, Y: 0, Z: 0}},
			want: []voxel.ChunkPos{{X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, tt.box.Chunks())
		})
	}
}

func TestIsSmallRoom(t *testing.T) {
	tests := []struct {
		name       string
		sx, sy, sz int
		cells      int
		exits      int
		want       bool
	}{
		{"single cell", 1, 1, 1, 1, 0, true},
		{"7 cube", 7, 7, 7, 343, 0, true},
		{"8 on one axis", 8, 7, 7, 100, 0, true},
		{"9 on one axis at volume cap", 7, 9, 7, 150, 0, true},
		{"9 on one axis over volume cap", 7, 7, 9, 151, 0, false},
		{"10 on one axis", 10, 3, 3, 30, 0, false},
		{"two axes over 7", 9, 9, 3, 60, 0, false},
		{"unsealed", 3, 3, 3, 27, 1, false},
		{"8 cube", 8, 8, 8, 100, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSmallRoom(tt.sx, tt.sy, tt.sz, tt.cells, tt.exits))
		})
	}
}

func TestRoom_ContainsAndMembers(t *testing.T) {
	// 2×1×2 box with the (1,0,1) corner missing.
	r := &Room{
		location:    Cuboid{Min: voxel.BlockPos{X: 10, Y: 5, Z: 20}, Max: voxel.BlockPos{X: 11, Y: 5, Z: 21}},
		members:     []byte{0b0111},
		memberCount: 3,
	}

	assert.True(t, r.Contains(voxel.BlockPos{X: 10, Y: 5, Z: 20}))
	assert.True(t, r.Contains(voxel.BlockPos{X: 11, Y: 5, Z: 20}))
	assert.True(t, r.Contains(voxel.BlockPos{X: 10, Y: 5, Z: 21}))
	assert.False(t, r.Contains(voxel.BlockPos{X: 11, Y: 5, Z: 21}), "gap inside the box")
	assert.False(t, r.Contains(voxel.BlockPos{X: 12, Y: 5, Z: 20}), "outside the box")

	assert.Equal(t, []voxel.BlockPos{
		{X: 10, Y: 5, Z: 20},
		{X: 11, Y: 5, Z: 20},
		{X: 10, Y: 5, Z: 21},
	}, r.Members())
}

func TestRoom_Fingerprint(t *testing.T) {
	a := &Room{location: Cuboid{Max: voxel.BlockPos{X: 1}}, members: []byte{0b11}, memberCount: 2}
	b := &Room{location: Cuboid{Max: voxel.BlockPos{X: 1}}, members: []byte{0b11}, memberCount: 2}
	c := &Room{location: Cuboid{Max: voxel.BlockPos{X: 1}}, members: []byte{0b11}, memberCount: 2, exits: 1}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestRoom_MembershipBitsIsCopy(t *testing.T) {
	r := &Room{location: Cuboid{}, members: []byte{1}, memberCount: 1}
	bits := r.MembershipBits()
	bits[0] = 0
	assert.True(t, r.Contains(voxel.BlockPos{}))
}
