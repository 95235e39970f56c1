package room

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// Room is the immutable result of one flood fill: a bounded, connected pocket
// of passable space plus the statistics collected at its boundary.
// A changed world produces a new Room, never a patched one.
type Room struct {
	location Cuboid
	// members holds one bit per cell of location, index (dy*sizeZ + dz)*sizeX + dx.
	members     []byte
	memberCount int

	coolingWalls    int
	nonCoolingWalls int
	skylight        int
	nonSkylight     int
	exits           int

	anyChunkUnloaded bool
	smallRoom        bool
}

// Location returns the inclusive bounding box of every visited cell.
func (r *Room) Location() Cuboid {
	return r.location
}

// CoolingWallCount returns the number of boundary faces with negative heat retention.
func (r *Room) CoolingWallCount() int {
	return r.coolingWalls
}

// NonCoolingWallCount returns the number of boundary faces with positive heat retention.
func (r *Room) NonCoolingWallCount() int {
	return r.nonCoolingWalls
}

// SkylightCount returns the number of (X,Z) columns of the room in full sunlight.
func (r *Room) SkylightCount() int {
	return r.skylight
}

// NonSkylightCount returns the number of (X,Z) columns of the room not in full sunlight.
func (r *Room) NonSkylightCount() int {
	return r.nonSkylight
}

// ExitCount returns how many times the fill hit the world edge, unloaded
// terrain or the size cap. Zero means the room is sealed.
func (r *Room) ExitCount() int {
	return r.exits
}

// IsSealed reports whether ExitCount is zero.
func (r *Room) IsSealed() bool {
	return r.exits == 0
}

// AnyChunkUnloaded reports whether the fill touched a chunk that was not
// loaded. Such a room may be partial and is never served from cache.
func (r *Room) AnyChunkUnloaded() bool {
	return r.anyChunkUnloaded
}

// IsSmallRoom reports the cellar classification: sealed and within 7×7×7, or
// within 9 on one axis when no more than 150 cells are filled.
func (r *Room) IsSmallRoom() bool {
	return r.smallRoom
}

// MemberCount returns the number of cells reached by the fill.
func (r *Room) MemberCount() int {
	return r.memberCount
}

// Contains reports whether the fill reached pos.
func (r *Room) Contains(pos voxel.BlockPos) bool {
	if !r.location.Contains(pos) {
		return false
	}
	idx := r.memberIndex(int(pos.X-r.location.Min.X), int(pos.Y-r.location.Min.Y), int(pos.Z-r.location.Min.Z))
	return r.members[idx>>3]&(1<<(idx&7)) != 0
}

// Members lists every member cell, for highlighting in debug tools.
func (r *Room) Members() []voxel.BlockPos {
	out := make([]voxel.BlockPos, 0, r.memberCount)
	sx, sy, sz := r.location.SizeX(), r.location.SizeY(), r.location.SizeZ()
	for dy := range sy {
		for dz := range sz {
			for dx := range sx {
				idx := r.memberIndex(dx, dy, dz)
				if r.members[idx>>3]&(1<<(idx&7)) != 0 {
					out = append(out, r.location.Min.Add(int32(dx), int32(dy), int32(dz)))
				}
			}
		}
	}
	return out
}

// MembershipBits returns a copy of the membership bit array.
func (r *Room) MembershipBits() []byte {
	out := make([]byte, len(r.members))
	copy(out, r.members)
	return out
}

// Fingerprint hashes the box, membership bits and statistics. Two rooms with
// equal fingerprints describe the same space with the same boundary.
func (r *Room) Fingerprint() uint64 {
	buf := make([]byte, 0, 4*11+len(r.members))
	for _, v := range [...]int32{
		r.location.Min.X, r.location.Min.Y, r.location.Min.Z,
		r.location.Max.X, r.location.Max.Y, r.location.Max.Z,
		int32(r.coolingWalls), int32(r.nonCoolingWalls),
		int32(r.skylight), int32(r.nonSkylight), int32(r.exits),
	} {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	buf = append(buf, r.members...)
	return xxhash.Sum64(buf)
}

func (r *Room) String() string {
	return fmt.Sprintf("room %s cells=%d exits=%d walls=%d/%d sky=%d/%d small=%t unloaded=%t",
		r.location, r.memberCount, r.exits,
		r.coolingWalls, r.nonCoolingWalls,
		r.skylight, r.nonSkylight,
		r.smallRoom, r.anyChunkUnloaded)
}

func (r *Room) memberIndex(dx, dy, dz int) int {
	return (dy*r.location.SizeZ()+dz)*r.location.SizeX() + dx
}

// isSmallRoom applies the cellar size rule.
func isSmallRoom(sx, sy, sz, cells, exits int) bool {
	if exits != 0 {
		return false
	}
	if sx <= SmallRoomSize && sy <= SmallRoomSize && sz <= SmallRoomSize {
		return true
	}
	if cells > AltSmallRoomVolume {
		return false
	}
	over := 0
	for _, s := range [3]int{sx, sy, sz} {
		if s > AltSmallRoomSize {
			return false
		}
		if s > SmallRoomSize {
			over++
		}
	}
	return over == 1
}
