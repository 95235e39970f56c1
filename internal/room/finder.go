package room

import "github.com/udisondev/voxelroom/internal/voxel"

// Scratch is the mutable state of one flood fill worker: the accessor it
// reads through, the visited and column-checked stamp arrays and the queue.
// Stamps use an iteration id so the arrays never need clearing between fills.
//
// NOT safe for concurrent use. Obtain one from a ScratchPool.
type Scratch struct {
	access BlockAccessor

	iteration uint32
	visited   [ArrayVolume]uint32
	columns   [ArrayArea]uint32
	queue     []int32
}

func newScratch(access BlockAccessor) *Scratch {
	return &Scratch{
		access: access,
		queue:  make([]int32, 0, ArrayVolume),
	}
}

// Accessor returns the block accessor owned by this scratch.
func (s *Scratch) Accessor() BlockAccessor {
	return s.access
}

func (s *Scratch) nextIteration() uint32 {
	s.iteration++
	if s.iteration == 0 {
		// Wrapped: old stamps could collide with new ids.
		clear(s.visited[:])
		clear(s.columns[:])
		s.iteration = 1
	}
	return s.iteration
}

func visitedIndex(dx, dy, dz int32) int {
	return int((dx*ArraySize+dy)*ArraySize + dz)
}

func columnIndex(dx, dz int32) int {
	return int(dx*ArraySize + dz)
}

func pack(dx, dy, dz int32) int32 {
	return dx<<(2*packBits) | dy<<packBits | dz
}

func unpack(v int32) (dx, dy, dz int32) {
	return v >> (2 * packBits), (v >> packBits) & packMask, v & packMask
}

// FindRoom flood fills passable space from seed, up to MaxRoomSize on every
// axis, and returns the resulting Room. It never fails: a seed embedded in a
// solid block or at the world edge yields a degenerate room.
//
// sunBrightness is the sunlight level of a cell open to the sky; columns at
// sunBrightness-1 or brighter count as skylit.
func (s *Scratch) FindRoom(seed voxel.BlockPos, sunBrightness uint8) *Room {
	const half = int32(MaxRadius)
	const maxLocal = int32(ArraySize - 1)

	iter := s.nextIteration()
	a := s.access
	a.Begin()

	baseX, baseY, baseZ := seed.X-half, seed.Y-half, seed.Z-half
	minX, minY, minZ := half, half, half
	maxX, maxY, maxZ := half, half, half

	var (
		coolingWalls, nonCoolingWalls int
		skylight, nonSkylight         int
		exits                         int
		cells                         = 1
		allLoaded                     = true
	)

	skyThreshold := int(sunBrightness) - 1
	checkColumn := func(dx, dz int32, pos voxel.BlockPos) {
		ci := columnIndex(dx, dz)
		if s.columns[ci] == iter {
			return
		}
		s.columns[ci] = iter
		light := a.LightLevel(pos, voxel.LightSun)
		if !a.LastChunkLoaded() {
			allLoaded = false
		}
		if int(light) >= skyThreshold {
			skylight++
		} else {
			nonSkylight++
		}
	}
	tally := func(retention int) {
		if retention < 0 {
			coolingWalls++
		} else {
			nonCoolingWalls++
		}
	}

	s.visited[visitedIndex(half, half, half)] = iter
	checkColumn(half, half, seed)
	s.queue = append(s.queue[:0], pack(half, half, half))

	for head := 0; head < len(s.queue); head++ {
		dx, dy, dz := unpack(s.queue[head])
		pos := voxel.BlockPos{X: baseX + dx, Y: baseY + dy, Z: baseZ + dz}

		block := a.Block(pos)
		if !a.LastChunkLoaded() {
			allLoaded = false
		}

		for _, face := range voxel.AllFacings {
			// The current block occludes this face itself.
			if r := block.Retention(face, voxel.RetentionHeat); r != 0 {
				tally(r)
				continue
			}

			npos := pos.Offset(face)
			if !a.IsValidPos(npos) {
				exits++
				continue
			}

			nblock := a.Block(npos)
			if !a.LastChunkLoaded() {
				allLoaded = false
				exits++
				continue
			}
			if r := nblock.Retention(face.Opposite(), voxel.RetentionHeat); r != 0 {
				tally(r)
				continue
			}

			n := face.Normal()
			nx, ny, nz := dx+n.X, dy+n.Y, dz+n.Z

			// Only the axis that moved can leave the box, so test just that one.
			outside := false
			switch face {
			case voxel.North:
				if nz < minZ {
					outside = nz < 0 || maxZ-minZ+1 >= MaxRoomSize
				}
			case voxel.East:
				if nx > maxX {
					outside = nx > maxLocal || maxX-minX+1 >= MaxRoomSize
				}
			case voxel.South:
				if nz > maxZ {
					outside = nz > maxLocal || maxZ-minZ+1 >= MaxRoomSize
				}
			case voxel.West:
				if nx < minX {
					outside = nx < 0 || maxX-minX+1 >= MaxRoomSize
				}
			case voxel.Up:
				if ny > maxY {
					outside = ny > maxLocal || maxY-minY+1 >= MaxRoomSize
				}
			case voxel.Down:
				if ny < minY {
					outside = ny < 0 || maxY-minY+1 >= MaxRoomSize
				}
			}
			if outside {
				exits++
				continue
			}

			vi := visitedIndex(nx, ny, nz)
			if s.visited[vi] == iter {
				continue
			}
			s.visited[vi] = iter
			cells++

			minX, maxX = min(minX, nx), max(maxX, nx)
			minY, maxY = min(minY, ny), max(maxY, ny)
			minZ, maxZ = min(minZ, nz), max(maxZ, nz)

			checkColumn(nx, nz, npos)
			s.queue = append(s.queue, pack(nx, ny, nz))
		}
	}

	sx := int(maxX-minX) + 1
	sy := int(maxY-minY) + 1
	sz := int(maxZ-minZ) + 1

	members := make([]byte, (sx*sy*sz+7)/8)
	for dy := range sy {
		for dz := range sz {
			for dx := range sx {
				if s.visited[visitedIndex(minX+int32(dx), minY+int32(dy), minZ+int32(dz))] != iter {
					continue
				}
				idx := (dy*sz+dz)*sx + dx
				members[idx>>3] |= 1 << (idx & 7)
			}
		}
	}

	return &Room{
		location: Cuboid{
			Min: voxel.BlockPos{X: baseX + minX, Y: baseY + minY, Z: baseZ + minZ},
			Max: voxel.BlockPos{X: baseX + maxX, Y: baseY + maxY, Z: baseZ + maxZ},
		},
		members:          members,
		memberCount:      cells,
		coolingWalls:     coolingWalls,
		nonCoolingWalls:  nonCoolingWalls,
		skylight:         skylight,
		nonSkylight:      nonSkylight,
		exits:            exits,
		anyChunkUnloaded: !allLoaded,
		smallRoom:        isSmallRoom(sx, sy, sz, cells, exits),
	}
}
