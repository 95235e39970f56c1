package voxel

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// Generator produces terrain deterministically from a seed: solid ground up
// to a fixed level with one sealed cellar carved into every chunk column.
type Generator struct {
	Seed   uint64
	Ground int32 // first air layer
	Fill   BlockID
}

// Cellar returns the interior box carved into chunk column (cx, cz), and
// false when the ground is too shallow for one.
func (g Generator) Cellar(cx, cz int32) (lo, hi BlockPos, ok bool) {
	rng := rand.New(rand.NewPCG(g.Seed, uint64(uint32(cx))<<32|uint64(uint32(cz))))

	sx := 3 + rng.Int32N(5)
	sy := 3 + rng.Int32N(3)
	sz := 3 + rng.Int32N(5)

	// Keep a wall of ground on every side, including above.
	top := g.Ground - 2 - sy
	if top < 1 {
		return BlockPos{}, BlockPos{}, false
	}

	lo = BlockPos{
		X: cx<<ChunkShift + 1 + rng.Int32N(ChunkSize-2-sx),
		Y: 1 + rng.Int32N(top),
		Z: cz<<ChunkShift + 1 + rng.Int32N(ChunkSize-2-sz),
	}
	hi = lo.Add(sx-1, sy-1, sz-1)
	return lo, hi, true
}

// Generate builds the chunk at cp.
func (g Generator) Generate(cp ChunkPos) *Chunk {
	c := NewChunk(cp)
	origin := cp.Origin()
	if origin.Y >= g.Ground {
		return c
	}

	lo, hi, carve := g.Cellar(cp.X, cp.Z)
	for ly := range int32(ChunkSize) {
		y := origin.Y + ly
		if y >= g.Ground {
			break
		}
		for lz := range int32(ChunkSize) {
			for lx := range int32(ChunkSize) {
				pos := BlockPos{X: origin.X + lx, Y: y, Z: origin.Z + lz}
				if carve && pos.X >= lo.X && pos.X <= hi.X &&
					pos.Y >= lo.Y && pos.Y <= hi.Y &&
					pos.Z >= lo.Z && pos.Z <= hi.Z {
					continue
				}
				c.SetBlockAt(LocalIndex(pos), g.Fill)
			}
		}
	}
	return c
}

// GenerateWorld loads a generated chunk at every position of the store and
// relights the whole world. Returns the number of chunks loaded.
func GenerateWorld(s *Store, g Generator) (int, error) {
	if g.Fill == AirID {
		return 0, fmt.Errorf("generating world: fill block must not be air")
	}

	x, y, z := s.Size()
	n := 0
	for cx := int32(0); cx < x>>ChunkShift; cx++ {
		for cy := int32(0); cy < y>>ChunkShift; cy++ {
			for cz := int32(0); cz < z>>ChunkShift; cz++ {
				if err := s.LoadChunk(g.Generate(ChunkPos{X: cx, Y: cy, Z: cz})); err != nil {
					return n, fmt.Errorf("generating world: %w", err)
				}
				n++
			}
		}
	}

	for cx := int32(0); cx < x>>ChunkShift; cx++ {
		for cz := int32(0); cz < z>>ChunkShift; cz++ {
			s.RelightChunkColumns(ChunkPos{X: cx, Z: cz})
		}
	}

	slog.Info("world generated", "chunks", n, "seed", g.Seed, "ground", g.Ground)
	return n, nil
}
