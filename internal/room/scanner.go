package room

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// Scanner periodically re-evaluates the rooms at a set of watched positions,
// keeping the latest result per position. It is the background consumer that
// keeps hot rooms warm in the cache.
type Scanner struct {
	cache *Cache

	mu      sync.RWMutex
	watched map[voxel.BlockPos]*Room // nil until the first scan

	interval          time.Duration
	numWorkers        int
	parallelThreshold int
}

// ScanResult summarizes one ScanAll pass.
type ScanResult struct {
	Scanned int
	Changed int
}

// NewScanner creates a scanner with runtime.NumCPU() workers.
func NewScanner(cache *Cache, interval time.Duration) *Scanner {
	return &Scanner{
		cache:             cache,
		watched:           make(map[voxel.BlockPos]*Room, 64),
		interval:          interval,
		numWorkers:        runtime.NumCPU(),
		parallelThreshold: 64,
	}
}

// SetNumWorkers sets the number of parallel workers for large batches.
func (s *Scanner) SetNumWorkers(n int) {
	if n < 1 {
		n = 1
	}
	s.numWorkers = n
}

// SetParallelThreshold sets the watch count from which batches run in parallel.
func (s *Scanner) SetParallelThreshold(n int) {
	s.parallelThreshold = n
}

// Watch adds pos to the scan set.
func (s *Scanner) Watch(pos voxel.BlockPos) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watched[pos]; !ok {
		s.watched[pos] = nil
	}
}

// Unwatch removes pos from the scan set.
func (s *Scanner) Unwatch(pos voxel.BlockPos) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watched, pos)
}

// Count returns the number of watched positions.
func (s *Scanner) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watched)
}

// Latest returns the room seen at pos by the last scan.
func (s *Scanner) Latest(pos voxel.BlockPos) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := s.watched[pos]
	return r, r != nil
}

// Start scans every interval until ctx is cancelled and returns ctx.Err().
func (s *Scanner) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("room scanner started", "interval", s.interval, "workers", s.numWorkers)

	for {
		select {
		case <-ctx.Done():
			slog.Info("room scanner stopping")
			return ctx.Err()

		case <-ticker.C:
			s.ScanAll()
		}
	}
}

// ScanAll looks up the room at every watched position once. Small watch sets
// run sequentially; larger ones are split across workers.
func (s *Scanner) ScanAll() ScanResult {
	s.mu.RLock()
	positions := make([]voxel.BlockPos, 0, len(s.watched))
	for pos := range s.watched {
		positions = append(positions, pos)
	}
	s.mu.RUnlock()

	if len(positions) == 0 {
		return ScanResult{}
	}

	rooms := make([]*Room, len(positions))
	if len(positions) < s.parallelThreshold || s.numWorkers == 1 {
		for i, pos := range positions {
			rooms[i] = s.cache.GetRoomForPosition(pos)
		}
	} else {
		s.scanParallel(positions, rooms)
	}

	result := ScanResult{Scanned: len(positions)}

	s.mu.Lock()
	for i, pos := range positions {
		prev, ok := s.watched[pos]
		if !ok {
			// Unwatched during the scan.
			continue
		}
		if prev == nil || prev.Fingerprint() != rooms[i].Fingerprint() {
			result.Changed++
			if prev != nil {
				slog.Debug("watched room changed", "pos", pos, "room", rooms[i])
			}
		}
		s.watched[pos] = rooms[i]
	}
	s.mu.Unlock()

	slog.Debug("room scan completed", "scanned", result.Scanned, "changed", result.Changed)
	return result
}

// scanParallel fills rooms[i] for positions[i], splitting the slice into one
// contiguous chunk per worker.
func (s *Scanner) scanParallel(positions []voxel.BlockPos, rooms []*Room) {
	numWorkers := min(s.numWorkers, len(positions))
	chunkSize := len(positions) / numWorkers

	var g errgroup.Group
	g.SetLimit(numWorkers)

	for i := range numWorkers {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = len(positions)
		}

		g.Go(func() error {
			for j := start; j < end; j++ {
				rooms[j] = s.cache.GetRoomForPosition(positions[j])
			}
			return nil
		})
	}

	// Workers never fail.
	_ = g.Wait()
}
