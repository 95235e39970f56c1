package room

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// chunkRooms is the cache bucket of one origin chunk: every room whose seed
// lay in that chunk, in insertion order.
type chunkRooms struct {
	mu    sync.Mutex
	rooms []*Room
}

// match returns the first sealed room containing pos, or failing that the
// first unsealed one.
func (b *chunkRooms) match(pos voxel.BlockPos) *Room {
	b.mu.Lock()
	defer b.mu.Unlock()

	var unsealed *Room
	for _, r := range b.rooms {
		if !r.Contains(pos) {
			continue
		}
		if r.IsSealed() {
			return r
		}
		if unsealed == nil {
			unsealed = r
		}
	}
	return unsealed
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      uint64 // lookups served from a bucket
	Misses    uint64 // lookups that ran a flood fill
	Evictions uint64 // buckets dropped by invalidation
	Buckets   int
	Rooms     int
}

// Cache maps origin chunks to the rooms found from seeds inside them.
//
// Locking: mu guards the bucket map and the span index (structure only);
// each bucket's own lock guards its room list. Lock order is mu, then a
// bucket. No lock is held while a flood fill runs, so two goroutines may
// compute the same room concurrently; both results are valid.
type Cache struct {
	world World
	pool  *ScratchPool

	mu      sync.RWMutex
	buckets map[voxel.ChunkPos]*chunkRooms
	// spans maps a chunk to the origin buckets holding a room whose box,
	// grown by one block for its walls, reaches into that chunk.
	spans map[voxel.ChunkPos]map[voxel.ChunkPos]struct{}

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewCache creates an empty cache reading the world through accessors from newAccessor.
func NewCache(world World, newAccessor AccessorFactory) *Cache {
	return &Cache{
		world:   world,
		pool:    NewScratchPool(newAccessor),
		buckets: make(map[voxel.ChunkPos]*chunkRooms, 64),
		spans:   make(map[voxel.ChunkPos]map[voxel.ChunkPos]struct{}, 64),
	}
}

// NewStoreCache creates a cache over a voxel store using its caching accessors.
func NewStoreCache(store *voxel.Store) *Cache {
	return NewCache(store, func() BlockAccessor { return store.NewAccessor() })
}

// Pool returns the scratch pool used for flood fills.
func (c *Cache) Pool() *ScratchPool {
	return c.pool
}

// GetRoomForPosition returns the room containing pos. A cached room is served
// when it contains pos and every chunk it spans is loaded; otherwise the room
// is recomputed and stored under the chunk of pos.
func (c *Cache) GetRoomForPosition(pos voxel.BlockPos) *Room {
	origin := pos.Chunk()

	c.mu.RLock()
	bucket := c.buckets[origin]
	c.mu.RUnlock()

	if bucket != nil {
		if r := bucket.match(pos); r != nil && c.fullyLoaded(r) {
			c.hits.Add(1)
			return r
		}
	}

	c.misses.Add(1)
	room := c.find(pos)
	c.store(origin, pos, room)

	slog.Debug("room computed", "pos", pos, "room", room)
	return room
}

// FindRoom runs a flood fill from pos without touching the cache.
func (c *Cache) FindRoom(pos voxel.BlockPos) *Room {
	return c.find(pos)
}

func (c *Cache) find(pos voxel.BlockPos) *Room {
	s := c.pool.Acquire()
	defer c.pool.Release(s)
	return s.FindRoom(pos, c.world.SunBrightness())
}

// fullyLoaded reports whether r was computed from complete terrain and every
// chunk its box spans is still loaded.
func (c *Cache) fullyLoaded(r *Room) bool {
	if r.AnyChunkUnloaded() {
		return false
	}
	for _, cp := range r.Location().Chunks() {
		if !c.world.IsChunkLoaded(cp) {
			return false
		}
	}
	return true
}

// store appends room to the origin bucket, dropping older partial rooms at
// the same seed that it supersedes, and registers the room's span.
func (c *Cache) store(origin voxel.ChunkPos, seed voxel.BlockPos, room *Room) {
	spanned := room.Location().Grow(1).Chunks()

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := c.buckets[origin]
	if bucket == nil {
		bucket = &chunkRooms{}
		c.buckets[origin] = bucket
	}

	bucket.mu.Lock()
	kept := bucket.rooms[:0]
	for _, r := range bucket.rooms {
		if r.AnyChunkUnloaded() && r.Contains(seed) {
			continue
		}
		kept = append(kept, r)
	}
	clear(bucket.rooms[len(kept):])
	bucket.rooms = append(kept, room)
	bucket.mu.Unlock()

	for _, cp := range spanned {
		if cp == origin {
			continue
		}
		origins := c.spans[cp]
		if origins == nil {
			origins = make(map[voxel.ChunkPos]struct{}, 1)
			c.spans[cp] = origins
		}
		origins[origin] = struct{}{}
	}
}

// OnChunkDirty evicts every bucket whose rooms could have been affected by a
// change in chunk cp: cp's own bucket, every chunk spanned by the rooms in
// that bucket, and every origin bucket holding a room that reaches into cp.
// It may evict more than necessary but never less. Unknown chunks, including
// ones outside the world, are a no-op.
func (c *Cache) OnChunkDirty(cp voxel.ChunkPos) {
	c.mu.Lock()
	defer c.mu.Unlock()

	evict := map[voxel.ChunkPos]struct{}{cp: {}}
	if bucket := c.buckets[cp]; bucket != nil {
		bucket.mu.Lock()
		for _, r := range bucket.rooms {
			for _, spanned := range r.Location().Grow(1).Chunks() {
				evict[spanned] = struct{}{}
			}
		}
		bucket.mu.Unlock()
	}
	for origin := range c.spans[cp] {
		evict[origin] = struct{}{}
	}

	evicted := 0
	for key := range evict {
		bucket := c.buckets[key]
		if bucket == nil {
			continue
		}
		c.unindexLocked(key, bucket)
		delete(c.buckets, key)
		evicted++
	}
	c.evictions.Add(uint64(evicted))

	if evicted > 0 {
		slog.Debug("room buckets evicted", "dirty", cp, "candidates", len(evict), "evicted", evicted)
	}
}

// unindexLocked removes origin from the span index of every chunk its rooms reach.
// c.mu must be held for writing.
func (c *Cache) unindexLocked(origin voxel.ChunkPos, bucket *chunkRooms) {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	for _, r := range bucket.rooms {
		for _, cp := range r.Location().Grow(1).Chunks() {
			origins := c.spans[cp]
			if origins == nil {
				continue
			}
			delete(origins, origin)
			if len(origins) == 0 {
				delete(c.spans, cp)
			}
		}
	}
}

// Attach subscribes the cache to a dirty bus. Cancel the returned
// subscription to detach.
func (c *Cache) Attach(bus *voxel.DirtyBus) *voxel.Subscription {
	return bus.Subscribe(func(cp voxel.ChunkPos, _ voxel.DirtyReason) {
		c.OnChunkDirty(cp)
	})
}

// RoomsAt lists every cached room whose box contains pos, for debug tools.
func (c *Cache) RoomsAt(pos voxel.BlockPos) []*Room {
	// A room's seed lies within MaxRoomSize of any cell of its box.
	reach := Cuboid{Min: pos, Max: pos}.Grow(MaxRoomSize)

	c.mu.RLock()
	candidates := make([]*chunkRooms, 0, 8)
	for _, cp := range reach.Chunks() {
		if bucket := c.buckets[cp]; bucket != nil {
			candidates = append(candidates, bucket)
		}
	}
	c.mu.RUnlock()

	var out []*Room
	for _, bucket := range candidates {
		bucket.mu.Lock()
		for _, r := range bucket.rooms {
			if r.Location().Contains(pos) {
				out = append(out, r)
			}
		}
		bucket.mu.Unlock()
	}
	return out
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	buckets := make([]*chunkRooms, 0, len(c.buckets))
	for _, b := range c.buckets {
		buckets = append(buckets, b)
	}
	c.mu.RUnlock()

	rooms := 0
	for _, b := range buckets {
		b.mu.Lock()
		rooms += len(b.rooms)
		b.mu.Unlock()
	}

	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Buckets:   len(buckets),
		Rooms:     rooms,
	}
}

// Reset drops every bucket, e.g. on world reload. Rooms are rebuilt lazily.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.buckets = make(map[voxel.ChunkPos]*chunkRooms, 64)
	c.spans = make(map[voxel.ChunkPos]map[voxel.ChunkPos]struct{}, 64)
	c.mu.Unlock()
}

// Close disposes every scratch accessor. Lookups after Close still work but
// no longer reuse workers.
func (c *Cache) Close() {
	c.pool.Close()
}
