package testutil

import (
	"sync/atomic"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// CountingAccessor wraps a voxel.Accessor and counts block queries, so tests
// can assert that a cache hit ran no flood fill.
type CountingAccessor struct {
	*voxel.Accessor
	calls *atomic.Int64
}

// Block counts the call and delegates.
func (a *CountingAccessor) Block(pos voxel.BlockPos) voxel.Block {
	a.calls.Add(1)
	return a.Accessor.Block(pos)
}

// AccessorCounter creates counting accessors over one store that share a
// single call counter.
type AccessorCounter struct {
	store   *voxel.Store
	calls   atomic.Int64
	created atomic.Int64
}

// NewAccessorCounter creates a counter for store.
func NewAccessorCounter(store *voxel.Store) *AccessorCounter {
	return &AccessorCounter{store: store}
}

// New returns a fresh counting accessor.
func (c *AccessorCounter) New() *CountingAccessor {
	c.created.Add(1)
	return &CountingAccessor{Accessor: c.store.NewAccessor(), calls: &c.calls}
}

// Calls returns the total number of Block queries so far.
func (c *AccessorCounter) Calls() int64 {
	return c.calls.Load()
}

// Created returns how many accessors were handed out.
func (c *AccessorCounter) Created() int64 {
	return c.created.Load()
}
