package voxel

import (
	"fmt"
	"sync"
)

// BlockID identifies a block type in the Registry. Zero is always air.
type BlockID uint16

// AirID is the id of the empty block.
const AirID BlockID = 0

// RetentionKind selects which exchange a face retention value describes.
type RetentionKind uint8

const (
	RetentionHeat RetentionKind = iota
	RetentionSound
)

// LightKind selects which light channel a light query reads.
type LightKind uint8

const (
	// LightSun is sunlight only.
	LightSun LightKind = iota
	// LightBlock is light emitted by blocks.
	LightBlock
	// LightMax is the brighter of the two channels.
	LightMax
)

// Block provides per-face retention data for one block type.
type Block interface {
	// ID returns the registry id of the block.
	ID() BlockID
	// Retention returns how strongly face f resists exchange of the given kind.
	// Zero means the face is open. Negative values conduct (cooling surfaces),
	// positive values insulate.
	Retention(f Facing, kind RetentionKind) int
}

// AirBlock never retains anything.
type AirBlock struct{}

func (AirBlock) ID() BlockID {
	return AirID
}

func (AirBlock) Retention(_ Facing, _ RetentionKind) int {
	return 0
}

// SolidBlock retains equally on all six faces.
type SolidBlock struct {
	id   BlockID
	heat int
}

// NewSolidBlock creates a block with uniform heat retention.
// Sound retention mirrors heat for full cubes.
func NewSolidBlock(id BlockID, heat int) *SolidBlock {
	return &SolidBlock{id: id, heat: heat}
}

func (b *SolidBlock) ID() BlockID {
	return b.id
}

func (b *SolidBlock) Retention(_ Facing, _ RetentionKind) int {
	return b.heat
}

// FacedBlock has its own heat retention per face (slabs, panes, stairs).
type FacedBlock struct {
	id    BlockID
	faces [6]int
}

// NewFacedBlock creates a block with per-face heat retention, indexed by Facing.
func NewFacedBlock(id BlockID, faces [6]int) *FacedBlock {
	return &FacedBlock{id: id, faces: faces}
}

func (b *FacedBlock) ID() BlockID {
	return b.id
}

func (b *FacedBlock) Retention(f Facing, kind RetentionKind) int {
	if kind != RetentionHeat {
		return 0
	}
	return b.faces[f]
}

// Registry maps block ids to block definitions.
// Thread-safe: lookups take a read lock, registration is rare.
type Registry struct {
	mu     sync.RWMutex
	blocks []Block
}

// NewRegistry creates a registry holding only air.
func NewRegistry() *Registry {
	return &Registry{blocks: []Block{AirBlock{}}}
}

// Register adds a block definition. The id must not be taken and must not be air.
func (r *Registry) Register(b Block) error {
	id := b.ID()
	if id == AirID {
		return fmt.Errorf("register block: id %d is reserved for air", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if int(id) < len(r.blocks) && r.blocks[id] != nil {
		return fmt.Errorf("register block: id %d already registered", id)
	}
	for int(id) >= len(r.blocks) {
		r.blocks = append(r.blocks, nil)
	}
	r.blocks[id] = b
	return nil
}

// MustRegister is Register for static block tables; it panics on error.
func (r *Registry) MustRegister(blocks ...Block) {
	for _, b := range blocks {
		if err := r.Register(b); err != nil {
			panic(err)
		}
	}
}

// Get returns the block for id. Unknown ids resolve to air.
func (r *Registry) Get(id BlockID) Block {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.blocks) || r.blocks[id] == nil {
		return AirBlock{}
	}
	return r.blocks[id]
}
