package voxel

// Standard block ids of the default registry.
const (
	StoneID BlockID = iota + 1
	DirtID
	WoodID
	GlassID
	IceID
	SnowID
	SlabID
	LeavesID
)

// DefaultRegistry returns the standard block set. Heat retention: positive
// insulates, negative cools, zero lets heat through.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(
		NewSolidBlock(StoneID, 6),
		NewSolidBlock(DirtID, 4),
		NewSolidBlock(WoodID, 3),
		NewSolidBlock(GlassID, 1),
		NewSolidBlock(IceID, -2),
		NewSolidBlock(SnowID, -1),
		// Bottom slab: only its lower face is a wall.
		NewFacedBlock(SlabID, [6]int{Down: 3}),
		NewFacedBlock(LeavesID, [6]int{}),
	)
	return r
}
