package room

// Flood fill limits.
const (
	// MaxRadius is how far the search may reach from the seed on any axis.
	MaxRadius = 14

	// ArraySize is the side of the local addressing cube centred on the seed.
	ArraySize   = 2*MaxRadius + 1 // 29
	ArrayArea   = ArraySize * ArraySize
	ArrayVolume = ArrayArea * ArraySize // 24389

	// MaxRoomSize caps the bounding box span of a room on every axis.
	// Anything wider is outside or a cave, not interior space.
	MaxRoomSize = MaxRadius

	// Local coordinates are packed 5 bits per axis into one queue entry.
	packBits = 5
	packMask = 1<<packBits - 1
)

// Small room (cellar) classification. Empirically tuned.
const (
	SmallRoomSize      = 7
	AltSmallRoomSize   = 9
	AltSmallRoomVolume = 150
)
