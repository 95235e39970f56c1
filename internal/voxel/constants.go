package voxel

// Chunk grid dimensions. Chunks are cubes, addressed in three dimensions.
const (
	ChunkShift  = 5
	ChunkSize   = 1 << ChunkShift // 32
	ChunkMask   = ChunkSize - 1
	ChunkArea   = ChunkSize * ChunkSize // 1024
	ChunkVolume = ChunkArea * ChunkSize // 32768
)

// Default world dimensions in blocks.
const (
	DefaultWorldSizeX = 256
	DefaultWorldSizeY = 128
	DefaultWorldSizeZ = 256

	// DefaultSunBrightness is the sunlight level of a cell open to the sky.
	DefaultSunBrightness uint8 = 24
)

// Chunk codec section kinds.
const (
	sectionUniform byte = 0x00
	sectionDense   byte = 0x01
)
