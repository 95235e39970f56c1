package voxel

import (
	"encoding/binary"
	"fmt"
)

// Chunk blob format:
//
//	blocks: 1 byte kind + (uniform: 2 bytes LE id | dense: ChunkVolume×2 bytes LE ids)
//	light:  1 byte kind + (uniform: 1 byte level  | dense: ChunkVolume bytes)
//
// Uniform sections keep all-air and all-stone chunks at a few bytes.

// EncodeChunk serializes the chunk's blocks and sunlight.
func EncodeChunk(c *Chunk) []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []byte
	if id, ok := uniform(c.blocks[:]); ok {
		out = make([]byte, 0, 3+1+ChunkVolume)
		out = append(out, sectionUniform)
		out = binary.LittleEndian.AppendUint16(out, uint16(id))
	} else {
		out = make([]byte, 0, 1+ChunkVolume*2+1+ChunkVolume)
		out = append(out, sectionDense)
		for _, id := range c.blocks {
			out = binary.LittleEndian.AppendUint16(out, uint16(id))
		}
	}

	if level, ok := uniform(c.light[:]); ok {
		out = append(out, sectionUniform, level)
	} else {
		out = append(out, sectionDense)
		out = append(out, c.light[:]...)
	}
	return out
}

// DecodeChunk parses a blob produced by EncodeChunk.
func DecodeChunk(pos ChunkPos, data []byte) (*Chunk, error) {
	c := NewChunk(pos)
	offset := 0

	if offset >= len(data) {
		return nil, fmt.Errorf("decode %s blocks: empty blob: %w", pos, ErrCorruptChunk)
	}
	kind := data[offset]
	offset++

	switch kind {
	case sectionUniform:
		if offset+2 > len(data) {
			return nil, fmt.Errorf("decode %s blocks: insufficient data at offset %d: %w", pos, offset, ErrCorruptChunk)
		}
		id := BlockID(binary.LittleEndian.Uint16(data[offset:]))
		offset += 2
		for i := range c.blocks {
			c.blocks[i] = id
		}

	case sectionDense:
		need := ChunkVolume * 2
		if offset+need > len(data) {
			return nil, fmt.Errorf("decode %s blocks: insufficient data at offset %d: %w", pos, offset, ErrCorruptChunk)
		}
		for i := range ChunkVolume {
			c.blocks[i] = BlockID(binary.LittleEndian.Uint16(data[offset:]))
			offset += 2
		}

	default:
		return nil, fmt.Errorf("decode %s blocks: unknown section kind 0x%02X: %w", pos, kind, ErrCorruptChunk)
	}

	if offset >= len(data) {
		return nil, fmt.Errorf("decode %s light: missing section: %w", pos, ErrCorruptChunk)
	}
	kind = data[offset]
	offset++

	switch kind {
	case sectionUniform:
		if offset+1 > len(data) {
			return nil, fmt.Errorf("decode %s light: insufficient data at offset %d: %w", pos, offset, ErrCorruptChunk)
		}
		level := data[offset]
		offset++
		for i := range c.light {
			c.light[i] = level
		}

	case sectionDense:
		if offset+ChunkVolume > len(data) {
			return nil, fmt.Errorf("decode %s light: insufficient data at offset %d: %w", pos, offset, ErrCorruptChunk)
		}
		copy(c.light[:], data[offset:offset+ChunkVolume])
		offset += ChunkVolume

	default:
		return nil, fmt.Errorf("decode %s light: unknown section kind 0x%02X: %w", pos, kind, ErrCorruptChunk)
	}

	if offset != len(data) {
		return nil, fmt.Errorf("decode %s: %d trailing bytes: %w", pos, len(data)-offset, ErrCorruptChunk)
	}
	return c, nil
}

func uniform[T comparable](cells []T) (T, bool) {
	first := cells[0]
	for _, v := range cells[1:] {
		if v != first {
			return first, false
		}
	}
	return first, true
}
