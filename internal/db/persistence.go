package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// TerrainPersistence moves whole worlds between a voxel store and the chunk table.
type TerrainPersistence struct {
	chunks *ChunkRepository
}

// NewTerrainPersistence creates a new persistence service.
func NewTerrainPersistence(chunks *ChunkRepository) *TerrainPersistence {
	return &TerrainPersistence{chunks: chunks}
}

// SaveStore encodes every loaded chunk and stores them in one transaction.
// Returns the number of chunks written.
func (p *TerrainPersistence) SaveStore(ctx context.Context, store *voxel.Store) (int, error) {
	loaded := store.LoadedChunks()
	blobs := make([]ChunkBlob, 0, len(loaded))
	for _, cp := range loaded {
		c, ok := store.Chunk(cp)
		if !ok {
			// Unloaded since the snapshot.
			continue
		}
		blobs = append(blobs, ChunkBlob{Pos: cp, Data: voxel.EncodeChunk(c)})
	}

	if err := p.chunks.SaveBatch(ctx, blobs); err != nil {
		return 0, fmt.Errorf("saving terrain: %w", err)
	}

	slog.Info("terrain saved", "chunks", len(blobs))
	return len(blobs), nil
}

// LoadStore decodes every stored chunk into store. Corrupt blobs and chunks
// outside the world bounds are skipped with a warning. Returns the number of
// chunks loaded.
func (p *TerrainPersistence) LoadStore(ctx context.Context, store *voxel.Store) (int, error) {
	blobs, err := p.chunks.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading terrain: %w", err)
	}

	loaded := 0
	for _, b := range blobs {
		c, err := voxel.DecodeChunk(b.Pos, b.Data)
		if err != nil {
			slog.Warn("skipping corrupt chunk", "chunk", b.Pos, "error", err)
			continue
		}
		if err := store.LoadChunk(c); err != nil {
			if errors.Is(err, voxel.ErrChunkOutOfBounds) {
				slog.Warn("skipping chunk outside world", "chunk", b.Pos)
				continue
			}
			return loaded, fmt.Errorf("loading terrain: %w", err)
		}
		loaded++
	}

	slog.Info("terrain loaded", "chunks", loaded, "stored", len(blobs))
	return loaded, nil
}
