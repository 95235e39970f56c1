package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/voxelroom/internal/voxel"
)

// ErrChunkNotFound is returned by Load when no blob is stored for a chunk.
var ErrChunkNotFound = errors.New("chunk not found")

// ChunkBlob is one stored chunk: its position and encoded contents.
type ChunkBlob struct {
	Pos  voxel.ChunkPos
	Data []byte
}

// ChunkRepository stores encoded terrain chunks keyed by chunk position.
type ChunkRepository struct {
	pool *pgxpool.Pool
}

// NewChunkRepository creates a new chunk repository.
func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{pool: pool}
}

const upsertChunk = `
	INSERT INTO chunks (cx, cy, cz, data, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (cx, cy, cz) DO UPDATE SET data = $4, updated_at = now()
`

// Save inserts or replaces the blob for pos.
func (r *ChunkRepository) Save(ctx context.Context, pos voxel.ChunkPos, data []byte) error {
	if _, err := r.pool.Exec(ctx, upsertChunk, pos.X, pos.Y, pos.Z, data); err != nil {
		return fmt.Errorf("saving chunk %s: %w", pos, err)
	}
	return nil
}

// SaveBatch upserts every blob in a single transaction.
func (r *ChunkRepository) SaveBatch(ctx context.Context, blobs []ChunkBlob) error {
	if len(blobs) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, b := range blobs {
		batch.Queue(upsertChunk, b.Pos.X, b.Pos.Y, b.Pos.Z, b.Data)
	}
	br := tx.SendBatch(ctx, batch)
	for _, b := range blobs {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving chunk %s: %w", b.Pos, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close chunk batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit chunk batch: %w", err)
	}
	return nil
}

// Load returns the blob stored for pos, or ErrChunkNotFound.
func (r *ChunkRepository) Load(ctx context.Context, pos voxel.ChunkPos) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data FROM chunks WHERE cx = $1 AND cy = $2 AND cz = $3`,
		pos.X, pos.Y, pos.Z,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("loading chunk %s: %w", pos, ErrChunkNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading chunk %s: %w", pos, err)
	}
	return data, nil
}

// LoadAll returns every stored blob ordered by position.
func (r *ChunkRepository) LoadAll(ctx context.Context) ([]ChunkBlob, error) {
	rows, err := r.pool.Query(ctx, `SELECT cx, cy, cz, data FROM chunks ORDER BY cx, cy, cz`)
	if err != nil {
		return nil, fmt.Errorf("loading all chunks: %w", err)
	}
	defer rows.Close()

	blobs := make([]ChunkBlob, 0, 64)
	for rows.Next() {
		var b ChunkBlob
		if err := rows.Scan(&b.Pos.X, &b.Pos.Y, &b.Pos.Z, &b.Data); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		blobs = append(blobs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk rows: %w", err)
	}

	return blobs, nil
}

// Delete removes the blob for pos. Deleting a missing chunk is not an error.
func (r *ChunkRepository) Delete(ctx context.Context, pos voxel.ChunkPos) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM chunks WHERE cx = $1 AND cy = $2 AND cz = $3`,
		pos.X, pos.Y, pos.Z,
	); err != nil {
		return fmt.Errorf("deleting chunk %s: %w", pos, err)
	}
	return nil
}

// Count returns the number of stored chunks.
func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}
