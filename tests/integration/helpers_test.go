package integration

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/udisondev/voxelroom/internal/testutil"
	"github.com/udisondev/voxelroom/internal/voxel"
)

// schemaCounter provides unique schema names for parallel suites.
var schemaCounter atomic.Uint32

// acquireSchema creates an isolated PostgreSQL schema and returns DSN with search_path.
// Schema is automatically dropped via t.Cleanup.
func acquireSchema(t testing.TB) string {
	t.Helper()
	ctx := context.Background()

	schemaName := fmt.Sprintf("test_%d", schemaCounter.Add(1))

	conn, err := pgx.Connect(ctx, sharedPGBaseDSN)
	if err != nil {
		t.Fatalf("connect to shared postgres: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "CREATE SCHEMA "+schemaName); err != nil {
		t.Fatalf("create schema %s: %v", schemaName, err)
	}

	t.Cleanup(func() {
		cleanCtx := context.Background()
		cleanConn, err := pgx.Connect(cleanCtx, sharedPGBaseDSN)
		if err != nil {
			t.Logf("cleanup: connect failed: %v", err)
			return
		}
		defer cleanConn.Close(cleanCtx)
		if _, err := cleanConn.Exec(cleanCtx, "DROP SCHEMA "+schemaName+" CASCADE"); err != nil {
			t.Logf("cleanup: drop schema %s: %v", schemaName, err)
		}
	})

	sep := "&"
	if !strings.Contains(sharedPGBaseDSN, "?") {
		sep = "?"
	}
	return sharedPGBaseDSN + sep + "search_path=" + schemaName
}

// cellar describes one sealed test room and the seed inside it.
type cellar struct {
	min, max voxel.BlockPos
	seed     voxel.BlockPos
}

// buildVillage loads the whole test world and digs a row of sealed cellars,
// one of them straddling a chunk border, plus a pit open to the sky.
func buildVillage(t testing.TB, store *voxel.Store) (cellars []cellar, pitSeed voxel.BlockPos) {
	t.Helper()
	testutil.LoadAll(t, store)

	cellars = []cellar{
		{min: voxel.BlockPos{X: 4, Y: 10, Z: 4}, max: voxel.BlockPos{X: 8, Y: 12, Z: 8}},
		{min: voxel.BlockPos{X: 29, Y: 10, Z: 4}, max: voxel.BlockPos{X: 35, Y: 12, Z: 6}},
		{min: voxel.BlockPos{X: 70, Y: 40, Z: 70}, max: voxel.BlockPos{X: 70, Y: 41, Z: 78}},
	}
	for i := range cellars {
		c := &cellars[i]
		testutil.HollowBox(t, store, c.min, c.max, testutil.Stone)
		c.seed = c.min
	}

	// Roofless pit.
	pitMin := voxel.BlockPos{X: 100, Y: 10, Z: 100}
	pitMax := voxel.BlockPos{X: 102, Y: 12, Z: 102}
	testutil.HollowBox(t, store, pitMin, pitMax, testutil.Stone)
	testutil.Fill(t, store, voxel.BlockPos{X: 100, Y: 13, Z: 100}, voxel.BlockPos{X: 102, Y: 13, Z: 102}, voxel.AirID)

	testutil.RelightAll(store)
	return cellars, pitMin
}
