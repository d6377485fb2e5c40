package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"voxeltree/internal/meshing"
	"voxeltree/internal/world"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(zaptest.NewLogger(t), zap.NewAtomicLevel())
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func lineWith(out, prefix string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return ""
}

func TestGenerate(t *testing.T) {
	for _, mesher := range []string{"octree", "greedy"} {
		t.Run(mesher, func(t *testing.T) {
			out, err := run(t, "generate", "-g", "flat", "-r", "1", "-w", "2", "--mesher", mesher)
			require.NoError(t, err)
			assert.Contains(t, out, "total (9)")
			assert.Contains(t, out, "chunk(-1,0,-1)")
		})
	}
}

func TestGenerateRejectsBadFlags(t *testing.T) {
	_, err := run(t, "generate", "-g", "caves")
	assert.Error(t, err)
	_, err = run(t, "generate", "-g", "flat", "--mesher", "marching")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", "-g", "sphere", "--backend", "dense")
	require.NoError(t, err)
	assert.Contains(t, lineWith(out, "compact"), "true")
	assert.Contains(t, lineWith(out, "surface y at centre"), "46")
	assert.Contains(t, lineWith(out, "greedy quads (dense)"), " ")
	assert.NotEmpty(t, lineWith(out, "sparse fill"))

	_, err = run(t, "inspect", "--backend", "btree")
	assert.Error(t, err)
}

func TestSlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.png")
	out, err := run(t, "slice", "-g", "sphere", "--y", "32", "--zoom", "2", "--outline", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, world.ChunkSize*2, img.Bounds().Dx())

	_, err = run(t, "slice", "--y", "999", "-o", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}

func TestMeshChunksCountsOnlyAcceptedJobs(t *testing.T) {
	chunks := make([]world.ChunkWithCoord, 3)
	for i := range chunks {
		tree := world.NewChunkTree()
		tree.Fill(world.BlockStone)
		chunks[i] = world.ChunkWithCoord{Coord: world.ChunkCoord{X: i}, Tree: tree}
	}
	logger := zaptest.NewLogger(t)

	pool := meshing.NewWorkerPool(2, len(chunks), logger)
	quads, err := meshChunks(pool, chunks, meshing.MeshJob{}, logger)
	pool.Shutdown()
	require.NoError(t, err)
	assert.Len(t, quads, 3)
	assert.Equal(t, 6, quads[world.ChunkCoord{X: 2}])

	// A stopped pool refuses every job; the call returns instead of
	// waiting for results that never come.
	done := make(chan struct{})
	go func() {
		defer close(done)
		quads, err = meshChunks(pool, chunks, meshing.MeshJob{}, logger)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("meshChunks did not return")
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused 3 of 3")
	assert.Empty(t, quads)
}
