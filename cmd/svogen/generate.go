package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xlab/closer"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"voxeltree/internal/config"
	"voxeltree/internal/meshing"
	"voxeltree/internal/profiling"
	"voxeltree/internal/world"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		radius int
		lod    int
		mesher string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Stream a square of chunk columns around the origin and mesh them",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := meshing.ParseMode(mesher)
			if err != nil {
				return err
			}
			config.SetLoadRadius(radius)
			config.SetMeshLOD(lod)
			return a.generate(cmd, mode)
		},
	}
	s := config.Snapshot()
	cmd.Flags().IntVarP(&radius, "radius", "r", s.LoadRadius, "load radius in chunks")
	cmd.Flags().IntVar(&lod, "lod", int(s.MeshLOD), "mesh detail floor (0 is full detail)")
	cmd.Flags().StringVar(&mesher, "mesher", meshing.ModeOctree.String(), "mesher: octree or greedy")
	return cmd
}

type chunkReport struct {
	coord  world.ChunkCoord
	nodes  int
	leaves int
	depth  int
	quads  int
}

func (a *app) generate(cmd *cobra.Command, mode meshing.Mode) error {
	s := config.Snapshot()
	gen, err := world.NewGenerator(s.Generator, s.Seed)
	if err != nil {
		return err
	}
	profiling.Reset()

	w := world.New(gen, s.Workers, a.logger)
	closer.Bind(w.Close)
	defer w.Close()

	queued := w.StreamAround(mgl32.Vec3{}, s.LoadRadius)
	a.logger.Info("streaming",
		zap.String("generator", s.Generator),
		zap.Int64("seed", s.Seed),
		zap.Int("radius", s.LoadRadius),
		zap.Int("queued", queued))
	w.Flush()
	if st := w.Streamer().Stats(); st.Failed > 0 {
		return errors.Errorf("%d of %d chunks failed to generate", st.Failed, queued)
	}

	store := w.Store()
	chunks := store.GetAllChunks()
	slices.SortFunc(chunks, func(x, y world.ChunkWithCoord) int {
		if x.Coord.X != y.Coord.X {
			return x.Coord.X - y.Coord.X
		}
		if x.Coord.Z != y.Coord.Z {
			return x.Coord.Z - y.Coord.Z
		}
		return x.Coord.Y - y.Coord.Y
	})

	pool := meshing.NewWorkerPool(s.Workers, len(chunks), a.logger.Named("mesh"))
	closer.Bind(pool.Shutdown)
	defer pool.Shutdown()

	outside := func(x, y, z int) bool { return store.Get(x, y, z).IsSolid() }
	quads, err := meshChunks(pool, chunks, meshing.MeshJob{LOD: s.MeshLOD, Mode: mode, Outside: outside}, a.logger)
	if err != nil {
		return err
	}

	reports := make([]chunkReport, 0, len(chunks))
	var total chunkReport
	for _, c := range chunks {
		n, l, d := c.Tree.NodeCount(), c.Tree.LeafCount(), c.Tree.Depth()
		r := chunkReport{coord: c.Coord, nodes: n, leaves: l, depth: d, quads: quads[c.Coord]}
		reports = append(reports, r)
		total.nodes += r.nodes
		total.leaves += r.leaves
		total.quads += r.quads
		total.depth = max(total.depth, r.depth)
		a.logger.Debug("chunk",
			zap.Stringer("coord", c.Coord),
			zap.Int("nodes", r.nodes),
			zap.Int("leaves", r.leaves),
			zap.Int("quads", r.quads))
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "chunk\tnodes\tleaves\tdepth\tquads")
	for _, r := range reports {
		fmt.Fprintf(tw, "%v\t%d\t%d\t%d\t%d\n", r.coord, r.nodes, r.leaves, r.depth, r.quads)
	}
	fmt.Fprintf(tw, "total (%d)\t%d\t%d\t%d\t%d\n", len(reports), total.nodes, total.leaves, total.depth, total.quads)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "hot: %s\n", profiling.TopN(3))

	a.logger.Info("done", append(profiling.Fields(), zap.Int("chunks", len(reports)), zap.Stringer("mesher", mode))...)
	return nil
}

// meshChunks runs one job per chunk through pool, filling Coord and Tree
// into proto, and returns the quad count per chunk. It only waits for the
// jobs the pool accepted.
func meshChunks(pool *meshing.WorkerPool, chunks []world.ChunkWithCoord, proto meshing.MeshJob, logger *zap.Logger) (map[world.ChunkCoord]int, error) {
	results := make(chan meshing.MeshResult, len(chunks))
	submitted := 0
	for _, c := range chunks {
		job := proto
		job.Coord, job.Tree, job.ResultChan = c.Coord, c.Tree, results
		if !pool.SubmitJobBlocking(job) {
			break
		}
		submitted++
	}
	logger.Debug("meshing",
		zap.Int("submitted", submitted),
		zap.Int("queued", pool.GetQueueLength()))

	quads := make(map[world.ChunkCoord]int, submitted)
	var err error
	for range submitted {
		res := <-results
		if res.Error != nil {
			err = multierr.Append(err, res.Error)
			continue
		}
		quads[res.Coord] = res.Mesh.Quads()
	}
	if submitted < len(chunks) {
		err = multierr.Append(err, errors.Errorf("mesh pool refused %d of %d chunks", len(chunks)-submitted, len(chunks)))
	}
	return quads, err
}
