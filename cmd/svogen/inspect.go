package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voxeltree/internal/config"
	"voxeltree/internal/meshing"
	"voxeltree/internal/physics"
	"voxeltree/internal/voxel"
	"voxeltree/internal/world"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		coord   world.ChunkCoord
		backend string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print octree statistics for one chunk and compare storage backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := voxel.ParseBackend(backend)
			if err != nil {
				return err
			}
			config.SetBackend(b.String())
			return a.inspect(cmd, coord, b)
		},
	}
	chunkFlags(cmd, &coord)
	cmd.Flags().StringVar(&backend, "backend", config.GetBackend(), "storage to mesh from: dense or sparse")
	return cmd
}

// layoutStats times filling a backend with a chunk's content.
type layoutStats struct {
	backend voxel.Backend
	fill    time.Duration
	store   voxel.Storage[world.BlockID]
}

func copyInto(b voxel.Backend, tree *world.Tree) (layoutStats, error) {
	start := time.Now()
	dst := voxel.NewStorage[world.BlockID](b)
	dst.Init(voxel.Cubic(tree.Size()))
	var err error
	tree.Leaves(func(c voxel.Cube, id world.BlockID) bool {
		if id == world.BlockAir {
			return true
		}
		e := c.Edge()
		for x := c.X; x < c.X+e && err == nil; x++ {
			for y := c.Y; y < c.Y+e && err == nil; y++ {
				for z := c.Z; z < c.Z+e && err == nil; z++ {
					err = dst.Set(x, y, z, id)
				}
			}
		}
		return err == nil
	})
	return layoutStats{backend: b, fill: time.Since(start), store: dst}, err
}

func (a *app) inspect(cmd *cobra.Command, coord world.ChunkCoord, meshFrom voxel.Backend) error {
	tree, err := generateOne(coord)
	if err != nil {
		return err
	}

	layouts := make(map[voxel.Backend]layoutStats, 2)
	for _, b := range []voxel.Backend{voxel.BackendDense, voxel.BackendSparse} {
		ls, err := copyInto(b, tree)
		if err != nil {
			return errors.Wrapf(err, "copy into %v", b)
		}
		layouts[b] = ls
	}

	// Both layouts must agree with the source tree cell for cell.
	dense, sparse := layouts[voxel.BackendDense].store, layouts[voxel.BackendSparse].store
	size := tree.Size()
	for x := range size {
		for y := range size {
			for z := range size {
				want, _ := tree.Get(voxel.At(x, y, z, 0))
				d, _ := dense.Get(x, y, z)
				s, _ := sparse.Get(x, y, z)
				if d != want || s != want {
					return errors.Errorf("backends disagree at (%d,%d,%d): tree %v dense %v sparse %v", x, y, z, want, d, s)
				}
			}
		}
	}

	solid := meshing.Occupancy(layouts[meshFrom].store)
	mesh := meshing.BuildGreedyMesh(layouts[meshFrom].store, coord, nil)

	store := world.NewChunkStore()
	store.AddChunk(coord, tree)
	ox, oy, oz := coord.Origin()
	surface := "none"
	if y, ok := physics.SurfaceY(store, ox+world.ChunkSize/2, oz+world.ChunkSize/2, oy+world.ChunkSize-1, world.ChunkSize); ok {
		surface = fmt.Sprint(y)
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "chunk\t%v\n", coord)
	fmt.Fprintf(tw, "generator\t%s (seed %d)\n", config.GetGenerator(), config.GetSeed())
	fmt.Fprintf(tw, "voxels\t%d\n", size*size*size)
	fmt.Fprintf(tw, "solid voxels\t%d\n", solid.GetCardinality())
	fmt.Fprintf(tw, "nodes\t%d\n", tree.NodeCount())
	fmt.Fprintf(tw, "leaves\t%d\n", tree.LeafCount())
	fmt.Fprintf(tw, "depth\t%d\n", tree.Depth())
	fmt.Fprintf(tw, "compact\t%t\n", tree.Compact())
	fmt.Fprintf(tw, "surface y at centre\t%s\n", surface)
	fmt.Fprintf(tw, "greedy quads (%v)\t%d\n", meshFrom, mesh.Quads())
	for _, b := range []voxel.Backend{voxel.BackendDense, voxel.BackendSparse} {
		fmt.Fprintf(tw, "%v fill\t%v\n", b, layouts[b].fill.Round(time.Microsecond))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	a.logger.Debug("inspected", zap.Stringer("coord", coord), zap.Int("nodes", tree.NodeCount()))
	return nil
}
