package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voxeltree/internal/preview"
	"voxeltree/internal/world"
)

func newSliceCmd(a *app) *cobra.Command {
	var (
		coord world.ChunkCoord
		y     int
		out   string
		opts  preview.Options
		lod   int
	)
	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Write one horizontal layer of a chunk as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LOD = int8(min(max(lod, 0), int(world.ChunkScale)))
			opts.Label = fmt.Sprintf("%v y=%d", coord, y)
			return a.slice(cmd, coord, y, out, opts)
		},
	}
	chunkFlags(cmd, &coord)
	cmd.Flags().IntVar(&y, "y", 20, "chunk-local layer")
	cmd.Flags().StringVarP(&out, "out", "o", "slice.png", "output file")
	cmd.Flags().IntVar(&opts.Zoom, "zoom", 8, "pixels per voxel")
	cmd.Flags().IntVar(&lod, "lod", 0, "read the layer at a coarser detail level")
	cmd.Flags().BoolVar(&opts.Outline, "outline", false, "outline octree leaves")
	return cmd
}

func (a *app) slice(cmd *cobra.Command, coord world.ChunkCoord, y int, out string, opts preview.Options) error {
	tree, err := generateOne(coord)
	if err != nil {
		return err
	}
	img, err := preview.Slice(tree, y, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := preview.WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close output")
	}

	a.logger.Info("wrote slice", zap.String("path", out), zap.Stringer("coord", coord), zap.Int("y", y))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
