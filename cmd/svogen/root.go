package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"voxeltree/internal/config"
	"voxeltree/internal/world"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	logger *zap.Logger
	level  zap.AtomicLevel

	generator string
	seed      int64
	workers   int
	verbose   bool
}

func newRootCmd(logger *zap.Logger, level zap.AtomicLevel) *cobra.Command {
	a := &app{logger: logger, level: level}
	s := config.Snapshot()

	root := &cobra.Command{
		Use:           "svogen",
		Short:         "Generate, mesh and inspect sparse voxel octree chunks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := world.NewGenerator(a.generator, a.seed); err != nil {
				return err
			}
			config.SetGenerator(a.generator)
			config.SetSeed(a.seed)
			config.SetWorkers(a.workers)
			if a.verbose {
				a.level.SetLevel(zapcore.DebugLevel)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.generator, "generator", "g", s.Generator, "terrain generator: flat, sphere, heightmap or density")
	flags.Int64Var(&a.seed, "seed", s.Seed, "world seed")
	flags.IntVarP(&a.workers, "workers", "w", s.Workers, "generation and meshing goroutines")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newGenerateCmd(a),
		newInspectCmd(a),
		newSliceCmd(a),
	)
	return root
}

// chunkFlags registers the chunk coordinate flags shared by inspect and
// slice.
func chunkFlags(cmd *cobra.Command, c *world.ChunkCoord) {
	cmd.Flags().IntVar(&c.X, "cx", 0, "chunk X")
	cmd.Flags().IntVar(&c.Y, "cy", 0, "chunk Y")
	cmd.Flags().IntVar(&c.Z, "cz", 0, "chunk Z")
}

// generateOne builds a single chunk with the configured generator.
func generateOne(coord world.ChunkCoord) (*world.Tree, error) {
	s := config.Snapshot()
	gen, err := world.NewGenerator(s.Generator, s.Seed)
	if err != nil {
		return nil, err
	}
	return world.Generate(gen, coord)
}
