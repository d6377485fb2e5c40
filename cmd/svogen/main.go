// Command svogen generates voxel chunks into sparse octrees, meshes them
// and reports tree statistics. It has no window; slices can be written
// to PNG for inspection.
package main

import (
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func main() {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	logger, err := cfg.Build()
	if err != nil {
		closer.Fatalln(err)
	}
	closer.Bind(func() { _ = logger.Sync() })

	// Bound cleanups also run on SIGINT/SIGTERM; a returned error exits
	// non-zero.
	closer.Checked(func() error {
		err := newRootCmd(logger, level).Execute()
		if err != nil {
			logger.Error("svogen failed", zap.Error(err))
		}
		return err
	}, false)
}
