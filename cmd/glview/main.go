package main

import (
	"context"
	goflag "flag"

	"github.com/glcage/glcage/pkg/config"
	"github.com/glcage/glcage/pkg/logger"
	"github.com/glcage/glcage/pkg/os"
	"github.com/glcage/glcage/pkg/surface"
	"github.com/glcage/glcage/pkg/thread"
	"github.com/glcage/glcage/pkg/viewer"
	flag "github.com/spf13/pflag"
)

var Version = "?"

func run() {
	conf := config.NewViewerConfig()
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	conf.ParseFlags()

	log := logger.NewConsole(conf.Viewer.Debug, conf.Viewer.Tag, false)

	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}
	if err := surface.TryInit(conf.Gfx.Provider); err != nil {
		log.Fatal().Err(err).Msg("the machine has no GL")
	}
	v := viewer.New(conf, log)
	if err := v.Start(); err != nil {
		log.Fatal().Err(err).Msg("viewer start fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		if err := v.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("service shutdown errors")
		}
	}()
	<-os.ExpectTermination()
	cancel()
}

func main() {
	// GLFW windows on the darwin have to be run in the main thread
	thread.MainWrapMaybe(run)
}
