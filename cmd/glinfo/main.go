package main

import (
	goflag "flag"
	"os"

	"github.com/glcage/glcage/pkg/config"
	"github.com/glcage/glcage/pkg/gl"
	"github.com/glcage/glcage/pkg/logger"
	"github.com/glcage/glcage/pkg/surface"
	"github.com/glcage/glcage/pkg/thread"
	flag "github.com/spf13/pflag"
)

var Version = "?"

var ext = goflag.String("ext", "", "Check the presence of a named GL extension")

func run() int {
	conf := config.NewInfoConfig()
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	conf.ParseFlags()

	log := logger.NewConsole(conf.Debug, "info", false)
	log.Info().Msgf("version %s", Version)

	profile := surface.ProfileCompat
	if conf.Gfx.Gl.AutoContext {
		profile = surface.ProfileAuto
	}
	sf, err := surface.New(conf.Gfx.Provider, surface.Config{
		Profile:      profile,
		VersionMajor: conf.Gfx.Gl.VersionMajor,
		VersionMinor: conf.Gfx.Gl.VersionMinor,
	}, log)
	if err != nil {
		log.Error().Err(err).Msg("surface fail")
		return 1
	}
	defer func() {
		if err := sf.Destroy(); err != nil {
			log.Error().Err(err).Msg("surface destroy fail")
		}
	}()
	if err := sf.Bind(); err != nil {
		log.Error().Err(err).Msg("gl bind fail")
		return 1
	}

	ctx, err := gl.NewContext(sf.ProcAddress, log)
	if err != nil {
		log.Error().Err(err).Msg("gl init fail")
		return 1
	}
	ctx.LogDriverInfo()

	exts := ctx.Extensions()
	log.Info().Msgf("extensions: %v", len(exts))
	if log.GetLevel() < logger.InfoLevel {
		for _, e := range exts {
			log.Debug().Msg(e)
		}
	}
	if *ext != "" {
		if !ctx.HasExtension(*ext) {
			log.Error().Msgf("no extension %v", *ext)
			return 1
		}
		log.Info().Msgf("extension %v is supported", *ext)
	}
	return 0
}

func main() {
	code := 0
	// GLFW windows on the darwin have to be run in the main thread
	thread.MainWrapMaybe(func() { code = run() })
	os.Exit(code)
}
