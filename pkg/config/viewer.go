package config

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/glcage/glcage/pkg/os"
)

type ViewerConfig struct {
	Gfx      Gfx
	Library  Library
	Download Download
	Storage  Storage
	Viewer   Viewer
	Version  Version
}

type Viewer struct {
	Debug      bool
	Monitoring Monitoring
	Render     Render
	Screenshot Screenshot
	Server     Server
	Tag        string
}

// Render holds the parameters of the offscreen render loop.
type Render struct {
	// target framerate of the readback loop
	Fps int
	// the name of the initial library shader,
	// empty for the built-in one
	Shader string
	// draw the animated scope line on top of the image
	Overlay bool
}

type Screenshot struct {
	Folder string
	// stamp shader name and time onto the image
	Label bool
	// downscale bound for the bigger side, 0 keeps the original size
	MaxSize int
}

// allows custom config path
var viewerConfigPath string

func NewViewerConfig() (conf ViewerConfig) {
	if err := LoadConfig(&conf, viewerConfigPath); err != nil {
		panic(err)
	}
	conf.expandSpecialTags()
	return
}

// ParseFlags updates config values from passed runtime flags.
// Define own flags with default value set to the current config param.
// Don't forget to call flag.Parse().
func (c *ViewerConfig) ParseFlags() {
	c.Viewer.Server.WithFlags()
	flag.IntVar(&c.Viewer.Monitoring.Port, "monitoring.port", c.Viewer.Monitoring.Port, "Monitoring server port")
	flag.StringVar(&c.Viewer.Render.Shader, "shader", c.Viewer.Render.Shader, "Initial shader name")
	flag.StringVar(&c.Library.BasePath, "library", c.Library.BasePath, "Shader library directory")
	flag.StringVar(&viewerConfigPath, "v-conf", viewerConfigPath, "Set custom configuration file path")
	flag.Parse()
}

// expandSpecialTags replaces all the special tags in the config.
func (c *ViewerConfig) expandSpecialTags() {
	tag := "{user}"
	for _, dir := range []*string{&c.Library.BasePath, &c.Download.ExtLock, &c.Viewer.Screenshot.Folder} {
		if *dir == "" || !strings.Contains(*dir, tag) {
			continue
		}
		userHomeDir, err := os.GetUserHome()
		if err != nil {
			panic(fmt.Sprintf("couldn't read user home directory, %v", err))
		}
		*dir = strings.Replace(*dir, tag, userHomeDir, -1)
		*dir = filepath.FromSlash(*dir)
	}
}

// GetAddr returns defined in the config server address.
func (v *Viewer) GetAddr() string { return v.Server.GetAddr() }
