package config

import "flag"

// InfoConfig is the driver probe tool configuration.
type InfoConfig struct {
	Gfx     Gfx
	Debug   bool
	Version Version
}

var infoConfigPath string

func NewInfoConfig() (conf InfoConfig) {
	if err := LoadConfig(&conf, infoConfigPath); err != nil {
		panic(err)
	}
	return
}

func (c *InfoConfig) ParseFlags() {
	flag.StringVar(&c.Gfx.Provider, "provider", c.Gfx.Provider, "Windowing backend (sdl, glfw)")
	flag.BoolVar(&c.Gfx.Gl.AutoContext, "autoctx", c.Gfx.Gl.AutoContext, "Let the driver decide the GL version")
	flag.StringVar(&infoConfigPath, "i-conf", infoConfigPath, "Set custom configuration file path")
	flag.Parse()
}
