package config

import "flag"

type Version int

// Gfx describes the graphics surface and GL context params.
type Gfx struct {
	// windowing backend: sdl or glfw
	Provider string
	Width    int
	Height   int
	Gl       GlConfig
}

type GlConfig struct {
	// skip profile hints and let the driver decide
	AutoContext  bool
	VersionMajor uint
	VersionMinor uint
	HasDepth     bool
	HasStencil   bool
}

// Library describes a directory with shader files.
type Library struct {
	// some directory which is going to be
	// the root folder for the library
	BasePath string
	// a list of supported file extensions
	Supported []string
	// a list of ignored words in the files
	Ignored []string
	// print some additional info
	Verbose bool
	// enable directory changes watch
	WatchMode bool
}

func (l Library) GetSupportedExtensions() []string { return l.Supported }

// Download describes the starter shader pack fetch.
type Download struct {
	// when set, an empty library is populated from this URL
	URL string
	// a path to the cross-process download lock file
	ExtLock string
}

// Storage describes an optional screenshot publish target.
type Storage struct {
	// one of: noop, google, oracle
	Provider string
	Bucket   string
	// pre-authenticated request URL for the oracle provider
	AccessURL string
}

type Monitoring struct {
	Port             int
	URLPrefix        string
	MetricEnabled    bool
	ProfilingEnabled bool
}

func (c *Monitoring) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

type Server struct {
	Address string
	Https   bool
	Tls     struct {
		Address   string
		Domain    string
		HttpsKey  string
		HttpsCert string
	}
}

func (s *Server) WithFlags() {
	flag.StringVar(&s.Address, "address", s.Address, "HTTP server address (host:port)")
	flag.StringVar(&s.Tls.Address, "httpsAddress", s.Tls.Address, "HTTPS server address (host:port)")
	flag.StringVar(&s.Tls.HttpsKey, "httpsKey", s.Tls.HttpsKey, "HTTPS key")
	flag.StringVar(&s.Tls.HttpsCert, "httpsCert", s.Tls.HttpsCert, "HTTPS chain")
}

func (s *Server) GetAddr() string {
	if s.Https {
		return s.Tls.Address
	}
	return s.Address
}
