package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/glcage/glcage/pkg/config"
	"github.com/glcage/glcage/pkg/logger"
)

// libConf is an optimized internal library configuration
type libConf struct {
	path      string
	supported map[string]struct{}
	ignored   []string
	verbose   bool
	watchMode bool
}

type library struct {
	config libConf
	// indicates base directory existence
	hasSource bool
	// scan time
	lastScanDuration time.Duration
	// library entries
	// shader name -> shader meta
	// shaders with duplicate names are merged
	shaders map[string]ShaderMeta
	log     *logger.Logger

	// called after a watch-triggered rescan
	onChange func()

	// to restrict parallel execution or throttling
	// for file watch mode
	mu                sync.Mutex
	isScanning        bool
	isScanningDelayed bool
}

type ShaderLibrary interface {
	GetAll() []ShaderMeta
	FindShaderByName(name string) ShaderMeta
	Scan()
	// OnChange registers a callback invoked after watch-triggered rescans.
	OnChange(fn func())
}

// ShaderMeta describes one shader of the library: a fragment file
// with an optional vertex file of the same name next to it.
type ShaderMeta struct {
	Base string
	Name string // the display name of the shader
	Path string // the fragment file path relative to the library base path
	Vert string // the optional vertex file path relative to the base path
	Type string // the fragment file extension (e.g. frag, glsl)
}

func (s ShaderMeta) Found() bool     { return s.Name != "" }
func (s ShaderMeta) HasVertex() bool { return s.Vert != "" }

func (s ShaderMeta) FullPath(base string) string {
	if base == "" {
		return filepath.Join(s.Base, s.Path)
	}
	return filepath.Join(base, s.Path)
}

// Load reads the shader sources from the library directory.
// The vertex source is empty when the shader has no vertex file.
func (s ShaderMeta) Load(base string) (vert string, frag string, err error) {
	if base == "" {
		base = s.Base
	}
	data, err := os.ReadFile(filepath.Join(base, s.Path))
	if err != nil {
		return "", "", fmt.Errorf("shader read: %w", err)
	}
	frag = string(data)
	if s.Vert != "" {
		data, err = os.ReadFile(filepath.Join(base, s.Vert))
		if err != nil {
			return "", "", fmt.Errorf("shader read: %w", err)
		}
		vert = string(data)
	}
	return vert, frag, nil
}

func NewLib(conf config.Library, log *logger.Logger) ShaderLibrary {
	hasSource := true
	dir, err := filepath.Abs(conf.BasePath)
	if err != nil {
		hasSource = false
		log.Error().Err(err).Str("dir", conf.BasePath).Msg("Lib has invalid source")
	}

	library := &library{
		config: libConf{
			path:      dir,
			supported: toMap(conf.Supported),
			ignored:   conf.Ignored,
			verbose:   conf.Verbose,
			watchMode: conf.WatchMode,
		},
		mu:        sync.Mutex{},
		shaders:   map[string]ShaderMeta{},
		hasSource: hasSource,
		log:       log,
	}

	if conf.WatchMode && hasSource {
		go library.watch()
	}

	return library
}

func (lib *library) OnChange(fn func()) { lib.onChange = fn }

func (lib *library) GetAll() []ShaderMeta {
	var res []ShaderMeta
	for _, value := range lib.shaders {
		res = append(res, value)
	}
	return res
}

// FindShaderByName returns some shader info with its base filepath
func (lib *library) FindShaderByName(name string) ShaderMeta {
	var shader ShaderMeta
	if val, ok := lib.shaders[name]; ok {
		val.Base = lib.config.path
		return val
	}
	return shader
}

func (lib *library) Scan() {
	if !lib.hasSource {
		lib.log.Info().Msg("Lib scan... skipped (no source)")
		return
	}

	// scan throttling
	lib.mu.Lock()
	if lib.isScanning {
		defer lib.mu.Unlock()
		lib.isScanningDelayed = true
		lib.log.Debug().Msg("Lib scan... delayed")
		return
	}
	lib.isScanning = true
	lib.mu.Unlock()

	lib.log.Debug().Msg("Lib scan... started")

	start := time.Now()
	var shaders []ShaderMeta
	dir := lib.config.path
	err := filepath.WalkDir(dir, func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if info == nil || info.IsDir() || !lib.isExtAllowed(path) {
			return nil
		}

		meta := metadata(path, dir)

		ignored := false
		for _, k := range lib.config.ignored {
			if meta.Name == k {
				ignored = true
				break
			}

			if len(k) > 0 && k[0] == '.' && strings.Contains(meta.Name, k) {
				ignored = true
				break
			}
		}

		if !ignored {
			shaders = append(shaders, meta)
		}

		return nil
	})

	if err != nil {
		lib.log.Error().Err(err).Str("dir", dir).Msgf("Lib scan... failed")
		return
	}

	if len(shaders) > 0 {
		lib.set(shaders)
	}

	lib.lastScanDuration = time.Since(start)
	if lib.config.verbose {
		lib.dumpLibrary()
	}

	// run scan again if delayed
	lib.mu.Lock()
	defer lib.mu.Unlock()
	lib.isScanning = false
	if lib.isScanningDelayed {
		lib.isScanningDelayed = false
		go lib.Scan()
	}

	lib.log.Info().Msg("Lib scan... completed")
}

// watch adds the ability to rescan the entire library
// during filesystem changes in a watched directory.
// !to add incremental library change
func (lib *library) watch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		lib.log.Error().Err(err).Msg("Lib watcher has failed")
		return
	}

	done := make(chan bool)
	go func(repo *library) {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Create || event.Op == fsnotify.Remove || event.Op == fsnotify.Write {
					repo.Scan()
					if repo.onChange != nil {
						repo.onChange()
					}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}(lib)

	if err = watcher.Add(lib.config.path); err != nil {
		lib.log.Error().Err(err).Msg("Lib watch error")
	}
	<-done
	_ = watcher.Close()
	lib.log.Info().Msg("Lib watch has ended")
}

func (lib *library) set(shaders []ShaderMeta) {
	res := make(map[string]ShaderMeta)
	for _, value := range shaders {
		res[value.Name] = value
	}
	lib.shaders = res
}

func (lib *library) isExtAllowed(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	_, ok := lib.config.supported[ext[1:]]
	return ok
}

// metadata returns shader info from a path
func metadata(path string, basePath string) ShaderMeta {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	relPath, _ := filepath.Rel(basePath, path)

	meta := ShaderMeta{
		Name: strings.TrimSuffix(name, ext),
		Type: strings.ToLower(ext[1:]),
		Path: relPath,
	}

	vert := strings.TrimSuffix(path, ext) + ".vert"
	if _, err := os.Stat(vert); err == nil {
		meta.Vert, _ = filepath.Rel(basePath, vert)
	}
	return meta
}

// dumpLibrary printouts the current library snapshot of shaders
func (lib *library) dumpLibrary() {
	var shaderList strings.Builder

	keys := make([]string, 0, len(lib.shaders))
	for k := range lib.shaders {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		shader := lib.shaders[k]
		vert := ""
		if shader.HasVertex() {
			vert = " +vert"
		}
		shaderList.WriteString(fmt.Sprintf("    %7s   %s (%s)%s\n", shader.Type, shader.Name, shader.Path, vert))
	}

	lib.log.Debug().Msgf("Lib dump\n"+
		"--------------------------------------------\n"+
		"--- The Library of Shaders               ---\n"+
		"--------------------------------------------\n"+
		"%v"+
		"--------------------------------------------\n"+
		"--- Shaders: %03d %21s ---\n"+
		"--------------------------------------------",
		shaderList.String(), len(lib.shaders), lib.lastScanDuration)
}

func toMap(list []string) map[string]struct{} {
	res := make(map[string]struct{}, len(list))
	for _, s := range list {
		res[s] = struct{}{}
	}
	return res
}
