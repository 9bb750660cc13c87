// Package loader locates the Vulkan driver module, resolves its entry points
// and calls them. A *Library satisfies vkobj.Dispatcher.
package loader

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/andewx/vkobj/internal/native"
	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

// DriverEnv names an explicit driver path that replaces the candidate list.
const DriverEnv = "VKOBJ_DRIVER"

// ErrDriverNotFound is returned by Open when no candidate could be loaded.
var ErrDriverNotFound = errors.New("vulkan: driver library not found")

var logger = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)

// SetLogger replaces the logger used to report which library was opened.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Config lists where Open looks for the driver.
type Config struct {
	// Candidates are library names or paths, tried in order.
	Candidates []string
	// SearchDirs are joined with every bare candidate name, in order, before
	// the bare names go to the system search path.
	SearchDirs []string
}

// DefaultConfig returns the candidates for the running OS. VULKAN_SDK adds its
// library directory in front of the system ones and VKOBJ_DRIVER replaces the
// candidate list entirely.
func DefaultConfig() Config {
	var cfg Config
	switch runtime.GOOS {
	case "windows":
		cfg.Candidates = []string{"vulkan-1.dll"}
		if root := os.Getenv("SystemRoot"); root != "" {
			cfg.SearchDirs = append(cfg.SearchDirs, filepath.Join(root, "System32"))
		}
	case "darwin":
		cfg.Candidates = []string{"libvulkan.1.dylib", "libvulkan.dylib", "libMoltenVK.dylib"}
		cfg.SearchDirs = []string{"/usr/local/lib", "/opt/homebrew/lib"}
	default:
		cfg.Candidates = []string{"libvulkan.so.1", "libvulkan.so"}
		cfg.SearchDirs = []string{
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/lib64",
			"/usr/lib",
			"/usr/local/lib",
		}
	}
	if sdk := os.Getenv("VULKAN_SDK"); sdk != "" {
		dir := "lib"
		if runtime.GOOS == "windows" {
			dir = "Bin"
		}
		cfg.SearchDirs = append([]string{filepath.Join(sdk, dir)}, cfg.SearchDirs...)
	}
	if path := os.Getenv(DriverEnv); path != "" {
		cfg.Candidates = []string{path}
	}
	return cfg
}

// attempts expands the candidates into the ordered list of paths to try.
// Every search directory is tried for every candidate before any bare name
// is handed to the system search path.
func (c Config) attempts() []string {
	var out, bare []string
	for _, dir := range c.SearchDirs {
		for _, name := range c.Candidates {
			if !filepath.IsAbs(name) {
				out = append(out, filepath.Join(dir, name))
			}
		}
	}
	for _, name := range c.Candidates {
		if filepath.IsAbs(name) {
			out = append(out, name)
		} else {
			bare = append(bare, name)
		}
	}
	return append(out, bare...)
}

// Library is an opened driver module, or a resolver bootstrapped from an
// existing vkGetInstanceProcAddr. It is safe for concurrent use.
type Library struct {
	name   string
	module uintptr
	gipa   uintptr

	mu       sync.Mutex
	instance uintptr
	procs    map[string]uintptr
}

// Open loads the first candidate of cfg that the system accepts.
func Open(cfg Config) (*Library, error) {
	tried := cfg.attempts()
	if len(tried) == 0 {
		return nil, errors.Wrap(ErrDriverNotFound, "no candidates configured")
	}
	for _, path := range tried {
		module, err := openLibrary(path)
		if err != nil {
			continue
		}
		lib := &Library{
			name:   path,
			module: module,
			procs:  make(map[string]uintptr),
		}
		lib.gipa = lookupSymbol(module, "vkGetInstanceProcAddr")
		logger.Printf("vulkan: loaded driver %s", path)
		return lib, nil
	}
	return nil, errors.Wrapf(ErrDriverNotFound, "tried %s", strings.Join(tried, ", "))
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
	defaultErr  error
)

// Default opens DefaultConfig once per process and returns the same library
// (or error) on every call.
func Default() (*Library, error) {
	defaultOnce.Do(func() {
		defaultLib, defaultErr = Open(DefaultConfig())
	})
	return defaultLib, defaultErr
}

// FromProcAddr builds a resolver around an already resolved
// vkGetInstanceProcAddr, such as the one GLFW exposes.
func FromProcAddr(getInstanceProcAddr uintptr) (*Library, error) {
	if getInstanceProcAddr == 0 {
		return nil, errors.New("vulkan: nil vkGetInstanceProcAddr")
	}
	return &Library{
		name:  "vkGetInstanceProcAddr",
		gipa:  getInstanceProcAddr,
		procs: make(map[string]uintptr),
	}, nil
}

// Name returns the path the library was opened from.
func (l *Library) Name() string {
	return l.name
}

// Proc returns the address of the named entry point or zero. Results are
// cached, misses included.
func (l *Library) Proc(name string) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.procs[name]; ok {
		return p
	}
	var p uintptr
	if l.module != 0 {
		p = lookupSymbol(l.module, name)
	}
	if p == 0 && l.gipa != 0 {
		p = l.instanceProc(name)
	}
	l.procs[name] = p
	return p
}

func (l *Library) instanceProc(name string) uintptr {
	var a native.Arena
	defer a.Free()
	return callProc(l.gipa, l.instance, native.Addr(a.CString(name)))
}

// Call invokes proc with integer and pointer arguments.
func (l *Library) Call(proc uintptr, args ...uintptr) uintptr {
	return callProc(proc, args...)
}

// BindInstance makes instance-level commands resolvable. Cached misses are
// dropped so they get another chance against the instance.
func (l *Library) BindInstance(instance uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.instance = instance
	for name, p := range l.procs {
		if p == 0 {
			delete(l.procs, name)
		}
	}
}

// Close releases the module. Entry points resolved from it must not be used
// afterwards.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.procs = make(map[string]uintptr)
	if l.module == 0 {
		return nil
	}
	module := l.module
	l.module = 0
	if err := closeLibrary(module); err != nil {
		return errors.Wrapf(err, "vulkan: closing %s", l.name)
	}
	return nil
}

func (l *Library) String() string {
	return fmt.Sprintf("loader.Library(%s)", l.name)
}

var callProc = func(proc uintptr, args ...uintptr) uintptr {
	r, _, _ := purego.SyscallN(proc, args...)
	return r
}
