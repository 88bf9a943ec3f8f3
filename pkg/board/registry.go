package board

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrUnknownBoard is returned by Registry.Get for names with no definition.
var ErrUnknownBoard = errors.New("unknown board")

//go:embed definitions/*.yaml
var builtinDefinitions embed.FS

// Registry holds the boards known to the process, keyed by name. Boards are
// built once at load time; lookups afterwards only read.
type Registry struct {
	mu     sync.RWMutex
	boards map[string]*Board
	logger *zap.Logger
}

// NewRegistry creates a registry preloaded with the built-in definitions
func NewRegistry(logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		boards: make(map[string]*Board),
		logger: logger,
	}

	if err := r.loadFS(builtinDefinitions, "definitions"); err != nil {
		return nil, fmt.Errorf("failed to load built-in boards: %w", err)
	}

	return r, nil
}

// LoadDir loads every YAML definition in dir, replacing built-ins of the same
// name. A missing directory is not an error.
func (r *Registry) LoadDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		r.logger.Debug("board definitions directory not found", zap.String("dir", dir))
		return nil
	}

	if err := r.loadFS(os.DirFS(dir), "."); err != nil {
		return fmt.Errorf("failed to load board definitions from %s: %w", dir, err)
	}
	return nil
}

func (r *Registry) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read definitions directory: %w", err)
	}

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			r.logger.Debug("skipping non-definition file", zap.String("file", entry.Name()))
			continue
		}

		path := filepath.ToSlash(filepath.Join(dir, entry.Name()))
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read definition file %s: %w", path, err)
		}
		if _, err := r.LoadDefinition(data); err != nil {
			return fmt.Errorf("failed to load definition %s: %w", path, err)
		}
	}

	return nil
}

// LoadDefinition parses one YAML definition, builds the board and registers it.
func (r *Registry) LoadDefinition(data []byte) (*Board, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse definition YAML: %w", err)
	}

	b, err := New(&def)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if _, exists := r.boards[b.Name()]; exists {
		r.logger.Warn("board definition replaced", zap.String("board", b.Name()))
	}
	r.boards[b.Name()] = b
	r.mu.Unlock()

	r.logger.Debug("loaded board definition",
		zap.String("board", b.Name()),
		zap.Int("inputs", b.Capability(Inputs)),
		zap.Int("switches", b.Capability(Switches)),
		zap.Int("trims", b.Capability(NumTrims)))
	return b, nil
}

// Get returns the board registered under name
func (r *Registry) Get(name string) (*Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.boards[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBoard, name)
	}
	return b, nil
}

// Names returns the registered board names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.boards))
	for name := range r.boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
