package narrative

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/streetrunner/internal/config"
)

// Factory builds a generator from the narrative section of the config.
type Factory func(cfg config.NarrativeConfig) (Generator, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a backend factory. Backends register themselves in init().
// Panics if a backend with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("narrative: backend %q already registered", name))
	}
	factories[name] = f
}

// List returns the registered backend names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the backend named in cfg.Backend.
func Create(cfg config.NarrativeConfig) (Generator, error) {
	mu.RLock()
	f, ok := factories[cfg.Backend]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownBackend, cfg.Backend, List())
	}
	return f(cfg)
}
