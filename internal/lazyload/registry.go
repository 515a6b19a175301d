package lazyload

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/je17/promptflow/internal/types"
)

// Registry is a process-wide table mapping dotted module names to their
// loaders and, once loaded, their modules. It is explicit and injectable:
// proxies receive a registry at construction rather than reaching for ambient
// global state. Lifetime matches the process; entries are never torn down.
//
// All operations are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	loaders  map[string]Loader
	modules  map[string]*Module
	inflight map[string]chan struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		loaders:  make(map[string]Loader),
		modules:  make(map[string]*Module),
		inflight: make(map[string]chan struct{}),
	}
}

// DefaultRegistry is the registry used by package-level registration and by
// proxies constructed without an explicit registry. Packages that provide
// lazily loadable modules register their loaders here at init time.
var DefaultRegistry = NewRegistry()

// RegisterLoader registers a loader for the given dotted module name.
// Returns MODULE_ALREADY_BOUND if a loader is already registered under name.
func (r *Registry) RegisterLoader(name string, loader Loader) error {
	if name == "" {
		return fmt.Errorf("module name cannot be empty")
	}
	if loader == nil {
		return fmt.Errorf("loader for module %q cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.loaders[name]; exists {
		return types.NewError(types.MODULE_ALREADY_BOUND,
			fmt.Sprintf("loader for module %q already registered", name))
	}

	r.loaders[name] = loader
	return nil
}

// MustRegisterLoader registers a loader and panics on failure.
// Intended for init-time registration where a duplicate is a programming error.
func (r *Registry) MustRegisterLoader(name string, loader Loader) {
	if err := r.RegisterLoader(name, loader); err != nil {
		panic(err)
	}
}

// HasLoader reports whether a loader is registered for name.
func (r *Registry) HasLoader(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.loaders[name]
	return ok
}

// Lookup returns the loaded module registered under name, if any.
// It never triggers loading.
func (r *Registry) Lookup(name string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	return m, ok
}

// Store registers a loaded module under name, overwriting any previous entry.
// Used by proxies to publish a module under its binding name.
func (r *Registry) Store(name string, module *Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[name] = module
}

// Modules returns the names of all loaded modules in sorted order.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoaderNames returns the names of all registered loaders in sorted order.
func (r *Registry) LoaderNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the module registered under name, loading it through its
// loader on first use. Loading is idempotent: once a module is stored under
// name, the loader never runs again for it. Concurrent first calls are
// serialized so the loader's side effects execute at most once.
//
// Returns MODULE_NOT_FOUND if no loader is registered for name, and
// MODULE_LOAD_FAILED wrapping the loader's error if loading fails. A failed
// load stores nothing: the next call retries from scratch, matching the
// semantics of a failed import.
func (r *Registry) Load(ctx context.Context, name string) (*Module, error) {
	for {
		r.mu.Lock()
		if m, ok := r.modules[name]; ok {
			r.mu.Unlock()
			return m, nil
		}
		loader, hasLoader := r.loaders[name]
		if !hasLoader {
			r.mu.Unlock()
			return nil, types.NewError(types.MODULE_NOT_FOUND,
				fmt.Sprintf("no loader registered for module %q", name))
		}

		if done, loading := r.inflight[name]; loading {
			// Another goroutine owns the load; wait for it and re-check.
			r.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		// Claim the load. The lock is released while the loader runs so
		// registry reads and re-entrant loads of other modules stay possible.
		done := make(chan struct{})
		r.inflight[name] = done
		r.mu.Unlock()

		module, err := loader(ctx)

		r.mu.Lock()
		delete(r.inflight, name)
		close(done)
		if err != nil {
			r.mu.Unlock()
			return nil, types.WrapError(types.MODULE_LOAD_FAILED,
				fmt.Sprintf("failed to load module %q", name), err)
		}
		if module == nil {
			r.mu.Unlock()
			return nil, types.NewError(types.MODULE_LOAD_FAILED,
				fmt.Sprintf("loader for module %q returned no module", name))
		}
		r.modules[name] = module
		r.mu.Unlock()
		return module, nil
	}
}
