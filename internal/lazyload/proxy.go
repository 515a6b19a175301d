package lazyload

import (
	"context"
	"fmt"
	"sync"

	"github.com/je17/promptflow/internal/types"
)

// Proxy stands in for a not-yet-loaded module. Construction is free of side
// effects; the first attribute access (or an explicit Resolve) performs the
// real load, publishes the module into the caller's namespace and the
// registry, and mirrors the module's attribute table onto the proxy so later
// lookups skip the resolve path entirely.
//
// A Proxy is safe for concurrent use: racing first accesses execute the
// underlying load at most once.
type Proxy struct {
	bindingName string
	moduleName  string
	namespace   Namespace
	registry    *Registry

	mu     sync.RWMutex
	cached *Module
	attrs  map[string]any
}

// NewProxy creates a proxy that will load moduleName on first access and
// publish it into namespace under bindingName. Nothing is loaded yet.
//
// namespace may be nil, in which case resolution publishes only into the
// registry. registry may be nil, in which case DefaultRegistry is used.
func NewProxy(bindingName string, namespace Namespace, moduleName string, registry *Registry) *Proxy {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Proxy{
		bindingName: bindingName,
		moduleName:  moduleName,
		namespace:   namespace,
		registry:    registry,
	}
}

// ModuleName returns the dotted name of the module this proxy defers.
func (p *Proxy) ModuleName() string {
	return p.moduleName
}

// BindingName returns the name under which the module is published once loaded.
func (p *Proxy) BindingName() string {
	return p.bindingName
}

// Loaded reports whether the underlying module has been loaded.
// It never triggers loading.
func (p *Proxy) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cached != nil
}

// Resolve returns the underlying module, loading it on first call.
//
// The first successful call loads the module through the registry, writes it
// into the caller's namespace under the binding name, registers it in the
// registry under the binding name, and copies the module's attribute table
// onto the proxy. Subsequent calls return the cached module immediately.
// Load errors propagate unmodified and leave the proxy unloaded.
func (p *Proxy) Resolve(ctx context.Context) (*Module, error) {
	p.mu.RLock()
	if m := p.cached; m != nil {
		p.mu.RUnlock()
		return m, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Re-check under the write lock: a racing caller may have resolved.
	if p.cached != nil {
		return p.cached, nil
	}

	module, err := p.registry.Load(ctx, p.moduleName)
	if err != nil {
		return nil, err
	}

	if p.namespace != nil {
		p.namespace[p.bindingName] = module
	}
	p.registry.Store(p.bindingName, module)

	// Mirror the attribute table so lookups bypass resolution from here on.
	p.attrs = module.attributes()
	p.cached = module

	return module, nil
}

// Attr returns the named attribute of the underlying module, resolving it
// first if needed. Once resolved, lookups are served from the proxy's own
// mirrored table. Returns MODULE_ATTR_NOT_FOUND if the module has no such
// attribute.
func (p *Proxy) Attr(ctx context.Context, name string) (any, error) {
	p.mu.RLock()
	if p.cached != nil {
		v, ok := p.attrs[name]
		p.mu.RUnlock()
		if !ok {
			return nil, types.NewError(types.MODULE_ATTR_NOT_FOUND,
				fmt.Sprintf("module %q has no attribute %q", p.moduleName, name))
		}
		return v, nil
	}
	p.mu.RUnlock()

	module, err := p.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return module.Attr(name)
}

// Dir returns the attribute names of the underlying module in sorted order,
// resolving it first if needed.
func (p *Proxy) Dir(ctx context.Context) ([]string, error) {
	module, err := p.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return module.Dir(), nil
}

// Describe returns a human-readable tag showing the module name and whether
// it has been loaded. It never triggers loading.
func (p *Proxy) Describe() string {
	if p.Loaded() {
		return fmt.Sprintf("<module %q (loaded)>", p.moduleName)
	}
	return fmt.Sprintf("<module %q (not loaded yet)>", p.moduleName)
}
