package lazyload

import (
	"fmt"

	"github.com/je17/promptflow/internal/types"
)

// LazyImport returns a deferred handle for the module named fullName.
//
// If the module is already loaded in the registry the returned proxy is
// pre-resolved to it, so repeated calls are idempotent and never reload. If a
// loader is registered but the module is not yet loaded, the returned proxy
// defers the load until its first attribute access. If no loader is
// registered the module cannot be located and MODULE_NOT_FOUND is returned
// immediately rather than on first access.
//
// The handle binds and publishes under fullName itself; use NewProxy directly
// to bind a module under a different name in a caller-owned namespace.
func LazyImport(registry *Registry, fullName string) (*Proxy, error) {
	if registry == nil {
		registry = DefaultRegistry
	}
	if fullName == "" {
		return nil, fmt.Errorf("module name cannot be empty")
	}

	proxy := NewProxy(fullName, nil, fullName, registry)

	if module, ok := registry.Lookup(fullName); ok {
		proxy.cached = module
		proxy.attrs = module.attributes()
		return proxy, nil
	}

	if !registry.HasLoader(fullName) {
		return nil, types.NewError(types.MODULE_NOT_FOUND,
			fmt.Sprintf("no loader registered for module %q", fullName))
	}

	return proxy, nil
}
