package lazyload

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/je17/promptflow/internal/types"
)

// Module is a loaded unit: a named collection of attributes produced by a
// Loader. It is the promptflow analog of an imported module, with attribute
// access made explicit since Go has no attribute-miss hook.
type Module struct {
	name     string
	attrs    map[string]any
	loadedAt time.Time
}

// NewModule creates a loaded Module with the given dotted name and attribute
// table. The attribute table is copied so later mutation by the caller does
// not leak into the module.
func NewModule(name string, attrs map[string]any) *Module {
	copied := make(map[string]any, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return &Module{
		name:     name,
		attrs:    copied,
		loadedAt: time.Now(),
	}
}

// Name returns the dotted module name.
func (m *Module) Name() string {
	return m.name
}

// LoadedAt returns the time the module finished loading.
func (m *Module) LoadedAt() time.Time {
	return m.loadedAt
}

// Attr returns the named attribute.
// Returns a MODULE_ATTR_NOT_FOUND error if the module has no such attribute.
func (m *Module) Attr(name string) (any, error) {
	v, ok := m.attrs[name]
	if !ok {
		return nil, types.NewError(types.MODULE_ATTR_NOT_FOUND,
			fmt.Sprintf("module %q has no attribute %q", m.name, name))
	}
	return v, nil
}

// Dir returns the module's attribute names in sorted order.
func (m *Module) Dir() []string {
	names := make([]string, 0, len(m.attrs))
	for name := range m.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// attributes returns a copy of the attribute table for proxies to mirror.
func (m *Module) attributes() map[string]any {
	copied := make(map[string]any, len(m.attrs))
	for k, v := range m.attrs {
		copied[k] = v
	}
	return copied
}

// Loader produces a Module on demand. Loaders are registered against dotted
// module names and run at most once per registry entry; the load cost is the
// whole point of deferral, so a Loader may be arbitrarily expensive.
type Loader func(ctx context.Context) (*Module, error)

// Namespace is a mutable mapping owned by the caller into which a proxy
// publishes the loaded module under its binding name.
type Namespace map[string]*Module
