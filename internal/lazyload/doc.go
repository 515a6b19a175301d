// Package lazyload defers the cost of constructing heavy modules until first use.
//
// A Module is a named collection of attributes produced by a Loader. Loaders
// are registered in a Registry, a process-wide table that guarantees each
// module loads at most once. A Proxy stands in for a not-yet-loaded module:
// it costs nothing to construct, and on first attribute access it loads the
// real module, publishes it into the caller's namespace and the registry, and
// mirrors the module's attributes onto itself for fast later lookups.
//
// # Usage Example
//
//	reg := lazyload.NewRegistry()
//	reg.MustRegisterLoader("evaluators.f1", loadF1Module)
//
//	ns := lazyload.Namespace{}
//	proxy := lazyload.NewProxy("f1", ns, "evaluators.f1", reg)
//	// Nothing loaded yet: proxy.Describe() reports "not loaded yet".
//
//	scorer, err := proxy.Attr(ctx, "evaluator") // triggers the load
//	// ns["f1"] now holds the loaded module.
//
// The registry is explicit and injectable rather than ambient global state;
// DefaultRegistry exists for packages that register their modules at init
// time, mirroring the process-wide module table.
package lazyload
