package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/llm/providers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured providers and their health",
	Long: `Providers lists every provider registered for this run together with
its health state, plus the aggregated health of the registry.

Examples:
  # Show the configured provider and its health
  promptflow providers`,
	RunE: runProviders,
}

// newProviderRegistry builds a provider registry holding the provider
// selected by the configuration.
func newProviderRegistry() (llm.ProviderRegistry, error) {
	provider, err := providers.NewProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	registry := llm.NewProviderRegistry()
	if err := registry.RegisterProvider(provider); err != nil {
		return nil, err
	}
	return registry, nil
}

// activeProvider resolves the configured provider through the registry.
func activeProvider() (llm.Provider, error) {
	registry, err := newProviderRegistry()
	if err != nil {
		return nil, err
	}
	return registry.GetProvider(string(cfg.Provider.Type))
}

func runProviders(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	registry, err := newProviderRegistry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tSTATE\tMESSAGE")
	for _, name := range registry.ListProviders() {
		provider, err := registry.GetProvider(name)
		if err != nil {
			return err
		}
		status := provider.Health(ctx)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, status.State, status.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	overall := registry.Health(ctx)
	fmt.Printf("Overall: %s (%s)\n", overall.State, overall.Message)
	return nil
}
