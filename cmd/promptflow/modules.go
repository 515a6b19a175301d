package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	// Registers the evaluator modules with the default registry.
	_ "github.com/je17/promptflow/evaluators"

	"github.com/je17/promptflow/internal/lazyload"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Inspect deferred modules",
	Long:  `List and inspect the deferred modules registered with the default registry.`,
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered modules and their load state",
	RunE:  runModulesList,
}

var modulesShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a module's attributes (forces loading)",
	Args:  cobra.ExactArgs(1),
	RunE:  runModulesShow,
}

func init() {
	modulesCmd.AddCommand(modulesListCmd)
	modulesCmd.AddCommand(modulesShowCmd)
}

func runModulesList(cmd *cobra.Command, args []string) error {
	registry := lazyload.DefaultRegistry

	names := registry.LoaderNames()
	loaded := make(map[string]bool)
	for _, name := range registry.Modules() {
		loaded[name] = true
	}
	for name := range loaded {
		if !registry.HasLoader(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tSTATE")
	for _, name := range names {
		state := "deferred"
		if loaded[name] {
			state = "loaded"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, state)
	}
	return w.Flush()
}

func runModulesShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	proxy, err := lazyload.LazyImport(nil, name)
	if err != nil {
		return err
	}

	attrs, err := proxy.Dir(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(proxy.Describe())
	fmt.Printf("Attributes: %s\n", strings.Join(attrs, ", "))
	return nil
}
