package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jask/almacen/internal/view"
	"github.com/jask/almacen/internal/views"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	keyColStyle = lipgloss.NewStyle().Width(26)
)

func newRoutesCmd(flags *rootFlags) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the view collections, with overrides from the views file applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			overrides, err := loadCollections(cfg.UI.ViewsFile)
			if err != nil {
				return err
			}
			all := effectiveCollections(overrides)
			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(all); err != nil {
					return err
				}
				return enc.Close()
			}
			for _, name := range slices.Sorted(maps.Keys(all)) {
				fmt.Fprintln(out, titleStyle.Render(name))
				c := all[name]
				for _, key := range c.Keys() {
					e := c[key]
					line := "  " + keyColStyle.Render(key) + e.Tag
					if e.Module != "" {
						line += mutedStyle.Render(" (" + e.Module + ")")
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print as a views file")
	return cmd
}

// effectiveCollections merges overrides into the built-in collections.
// Collections only present in overrides are kept as given.
func effectiveCollections(overrides map[string]view.Collection) map[string]view.Collection {
	env := &views.Env{Collections: overrides}
	out := make(map[string]view.Collection)
	for name := range views.DefaultCollections() {
		out[name] = env.Collection(name)
	}
	for name := range overrides {
		out[name] = env.Collection(name)
	}
	return out
}
