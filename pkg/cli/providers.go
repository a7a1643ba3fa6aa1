package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

func newProvidersCommand() *Command {
	cmd := &Command{
		Name:        "providers",
		Description: "List provider manifests discovered under the provider root",
		Flags:       flag.NewFlagSet("providers", flag.ExitOnError),
		Run:         runProviders,
	}

	addDiscoveryFlags(cmd.Flags)
	cmd.Flags.Bool("all", false, "Include disabled providers")
	cmd.Flags.Bool("json", false, "Emit JSON instead of a table")

	return cmd
}

func runProviders(args []string) error {
	cmd := newProvidersCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	log := newLogger(cmd.Flags.Lookup("log-level").Value.String())
	disco, store, err := discoveryFromFlags(cmd.Flags, log)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	defer store.Close()

	includeDisabled := cmd.Flags.Lookup("all").Value.String() == "true"
	categories := splitCategories(cmd.Flags.Lookup("categories").Value.String())

	ctx := context.Background()
	descriptors := disco.Descriptors(ctx, categories, includeDisabled)

	enabled := make(map[string]bool)
	for _, d := range disco.Descriptors(ctx, categories, false) {
		enabled[d.Name] = true
	}

	if cmd.Flags.Lookup("json").Value.String() == "true" {
		type row struct {
			Name     string `json:"name"`
			Category string `json:"category"`
			Location string `json:"location"`
			Enabled  bool   `json:"enabled"`
		}
		rows := make([]row, 0, len(descriptors))
		for _, d := range descriptors {
			rows = append(rows, row{Name: d.Name, Category: d.Category, Location: d.Location, Enabled: enabled[d.Name]})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(descriptors) == 0 {
		fmt.Println("No providers found")
		return nil
	}

	fmt.Printf("%-20s %-15s %-8s %s\n", "NAME", "CATEGORY", "ENABLED", "LOCATION")
	for _, d := range descriptors {
		fmt.Printf("%-20s %-15s %-8v %s\n", d.Name, d.Category, enabled[d.Name], d.Location)
	}
	return nil
}
