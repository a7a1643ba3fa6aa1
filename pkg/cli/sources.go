package cli

import (
	"context"
	"flag"
	"fmt"
)

func newSourcesCommand() *Command {
	cmd := &Command{
		Name:        "sources",
		Description: "Discover and load the enabled sources",
		Flags:       flag.NewFlagSet("sources", flag.ExitOnError),
		Run:         runSources,
	}

	addDiscoveryFlags(cmd.Flags)
	cmd.Flags.Bool("all", false, "Include disabled providers")

	return cmd
}

func runSources(args []string) error {
	cmd := newSourcesCommand()
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

	loaded, err := disco.Discover(context.Background(), categories, includeDisabled)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(loaded) == 0 {
		fmt.Println("No sources loaded")
		return nil
	}

	fmt.Printf("%-20s %s\n", "NAME", "PACK-CAPABLE")
	for _, l := range loaded {
		fmt.Printf("%-20s %v\n", l.Name, l.Source.PackCapable())
	}
	fmt.Printf("\n%d sources loaded\n", len(loaded))
	return nil
}
