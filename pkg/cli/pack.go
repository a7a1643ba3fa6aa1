package cli

import (
	"context"
	"flag"
	"fmt"
)

func newPackCommand() *Command {
	cmd := &Command{
		Name:        "pack",
		Description: "List providers in a category that can scrape season packs",
		Flags:       flag.NewFlagSet("pack", flag.ExitOnError),
		Run:         runPack,
	}

	addDiscoveryFlags(cmd.Flags)
	cmd.Flags.String("category", "", "Provider category to inspect (required)")

	return cmd
}

func runPack(args []string) error {
	cmd := newPackCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	category := cmd.Flags.Lookup("category").Value.String()
	if category == "" {
		return fmt.Errorf("category is required")
	}

	log := newLogger(cmd.Flags.Lookup("log-level").Value.String())
	disco, store, err := discoveryFromFlags(cmd.Flags, log)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	defer store.Close()

	names, err := disco.PackCapable(context.Background(), category)
	if err != nil {
		return fmt.Errorf("pack capability scan failed: %w", err)
	}

	if len(names) == 0 {
		fmt.Printf("No pack-capable providers in category %s\n", category)
		return nil
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
