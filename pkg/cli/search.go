package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/scrapekit/scrapekit/pkg/aggregate"
	"github.com/scrapekit/scrapekit/pkg/async"
	"github.com/scrapekit/scrapekit/pkg/sources"
)

func newSearchCommand() *Command {
	cmd := &Command{
		Name:        "search",
		Description: "Run an aggregated search across the enabled sources",
		Flags:       flag.NewFlagSet("search", flag.ExitOnError),
		Run:         runSearch,
	}

	addDiscoveryFlags(cmd.Flags)
	cmd.Flags.String("title", "", "Title to search for (required)")
	cmd.Flags.Int("year", 0, "Release year")
	cmd.Flags.String("imdb", "", "IMDB identifier")
	cmd.Flags.Int("season", 0, "Season number (episode search)")
	cmd.Flags.Int("episode", 0, "Episode number (episode search)")
	cmd.Flags.Int("workers", async.DefaultCapacity, "Worker pool capacity")
	cmd.Flags.Int("limit", 0, "Maximum results to print (0 means all)")
	cmd.Flags.Bool("json", false, "Emit JSON instead of a table")

	return cmd
}

func runSearch(args []string) error {
	cmd := newSearchCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	title := cmd.Flags.Lookup("title").Value.String()
	if title == "" {
		return fmt.Errorf("title is required")
	}

	log := newLogger(cmd.Flags.Lookup("log-level").Value.String())
	disco, store, err := discoveryFromFlags(cmd.Flags, log)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	defer store.Close()

	categories := splitCategories(cmd.Flags.Lookup("categories").Value.String())

	ctx := context.Background()
	loaded, err := disco.Discover(ctx, categories, false)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if len(loaded) == 0 {
		return fmt.Errorf("no enabled sources under %s", cmd.Flags.Lookup("root").Value.String())
	}

	workers, _ := cmd.Flags.Lookup("workers").Value.(flag.Getter).Get().(int)
	if workers < 1 {
		workers = async.DefaultCapacity
	}
	pool := async.NewPool(workers, async.WithLogger(log))
	defer pool.Shutdown()

	year, _ := cmd.Flags.Lookup("year").Value.(flag.Getter).Get().(int)
	season, _ := cmd.Flags.Lookup("season").Value.(flag.Getter).Get().(int)
	episode, _ := cmd.Flags.Lookup("episode").Value.(flag.Getter).Get().(int)

	q := sources.Query{
		Title:   title,
		Year:    year,
		IMDB:    cmd.Flags.Lookup("imdb").Value.String(),
		Season:  season,
		Episode: episode,
	}

	results := aggregate.New(pool, log).Search(ctx, loaded, q)

	limit, _ := cmd.Flags.Lookup("limit").Value.(flag.Getter).Get().(int)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if cmd.Flags.Lookup("json").Value.String() == "true" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results")
		return nil
	}

	fmt.Printf("%-15s %-8s %10s %8s  %s\n", "PROVIDER", "QUALITY", "SIZE(MB)", "SEEDERS", "TITLE")
	for _, r := range results {
		fmt.Printf("%-15s %-8s %10d %8d  %s\n", r.Provider, r.Quality, r.Size, r.Seeders, r.Title)
	}
	fmt.Printf("\n%d results from %d sources\n", len(results), len(loaded))
	return nil
}
