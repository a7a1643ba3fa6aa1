package cli

import (
	"flag"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scrapekit/scrapekit/pkg/settings"
	"github.com/scrapekit/scrapekit/pkg/sources"
)

// addDiscoveryFlags registers the flags shared by every command that runs
// provider discovery.
func addDiscoveryFlags(fs *flag.FlagSet) {
	fs.String("root", "providers", "Provider manifest root directory")
	fs.String("categories", "", "Comma-separated category filter (empty means all)")
	fs.Bool("diagnostics", false, "Propagate provider load failures instead of skipping")
	fs.Bool("fail-closed", false, "Treat unreadable enablement settings as disabled")
	fs.String("settings-backend", "memory", "Settings backend: memory, file, redis, sqlite")
	fs.String("settings-file", "", "Settings file path (file backend)")
	fs.String("redis-url", "", "Redis URL (redis backend)")
	fs.String("sqlite-path", "", "SQLite database path (sqlite backend)")
	fs.String("log-level", "warn", "Log level: debug, info, warn, error")
}

// splitCategories parses the -categories flag value.
func splitCategories(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, c := range strings.Split(value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// newLogger builds a logrus logger from the -log-level flag value.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// discoveryFromFlags wires a settings store, oracle, loader and discovery
// service from the parsed flag set. The caller owns the returned store.
func discoveryFromFlags(fs *flag.FlagSet, log *logrus.Logger) (*sources.Discovery, settings.Store, error) {
	store, err := settings.New(settings.Config{
		Type:       fs.Lookup("settings-backend").Value.String(),
		FilePath:   fs.Lookup("settings-file").Value.String(),
		RedisURL:   fs.Lookup("redis-url").Value.String(),
		SQLitePath: fs.Lookup("sqlite-path").Value.String(),
	})
	if err != nil {
		return nil, nil, err
	}

	policy := sources.FailOpen
	if fs.Lookup("fail-closed").Value.String() == "true" {
		policy = sources.FailClosed
	}

	diagnostics := fs.Lookup("diagnostics").Value.String() == "true"

	oracle := sources.NewOracle(store, policy, log)
	loader := sources.NewLoader(log, diagnostics)
	disco := sources.NewDiscovery(fs.Lookup("root").Value.String(), oracle, loader, log)
	if diagnostics {
		disco.SetLoadPolicy(sources.Propagate)
	}
	return disco, store, nil
}
