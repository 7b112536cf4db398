// Command cli looks up topics against a running QuickWiki server from the
// terminal. Results are cached locally and queries are recorded in a search
// history, both persisted in a SQLite file so repeated lookups skip the
// network.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/adam4056/QuickWiki/internal/client"
	"github.com/adam4056/QuickWiki/internal/observability/logging"
)

const lookupConcurrency = 4

type options struct {
	server   string
	length   int
	jsonOut  bool
	dbPath   string
	history  bool
	clearAll bool
	timeout  time.Duration
}

func main() {
	// A .env next to the binary is a convenience for local use; absence is
	// not an error.
	_ = godotenv.Load()

	opts := parseFlags()
	logger := logging.NewTextLogger()

	store, err := openStore(opts.dbPath)
	if err != nil {
		logger.Error("failed to open local store", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	api := client.NewHTTPAPI(opts.server, opts.timeout)
	c := client.New(api, store, logger)

	switch {
	case opts.history:
		if err := printHistory(c); err != nil {
			logger.Error("failed to read history", slog.Any("error", err))
			os.Exit(1)
		}
	case opts.clearAll:
		if err := clearLocal(c); err != nil {
			logger.Error("failed to clear local data", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Println("cache and history cleared")
	default:
		topics := flag.Args()
		if len(topics) == 0 {
			fmt.Fprintln(os.Stderr, "usage: cli [flags] topic [topic ...]")
			flag.PrintDefaults()
			os.Exit(2)
		}
		if err := lookup(c, topics, opts); err != nil {
			logger.Error("lookup failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.server, "server", envOr("QUICKWIKI_SERVER", "http://localhost:8080"), "QuickWiki server base URL")
	flag.IntVar(&opts.length, "length", 3, "summary length in sentences")
	flag.BoolVar(&opts.jsonOut, "json", false, "print results as JSON")
	flag.StringVar(&opts.dbPath, "db", envOr("QUICKWIKI_DB", defaultDBPath()), "local store path (empty for in-memory)")
	flag.BoolVar(&opts.history, "history", false, "print the search history and exit")
	flag.BoolVar(&opts.clearAll, "clear", false, "clear the local cache and history and exit")
	flag.DurationVar(&opts.timeout, "timeout", 90*time.Second, "per-request timeout")
	flag.Parse()
	return opts
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quickwiki.db")
}

func openStore(path string) (client.Store, error) {
	if path == "" {
		return client.NewMemoryStore(), nil
	}
	return client.OpenSQLiteStore(path)
}

type lookupResult struct {
	Topic       string `json:"topic"`
	Summary     string `json:"summary"`
	OriginalURL string `json:"originalUrl"`
	Cached      bool   `json:"cached"`
}

// lookup fetches every topic, a few at a time, and prints results in the
// order the topics were given.
func lookup(c *client.Client, topics []string, opts options) error {
	results := make([]lookupResult, len(topics))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(lookupConcurrency)
	for i, topic := range topics {
		i, topic := i, topic
		g.Go(func() error {
			res, err := c.Summarize(ctx, topic, opts.length)
			if err != nil {
				return fmt.Errorf("%s: %w", topic, err)
			}
			results[i] = lookupResult{
				Topic:       topic,
				Summary:     res.Summary,
				OriginalURL: res.OriginalURL,
				Cached:      res.Cached,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Printf("# %s", r.Topic)
		if r.Cached {
			fmt.Print(" (cached)")
		}
		fmt.Printf("\n%s\nSource: %s\n\n", r.Summary, r.OriginalURL)
	}
	return nil
}

func printHistory(c *client.Client) error {
	items, err := c.History().Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no history")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%s  %s (length %d)\n",
			item.Timestamp.Local().Format("2006-01-02 15:04"), item.Topic, item.Length)
	}
	return nil
}

func clearLocal(c *client.Client) error {
	if err := c.Cache().Clear(); err != nil {
		return err
	}
	return c.History().Clear()
}
