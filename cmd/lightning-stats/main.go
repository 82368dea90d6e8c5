package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/lixenwraith/lightning/batch"
	"github.com/lixenwraith/lightning/preset"
	"github.com/lixenwraith/lightning/status"
)

var (
	seeds    = flag.Int("seeds", 100, "Trees generated per preset")
	baseSeed = flag.Uint64("seed", 0, "Base seed the per-run seeds derive from")
	workers  = flag.Int("workers", runtime.GOMAXPROCS(0), "Concurrent generations")
	presets  = flag.String("presets", "", "TOML preset file replacing the built-in presets")
	metrics  = flag.Bool("metrics", false, "Print run counters after the table")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("lightning-stats: ")

	opts := batch.DefaultOptions()
	opts.Seeds = *seeds
	opts.BaseSeed = *baseSeed
	opts.Workers = *workers
	opts.Logger = log.Default()
	opts.Registry = status.NewRegistry()

	if *presets != "" {
		entries, err := preset.Load(*presets)
		if err != nil {
			log.Fatal(err)
		}
		opts.Presets = entries
	}

	// Signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sums, err := batch.Run(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := batch.WriteTable(os.Stdout, sums); err != nil {
		log.Fatal(err)
	}

	if *metrics {
		fmt.Println()
		for _, e := range opts.Registry.Snapshot() {
			fmt.Println(e)
		}
	}
}
