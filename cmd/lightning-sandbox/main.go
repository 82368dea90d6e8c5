package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lightning/audio"
	"github.com/lixenwraith/lightning/preset"
)

var (
	presetFlag  = flag.String("preset", "classic", "Preset name or 1-based number")
	seedFlag    = flag.Uint64("seed", 0, "Base seed, 0 derives one from the clock")
	presetsFlag = flag.String("presets", "", "TOML preset file replacing the built-in presets")
	debugFlag   = flag.Bool("debug", false, "Write a debug log under "+logDir)
	soundFlag   = flag.Bool("sound", false, "Play thunder (also LIGHTNING_AUDIO_ENABLED)")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	entries := preset.Builtins()
	if *presetsFlag != "" {
		loaded, err := preset.Load(*presetsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load presets: %v\n", err)
			os.Exit(1)
		}
		if len(loaded) == 0 {
			fmt.Fprintf(os.Stderr, "Preset file %s has no presets\n", *presetsFlag)
			os.Exit(1)
		}
		entries = loaded
	}
	current, err := preset.Index(entries, *presetFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	audioCfg := audio.LoadConfig()
	if *soundFlag {
		audioCfg.Enabled = true
	}
	player := audio.NewPlayer(audioCfg)
	if err := player.Initialize(); err != nil {
		// Non-fatal, the sandbox runs without sound
		log.Printf("Audio initialization failed: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic recovery: restore the terminal before printing the stack
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mLIGHTNING SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	sb := newSandbox(screen, entries, current, seed, player)
	sb.debug = *debugFlag
	log.Printf("sandbox: preset=%s seed=%d sound=%v", entries[current].Name, seed, player.Ready())

	sb.run()
	sb.cleanup()
}
