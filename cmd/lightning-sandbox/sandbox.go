package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lightning/audio"
	"github.com/lixenwraith/lightning/effect"
	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/preset"
	"github.com/lixenwraith/lightning/raster"
	"github.com/lixenwraith/lightning/status"
	"github.com/lixenwraith/lightning/vmath"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	autoInterval  = time.Second
	maxBolts      = 8

	// World box shown on screen; bolts strike from the top center toward the target
	worldHalfWidth = 150.0
	worldHeight    = 200.0
	targetStep     = 10.0
	minClearance   = 20.0

	hudRows = 2
)

// sandbox is the interactive preview: spawn bolts at a movable target and watch them fade
type sandbox struct {
	screen     tcell.Screen
	cols, rows int
	canvas     *raster.Canvas

	entries []preset.Entry
	current int
	seed    uint64
	spawned uint64

	settings effect.Settings
	origin   vmath.Vec3F
	target   vmath.Vec3F

	bolts  []*effect.Bolt
	bursts []*effect.Burst

	auto      bool
	autoClock time.Duration

	// preview is regenerated on preset change for the stats line
	preview lightning.Stats

	player   *audio.Player
	registry *status.Registry
	debug    bool
}

func newSandbox(screen tcell.Screen, entries []preset.Entry, current int, seed uint64, player *audio.Player) *sandbox {
	s := &sandbox{
		screen:   screen,
		entries:  entries,
		current:  current,
		seed:     seed,
		settings: effect.DefaultSettings(),
		origin:   vmath.Vec3F{Y: worldHeight},
		target:   vmath.Vec3F{},
		player:   player,
		registry: status.NewRegistry(),
	}
	s.resize()
	s.refreshPreview()
	return s
}

func (s *sandbox) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		// Restore the terminal if the poller dies
		defer func() {
			if r := recover(); r != nil {
				s.screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\nEVENT POLLER CRASHED: %v\r\n%s\r\n", r, debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := s.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !s.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			s.update(now.Sub(last))
			last = now
			s.draw()
		}
	}
}

func (s *sandbox) cleanup() {
	s.player.Cleanup()
	s.screen.Fini()
	for _, e := range s.registry.Snapshot() {
		log.Printf("sandbox: %s", e)
	}
}

func (s *sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			s.moveTarget(-targetStep, 0)
		case tcell.KeyRight:
			s.moveTarget(targetStep, 0)
		case tcell.KeyUp:
			s.moveTarget(0, targetStep)
		case tcell.KeyDown:
			s.moveTarget(0, -targetStep)
		case tcell.KeyRune:
			return s.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		s.resize()
		s.screen.Sync()
	}
	return true
}

func (s *sandbox) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		s.spawn()
	case 'a':
		s.auto = !s.auto
		s.autoClock = 0
	case 'f':
		s.settings.Flicker = !s.settings.Flicker
	case 'v':
		s.settings.Vibrate = !s.settings.Vibrate
	case 's':
		muted := s.player.ToggleMute()
		log.Printf("sandbox: sound muted=%v ready=%v", muted, s.player.Ready())
	case 'h':
		s.moveTarget(-targetStep, 0)
	case 'l':
		s.moveTarget(targetStep, 0)
	case 'k':
		s.moveTarget(0, targetStep)
	case 'j':
		s.moveTarget(0, -targetStep)
	default:
		if r >= '1' && r <= '9' {
			s.selectPreset(int(r - '1'))
		}
	}
	return true
}

func (s *sandbox) selectPreset(i int) {
	if i < 0 || i >= len(s.entries) || i == s.current {
		return
	}
	s.current = i
	s.refreshPreview()
	log.Printf("sandbox: preset=%s", s.entries[i].Name)
}

// moveTarget keeps the target inside the world and below the origin
func (s *sandbox) moveTarget(dx, dy float64) {
	s.target.X = vmath.Clamp(s.target.X+dx, -worldHalfWidth, worldHalfWidth)
	s.target.Y = vmath.Clamp(s.target.Y+dy, 0, worldHeight-minClearance)
	s.refreshPreview()
}

// nextSeed derives the seed for the next spawn from the base seed
func (s *sandbox) nextSeed() uint64 {
	return vmath.DeriveSeed(s.seed, s.spawned)
}

func (s *sandbox) config() lightning.Config {
	return s.entries[s.current].Config().WithSeed(s.nextSeed())
}

func (s *sandbox) refreshPreview() {
	tree, err := lightning.Generate(s.origin, s.target, s.config())
	if err != nil {
		log.Printf("sandbox: preview: %v", err)
		return
	}
	s.preview = tree.Stats()
}

// spawn strikes a new bolt at the target, dropping the oldest beyond maxBolts
func (s *sandbox) spawn() {
	cfg := s.config()
	bolt, err := effect.NewBolt(s.origin, s.target, cfg, s.settings)
	if err != nil {
		log.Printf("sandbox: spawn: %v", err)
		return
	}
	s.spawned++

	if len(s.bolts) == maxBolts {
		s.bolts = s.bolts[1:]
	}
	s.bolts = append(s.bolts, bolt)
	s.bursts = append(s.bursts, effect.NewBurst(bolt.Tree(), cfg.Seed))
	s.player.PlayThunder(bolt.Tree(), cfg.Seed)

	stats := bolt.Tree().Stats()
	s.registry.Ints.Get("bolts.spawned").Add(1)
	s.registry.Ints.Get("bolts.segments").Add(int64(stats.SegmentCount))
	s.registry.Floats.Get("bolts.max_length").Max(stats.TotalLength)
	s.registry.Strings.Get("bolts.last_preset").Store(s.entries[s.current].Name)
	log.Printf("sandbox: spawn seed=%d %s", cfg.Seed, stats)

	s.refreshPreview()
}

func (s *sandbox) update(dt time.Duration) {
	s.registry.Ints.Get("frames").Add(1)

	if s.auto {
		s.autoClock += dt
		for s.autoClock >= autoInterval {
			s.autoClock -= autoInterval
			s.spawn()
		}
	}

	alive := s.bolts[:0]
	for _, b := range s.bolts {
		if b.Update(dt) {
			s.registry.Ints.Get("bolts.regenerated").Add(1)
		}
		if !b.Expired() {
			alive = append(alive, b)
		}
	}
	clear(s.bolts[len(alive):])
	s.bolts = alive

	bursts := s.bursts[:0]
	for _, b := range s.bursts {
		b.Update(dt)
		if !b.Done() {
			bursts = append(bursts, b)
		}
	}
	clear(s.bursts[len(bursts):])
	s.bursts = bursts
}

func (s *sandbox) resize() {
	s.cols, s.rows = s.screen.Size()
	s.canvas = raster.NewCanvas(s.cols, max(s.rows-hudRows, 0), raster.ModeQuadrant)
}
