package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/lightning/lightning"
)

// Player owns the speaker and a mixer that thunder claps are queued into
type Player struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

func NewPlayer(cfg Config) *Player {
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		muted: !cfg.Enabled,
	}
}

// Initialize opens the speaker; disabled configs stay silent without touching the device
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(BufferDuration)); err != nil {
		return err
	}

	// Endless silence keeps the mixer from draining between claps
	p.mixer.Add(beep.Silence(-1))
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Ready reports whether PlayThunder will reach the speaker
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized && !p.muted
}

func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// ToggleMute flips the mute state and returns the new one
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// PlayThunder queues a clap for tree and reports whether it was queued
func (p *Player) PlayThunder(tree *lightning.Tree, seed uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || tree == nil {
		return false
	}

	s := NewThunder(tree, p.cfg, seed)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Cleanup drops queued sounds; the speaker itself stays open for the process lifetime
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
