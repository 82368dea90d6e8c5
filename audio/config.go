package audio

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultSampleRate   = 44100
	DefaultMasterVolume = 0.5

	// BufferDuration is the speaker buffer; shorter buffers click on slow terminals
	BufferDuration = 100 * time.Millisecond
)

// Environment overrides read by LoadConfig
const (
	EnvEnabled      = "LIGHTNING_AUDIO_ENABLED"
	EnvMasterVolume = "LIGHTNING_MASTER_VOLUME"
	EnvSampleRate   = "LIGHTNING_SAMPLE_RATE"
)

// Config holds playback settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
}

// DefaultConfig is silent until enabled by flag or environment
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		MasterVolume: DefaultMasterVolume,
		SampleRate:   DefaultSampleRate,
	}
}

// LoadConfig applies environment overrides on top of DefaultConfig
// Malformed values are ignored and the default kept
func LoadConfig() Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv(EnvEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
