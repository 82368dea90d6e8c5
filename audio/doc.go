// Package audio synthesizes thunder for generated bolts with beep and plays it through the speaker.
// Synthesis is deterministic for a given tree and seed; playback degrades to a no-op when no device is available.
package audio
