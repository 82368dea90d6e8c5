// Package effect holds the transient state of a displayed bolt: lifetime fade, flicker,
// per-interval vibration and the spark burst sampled from the tree.
// All types are plain values advanced by Update(dt); nothing here touches the terminal or audio.
package effect
