// Package lightning procedurally generates branching lightning-bolt geometry.
//
// Generate turns two endpoints and a Config into an immutable Tree:
//   - the root segment is recursively split at a displaced midpoint until MaxDepth
//   - each split may spawn a branch toward a synthetic target, nested up to MaxBranchDepth
//   - every node carries an energy value that never increases away from the root
//
// The tree is an arena: nodes and segments live in flat slices and refer to each other by
// index. Segment order is generation order: the trunk in path order, then each branch
// depth-first in the path order of its spawn point.
//
// Flatten helpers (LinePositions, SampleParticlePositions, ParticleData) project a tree into
// render-ready buffers without any further randomness.
//
// Generation is a pure function of its inputs. Trees are read-only after construction and may be
// shared between goroutines without locking.
package lightning
