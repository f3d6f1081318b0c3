// Package heap runs a batch of guiding-center particles concurrently over
// one shared equilibrium and aggregates their outcomes. It adapts the
// worker-pool ensemble pattern used elsewhere in this codebase for running
// many independent trajectories, one goroutine per shard of the batch.
package heap
