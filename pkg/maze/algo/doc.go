// Package algo implements the maze generation algorithms.
//
// Every algorithm is a passage carver with the same shape — take a
// grid and a seeded random source, carve a spanning tree (or forest)
// of passages, return an error only for precondition violations —
// and is registered under a stable name so CLIs and services can
// dispatch by string. Parameterized variants take a config struct;
// the registry entry runs the defaults.
//
// Identical seeds yield identical mazes: algorithms draw randomness
// exclusively from the *rand.Rand they are handed.
package algo
