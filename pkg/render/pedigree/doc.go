// Package pedigree computes the linear column ("pedigree") projection of a
// genealogical graph: one column per generation, spouse groups kept
// adjacent as vertical blocks, and a two-pass barycenter sweep that pulls
// people toward their relatives while keeping rows from overlapping.
//
// The entry point is [Layout]. It is a pure function of its inputs - no
// state survives between calls, no randomness is involved, and identical
// inputs produce identical coordinates, so callers may memoize results by
// input identity and invoke it concurrently from independent call sites.
//
// Malformed genealogy degrades visually instead of failing: dangling
// relationship endpoints are skipped, cyclic ancestry is resolved by
// first-visit-wins generation assignment, and an unknown root yields an
// empty result.
package pedigree
