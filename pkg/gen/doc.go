// Package gen models a genealogical graph and derives the views every
// layout projection shares: relationship adjacency, family units keyed by
// parent set, and root-relative generation numbers.
//
// The graph here is deliberately not a tree and not even a DAG - multiple
// parents, remarriage and reconvergent lineages are all representable, and
// nothing in this package validates genealogical correctness. A person can
// be their own ancestor; traversal tolerates it.
//
// # Pipeline position
//
// pkg/gen implements the shared front of the layout pipeline:
//
//	Index → GroupFamilies → AssignGenerations
//
// Everything downstream (pedigree column layout, node-link projection) is a
// consumer of these three outputs and lives under pkg/render.
//
// All derived state is recomputed from scratch per call; the package holds
// no persistent state and every function is safe for concurrent use with
// independent inputs.
package gen
