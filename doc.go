// Package knotgraph indexes discretized knot configurations and explores the
// graph of elementary moves between them.
//
// 🚀 What is knotgraph?
//
//	A small, deterministic engine plus the tools around it:
//		• knot: parity-bucketed index, hash lookup, neighbor enumeration
//		• explore: bounded breadth-first walks over the move graph
//		• movegraph: dataset knots joined by single moves, connected components
//		• dijkstra: cheapest move paths, weighted by knot cost
//		• dataset: JSON (plain, gzip, zstd, lz4) and SQLite loaders
//		• analysis: good-knot adjacency and distance reports
//
// A knot is a vector of angles taken modulo n (the modulus, 16 by default).
// Its parity is the angle sum mod n, and a move adds ±1 to one angle while
// subtracting it from the next one (cyclically), so a move never changes the
// parity. Every knot therefore has exactly 2·len(angles) neighbors, each
// either a dataset knot or a placeholder carrying the sentinel cost 3.0.
//
// Under the hood:
//
//	knot/             — Record, Index, moves, ChainDistance
//	explore/          — Walk with depth limit, filters and hooks
//	movegraph/        — thread-safe Graph built from an Index
//	dijkstra/         — Dijkstra over a movegraph.Graph
//	dataset/          — Load, Decode, SQLiteSource
//	analysis/         — Pick, Retrieve, GoodAdjacency, TopAdjacency, DistanceFromGood
//	internal/logging/ — slog wrapper shared by loaders and the CLI
//	cmd/knotgraph/    — command line driver
//
// Quick start:
//
//	ix, err := dataset.Load(ctx, "all_knots.json")
//	if err != nil {
//		return err
//	}
//	start, _ := analysis.Pick(ix, 10, 1)
//	for _, n := range ix.Neighbors(start) {
//		fmt.Println(n.Angles, n.Cost, n.Kind)
//	}
package knotgraph
