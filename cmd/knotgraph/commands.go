package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/knotgraph/analysis"
	"github.com/katalvlaran/knotgraph/dijkstra"
	"github.com/katalvlaran/knotgraph/explore"
	"github.com/katalvlaran/knotgraph/knot"
	"github.com/katalvlaran/knotgraph/movegraph"
)

func printRecord(w io.Writer, r *knot.Record) {
	fmt.Fprintf(w, "%v cost=%g rank=%d %s\n", r.Angles, r.Cost, r.Rank, r.Kind)
}

func newNeighborsCmd(gf *globalFlags) *cobra.Command {
	var parity, rank int
	cmd := &cobra.Command{
		Use:   "neighbors DATASET",
		Short: "Print the knots one move away from a dataset knot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, log, err := gf.loadOne(cmd, args[0])
			if err != nil {
				return err
			}
			start, err := analysis.Pick(ix, parity, rank)
			if err != nil {
				return err
			}
			adj := ix.Neighbors(start)
			log.LogQuery(cmd.Context(), "neighbors", start.Angles, len(adj))

			out := cmd.OutOrStdout()
			printRecord(out, start)
			for _, n := range adj {
				fmt.Fprint(out, "  ")
				printRecord(out, n)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&parity, "parity", 10, "Parity bucket of the start knot")
	cmd.Flags().IntVar(&rank, "rank", 1, "1-based rank of the start knot inside its bucket")
	return cmd
}

func newRetrieveCmd(gf *globalFlags) *cobra.Command {
	var parity, rank int
	cmd := &cobra.Command{
		Use:   "retrieve FULL GOOD",
		Short: "Find a good knot inside the full dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, good, _, err := gf.loadPair(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			best, err := analysis.Pick(good, parity, rank)
			if err != nil {
				return err
			}
			eq, ok := analysis.Retrieve(full, best)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%v not in full dataset\n", best.Angles)
				return nil
			}
			printRecord(cmd.OutOrStdout(), eq)
			return nil
		},
	}
	cmd.Flags().IntVar(&parity, "parity", 10, "Parity bucket of the good knot")
	cmd.Flags().IntVar(&rank, "rank", 1, "1-based rank of the good knot inside its bucket")
	return cmd
}

func newGoodAdjacencyCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "good-adjacency FULL GOOD",
		Short: "Count the good neighbors of every good knot inside the full dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, good, _, err := gf.loadPair(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			rep := analysis.GoodAdjacency(full, good)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "good neighbors: %d\n", rep.Total)
			fmt.Fprintf(out, "distinct neighbors: %d (%d in dataset)\n", rep.Distinct, rep.DistinctKnown)
			fmt.Fprintf(out, "mean per good knot: %.4f\n", rep.Mean())
			if rep.Missing > 0 {
				fmt.Fprintf(out, "good knots missing from full dataset: %d\n", rep.Missing)
			}
			return nil
		},
	}
}

func newTopAdjacencyCmd(gf *globalFlags) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "top-adjacency GOOD",
		Short: "Count ordered pairs of good knots one move apart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, _, err := gf.loadOne(cmd, args[0])
			if err != nil {
				return err
			}
			pairs := analysis.TopAdjacency(ix)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "adjacent pairs: %d\n", len(pairs))
			if list {
				for _, p := range pairs {
					fmt.Fprintf(out, "  %v -> %v\n", p.From.Angles, p.To.Angles)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Print every pair")
	return cmd
}

func newDistanceCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "distance-from-good FULL GOOD",
		Short: "Report the largest move distance from a full-dataset knot to its nearest good knot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, good, _, err := gf.loadPair(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			rep, err := analysis.DistanceFromGood(full, good)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "max distance: %d\n", rep.Max)
			fmt.Fprintf(out, "measured knots: %d\n", len(rep.Distances))
			if rep.Unmatched > 0 {
				fmt.Fprintf(out, "knots without a good knot of their parity: %d\n", rep.Unmatched)
			}
			return nil
		},
	}
}

func newComponentsCmd(gf *globalFlags) *cobra.Command {
	var parity int
	var costBelow float64
	cmd := &cobra.Command{
		Use:   "components DATASET",
		Short: "List the islands of dataset knots connected by single moves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, _, err := gf.loadOne(cmd, args[0])
			if err != nil {
				return err
			}
			opts := []movegraph.Option{movegraph.WithCostBelow(costBelow)}
			if parity >= 0 {
				opts = append(opts, movegraph.WithParity(parity))
			}
			g, err := movegraph.Build(ix, opts...)
			if err != nil {
				return err
			}
			comps := g.ConnectedComponents()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "knots: %d, moves: %d, components: %d\n", g.VertexCount(), g.EdgeCount(), len(comps))
			for i, c := range comps {
				fmt.Fprintf(out, "  component %d: %d knots, first [%s]\n", i, len(c), c[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&parity, "parity", -1, "Restrict to one parity bucket (-1 for all)")
	cmd.Flags().Float64Var(&costBelow, "cost-below", knot.SentinelCost, "Keep only knots cheaper than this")
	return cmd
}

func newWalkCmd(gf *globalFlags) *cobra.Command {
	var parity, rank, depth int
	var knownOnly bool
	cmd := &cobra.Command{
		Use:   "walk DATASET",
		Short: "Breadth-first walk of the move graph around a dataset knot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, log, err := gf.loadOne(cmd, args[0])
			if err != nil {
				return err
			}
			start, err := analysis.Pick(ix, parity, rank)
			if err != nil {
				return err
			}
			opts := []explore.Option{explore.WithContext(cmd.Context()), explore.WithMaxDepth(depth)}
			if knownOnly {
				opts = append(opts, explore.WithKnownOnly())
			}
			res, err := explore.Walk(ix, start, opts...)
			if err != nil {
				return err
			}
			log.LogQuery(cmd.Context(), "walk", start.Angles, len(res.Order))

			perDepth := map[int]int{}
			maxDepth := 0
			for _, r := range res.Order {
				d := res.Depth[r.Key()]
				perDepth[d]++
				if d > maxDepth {
					maxDepth = d
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "visited: %d (dataset %d, placeholders %d)\n",
				len(res.Order), res.Known.GetCardinality(), res.Placeholders())
			for d := 0; d <= maxDepth; d++ {
				fmt.Fprintf(out, "  depth %d: %d\n", d, perDepth[d])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&parity, "parity", 10, "Parity bucket of the start knot")
	cmd.Flags().IntVar(&rank, "rank", 1, "1-based rank of the start knot inside its bucket")
	cmd.Flags().IntVar(&depth, "depth", 2, "Maximum number of moves (0 = unlimited, needs --known-only)")
	cmd.Flags().BoolVar(&knownOnly, "known-only", false, "Do not expand placeholders")
	return cmd
}

func newCheapestCmd(gf *globalFlags) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "cheapest DATASET",
		Short: "Cheapest move path between two dataset knots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseAngles(from)
			if err != nil {
				return err
			}
			dst, err := parseAngles(to)
			if err != nil {
				return err
			}
			ix, _, err := gf.loadOne(cmd, args[0])
			if err != nil {
				return err
			}
			a, ok := ix.Lookup(src)
			if !ok {
				return fmt.Errorf("knot %v is not in the dataset", src)
			}
			g, err := movegraph.Build(ix, movegraph.WithParity(a.Parity))
			if err != nil {
				return err
			}
			path, total, err := dijkstra.CheapestPath(g, knot.Key(src), knot.Key(dst))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "moves: %d, cost: %g\n", len(path)-1, total)
			for _, k := range path {
				r, _ := g.Record(k)
				printRecord(out, r)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start angle vector, e.g. 0,0,0")
	cmd.Flags().StringVar(&to, "to", "", "Target angle vector")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
