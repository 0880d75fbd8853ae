// Command knotgraph loads knot datasets and reports on their move graph.
//
//	knotgraph neighbors all_knots.json --parity 10 --rank 1
//	knotgraph good-adjacency all_knots.json top_100.json
//	knotgraph distance-from-good all_knots.json top_100.json
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/knotgraph/dataset"
	"github.com/katalvlaran/knotgraph/internal/logging"
	"github.com/katalvlaran/knotgraph/knot"
)

var version = "0.1.0-dev"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	logLevel    string
	logFormat   string
	parityCheck bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "knotgraph",
		Short: "Explore the move graph of discretized knot datasets",
		Long: `knotgraph indexes knot datasets by angle parity and answers questions
about configurations one elementary move apart: which neighbors exist,
how many of them are cheap, and how far the dataset strays from a set of
good knots.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&gf.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&gf.logFormat, "log-format", "text", "Log format: text|json")
	rootCmd.PersistentFlags().BoolVar(&gf.parityCheck, "check-parity", false, "Reject knots whose declared parity differs from their angle sum")

	rootCmd.AddCommand(
		newNeighborsCmd(gf),
		newRetrieveCmd(gf),
		newGoodAdjacencyCmd(gf),
		newTopAdjacencyCmd(gf),
		newDistanceCmd(gf),
		newComponentsCmd(gf),
		newWalkCmd(gf),
		newCheapestCmd(gf),
	)
	return rootCmd
}

// logger builds the logger selected by the persistent flags; logs go to the
// command's error stream so that stdout carries only results.
func (gf *globalFlags) logger(cmd *cobra.Command) (*logging.Logger, error) {
	level, err := logging.ParseLevel(gf.logLevel)
	if err != nil {
		return nil, err
	}
	switch gf.logFormat {
	case "text":
		return logging.NewTextLogger(cmd.ErrOrStderr(), level), nil
	case "json":
		return logging.NewJSONLogger(cmd.ErrOrStderr(), level), nil
	}
	return nil, fmt.Errorf("unknown log format %q (want text or json)", gf.logFormat)
}

func (gf *globalFlags) loadOptions(cmd *cobra.Command) ([]dataset.Option, *logging.Logger, error) {
	log, err := gf.logger(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts := []dataset.Option{dataset.WithLogger(log)}
	if gf.parityCheck {
		opts = append(opts, dataset.WithParityCheck())
	}
	return opts, log, nil
}

// loadOne loads a single dataset.
func (gf *globalFlags) loadOne(cmd *cobra.Command, path string) (*knot.Index, *logging.Logger, error) {
	opts, log, err := gf.loadOptions(cmd)
	if err != nil {
		return nil, nil, err
	}
	ix, err := dataset.Load(cmd.Context(), path, opts...)
	return ix, log, err
}

// loadPair loads the full and the good dataset side by side.
func (gf *globalFlags) loadPair(cmd *cobra.Command, fullPath, goodPath string) (full, good *knot.Index, log *logging.Logger, err error) {
	opts, log, err := gf.loadOptions(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		full, err = dataset.Load(ctx, fullPath, opts...)
		return err
	})
	eg.Go(func() error {
		var err error
		good, err = dataset.Load(ctx, goodPath, opts...)
		return err
	})
	if err = eg.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return full, good, log, nil
}

// parseAngles reads a comma separated angle vector such as "1,15,0".
func parseAngles(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("bad angle vector %q: %w", s, err)
		}
		out = append(out, v)
	}
	return out, nil
}
