package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/wyfcoding/treeops/bootstrap"
	"github.com/wyfcoding/treeops/logging"
	"github.com/wyfcoding/treeops/opstream"
	"github.com/wyfcoding/treeops/rootedtree"
	"github.com/wyfcoding/treeops/xerrors"
)

const serviceName = "treeops"

type cliState struct {
	configPath string
	boot       *bootstrap.Bootstrapper
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Subtree affine updates and path queries on a static rooted tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			st.boot = bootstrap.New(serviceName, version)
			return st.boot.Initialize(st.configPath)
		},
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "configs/treeops.toml", "path to config file")

	root.AddCommand(newRunCmd(st), newCheckCmd(st), newVersionCmd())
	return root
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func loadProblem(st *cliState, path string) (*opstream.Problem, error) {
	in, err := openInput(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, xerrors.New(xerrors.ErrNotFound, 404, "input not found", path, err)
	}
	if err != nil {
		return nil, xerrors.Internal("open input", err).WithDetail("%s", path)
	}
	defer in.Close()
	return opstream.Parse(in, st.boot.Config.Engine.MaxNodes)
}

func buildOptions(st *cliState, extra ...rootedtree.Option) []rootedtree.Option {
	opts := append([]rootedtree.Option{rootedtree.WithLogger(st.boot.Logger.Named("engine"))}, extra...)
	if !st.boot.Config.Engine.Validate {
		opts = append(opts, rootedtree.WithSkipValidation())
	}
	return opts
}

func newRunCmd(st *cliState) *cobra.Command {
	var input, output, mode, metricsPort string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute an operation stream and print one line per query",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := st.boot.Config
			defer logging.LogDuration(ctx, "run", "input", input)()

			stopTracing := st.boot.SetupTracing()
			defer stopTracing()
			em, stopMetrics := st.boot.SetupMetrics(metricsPort)
			defer stopMetrics()

			p, err := loadProblem(st, input)
			if err != nil {
				return err
			}
			engine, err := p.Build(buildOptions(st, rootedtree.WithMetrics(em))...)
			if err != nil {
				return err
			}

			if mode == "" {
				mode = cfg.Engine.PathMode
			}
			runner, err := opstream.NewRunner(engine, mode, st.boot.Logger.Named("runner"), em)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return xerrors.Internal("create output", err).WithDetail("%s", output)
				}
				defer f.Close()
				out = f
			}

			stats, err := runner.Run(ctx, p.Ops, out)
			if ctx.Err() != nil {
				logging.Warn(ctx, "run interrupted", "updates", stats.Updates, "queries", stats.Queries, "total", len(p.Ops))
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (default stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&mode, "mode", "", "path query mode: inclusion_exclusion or sum (default from config)")
	cmd.Flags().StringVar(&metricsPort, "metrics-port", "", "expose prometheus metrics on this port while running")
	return cmd
}

func newCheckCmd(st *cliState) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse the input and build the tree without executing operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			defer logging.LogDuration(ctx, "check", "input", input)()

			p, err := loadProblem(st, input)
			if err != nil {
				return err
			}
			engine, err := p.Build(buildOptions(st)...)
			if err != nil {
				return err
			}
			logging.Debug(ctx, "tree checked", "nodes", engine.Size(), "height", engine.Height())
			fmt.Fprintf(cmd.OutOrStdout(), "nodes=%d root=%d height=%d ops=%d\n",
				engine.Size(), engine.Root()+1, engine.Height(), len(p.Ops))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (default stdin)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:              "version",
		Short:            "Print the version",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), serviceName, version)
		},
	}
}
