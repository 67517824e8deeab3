// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	goio "io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sunwhale/pyfem2/fem"
	"github.com/sunwhale/pyfem2/inp"
	"github.com/sunwhale/pyfem2/out"

	_ "github.com/sunwhale/pyfem2/ele/solid"
)

// styles
var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleError = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167"))
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, styleError.Render("ERROR:"), err)
		os.Exit(1)
	}
}

// newRootCmd returns the root command with all subcommands
func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "pyfem2",
		Short:         "pyfem2 runs finite element analyses described in TOML files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	logger := func() *log.Logger {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		return newLogger(os.Stderr, level)
	}
	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newCheckCmd())
	return root
}

// newLogger creates a new logger with timestamps
func newLogger(w goio.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// newRunCmd returns the command running a simulation
func newRunCmd(logger func() *log.Logger) *cobra.Command {
	var nworkers int
	cmd := &cobra.Command{
		Use:   "run <simfile.toml>",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			// input
			sim, err := inp.ReadSim(args[0])
			if err != nil {
				return err
			}
			if nworkers > 0 {
				sim.Data.Nworkers = nworkers
			}
			runId := uuid.New().String()
			l := logger().With("run", runId[:8])
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, styleTitle.Render("pyfem2 -- "+sim.Data.Title))
			fmt.Fprintln(w, styleDim.Render("run "+runId))

			// allocate
			m, err := fem.NewMain(sim, l)
			if err != nil {
				return err
			}
			mgr, err := out.NewManager(m.Glob, &sim.Output, l)
			if err != nil {
				return err
			}
			m.Observers = append(m.Observers, mgr)

			// run
			if err = m.Run(cmd.Context()); err != nil {
				return err
			}
			return mgr.Finish(m.Glob, w)
		},
	}
	cmd.Flags().IntVarP(&nworkers, "nworkers", "n", 0, "number of workers computing element contributions; 0 => from file")
	return cmd
}

// newCheckCmd returns the command validating a simulation file without running it
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <simfile.toml>",
		Short: "read and validate simulation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := inp.ReadSim(args[0])
			if err != nil {
				return err
			}
			m, err := fem.NewMain(sim, nil)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, styleTitle.Render("pyfem2 -- "+sim.Data.Title))
			fmt.Fprint(w, sim.GetInfo())
			fmt.Fprint(w, m.Glob.Nodes)
			fmt.Fprint(w, m.Glob.Elems)
			fmt.Fprint(w, m.Glob.Dofs.Cons)
			fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("dofs = %d, solver = %q", m.Glob.Dofs.Ndofs(), sim.Solver.Type)))
			return nil
		},
	}
}
