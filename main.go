package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-management/cli"
	"library-management/library"
)

type options struct {
	loanDays      int
	extensionDays int
	maxCheckouts  int
	finePerDay    int
	emptyCatalog  bool
	verbose       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := library.DefaultPolicy()
	opts := options{
		loanDays:      int(defaults.LoanPeriod / (24 * time.Hour)),
		extensionDays: int(defaults.ExtensionPeriod / (24 * time.Hour)),
		maxCheckouts:  defaults.MaxCheckouts,
		finePerDay:    defaults.FinePerDay,
	}

	cmd := &cobra.Command{
		Use:   "library",
		Short: "In-memory library catalog manager",
		Long: `An in-memory library: catalog, user registration, checkouts, returns
and overdue fines, driven from a numbered menu. Nothing is saved on exit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.loanDays, "loan-days", opts.loanDays, "days a book may be kept")
	f.IntVar(&opts.extensionDays, "extension-days", opts.extensionDays, "days added by a due date extension")
	f.IntVar(&opts.maxCheckouts, "max-checkouts", opts.maxCheckouts, "books a user may hold at once")
	f.IntVar(&opts.finePerDay, "fine-per-day", opts.finePerDay, "fine charged per overdue day")
	f.BoolVar(&opts.emptyCatalog, "empty-catalog", false, "start without the sample books")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every operation to stderr")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	policy := library.Policy{
		LoanPeriod:      time.Duration(opts.loanDays) * 24 * time.Hour,
		ExtensionPeriod: time.Duration(opts.extensionDays) * 24 * time.Hour,
		MaxCheckouts:    opts.maxCheckouts,
		FinePerDay:      opts.finePerDay,
	}

	libOpts := []library.Option{library.WithPolicy(policy), library.WithLogger(logger)}
	if opts.emptyCatalog {
		libOpts = append(libOpts, library.WithCatalog())
	}
	lib, err := library.NewService(libOpts...)
	if err != nil {
		return fmt.Errorf("start library: %w", err)
	}

	in := cmd.InOrStdin()
	interactive := isTerminal(in)
	out := cmd.OutOrStdout()
	if interactive {
		fmt.Fprintln(out, "Welcome to the Library Management System!")
		fmt.Fprintln(out, "All data is kept in memory and lost on exit.")
	}
	return cli.NewMenu(lib, in, out, interactive).Run()
}

// isTerminal reports whether r is a file attached to a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
