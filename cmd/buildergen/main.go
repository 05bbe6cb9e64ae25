// buildergen generates fluent builders for Go structs marked with the
// //buildergen:builder directive, or for descriptor batches handed over by
// other hosts.
//
//	go run github.com/syssam/buildergen/cmd/buildergen generate ./...
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/buildergen"
)

// errFailed is returned when a round reported ERROR diagnostics. The
// diagnostics are already printed.
var errFailed = errors.New("generation failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	config  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "buildergen",
		Short:         "Builder code generator",
		Long:          "buildergen generates <Type>Builder companions for marked struct types.",
		Version:       buildergen.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&g.config, "config", "", "config file (default buildergen.yaml, if present)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log every round and element")

	root.AddCommand(
		newGenerateCmd(g),
		newWatchCmd(g),
		newDescribeCmd(g),
		newVersionCmd(),
	)
	return root
}

// logger returns the CLI logger. Diagnostics are printed separately, so
// only warnings are logged unless verbose is set.
func (g *globalFlags) logger() *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
