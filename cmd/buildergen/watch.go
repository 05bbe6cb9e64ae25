package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/syssam/buildergen/compiler"
	"github.com/syssam/buildergen/compiler/gen"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	var (
		flags    genFlags
		dirs     []string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [packages]",
		Short: "Regenerate builders whenever Go sources change",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := readConfig(g.config)
			if err != nil {
				return err
			}
			flags.merge(cmd.Flags(), fc)
			cfg, err := newConfig(g, fc)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			return compiler.Watch(ctx, cfg, &compiler.WatchConfig{
				Dirs:     dirs,
				Debounce: debounce,
				OnReport: func(r *gen.Report, err error) {
					if err != nil {
						printError(errOut, err)
						return
					}
					// Failed rounds are printed; watching goes on.
					_ = printReport(out, r)
				},
			}, patterns(args), fc.loadOptions()...)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "directories to watch (default current directory)")
	cmd.Flags().DurationVar(&debounce, "debounce", compiler.DefaultDebounce, "quiet period before regenerating")
	return cmd
}
