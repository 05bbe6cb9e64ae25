package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/buildergen/compiler"
	"github.com/syssam/buildergen/compiler/gen"
	"github.com/syssam/buildergen/compiler/load"
)

func newDescribeCmd(g *globalFlags) *cobra.Command {
	var (
		format string
		tags   []string
		marker string
	)
	cmd := &cobra.Command{
		Use:   "describe [packages]",
		Short: "Print the marked declarations as a descriptor batch",
		Long: `Describe loads the given Go packages and prints their marked declarations
as a descriptor batch, the input format of "generate --batch".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := readConfig(g.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tags") {
				fc.Tags = tags
			}
			if cmd.Flags().Changed("marker") {
				fc.Marker = marker
			}
			cfg, err := gen.NewConfig(fc.scanOptions()...)
			if err != nil {
				return err
			}
			f, err := load.ParseFormat(format)
			if err != nil {
				return err
			}
			return compiler.Describe(cmd.Context(), cfg, cmd.OutOrStdout(), f, patterns(args), fc.loadOptions()...)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "batch format (yaml|json|msgpack)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "build tags used when loading packages")
	cmd.Flags().StringVar(&marker, "marker", "", "directive marking declarations")
	return cmd
}
