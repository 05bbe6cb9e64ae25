package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/buildergen"
)

var versionColor = color.New(color.FgCyan, color.Bold)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the buildergen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "buildergen %s (descriptor version %d, %s)\n",
				versionColor.Sprint(buildergen.Version), buildergen.DescriptorVersion, runtime.Version())
		},
	}
}
