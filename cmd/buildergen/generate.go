package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/buildergen/compiler"
	"github.com/syssam/buildergen/compiler/gen"
)

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var (
		flags  genFlags
		batch  string
		format string
	)
	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Generate builders for marked types",
		Long: `Generate loads the given Go packages (default ".") and writes a
<type>_builder.go file next to every struct marked with //buildergen:builder.

With --batch, elements are read from a descriptor batch instead ("-" reads
standard input).`,
		Example: `  buildergen generate ./...
  buildergen generate --strict --article grammatical ./models
  buildergen generate --lang java --out gen --batch elements.yaml`,
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

			var report *gen.Report
			if batch != "" {
				if format == "" {
					format = fc.Format
				}
				report, err = generateBatch(cmd, cfg, batch, format)
			} else {
				report, err = compiler.Generate(cmd.Context(), cfg, patterns(args), fc.loadOptions()...)
			}
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&batch, "batch", "", "read elements from a descriptor batch file")
	cmd.Flags().StringVar(&format, "format", "", "batch format (yaml|json|msgpack), default by file extension")
	return cmd
}

func generateBatch(cmd *cobra.Command, cfg *gen.Config, path, format string) (*gen.Report, error) {
	f, err := batchFormat(format, path)
	if err != nil {
		return nil, err
	}
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	return compiler.GenerateBatch(cmd.Context(), cfg, r, f)
}

// newConfig creates the generator config of a command.
func newConfig(g *globalFlags, fc *fileConfig) (*gen.Config, error) {
	opts, err := fc.options()
	if err != nil {
		return nil, err
	}
	return gen.NewConfig(append(opts, gen.WithLogger(g.logger()))...)
}

func patterns(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
