package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/syssam/buildergen"
	"github.com/syssam/buildergen/compiler"
	"github.com/syssam/buildergen/compiler/gen"
	"github.com/syssam/buildergen/compiler/load"
)

// defaultConfigFile is read when --config is not set and the file exists.
const defaultConfigFile = "buildergen.yaml"

// fileConfig is the content of a buildergen.yaml file. Command line flags
// take precedence over it.
type fileConfig struct {
	Language          string   `yaml:"language"`
	Out               string   `yaml:"out"`
	Header            string   `yaml:"header"`
	ConstructorPrefix string   `yaml:"constructor_prefix"`
	Strict            bool     `yaml:"strict"`
	Article           string   `yaml:"article"`
	Workers           int      `yaml:"workers"`
	Tags              []string `yaml:"tags"`
	Format            string   `yaml:"format"`
	Marker            string   `yaml:"marker"`
}

// readConfig reads the config file at path. A missing default file yields
// an empty config; a missing explicit file is an error.
func readConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return &fileConfig{}, nil
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	}
	fc := &fileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

// genFlags are the generation flags shared by generate and watch.
type genFlags struct {
	lang    string
	out     string
	header  string
	prefix  string
	strict  bool
	article string
	workers int
	tags    []string
	marker  string
}

func (f *genFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.lang, "lang", "go", "output language (go|java)")
	flags.StringVar(&f.out, "out", "", "root directory for relative artifact paths")
	flags.StringVar(&f.header, "header", "", "extra header comment for generated files")
	flags.StringVar(&f.prefix, "constructor-prefix", "New", "prefix of the constructor Build calls")
	flags.BoolVar(&f.strict, "strict", false, "fail elements whose constructor does not match the builder fields")
	flags.StringVar(&f.article, "article", "fixed", "factory article (fixed|grammatical)")
	flags.IntVar(&f.workers, "workers", 1, "elements generated in parallel")
	flags.StringSliceVar(&f.tags, "tags", nil, "build tags used when loading packages")
	flags.StringVar(&f.marker, "marker", "", "directive marking declarations (default \""+buildergen.Marker+"\")")
}

// merge overlays the flags set on the command line onto the file config.
func (f *genFlags) merge(flags *pflag.FlagSet, fc *fileConfig) {
	if flags.Changed("lang") || fc.Language == "" {
		fc.Language = f.lang
	}
	if flags.Changed("out") {
		fc.Out = f.out
	}
	if flags.Changed("header") {
		fc.Header = f.header
	}
	if flags.Changed("constructor-prefix") || fc.ConstructorPrefix == "" {
		fc.ConstructorPrefix = f.prefix
	}
	if flags.Changed("strict") {
		fc.Strict = f.strict
	}
	if flags.Changed("article") || fc.Article == "" {
		fc.Article = f.article
	}
	if flags.Changed("workers") || fc.Workers == 0 {
		fc.Workers = f.workers
	}
	if flags.Changed("tags") {
		fc.Tags = f.tags
	}
	if flags.Changed("marker") {
		fc.Marker = f.marker
	}
}

// options returns the generator options of the config.
func (fc *fileConfig) options() ([]gen.Option, error) {
	article, err := gen.ParseArticle(fc.Article)
	if err != nil {
		return nil, err
	}
	opts := []gen.Option{
		gen.WithLanguage(fc.Language),
		gen.WithHeader(fc.Header),
		gen.WithArticle(article),
		gen.WithWorkers(fc.Workers),
	}
	if fc.Out != "" {
		opts = append(opts, gen.WithOutputDir(fc.Out))
	}
	if fc.Strict {
		opts = append(opts, gen.WithConstructorCheck())
	}
	return append(opts, fc.scanOptions()...), nil
}

// scanOptions returns the generator options that also steer package
// loading, so describe and generate agree on what is marked.
func (fc *fileConfig) scanOptions() []gen.Option {
	var opts []gen.Option
	if fc.Marker != "" {
		opts = append(opts, gen.WithMarker(fc.Marker))
	}
	if fc.ConstructorPrefix != "" {
		opts = append(opts, gen.WithConstructorPrefix(fc.ConstructorPrefix))
	}
	return opts
}

// loadOptions returns the package loading options of the config.
func (fc *fileConfig) loadOptions() []compiler.Option {
	var opts []compiler.Option
	if len(fc.Tags) > 0 {
		opts = append(opts, compiler.BuildFlags("-tags", strings.Join(fc.Tags, ",")))
	}
	return opts
}

// batchFormat returns the batch format of the file at path, honoring an
// explicit format.
func batchFormat(explicit, path string) (load.Format, error) {
	if explicit != "" {
		return load.ParseFormat(explicit)
	}
	return load.FormatOf(path), nil
}

