package gen

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/syssam/buildergen"
)

// Language selects the syntax of generated builders.
type Language string

// Supported output languages.
const (
	LanguageGo   Language = "go"
	LanguageJava Language = "java"
)

// Article selects the article prefixed to factory method names.
type Article uint8

const (
	// ArticleFixed always prefixes "a", e.g. aUser and aApple.
	// Generated code consumers may depend on this exact naming.
	ArticleFixed Article = iota

	// ArticleGrammatical prefixes "an" before vowels, e.g. anApple.
	ArticleGrammatical
)

// String implements the fmt.Stringer interface.
func (a Article) String() string {
	if a == ArticleGrammatical {
		return "grammatical"
	}
	return "fixed"
}

// ParseArticle parses an article mode name.
func ParseArticle(s string) (Article, error) {
	switch strings.ToLower(s) {
	case "", "fixed":
		return ArticleFixed, nil
	case "grammatical":
		return ArticleGrammatical, nil
	default:
		return 0, NewConfigError("Article", s, "unsupported article; use fixed or grammatical")
	}
}

// Config holds the generator configuration. It is read-only once a Driver
// is created from it.
type Config struct {
	// Language selects the built-in emitter. Defaults to LanguageGo.
	Language Language
	// Emitter overrides the built-in emitter for Language.
	Emitter Emitter
	// Filer receives artifact writes. Defaults to a DirFiler rooted at OutputDir.
	Filer Filer
	// OutputDir is the root for relative artifact paths.
	OutputDir string
	// Header is an extra comment placed under the generated-code header.
	Header string
	// ConstructorPrefix names the target constructor invoked by Build.
	// Defaults to "New" (Go output only).
	ConstructorPrefix string
	// CheckConstructor validates the target constructor against the
	// included fields before emitting.
	CheckConstructor bool
	// Article selects the factory method article.
	Article Article
	// Workers bounds per-round parallelism. Defaults to 1.
	Workers int
	// Logger receives round and diagnostic logs. Defaults to a discarding logger.
	Logger *slog.Logger
	// Marker is the directive marking declarations for generation.
	// Defaults to buildergen.Marker.
	Marker string
}

// Option configures code generation.
type Option func(*Config) error

// WithLanguage sets the output language.
// Supported languages: "go", "java".
func WithLanguage(lang string) Option {
	return func(c *Config) error {
		switch l := Language(strings.ToLower(lang)); l {
		case LanguageGo, LanguageJava:
			c.Language = l
			return nil
		default:
			return NewConfigError("Language", lang, "unsupported language; use go or java")
		}
	}
}

// WithEmitter sets a custom emitter.
// This allows rendering builders for other target syntaxes.
func WithEmitter(e Emitter) Option {
	return func(c *Config) error {
		if e == nil {
			return NewConfigError("Emitter", nil, "emitter cannot be nil")
		}
		c.Emitter = e
		return nil
	}
}

// WithFiler sets the destination of artifact writes.
func WithFiler(f Filer) Option {
	return func(c *Config) error {
		if f == nil {
			return NewConfigError("Filer", nil, "filer cannot be nil")
		}
		c.Filer = f
		return nil
	}
}

// WithOutputDir sets the root directory for relative artifact paths.
func WithOutputDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("OutputDir", nil, "output directory cannot be empty")
		}
		c.OutputDir = dir
		return nil
	}
}

// WithHeader sets an extra file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithConstructorPrefix sets the prefix of the constructor Build calls.
func WithConstructorPrefix(prefix string) Option {
	return func(c *Config) error {
		if prefix == "" {
			return NewConfigError("ConstructorPrefix", nil, "constructor prefix cannot be empty")
		}
		c.ConstructorPrefix = prefix
		return nil
	}
}

// WithConstructorCheck enables constructor shape validation.
// Elements whose constructor does not take exactly the included fields,
// in order, fail with a structural error instead of producing code that
// does not compile.
func WithConstructorCheck() Option {
	return func(c *Config) error {
		c.CheckConstructor = true
		return nil
	}
}

// WithArticle sets the factory method article mode.
func WithArticle(a Article) Option {
	return func(c *Config) error {
		if a > ArticleGrammatical {
			return NewConfigError("Article", a, "unsupported article")
		}
		c.Article = a
		return nil
	}
}

// WithWorkers sets the number of elements processed in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithMarker sets the directive marking declarations for generation,
// e.g. "gen:builder" for a //gen:builder doc comment line.
func WithMarker(marker string) Option {
	return func(c *Config) error {
		m := strings.TrimPrefix(marker, "//")
		if m == "" || strings.ContainsAny(m, " \t\n") {
			return NewConfigError("Marker", marker, "marker must be a single non-empty word")
		}
		c.Marker = m
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// constructorPrefix returns the configured constructor prefix or the default.
func (c *Config) constructorPrefix() string {
	if c.ConstructorPrefix == "" {
		return "New"
	}
	return c.ConstructorPrefix
}

// marker returns the configured marker or the default.
func (c *Config) marker() string {
	if c.Marker == "" {
		return buildergen.Marker
	}
	return c.Marker
}

// workers returns the configured worker count or the default.
func (c *Config) workers() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}

// logger returns the configured logger or a discarding one.
func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
