package load

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/buildergen"
)

// ErrUnsupportedVersion is returned for batches written in a descriptor
// format the generator does not know.
var ErrUnsupportedVersion = errors.New("load: unsupported descriptor version")

// Format is the encoding of a descriptor batch.
type Format string

// Supported batch formats.
const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatMsgpack:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("load: unknown batch format %q; use yaml, json, or msgpack", s)
	}
}

// FormatOf guesses the batch format from a file extension.
// Unknown extensions default to YAML.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".msgpack", ".mp":
		return FormatMsgpack
	default:
		return FormatYAML
	}
}

// Batch is a set of marked elements handed over by a host that does its own
// introspection. It lets non-Go hosts drive the generator with plain data.
type Batch struct {
	Version  int        `json:"version" yaml:"version"`
	Elements []*Element `json:"elements" yaml:"elements"`
}

// ReadBatch decodes a descriptor batch and returns its elements.
func ReadBatch(r io.Reader, format Format) ([]*Element, error) {
	var b Batch
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&b); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("load: decoding yaml batch: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&b); err != nil {
			return nil, fmt.Errorf("load: decoding json batch: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("load: decoding msgpack batch: %w", err)
		}
	default:
		return nil, fmt.Errorf("load: unknown batch format %q", format)
	}
	switch {
	case b.Version == 0:
		return nil, fmt.Errorf("%w: batch has no version", ErrUnsupportedVersion)
	case b.Version > buildergen.DescriptorVersion:
		return nil, fmt.Errorf("%w: %d (latest supported is %d)", ErrUnsupportedVersion, b.Version, buildergen.DescriptorVersion)
	}
	for i, el := range b.Elements {
		if el == nil || el.Name == "" {
			return nil, fmt.Errorf("load: element %d has no name", i)
		}
	}
	return b.Elements, nil
}

// WriteBatch encodes elements as a batch of the current descriptor version.
func WriteBatch(w io.Writer, format Format, elems []*Element) error {
	b := &Batch{Version: buildergen.DescriptorVersion, Elements: elems}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("load: encoding yaml batch: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(b)
	default:
		return fmt.Errorf("load: unknown batch format %q", format)
	}
}
