// Package render turns query results into text for the terminal or for other
// programs. The core never formats anything itself.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alpkeskin/gotoon"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/slipbox/pkg/core"
)

// Format selects an output encoding.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatToon   Format = "toon"
)

// Formats lists every supported format, default first.
var Formats = []Format{FormatPretty, FormatText, FormatJSON, FormatYAML, FormatToon}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatPretty, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (one of: %s)", s, joinFormats())
}

func joinFormats() string {
	parts := make([]string, len(Formats))
	for i, f := range Formats {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

// Notes writes a list of notes.
func Notes(w io.Writer, f Format, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}

	switch f {
	case FormatPretty, "":
		return prettyNotes(w, notes)
	case FormatText:
		return textNotes(w, notes)
	default:
		return Encode(w, f, notes)
	}
}

// Tree writes the neighborhood of a note.
func Tree(w io.Writer, f Format, tree core.Tree) error {
	switch f {
	case FormatPretty, "":
		return prettyTree(w, tree)
	case FormatText:
		return textTree(w, tree)
	default:
		return Encode(w, f, tree)
	}
}

// Encode writes v in one of the structured formats (json, yaml or toon).
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()

	case FormatToon:
		output, err := gotoon.Encode(v)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		_, err = fmt.Fprintln(w, output)
		return err
	}

	return fmt.Errorf("unknown format %q", f)
}
