// Command ldcheck decodes a JSON-LD document from stdin, optionally
// validates it against a YAML-described Shape, and writes the result back
// out as JSON: the re-encoded document, or the validation trace.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/meshcore/ld/codec"
	"github.com/meshcore/ld/value"
)

func main() {
	shapePath := flag.String("shape", "", "path to a YAML-described Shape to decode/validate against")
	base := flag.String("base", value.DefaultBase, "base URI for relative resolution")
	prune := flag.Bool("prune", false, "drop empty/nil fields on re-encode")
	validate := flag.Bool("validate", false, "print the validation trace instead of the re-encoded document")
	schema := flag.Bool("schema", false, "print the -shape's JSON Schema instead of reading a document from stdin")
	flag.Parse()

	if err := run(*shapePath, *base, *prune, *validate, *schema); err != nil {
		fmt.Fprintln(os.Stderr, "ldcheck:", err)
		os.Exit(1)
	}
}

func run(shapePath, base string, prune, wantTrace, wantSchema bool) error {
	var shape *value.Shape
	if shapePath != "" {
		raw, err := os.ReadFile(shapePath)
		if err != nil {
			return fmt.Errorf("reading shape: %w", err)
		}
		shape, err = value.FromYAML(raw)
		if err != nil {
			return fmt.Errorf("parsing shape: %w", err)
		}
	}

	if wantSchema {
		if shape == nil {
			return fmt.Errorf("-schema requires -shape")
		}
		encoded, err := json.MarshalIndent(shape.JSONSchema(), "", "  ")
		if err != nil {
			return fmt.Errorf("rendering schema: %w", err)
		}
		_, err = os.Stdout.Write(append(encoded, '\n'))
		return err
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	opts := codec.Options{Base: base, Prune: prune}
	doc, err := codec.Decode(raw, shape, opts)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	out := doc
	outShape := shape
	if wantTrace {
		out = value.Validate(doc, shape)
		outShape = nil
	}

	encoded, err := codec.Encode(out, outShape, opts)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	_, err = os.Stdout.Write(append(encoded, '\n'))
	return err
}
