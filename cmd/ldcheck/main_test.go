package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRunSchemaRendersJSONSchema(t *testing.T) {
	shapePath := filepath.Join(t.TempDir(), "shape.yaml")
	if err := os.WriteFile(shapePath, []byte("minLength: 2\nmaxLength: 10\n"), 0o644); err != nil {
		t.Fatalf("writing shape fixture: %v", err)
	}

	out, restore := capturedStdout(t)
	if err := run(shapePath, "https://example.org/", false, false, true); err != nil {
		t.Fatalf("run with -schema failed: %v", err)
	}
	restore()

	var schema map[string]any
	if err := json.Unmarshal(out(), &schema); err != nil {
		t.Fatalf("expected valid JSON Schema output, got error %v: %s", err, out())
	}
	if schema["minLength"] != float64(2) || schema["maxLength"] != float64(10) {
		t.Fatalf("expected minLength/maxLength to carry through, got %v", schema)
	}
}

func TestRunSchemaRequiresShape(t *testing.T) {
	if err := run("", "https://example.org/", false, false, true); err == nil {
		t.Fatalf("expected -schema without -shape to fail")
	}
}

// capturedStdout redirects os.Stdout for the duration of the test, returning
// a reader for everything written and a restore function.
func capturedStdout(t *testing.T) (read func() []byte, restore func()) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	return func() []byte {
			buf := make([]byte, 0, 4096)
			chunk := make([]byte, 4096)
			for {
				n, err := r.Read(chunk)
				buf = append(buf, chunk[:n]...)
				if err != nil {
					break
				}
			}
			return buf
		}, func() {
			os.Stdout = orig
			w.Close()
		}
}
