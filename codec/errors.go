package codec

import "github.com/meshcore/ld/value"

// semanticf builds a CodecSemanticError: unknown property under a shape,
// unexpected/duplicate keyword fields, wrong type at id/type, nested
// arrays or nulls in shaped arrays.
func semanticf(format string, args ...any) error {
	return value.NewCodecError(format, args...)
}
