package value

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/meshcore/ld/internal/lex"
)

// Data is an arbitrary typed literal: a lexical form tagged with a
// datatype URI that the built-in variants don't cover.
type Data struct {
	Datatype string
	Lexical  string
}

// NewData builds a Data value.
func NewData(datatype, lexical string) Data {
	return Data{Datatype: datatype, Lexical: lexical}
}

func (d Data) Kind() Kind { return KindData }

// Encode renders "value^^datatype", relativizing the datatype URI the same
// way a URI value would be.
func (d Data) Encode(base string) string {
	return d.Lexical + "^^" + lex.Relativize(base, d.Datatype)
}
func (d Data) Equal(other Value) bool {
	o, ok := other.(Data)
	return ok && o.Datatype == d.Datatype && o.Lexical == d.Lexical
}

// DecodeData parses "value^^datatype", resolving datatype against base.
func DecodeData(base, s string) (Value, bool) {
	idx := strings.LastIndex(s, "^^")
	if idx < 0 {
		return nil, false
	}
	datatype := lex.Resolve(base, s[idx+2:])
	return Data{Datatype: datatype, Lexical: s[:idx]}, true
}

// SniffMediaType detects the MIME type of base64-looking binary content
// carried as a Data literal's lexical form, returning ("", false) when the
// lexical isn't valid base64.
func SniffMediaType(lexical string) (string, bool) {
	raw, ok := decodeBase64Loose(lexical)
	if !ok {
		return "", false
	}
	mt := mimetype.Detect(raw)
	return mt.String(), true
}

func decodeBase64Loose(s string) ([]byte, bool) {
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, true
	}
	if raw, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return raw, true
	}
	return nil, false
}
