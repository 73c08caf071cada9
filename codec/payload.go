package codec

import (
	"bytes"
	"encoding/base64"
	"net/url"

	"github.com/buger/jsonparser"
)

// UnwrapPayload transparently detects and decodes Base64-wrapped and
// URL-encoded JSON payloads prior to parsing, per the query-parsing
// contract that such wrapping is accepted wherever raw JSON is.
func UnwrapPayload(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if looksLikeJSON(trimmed) {
		return trimmed
	}

	if decoded, ok := tryBase64(trimmed); ok && looksLikeJSON(decoded) {
		return decoded
	}

	if unescaped, err := url.QueryUnescape(string(trimmed)); err == nil {
		candidate := bytes.TrimSpace([]byte(unescaped))
		if looksLikeJSON(candidate) {
			return candidate
		}
	}

	return trimmed
}

func looksLikeJSON(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	_, err := jsonparser.GetType(b)
	switch b[0] {
	case '[', '{':
		return err == nil || err == jsonparser.KeyPathNotFoundError
	default:
		return false
	}
}

func tryBase64(b []byte) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if out, err := enc.DecodeString(string(b)); err == nil {
			return out, true
		}
	}
	return nil, false
}
