package value

import "github.com/meshcore/ld/internal/lex"

// URI is an absolute or relative URI. Its lexical form is stored exactly as
// given; relativization against a base happens at encode time, resolution
// at decode time.
type URI struct{ s string }

// NewURI wraps s as a URI value without resolving it against any base.
func NewURI(s string) URI { return URI{s: s} }

func (u URI) Kind() Kind { return KindURI }

// Encode produces a root-relative form when scheme+authority match base.
func (u URI) Encode(base string) string {
	return lex.Relativize(base, u.s)
}
func (u URI) Equal(other Value) bool {
	o, ok := other.(URI)
	return ok && o.s == u.s
}

// String returns the raw lexical form as stored (not relativized).
func (u URI) String() string { return u.s }

// DecodeURI resolves s against base. The empty string resolves to itself
// (preserved as the "default/empty" URI).
func DecodeURI(base, s string) (Value, bool) {
	return URI{s: lex.Resolve(base, s)}, true
}
