package value

// String is Unicode text with no language or datatype annotation.
type String string

func (s String) Kind() Kind                { return KindString }
func (s String) Encode(base string) string { return string(s) }
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && o == s
}

// DecodeString accepts any string as its own lexical form.
func DecodeString(base, s string) (Value, bool) {
	return String(s), true
}
