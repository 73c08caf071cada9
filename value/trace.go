package value

// trace accumulates validation failures keyed by the path at which they
// were raised, preserving the order paths were first touched. Validate
// reifies it into a trace Value: Nil when empty, else an Object mapping
// path to an Array of issue Objects, each carrying "rule" and "message"
// (a custom constraint's fragment Objects are recorded as returned).
type trace struct {
	order []string
	byKey map[string][]Value
}

func newTrace() *trace {
	return &trace{byKey: map[string][]Value{}}
}

func (t *trace) add(path, rule, message string) {
	if _, ok := t.byKey[path]; !ok {
		t.order = append(t.order, path)
	}
	issue := NewObject().Set("rule", String(rule)).Set("message", String(message))
	t.byKey[path] = append(t.byKey[path], issue)
}

func (t *trace) absorb(fragment Value, path string) {
	switch v := fragment.(type) {
	case Nil:
		return
	case Object:
		if v.IsEmpty() {
			return
		}
		if _, ok := t.byKey[path]; !ok {
			t.order = append(t.order, path)
		}
		t.byKey[path] = append(t.byKey[path], v)
	case Array:
		if v.IsEmpty() {
			return
		}
		for _, item := range v.Items() {
			t.absorb(item, path)
		}
	}
}

func (t *trace) empty() bool { return len(t.order) == 0 }

// result materializes the accumulated failures, or Nothing if none were
// recorded — the "empty trace means success" contract.
func (t *trace) result() Value {
	if t.empty() {
		return Nothing
	}
	out := NewObject()
	for _, path := range t.order {
		out = out.Set(path, NewArray(t.byKey[path]...))
	}
	return out
}
