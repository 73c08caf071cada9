package codec

import (
	"github.com/mailru/easyjson/jwriter"

	"github.com/meshcore/ld/value"
)

// Encode renders v as JSON text, shape-driven when shape is non-nil:
// @id/@type aliasing, Text language-map collapsing, Data typed-literal
// shorthand, URI relativization, and — when opts.Prune holds — omission
// of Nil/empty-Object/empty-Array fields at any depth.
func Encode(v value.Value, shape *value.Shape, opts Options) ([]byte, error) {
	w := &jwriter.Writer{}
	if err := encodeField(w, v, shape, opts); err != nil {
		return nil, err
	}
	if w.Error != nil {
		return nil, w.Error
	}
	return w.Buffer.BuildBytes(), nil
}

// encodeField renders one value in field position: it intercepts the
// Text-array language-map shorthand before falling through to the
// variant-general encodeValue.
func encodeField(w *jwriter.Writer, v value.Value, shape *value.Shape, opts Options) error {
	if arr, ok := v.(value.Array); ok && shape != nil && shape.Datatype() != nil && shape.Datatype().Kind() == value.KindText {
		return encodeLanguageMap(w, arr, shape, opts)
	}
	return encodeValue(w, v, shape, opts)
}

func encodeValue(w *jwriter.Writer, v value.Value, shape *value.Shape, opts Options) error {
	switch t := v.(type) {
	case nil:
		w.RawString("null")
	case value.Nil:
		w.RawString("null")
	case value.Bit:
		w.Bool(bool(t))
	case value.Integral, value.Integer, value.Decimal, value.Floating:
		w.RawString(v.Encode(opts.Base))
	case value.String:
		w.String(string(t))
	case value.URI:
		w.String(t.Encode(opts.Base))
	case value.Temporal:
		w.String(t.Encode(opts.Base))
	case value.TemporalAmount:
		w.String(t.Encode(opts.Base))
	case value.Text:
		encodeTextObject(w, t)
	case value.Data:
		encodeDataLiteral(w, t, shape, opts)
	case value.Object:
		return encodeObject(w, t, shape, opts)
	case value.Array:
		return encodeArray(w, t, shape, opts)
	case value.Query:
		return encodeQuery(w, t, opts)
	case value.Specs:
		return encodeSpecs(w, t, opts)
	default:
		return semanticf("cannot encode value of kind %v", v.Kind())
	}
	return nil
}

func encodeTextObject(w *jwriter.Writer, t value.Text) {
	w.RawByte('{')
	w.String("@value")
	w.RawByte(':')
	w.String(t.S)
	w.RawByte(',')
	w.String("@language")
	w.RawByte(':')
	w.String(t.Locale)
	w.RawByte('}')
}

func encodeDataLiteral(w *jwriter.Writer, d value.Data, shape *value.Shape, opts Options) {
	if shape != nil && shape.Datatype() != nil {
		if known, ok := shape.Datatype().(value.Data); ok && known.Datatype == d.Datatype {
			w.String(d.Lexical)
			return
		}
	}
	w.RawByte('{')
	w.String("@value")
	w.RawByte(':')
	w.String(d.Lexical)
	w.RawByte(',')
	w.String("@type")
	w.RawByte(':')
	w.String(value.NewURI(d.Datatype).Encode(opts.Base))
	w.RawByte('}')
}

func encodeObject(w *jwriter.Writer, obj value.Object, shape *value.Shape, opts Options) error {
	if shape == nil {
		shape = obj.Shape()
	}
	w.RawByte('{')
	first := true
	comma := func() {
		if !first {
			w.RawByte(',')
		}
		first = false
	}

	if idField, ok := shape.IDField(); ok {
		if id, has := obj.ID(); has {
			comma()
			w.String(idField)
			w.RawByte(':')
			w.String(id.Encode(opts.Base))
		}
	}
	if typField, ok := shape.TypeField(); ok {
		if t, has := obj.Type(); has {
			comma()
			w.String(typField)
			w.RawByte(':')
			w.String(t)
		}
	}

	var fieldErr error
	obj.Range(func(name string, fv value.Value) bool {
		prop, declared := shape.Property(name)
		if shape != nil && !declared {
			return true // unknown fields included only when no shape is present
		}
		if declared && prop.Hidden {
			return true
		}
		if opts.Prune && isPruneable(fv) {
			return true
		}
		var fieldShape *value.Shape
		if declared {
			fieldShape = prop.Nested
		}
		comma()
		w.String(name)
		w.RawByte(':')
		if err := encodeField(w, fv, fieldShape, opts); err != nil {
			fieldErr = err
			return false
		}
		return true
	})
	if fieldErr != nil {
		return fieldErr
	}
	w.RawByte('}')
	return nil
}

func encodeArray(w *jwriter.Writer, arr value.Array, shape *value.Shape, opts Options) error {
	w.RawByte('[')
	for i, item := range arr.Items() {
		if i > 0 {
			w.RawByte(',')
		}
		if err := encodeValue(w, item, shape, opts); err != nil {
			return err
		}
	}
	w.RawByte(']')
	return nil
}

// encodeLanguageMap collapses an array of Text values into an object keyed
// by locale tag, per the shape-driven language-map shorthand. Repeated
// locales collapse to a single value under uniqueLang, else collect into
// a JSON array for that locale.
func encodeLanguageMap(w *jwriter.Writer, arr value.Array, shape *value.Shape, opts Options) error {
	type bucket struct {
		locale string
		values []string
	}
	var order []string
	byLocale := map[string]*bucket{}
	for _, item := range arr.Items() {
		t, ok := item.(value.Text)
		if !ok {
			return semanticf("non-Text value in a Text-shaped array")
		}
		locale := t.Locale
		b, ok := byLocale[locale]
		if !ok {
			b = &bucket{locale: locale}
			byLocale[locale] = b
			order = append(order, locale)
		}
		b.values = append(b.values, t.S)
	}

	w.RawByte('{')
	for i, locale := range order {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(locale)
		w.RawByte(':')
		b := byLocale[locale]
		if shape.UniqueLang() || len(b.values) == 1 {
			w.String(b.values[0])
		} else {
			w.RawByte('[')
			for j, s := range b.values {
				if j > 0 {
					w.RawByte(',')
				}
				w.String(s)
			}
			w.RawByte(']')
		}
	}
	w.RawByte('}')
	return nil
}

func encodeQuery(w *jwriter.Writer, q value.Query, opts Options) error {
	w.RawByte('[')
	w.RawByte('{')
	first := true
	comma := func() {
		if !first {
			w.RawByte(',')
		}
		first = false
	}
	var err error
	q.Criteria(func(expr value.Expression, crit value.Criterion) bool {
		if crit.Lt != nil {
			comma()
			w.String("<" + expr.String())
			w.RawByte(':')
			err = encodeValue(w, crit.Lt, nil, opts)
		}
		if crit.Lte != nil {
			comma()
			w.String("<=" + expr.String())
			w.RawByte(':')
			err = encodeValue(w, crit.Lte, nil, opts)
		}
		if crit.Gt != nil {
			comma()
			w.String(">" + expr.String())
			w.RawByte(':')
			err = encodeValue(w, crit.Gt, nil, opts)
		}
		if crit.Gte != nil {
			comma()
			w.String(">=" + expr.String())
			w.RawByte(':')
			err = encodeValue(w, crit.Gte, nil, opts)
		}
		if crit.Like != nil {
			comma()
			w.String("~" + expr.String())
			w.RawByte(':')
			w.String(*crit.Like)
		}
		if crit.Any != nil {
			comma()
			w.String("?" + expr.String())
			w.RawByte(':')
			switch {
			case len(crit.Any) == 0:
				w.String("*") // existential "any(path) = ∅"
			case len(crit.Any) == 1 && value.IsNil(crit.Any[0]):
				w.RawString("null") // "any(path) = {Nil}"
			default:
				err = encodeValue(w, value.NewArray(crit.Any...), nil, opts)
			}
		}
		if crit.Focus != nil {
			comma()
			w.String("!" + expr.String())
			w.RawByte(':')
			err = encodeValue(w, value.NewArray(crit.Focus...), nil, opts)
		}
		if crit.Order != nil {
			comma()
			w.String("^" + expr.String())
			w.RawByte(':')
			w.Int(*crit.Order)
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	if q.Offset != nil {
		comma()
		w.String("@")
		w.RawByte(':')
		w.Int(*q.Offset)
	}
	if q.Limit != nil {
		comma()
		w.String("#")
		w.RawByte(':')
		w.Int(*q.Limit)
	}
	w.RawByte('}')
	w.RawByte(']')
	return nil
}

func encodeSpecs(w *jwriter.Writer, s value.Specs, opts Options) error {
	w.RawByte('[')
	w.RawByte('{')
	for i, p := range s.Probes {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(p.Alias + "=" + p.Expr.String())
		w.RawByte(':')
		if err := encodeValue(w, p.Model, nil, opts); err != nil {
			return err
		}
	}
	w.RawByte('}')
	w.RawByte(']')
	return nil
}
