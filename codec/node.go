package codec

import (
	om "github.com/wk8/go-ordered-map/v2"
)

type nodeKind int

const (
	nodeNull nodeKind = iota
	nodeBool
	nodeNumber
	nodeString
	nodeArray
	nodeObject
)

// node is the parser's intermediate representation: JSON text compacted
// into a tagged tree that preserves object key order (unlike
// encoding/json's map[string]any), ready to be interpreted against a
// Shape by the decoder.
type node struct {
	kind   nodeKind
	bool   bool
	number string // raw numeric lexical, preserved exactly as written
	string string
	array  []node
	object *om.OrderedMap[string, node]
}

// parser turns a token stream into a node tree.
type parser struct {
	lx   *lexer
	tok  token
}

func newParser(src string) (*parser, error) {
	p := &parser{lx: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// parseValue parses exactly one JSON value from the lexer and does not
// require the input to be exhausted afterward (top-level arrays-of-
// queries parse this way, then the caller checks for trailing EOF).
func (p *parser) parseValue() (node, error) {
	switch p.tok.kind {
	case tokLBrace:
		return p.parseObject()
	case tokLBracket:
		return p.parseArray()
	case tokString:
		n := node{kind: nodeString, string: p.tok.text}
		return n, p.advance()
	case tokNumber:
		n := node{kind: nodeNumber, number: p.tok.text}
		return n, p.advance()
	case tokTrue:
		n := node{kind: nodeBool, bool: true}
		return n, p.advance()
	case tokFalse:
		n := node{kind: nodeBool, bool: false}
		return n, p.advance()
	case tokNull:
		n := node{kind: nodeNull}
		return n, p.advance()
	default:
		return node{}, lexErr(p.tok.line, p.tok.column, "unexpected token")
	}
}

func (p *parser) parseObject() (node, error) {
	om_ := om.New[string, node]()
	if err := p.advance(); err != nil { // consume '{'
		return node{}, err
	}
	if p.tok.kind == tokRBrace {
		if err := p.advance(); err != nil {
			return node{}, err
		}
		return node{kind: nodeObject, object: om_}, nil
	}
	for {
		if p.tok.kind != tokString {
			return node{}, lexErr(p.tok.line, p.tok.column, "expected object key")
		}
		key := p.tok.text
		if err := p.advance(); err != nil {
			return node{}, err
		}
		if p.tok.kind != tokColon {
			return node{}, lexErr(p.tok.line, p.tok.column, "expected ':' after object key %q", key)
		}
		if err := p.advance(); err != nil {
			return node{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return node{}, err
		}
		if _, dup := om_.Get(key); dup {
			return node{}, lexErr(p.tok.line, p.tok.column, "duplicate key %q", key)
		}
		om_.Set(key, val)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return node{}, err
			}
			continue
		}
		if p.tok.kind == tokRBrace {
			if err := p.advance(); err != nil {
				return node{}, err
			}
			return node{kind: nodeObject, object: om_}, nil
		}
		return node{}, lexErr(p.tok.line, p.tok.column, "expected ',' or '}'")
	}
}

func (p *parser) parseArray() (node, error) {
	var items []node
	if err := p.advance(); err != nil { // consume '['
		return node{}, err
	}
	if p.tok.kind == tokRBracket {
		if err := p.advance(); err != nil {
			return node{}, err
		}
		return node{kind: nodeArray, array: items}, nil
	}
	for {
		val, err := p.parseValue()
		if err != nil {
			return node{}, err
		}
		items = append(items, val)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return node{}, err
			}
			continue
		}
		if p.tok.kind == tokRBracket {
			if err := p.advance(); err != nil {
				return node{}, err
			}
			return node{kind: nodeArray, array: items}, nil
		}
		return node{}, lexErr(p.tok.line, p.tok.column, "expected ',' or ']'")
	}
}

// parseDocument parses src as exactly one JSON value, requiring the
// entire input to be consumed.
func parseDocument(src string) (node, error) {
	p, err := newParser(src)
	if err != nil {
		return node{}, err
	}
	n, err := p.parseValue()
	if err != nil {
		return node{}, err
	}
	if p.tok.kind != tokEOF {
		return node{}, lexErr(p.tok.line, p.tok.column, "trailing content after JSON value")
	}
	return n, nil
}
