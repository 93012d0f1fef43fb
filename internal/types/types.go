// Package types implements the structural type descriptors of the
// scripting language: the eight scalar kinds plus the three container
// constructors list[T], map[K,V] and optional[T].
//
// A Type is immutable once built. Container types share their element
// descriptors freely; nothing ever mutates them.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is reported for unrecognized keywords and malformed
// bracket syntax in type text.
var ErrUnknownType = errors.New("unknown type")

type Kind int

const (
	Bool Kind = iota
	String
	Integer
	Float
	Char
	Null
	InStream
	OutStream
	List
	Map
	Optional
)

// Type describes a value's shape. Elem is set for List and Optional,
// Key and Val for Map; all three are nil for scalar kinds.
type Type struct {
	Kind Kind
	Elem *Type
	Key  *Type
	Val  *Type
}

var (
	BoolType      = &Type{Kind: Bool}
	StringType    = &Type{Kind: String}
	IntegerType   = &Type{Kind: Integer}
	FloatType     = &Type{Kind: Float}
	CharType      = &Type{Kind: Char}
	NullType      = &Type{Kind: Null}
	InStreamType  = &Type{Kind: InStream}
	OutStreamType = &Type{Kind: OutStream}
)

func NewList(elem *Type) *Type     { return &Type{Kind: List, Elem: elem} }
func NewMap(key, val *Type) *Type  { return &Type{Kind: Map, Key: key, Val: val} }
func NewOptional(elem *Type) *Type { return &Type{Kind: Optional, Elem: elem} }

var scalarNames = map[string]*Type{
	"bool":       BoolType,
	"b":          BoolType,
	"string":     StringType,
	"str":        StringType,
	"s":          StringType,
	"integer":    IntegerType,
	"int":        IntegerType,
	"i":          IntegerType,
	"float":      FloatType,
	"f":          FloatType,
	"char":       CharType,
	"c":          CharType,
	"in_stream":  InStreamType,
	"in":         InStreamType,
	"out_stream": OutStreamType,
	"out":        OutStreamType,
	"null":       NullType,
}

// Parse builds a Type from its textual notation, e.g. "int",
// "list[char]" or "map[string,list[int]]". Short scalar aliases are
// accepted. Unbalanced brackets and unknown keywords fail with
// ErrUnknownType.
func Parse(text string) (*Type, error) {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "list["):
		body, err := bracketBody(text, "list[")
		if err != nil {
			return nil, err
		}
		elem, err := Parse(body)
		if err != nil {
			return nil, err
		}
		return NewList(elem), nil

	case strings.HasPrefix(text, "optional["):
		body, err := bracketBody(text, "optional[")
		if err != nil {
			return nil, err
		}
		elem, err := Parse(body)
		if err != nil {
			return nil, err
		}
		return NewOptional(elem), nil

	case strings.HasPrefix(text, "map["):
		body, err := bracketBody(text, "map[")
		if err != nil {
			return nil, err
		}
		keyText, valText, ok := splitTopLevel(body)
		if !ok {
			return nil, fmt.Errorf("%w: %q has no top-level comma", ErrUnknownType, text)
		}
		key, err := Parse(keyText)
		if err != nil {
			return nil, err
		}
		val, err := Parse(valText)
		if err != nil {
			return nil, err
		}
		return NewMap(key, val), nil
	}

	if t, ok := scalarNames[text]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, text)
}

// bracketBody strips prefix and the trailing "]", checking that the
// brackets of the remaining body are balanced.
func bracketBody(text, prefix string) (string, error) {
	if !strings.HasSuffix(text, "]") {
		return "", fmt.Errorf("%w: %q is missing a closing bracket", ErrUnknownType, text)
	}
	body := text[len(prefix) : len(text)-1]
	depth := 0
	for _, r := range body {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return "", fmt.Errorf("%w: unbalanced brackets in %q", ErrUnknownType, text)
			}
		}
	}
	if depth != 0 {
		return "", fmt.Errorf("%w: unbalanced brackets in %q", ErrUnknownType, text)
	}
	return body, nil
}

// splitTopLevel splits a map body K,V at the first comma that is not
// nested inside brackets.
func splitTopLevel(body string) (key, val string, ok bool) {
	depth := 0
	for i, r := range body {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				return body[:i], body[i+1:], true
			}
		}
	}
	return "", "", false
}

// String renders the canonical (long-form) notation of the type.
func (t *Type) String() string {
	switch t.Kind {
	case Bool:
		return "bool"
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Char:
		return "char"
	case Null:
		return "null"
	case InStream:
		return "in_stream"
	case OutStream:
		return "out_stream"
	case List:
		return "list[" + t.Elem.String() + "]"
	case Map:
		return "map[" + t.Key.String() + "," + t.Val.String() + "]"
	case Optional:
		return "optional[" + t.Elem.String() + "]"
	}
	return "?"
}

// Equal reports structural equality of two descriptors.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case List, Optional:
		return t.Elem.Equal(other.Elem)
	case Map:
		return t.Key.Equal(other.Key) && t.Val.Equal(other.Val)
	}
	return true
}

// IsCharList reports whether t is list[char], the byte-sequence type.
func (t *Type) IsCharList() bool {
	return t.Kind == List && t.Elem.Kind == Char
}
