// Package value implements the runtime value model: a closed set of
// variants, one per type kind, each pairing its type descriptor with a
// payload that may be absent (declared but never written).
//
// Containers are never absent: declaring a list, map or optional yields
// a present-but-empty container, so every container is iterable from
// the moment it exists. Scalars and streams declare as absent.
package value

import (
	"errors"

	"github.com/MeexReay/sustlang/internal/stream"
	"github.com/MeexReay/sustlang/internal/types"
)

var (
	// ErrParse is reported for literal text that does not parse as the
	// requested type.
	ErrParse = errors.New("cannot parse value")
	// ErrTypeMismatch is reported when a value's kind or presence does
	// not match its use.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotInited is reported when an absent payload is read.
	ErrNotInited = errors.New("variable is not initialized")
	// ErrUTF8 is reported when a byte sequence is not valid UTF-8 text.
	ErrUTF8 = errors.New("invalid utf-8 sequence")
)

// Value is one runtime datum. The eleven implementations below are the
// whole set; nothing else satisfies the interface.
type Value interface {
	// Type returns the value's type descriptor.
	Type() *types.Type
	// Inited reports whether the payload is present.
	Inited() bool
	// Clone returns an independent deep copy. Stream variants share
	// their handle; a handle is a resource, not data.
	Clone() Value
}

type Bool struct {
	V  bool
	Ok bool
}

func NewBool(v bool) *Bool       { return &Bool{V: v, Ok: true} }
func (b *Bool) Type() *types.Type { return types.BoolType }
func (b *Bool) Inited() bool      { return b.Ok }
func (b *Bool) Clone() Value      { c := *b; return &c }

type String struct {
	V  string
	Ok bool
}

func NewString(v string) *String    { return &String{V: v, Ok: true} }
func (s *String) Type() *types.Type { return types.StringType }
func (s *String) Inited() bool      { return s.Ok }
func (s *String) Clone() Value      { c := *s; return &c }

type Integer struct {
	V  int64
	Ok bool
}

func NewInteger(v int64) *Integer    { return &Integer{V: v, Ok: true} }
func (i *Integer) Type() *types.Type { return types.IntegerType }
func (i *Integer) Inited() bool      { return i.Ok }
func (i *Integer) Clone() Value      { c := *i; return &c }

type Float struct {
	V  float64
	Ok bool
}

func NewFloat(v float64) *Float    { return &Float{V: v, Ok: true} }
func (f *Float) Type() *types.Type { return types.FloatType }
func (f *Float) Inited() bool      { return f.Ok }
func (f *Float) Clone() Value      { c := *f; return &c }

// Char is a single byte, as in the original data model: char lists are
// byte sequences and only become text through UTF-8 validation.
type Char struct {
	V  byte
	Ok bool
}

func NewChar(v byte) *Char        { return &Char{V: v, Ok: true} }
func (c *Char) Type() *types.Type { return types.CharType }
func (c *Char) Inited() bool      { return c.Ok }
func (c *Char) Clone() Value      { cp := *c; return &cp }

// Null has no payload and is always considered initialized.
type Null struct{}

func NewNull() *Null              { return &Null{} }
func (n *Null) Type() *types.Type { return types.NullType }
func (n *Null) Inited() bool      { return true }
func (n *Null) Clone() Value      { return &Null{} }

// List is a present-from-declaration sequence.
type List struct {
	T     *types.Type // full list[...] descriptor
	Items []Value
}

func NewList(t *types.Type, items []Value) *List { return &List{T: t, Items: items} }
func (l *List) Type() *types.Type                { return l.T }
func (l *List) Inited() bool                     { return true }

func (l *List) Clone() Value {
	items := make([]Value, len(l.Items))
	for i, it := range l.Items {
		items[i] = it.Clone()
	}
	return &List{T: l.T, Items: items}
}

// Optional wraps none (V == nil) or some value of its element type.
type Optional struct {
	T *types.Type // full optional[...] descriptor
	V Value       // nil means none
}

func NewNone(t *types.Type) *Optional          { return &Optional{T: t} }
func NewSome(t *types.Type, v Value) *Optional { return &Optional{T: t, V: v} }
func (o *Optional) Type() *types.Type          { return o.T }
func (o *Optional) Inited() bool               { return true }

func (o *Optional) Clone() Value {
	if o.V == nil {
		return &Optional{T: o.T}
	}
	return &Optional{T: o.T, V: o.V.Clone()}
}

// InStream holds a shared readable handle; absent until opened.
type InStream struct {
	H *stream.In
}

func NewInStream(h *stream.In) *InStream { return &InStream{H: h} }
func (s *InStream) Type() *types.Type    { return types.InStreamType }
func (s *InStream) Inited() bool         { return s.H != nil }
func (s *InStream) Clone() Value         { return &InStream{H: s.H} }

// OutStream holds a shared writable handle; absent until opened.
type OutStream struct {
	H *stream.Out
}

func NewOutStream(h *stream.Out) *OutStream { return &OutStream{H: h} }
func (s *OutStream) Type() *types.Type      { return types.OutStreamType }
func (s *OutStream) Inited() bool           { return s.H != nil }
func (s *OutStream) Clone() Value           { return &OutStream{H: s.H} }

// Declared builds the value an INIT_VAR produces for t: empty
// containers, absent scalars and streams.
func Declared(t *types.Type) Value {
	switch t.Kind {
	case types.Bool:
		return &Bool{}
	case types.String:
		return &String{}
	case types.Integer:
		return &Integer{}
	case types.Float:
		return &Float{}
	case types.Char:
		return &Char{}
	case types.Null:
		return &Null{}
	case types.List:
		return &List{T: t}
	case types.Map:
		return NewMapValue(t)
	case types.Optional:
		return &Optional{T: t}
	case types.InStream:
		return &InStream{}
	case types.OutStream:
		return &OutStream{}
	}
	return &Null{}
}
