package value

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/MeexReay/sustlang/internal/stream"
	"github.com/MeexReay/sustlang/internal/types"
)

func mustType(t *testing.T, text string) *types.Type {
	t.Helper()
	typ, err := types.Parse(text)
	if err != nil {
		t.Fatalf("types.Parse(%q): %v", text, err)
	}
	return typ
}

func TestDeclaredDefaults(t *testing.T) {
	tests := []struct {
		typeText   string
		wantInited bool
	}{
		{"int", false},
		{"string", false},
		{"bool", false},
		{"float", false},
		{"char", false},
		{"in_stream", false},
		{"out_stream", false},
		{"null", true},
		{"list[int]", true},
		{"map[string,int]", true},
		{"optional[int]", true},
	}

	for _, tt := range tests {
		t.Run(tt.typeText, func(t *testing.T) {
			v := Declared(mustType(t, tt.typeText))
			if v.Inited() != tt.wantInited {
				t.Errorf("Declared(%s).Inited() = %v, want %v", tt.typeText, v.Inited(), tt.wantInited)
			}
		})
	}
}

func TestDeclaredContainersAreEmpty(t *testing.T) {
	l := Declared(mustType(t, "list[int]")).(*List)
	if len(l.Items) != 0 {
		t.Errorf("declared list has %d items", len(l.Items))
	}
	m := Declared(mustType(t, "map[string,int]")).(*Map)
	if m.Len() != 0 {
		t.Errorf("declared map has %d entries", m.Len())
	}
	o := Declared(mustType(t, "optional[int]")).(*Optional)
	if o.V != nil {
		t.Error("declared optional is not none")
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		typeText string
		input    string
		want     Value
		wantErr  bool
	}{
		{"bool", "true", NewBool(true), false},
		{"bool", "false", NewBool(false), false},
		{"bool", "1", NewBool(true), false},
		{"bool", "0", NewBool(false), false},
		{"bool", "yes", nil, true},
		{"int", "42", NewInteger(42), false},
		{"int", "-7", NewInteger(-7), false},
		{"int", "4.2", nil, true},
		{"float", "2.5", NewFloat(2.5), false},
		{"float", "x", nil, true},
		{"char", "65", NewChar(65), false},
		{"char", "256", nil, true},
		{"char", "A", nil, true},
		{"string", "hello world", NewString("hello world"), false},
		{"null", "whatever", NewNull(), false},
		{"list[int]", "[1]", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.typeText+"/"+tt.input, func(t *testing.T) {
			got, err := Parse(mustType(t, tt.typeText), tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("Parse = %v, want ErrParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOptional(t *testing.T) {
	ot := mustType(t, "optional[int]")

	none, err := Parse(ot, "none")
	if err != nil {
		t.Fatal(err)
	}
	if none.(*Optional).V != nil {
		t.Error("\"none\" did not parse to none")
	}

	some, err := Parse(ot, "[5]")
	if err != nil {
		t.Fatal(err)
	}
	inner := some.(*Optional).V
	if inner == nil || !Equal(inner, NewInteger(5)) {
		t.Errorf("\"[5]\" parsed to %#v", inner)
	}

	nested, err := Parse(mustType(t, "optional[optional[int]]"), "[[7]]")
	if err != nil {
		t.Fatal(err)
	}
	twice := nested.(*Optional).V.(*Optional).V
	if !Equal(twice, NewInteger(7)) {
		t.Errorf("nested optional parsed to %#v", twice)
	}

	if _, err := Parse(ot, "5"); !errors.Is(err, ErrParse) {
		t.Errorf("bare literal accepted for optional: %v", err)
	}
}

func TestDisplay(t *testing.T) {
	lt := mustType(t, "list[int]")
	list := NewList(lt, []Value{NewInteger(1), NewInteger(2)})

	mt := mustType(t, "map[string,int]")
	m := NewMapValue(mt)
	m.Put(NewString("b"), NewInteger(2))
	m.Put(NewString("a"), NewInteger(1))

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"bool", NewBool(true), "true"},
		{"int", NewInteger(-3), "-3"},
		{"float", NewFloat(2.5), "2.5"},
		{"string", NewString("hi"), "hi"},
		{"char", NewChar('A'), "A"},
		{"null", NewNull(), "null"},
		{"list", list, "[1, 2]"},
		{"map", m, "{a: 1, b: 2}"},
		{"none", NewNone(mustType(t, "optional[int]")), "none"},
		{"some", NewSome(mustType(t, "optional[int]"), NewInteger(9)), "(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Display(tt.v)
			if err != nil {
				t.Fatalf("Display error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Display = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayCharList(t *testing.T) {
	clt := mustType(t, "list[char]")
	hello := NewList(clt, []Value{NewChar('h'), NewChar('i')})
	got, err := Display(hello)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi" {
		t.Errorf("Display(char list) = %q, want \"hi\"", got)
	}

	bad := NewList(clt, []Value{NewChar(0xff)})
	if _, err := Display(bad); !errors.Is(err, ErrUTF8) {
		t.Errorf("invalid byte sequence displayed without error: %v", err)
	}
}

func TestDisplayUninited(t *testing.T) {
	if _, err := Display(&Integer{}); !errors.Is(err, ErrNotInited) {
		t.Errorf("Display(absent) = %v, want ErrNotInited", err)
	}
}

func TestStreamDisplayTokens(t *testing.T) {
	in := NewInStream(stream.NewIn(strings.NewReader("")))
	out := NewOutStream(stream.NewOut(&bytes.Buffer{}))

	if s, _ := Display(in); s != "IN_STREAM" {
		t.Errorf("in stream renders %q", s)
	}
	if s, _ := Display(out); s != "OUT_STREAM" {
		t.Errorf("out stream renders %q", s)
	}
}

func TestMapEqualityIsOrderIndependent(t *testing.T) {
	mt := mustType(t, "map[string,int]")

	a := NewMapValue(mt)
	a.Put(NewString("x"), NewInteger(1))
	a.Put(NewString("y"), NewInteger(2))

	b := NewMapValue(mt)
	b.Put(NewString("y"), NewInteger(2))
	b.Put(NewString("x"), NewInteger(1))

	if !Equal(a, b) {
		t.Error("maps with same entries in different insertion order are not equal")
	}

	b.Put(NewString("x"), NewInteger(3))
	if Equal(a, b) {
		t.Error("maps with different values compare equal")
	}
}

func TestStreamEqualityIsIdentity(t *testing.T) {
	h1 := stream.NewIn(strings.NewReader("abc"))
	h2 := stream.NewIn(strings.NewReader("abc"))

	if !Equal(NewInStream(h1), NewInStream(h1)) {
		t.Error("same handle not equal to itself")
	}
	if Equal(NewInStream(h1), NewInStream(h2)) {
		t.Error("distinct handles with same content compare equal")
	}
}

func TestCompareConsistentWithEqual(t *testing.T) {
	vals := []Value{
		NewBool(false), NewBool(true),
		NewInteger(-1), NewInteger(0), NewInteger(5),
		NewString("a"), NewString("b"),
		NewChar(1), NewChar(200),
		NewFloat(0.5),
	}

	for i, a := range vals {
		for j, b := range vals {
			c := Compare(a, b)
			if (c == 0) != Equal(a, b) {
				t.Errorf("Compare(%d,%d)=%d disagrees with Equal", i, j, c)
			}
			if c != -Compare(b, a) {
				t.Errorf("Compare(%d,%d) not antisymmetric", i, j)
			}
		}
	}
}

func TestCompareOrdersNaNFirst(t *testing.T) {
	nan := NewFloat(math.NaN())
	one := NewFloat(1.0)
	if got := Compare(nan, one); got != -1 {
		t.Errorf("Compare(NaN, 1) = %d, want -1", got)
	}
	if got := Compare(one, nan); got != 1 {
		t.Errorf("Compare(1, NaN) = %d, want 1", got)
	}
	if got := Compare(nan, NewFloat(math.NaN())); got != 0 {
		t.Errorf("Compare(NaN, NaN) = %d, want 0", got)
	}

	m := NewMapValue(mustType(t, "map[float,int]"))
	m.Put(nan, NewInteger(1))
	m.Put(one, NewInteger(2))
	if m.Len() != 2 {
		t.Fatalf("map with a NaN key and an ordinary key has %d entries, want 2", m.Len())
	}
	if v, ok := m.Get(one); !ok || !Equal(v, NewInteger(2)) {
		t.Error("ordinary key lost its value next to a NaN key")
	}
}

func TestToBytes(t *testing.T) {
	clt := mustType(t, "list[char]")

	tests := []struct {
		name    string
		v       Value
		want    []byte
		wantErr bool
	}{
		{"string", NewString("hi"), []byte("hi"), false},
		{"char", NewChar('x'), []byte{'x'}, false},
		{"charlist", NewList(clt, []Value{NewChar(1), NewChar(2)}), []byte{1, 2}, false},
		{"int", NewInteger(5), nil, true},
		{"intlist", NewList(mustType(t, "list[int]"), nil), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBytes(tt.v)
			if tt.wantErr {
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("ToBytes = %v, want ErrTypeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ToBytes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromBytes(t *testing.T) {
	str, err := FromBytes(&String{}, []byte("ok"))
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := AsString(str); s != "ok" {
		t.Errorf("FromBytes string = %q", s)
	}

	if _, err := FromBytes(&String{}, []byte{0xff, 0xfe}); !errors.Is(err, ErrUTF8) {
		t.Errorf("invalid utf-8 accepted into string: %v", err)
	}

	clt := mustType(t, "list[char]")
	cl, err := FromBytes(Declared(clt), []byte{0xff, 0xfe})
	if err != nil {
		t.Fatalf("char list should accept any bytes: %v", err)
	}
	if got := len(cl.(*List).Items); got != 2 {
		t.Errorf("FromBytes char list has %d items", got)
	}

	if _, err := FromBytes(NewInteger(1), []byte("x")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("integer target accepted: %v", err)
	}
}

func TestTruthy(t *testing.T) {
	mt := mustType(t, "map[string,int]")
	full := NewMapValue(mt)
	full.Put(NewString("k"), NewInteger(1))

	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"true", NewBool(true), true},
		{"false", NewBool(false), false},
		{"absent bool", &Bool{}, false},
		{"zero int", NewInteger(0), false},
		{"int", NewInteger(3), true},
		{"zero float", NewFloat(0), false},
		{"string true", NewString("true"), true},
		{"string 1", NewString("1"), true},
		{"other string", NewString("nope"), false},
		{"null", NewNull(), false},
		{"empty list", Declared(mustType(t, "list[int]")), false},
		{"empty map", NewMapValue(mt), false},
		{"full map", full, true},
		{"none", NewNone(mustType(t, "optional[int]")), false},
		{"some", NewSome(mustType(t, "optional[int]"), NewInteger(0)), true},
		{"open stream", NewInStream(stream.NewIn(strings.NewReader(""))), true},
		{"absent stream", &InStream{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	lt := mustType(t, "list[int]")
	orig := NewList(lt, []Value{NewInteger(1), NewInteger(2)})

	cp := orig.Clone().(*List)
	cp.Items[0] = NewInteger(99)

	if v, _ := AsInteger(orig.Items[0]); v != 1 {
		t.Error("mutating a clone changed the original list")
	}

	mt := mustType(t, "map[string,int]")
	m := NewMapValue(mt)
	m.Put(NewString("k"), NewInteger(1))
	mc := m.Clone().(*Map)
	mc.Put(NewString("k"), NewInteger(2))

	if v, _ := m.Get(NewString("k")); !Equal(v, NewInteger(1)) {
		t.Error("mutating a clone changed the original map")
	}
}

func TestCloneSharesStreamHandle(t *testing.T) {
	h := stream.NewIn(strings.NewReader("data"))
	v := NewInStream(h)
	cp := v.Clone().(*InStream)
	if cp.H != h {
		t.Error("stream clone must share the handle")
	}
}
