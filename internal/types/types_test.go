package types

import (
	"errors"
	"testing"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"bool", Bool},
		{"b", Bool},
		{"string", String},
		{"str", String},
		{"s", String},
		{"integer", Integer},
		{"int", Integer},
		{"i", Integer},
		{"float", Float},
		{"f", Float},
		{"char", Char},
		{"c", Char},
		{"in_stream", InStream},
		{"in", InStream},
		{"out_stream", OutStream},
		{"out", OutStream},
		{"null", Null},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got.Kind != tt.want {
				t.Errorf("Parse(%q).Kind = %v, want %v", tt.input, got.Kind, tt.want)
			}
		})
	}
}

func TestParseContainers(t *testing.T) {
	tests := []struct {
		input string
		want  string // canonical rendering
	}{
		{"list[int]", "list[integer]"},
		{"list[list[char]]", "list[list[char]]"},
		{"optional[str]", "optional[string]"},
		{"map[string,int]", "map[string,integer]"},
		{"map[string,list[int]]", "map[string,list[integer]]"},
		{"map[map[int,int],optional[bool]]", "map[map[integer,integer],optional[bool]]"},
		{"list[map[s,i]]", "list[map[string,integer]]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"in t",
		"lists[int]",
		"list[int",
		"list[[int]",
		"list[int]]",
		"map[int]",
		"map[string,int",
		"map[,]",
		"optional[]",
		"Map[string,int]",
	}

	for _, input := range bad {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); !errors.Is(err, ErrUnknownType) {
				t.Errorf("Parse(%q) = %v, want ErrUnknownType", input, err)
			}
		})
	}
}

func TestParseMapSplitsAtTopLevelComma(t *testing.T) {
	got, err := Parse("map[map[string,int],list[char]]")
	if err != nil {
		t.Fatal(err)
	}
	if got.Key.Kind != Map || got.Val.Kind != List {
		t.Fatalf("wrong split: key=%v val=%v", got.Key, got.Val)
	}
	if got.Key.Key.Kind != String || got.Key.Val.Kind != Integer {
		t.Errorf("nested map key parsed wrong: %v", got.Key)
	}
}

func TestEqual(t *testing.T) {
	a, _ := Parse("map[string,list[int]]")
	b, _ := Parse("map[str,list[i]]")
	c, _ := Parse("map[string,list[float]]")

	if !a.Equal(b) {
		t.Errorf("%v should equal %v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("%v should not equal %v", a, c)
	}
	if !IntegerType.Equal(IntegerType) {
		t.Error("scalar self-equality failed")
	}
	if IntegerType.Equal(FloatType) {
		t.Error("integer should not equal float")
	}
}

func TestIsCharList(t *testing.T) {
	cl, _ := Parse("list[char]")
	il, _ := Parse("list[int]")
	if !cl.IsCharList() {
		t.Error("list[char] not recognized")
	}
	if il.IsCharList() {
		t.Error("list[int] wrongly recognized as char list")
	}
}
