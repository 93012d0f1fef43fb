package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/MeexReay/sustlang/internal/types"
)

func TestTranslateBody(t *testing.T) {
	src := strings.Join([]string{
		"# a comment line",
		"INIT_VAR int x",
		"",
		"  SET_VAR x 5  # trailing comment",
		"\tADD_INT x x",
	}, "\n")

	prog, err := Translate(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Body) != 3 {
		t.Fatalf("body has %d instructions, want 3", len(prog.Body))
	}

	want := []struct {
		op   Op
		line int
		args []string
	}{
		{OpInitVar, 2, []string{"int", "x"}},
		{OpSetVar, 4, []string{"x", "5"}},
		{OpAddInt, 5, []string{"x", "x"}},
	}
	for i, w := range want {
		in := prog.Body[i]
		if in.Op != w.op || in.Line != w.line {
			t.Errorf("instr %d = %s, want %s at line %d", i, in.String(), w.op, w.line)
		}
		if len(in.Args) != len(w.args) {
			t.Errorf("instr %d args = %v, want %v", i, in.Args, w.args)
			continue
		}
		for j := range w.args {
			if in.Args[j] != w.args[j] {
				t.Errorf("instr %d arg %d = %q, want %q", i, j, in.Args[j], w.args[j])
			}
		}
	}
}

func TestTranslateCommentInsideLiteral(t *testing.T) {
	// The comment marker wins even inside a SET_VAR literal.
	prog, err := Translate("INIT_VAR string s\nSET_VAR s hello # world")
	if err != nil {
		t.Fatal(err)
	}
	set := prog.Body[1]
	if got := strings.Join(set.Args[1:], " "); got != "hello" {
		t.Errorf("literal tokens = %q, want \"hello\"", got)
	}
}

func TestTranslateFunctions(t *testing.T) {
	src := strings.Join([]string{
		"FUNC bool check val int limit int",
		"INIT_VAR bool r",
		"SET_VAR result true",
		"FUNC_END",
		"TEMP_VAR bool cond true",
		"IF cond check",
	}, "\n")

	prog, err := Translate(src)
	if err != nil {
		t.Fatal(err)
	}

	fn, ok := prog.Functions["check"]
	if !ok {
		t.Fatal("function check not extracted")
	}
	if fn.Result.Kind != types.Bool {
		t.Errorf("result type = %s", fn.Result)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "val" || fn.Params[1].Name != "limit" {
		t.Errorf("params = %+v", fn.Params)
	}
	if len(fn.Body) != 2 {
		t.Errorf("function body has %d instructions, want 2", len(fn.Body))
	}
	if len(prog.Body) != 2 {
		t.Errorf("top-level body has %d instructions, want 2", len(prog.Body))
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown op", "BANANA x y", "unknown instruction"},
		{"nested func", "FUNC null a\nFUNC null b\nFUNC_END\nFUNC_END", "cannot nest"},
		{"stray end", "FUNC_END", "FUNC_END without FUNC"},
		{"unterminated", "FUNC null a\nRETURN", "missing FUNC_END"},
		{"odd params", "FUNC null a x\nFUNC_END", "without a type"},
		{"bad header", "FUNC null\nFUNC_END", "result type and a name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTranslateBadTypeWrapsTypeError(t *testing.T) {
	_, err := Translate("FUNC banana f\nFUNC_END")
	if !errors.Is(err, types.ErrUnknownType) {
		t.Errorf("error %v does not wrap ErrUnknownType", err)
	}

	var te *Error
	if !errors.As(err, &te) || te.Line != 1 {
		t.Errorf("error does not carry line 1: %v", err)
	}
}

func TestOpNameRoundTrip(t *testing.T) {
	for op, name := range opNames {
		got, ok := OpFromName(name)
		if !ok || got != op {
			t.Errorf("OpFromName(%q) = %v, %v", name, got, ok)
		}
		if op.String() != name {
			t.Errorf("%v.String() = %q, want %q", op, op.String(), name)
		}
	}
	if _, ok := OpFromName("NOPE"); ok {
		t.Error("unknown name resolved")
	}
}
