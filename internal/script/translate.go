package script

import (
	"fmt"
	"strings"

	"github.com/MeexReay/sustlang/internal/config"
	"github.com/MeexReay/sustlang/internal/types"
)

// Error is a translation failure with the source line it occurred on.
type Error struct {
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errAt(line int, msg string, args ...interface{}) *Error {
	return &Error{Line: line, Msg: fmt.Sprintf(msg, args...)}
}

// Translate turns source text into a Program: strips comments, trims
// lines, parses one instruction per non-empty line, then excises
// FUNC ... FUNC_END blocks into the function table. Functions are flat;
// a FUNC inside a FUNC is an error.
func Translate(source string) (*Program, error) {
	instrs, err := parseLines(source)
	if err != nil {
		return nil, err
	}
	return cutFunctions(instrs)
}

func parseLines(source string) ([]Instruction, error) {
	var instrs []Instruction

	for i, raw := range strings.Split(source, "\n") {
		line := raw
		if cut := strings.Index(line, config.CommentMark); cut >= 0 {
			line = line[:cut]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		op, ok := OpFromName(tokens[0])
		if !ok {
			return nil, errAt(i+1, "unknown instruction %q", tokens[0])
		}
		instrs = append(instrs, Instruction{Op: op, Line: i + 1, Args: tokens[1:]})
	}

	return instrs, nil
}

func cutFunctions(instrs []Instruction) (*Program, error) {
	prog := &Program{Functions: make(map[string]*Function)}

	var current *Function
	for i := range instrs {
		in := instrs[i]
		switch {
		case in.Op == OpFunc:
			if current != nil {
				return nil, errAt(in.Line, "FUNC inside FUNC; functions cannot nest")
			}
			fn, err := parseFuncHeader(&in)
			if err != nil {
				return nil, err
			}
			current = fn

		case in.Op == OpFuncEnd:
			if current == nil {
				return nil, errAt(in.Line, "FUNC_END without FUNC")
			}
			prog.Functions[current.Name] = current
			current = nil

		case current != nil:
			current.Body = append(current.Body, in)

		default:
			prog.Body = append(prog.Body, in)
		}
	}
	if current != nil {
		return nil, errAt(instrs[len(instrs)-1].Line, "FUNC %s is missing FUNC_END", current.Name)
	}

	return prog, nil
}

// parseFuncHeader reads "FUNC result_type name [param type]...".
func parseFuncHeader(in *Instruction) (*Function, error) {
	if len(in.Args) < 2 {
		return nil, errAt(in.Line, "FUNC needs a result type and a name")
	}
	result, err := types.Parse(in.Args[0])
	if err != nil {
		return nil, &Error{Line: in.Line, Msg: "bad result type", Err: err}
	}

	rest := in.Args[2:]
	if len(rest)%2 != 0 {
		return nil, errAt(in.Line, "FUNC %s has a parameter name without a type", in.Args[1])
	}

	fn := &Function{Name: in.Args[1], Result: result}
	for i := 0; i < len(rest); i += 2 {
		pt, err := types.Parse(rest[i+1])
		if err != nil {
			return nil, &Error{Line: in.Line, Msg: fmt.Sprintf("bad type for parameter %q", rest[i]), Err: err}
		}
		fn.Params = append(fn.Params, Param{Name: rest[i], Type: pt})
	}
	return fn, nil
}
