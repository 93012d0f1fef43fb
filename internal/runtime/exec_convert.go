package runtime

import (
	"strconv"

	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/types"
	"github.com/MeexReay/sustlang/internal/value"
)

func (rt *Runtime) execToString(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	text, err := value.Display(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	return rt.assignVar(in.Args[1], value.NewString(text), global, locals)
}

func (rt *Runtime) execToChars(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	text, err := value.AsString(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	items := make([]value.Value, len(text))
	for i := 0; i < len(text); i++ {
		items[i] = value.NewChar(text[i])
	}
	chars := value.NewList(types.NewList(types.CharType), items)
	return rt.assignVar(in.Args[1], chars, global, locals)
}

func (rt *Runtime) execToChar(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}

	var b byte
	switch v := src.(type) {
	case *value.String:
		if !v.Ok {
			return errf(KindNotInited, "%q", in.Args[0])
		}
		if len(v.V) == 0 {
			return errf(KindParse, "%q is empty", in.Args[0])
		}
		b = v.V[0]
	case *value.Char:
		if !v.Ok {
			return errf(KindNotInited, "%q", in.Args[0])
		}
		b = v.V
	case *value.Integer:
		if !v.Ok {
			return errf(KindNotInited, "%q", in.Args[0])
		}
		b = byte(v.V)
	default:
		return errf(KindTypeMismatch, "%q is %s", in.Args[0], src.Type())
	}
	return rt.assignVar(in.Args[1], value.NewChar(b), global, locals)
}

func (rt *Runtime) execToInteger(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	text, err := value.AsString(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return errf(KindParse, "%q is not an integer", text)
	}
	return rt.assignVar(in.Args[1], value.NewInteger(n), global, locals)
}

func (rt *Runtime) execToFloat(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	text, err := value.AsString(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return errf(KindParse, "%q is not a float", text)
	}
	return rt.assignVar(in.Args[1], value.NewFloat(f), global, locals)
}

func (rt *Runtime) execToBool(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(in.Args[1], value.NewBool(value.Truthy(src)), global, locals)
}
