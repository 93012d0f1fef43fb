package runtime

import (
	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/value"
)

func (rt *Runtime) execAddInt(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}
	name := in.Args[0]

	rt.mu.Lock()
	defer rt.mu.Unlock()
	a, err := rt.intOperand(name, locals)
	if err != nil {
		return err
	}
	b, err := rt.intOperand(in.Args[1], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(name, value.NewInteger(a+b), global, locals)
}

func (rt *Runtime) execAddFloat(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}
	name := in.Args[0]

	rt.mu.Lock()
	defer rt.mu.Unlock()
	a, err := rt.floatOperand(name, locals)
	if err != nil {
		return err
	}
	b, err := rt.floatOperand(in.Args[1], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(name, value.NewFloat(a+b), global, locals)
}

func (rt *Runtime) execAddStr(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}
	name := in.Args[0]

	rt.mu.Lock()
	defer rt.mu.Unlock()
	other, err := rt.getVar(in.Args[1], locals)
	if err != nil {
		return err
	}
	suffix, err := value.ToText(other)
	if err != nil {
		return wrap(err, in.Args[1])
	}
	base, err := rt.strOperand(name, locals)
	if err != nil {
		return err
	}
	return rt.assignVar(name, value.NewString(base+suffix), global, locals)
}

func (rt *Runtime) execEquals(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	a, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	b, err := rt.getVar(in.Args[1], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(in.Args[2], value.NewBool(value.Equal(a, b)), global, locals)
}

// execCompare handles MORE and LESS: integers, floats and chars
// cross-promote, every other kind is a mismatch.
func (rt *Runtime) execCompare(in *script.Instruction, global bool, locals map[string]value.Value, more bool) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	a, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	b, err := rt.getVar(in.Args[1], locals)
	if err != nil {
		return err
	}

	af, ai, aFloat, err := numeric(a, in.Args[0])
	if err != nil {
		return err
	}
	bf, bi, bFloat, err := numeric(b, in.Args[1])
	if err != nil {
		return err
	}

	var result bool
	if aFloat || bFloat {
		if !aFloat {
			af = float64(ai)
		}
		if !bFloat {
			bf = float64(bi)
		}
		if more {
			result = af > bf
		} else {
			result = af < bf
		}
	} else {
		if more {
			result = ai > bi
		} else {
			result = ai < bi
		}
	}
	return rt.assignVar(in.Args[2], value.NewBool(result), global, locals)
}

func numeric(v value.Value, name string) (f float64, i int64, isFloat bool, err error) {
	switch av := v.(type) {
	case *value.Integer:
		if !av.Ok {
			return 0, 0, false, errf(KindNotInited, "%q", name)
		}
		return 0, av.V, false, nil
	case *value.Float:
		if !av.Ok {
			return 0, 0, false, errf(KindNotInited, "%q", name)
		}
		return av.V, 0, true, nil
	case *value.Char:
		if !av.Ok {
			return 0, 0, false, errf(KindNotInited, "%q", name)
		}
		return 0, int64(av.V), false, nil
	}
	return 0, 0, false, errf(KindTypeMismatch, "%q is %s, not numeric", name, v.Type())
}

func (rt *Runtime) floatOperand(name string, locals map[string]value.Value) (float64, error) {
	v, err := rt.getVar(name, locals)
	if err != nil {
		return 0, err
	}
	f, err := value.AsFloat(v)
	if err != nil {
		return 0, wrap(err, name)
	}
	return f, nil
}

func (rt *Runtime) boolOperand(name string, locals map[string]value.Value) (bool, error) {
	v, err := rt.getVar(name, locals)
	if err != nil {
		return false, err
	}
	b, err := value.AsBool(v)
	if err != nil {
		return false, wrap(err, name)
	}
	return b, nil
}

func (rt *Runtime) execAnd(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	a, err := rt.boolOperand(in.Args[0], locals)
	if err != nil {
		return err
	}
	b, err := rt.boolOperand(in.Args[1], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(in.Args[2], value.NewBool(a && b), global, locals)
}

func (rt *Runtime) execOr(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	a, err := rt.boolOperand(in.Args[0], locals)
	if err != nil {
		return err
	}
	b, err := rt.boolOperand(in.Args[1], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(in.Args[2], value.NewBool(a || b), global, locals)
}

func (rt *Runtime) execNot(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	b, err := rt.boolOperand(in.Args[0], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(in.Args[1], value.NewBool(!b), global, locals)
}
