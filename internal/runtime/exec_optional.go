package runtime

import (
	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/types"
	"github.com/MeexReay/sustlang/internal/value"
)

func (rt *Runtime) execHasOptional(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	opt, err := value.AsOptional(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	return rt.assignVar(in.Args[1], value.NewBool(opt.V != nil), global, locals)
}

func (rt *Runtime) execUnpackOptional(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	opt, err := value.AsOptional(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	if opt.V == nil {
		return errf(KindParse, "%q is none", in.Args[0])
	}
	return rt.assignVar(in.Args[1], opt.V, global, locals)
}

func (rt *Runtime) execPackOptional(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	v, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	t := types.NewOptional(v.Type())
	return rt.assignVar(in.Args[1], value.NewSome(t, v), global, locals)
}

func (rt *Runtime) execNoneOptional(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 1); err != nil {
		return err
	}
	name := in.Args[0]

	rt.mu.Lock()
	defer rt.mu.Unlock()
	cur, err := rt.getVar(name, locals)
	if err != nil {
		return err
	}
	if _, err := value.AsOptional(cur); err != nil {
		return wrap(err, name)
	}
	return rt.assignVar(name, value.NewNone(cur.Type()), global, locals)
}
