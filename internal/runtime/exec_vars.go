package runtime

import (
	"strings"

	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/types"
	"github.com/MeexReay/sustlang/internal/value"
)

func (rt *Runtime) execInitVar(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}
	t, err := types.Parse(in.Args[0])
	if err != nil {
		return wrap(err, in.Args[0])
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.declareVar(in.Args[1], value.Declared(t), global, locals)
}

func (rt *Runtime) execSetVar(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgsAtLeast(in, 2); err != nil {
		return err
	}
	name := in.Args[0]
	literal := strings.Join(in.Args[1:], " ")

	rt.mu.Lock()
	defer rt.mu.Unlock()
	cur, err := rt.getVar(name, locals)
	if err != nil {
		return err
	}
	v, err := value.Parse(cur.Type(), literal)
	if err != nil {
		return wrap(err, name)
	}
	return rt.assignVar(name, v, global, locals)
}

func (rt *Runtime) execTempVar(in *script.Instruction, global bool, locals map[string]value.Value, temps *[]string) error {
	if err := needArgsAtLeast(in, 3); err != nil {
		return err
	}
	t, err := types.Parse(in.Args[0])
	if err != nil {
		return wrap(err, in.Args[0])
	}
	name := in.Args[1]
	literal := strings.Join(in.Args[2:], " ")
	v, err := value.Parse(t, literal)
	if err != nil {
		return wrap(err, name)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.declareVar(name, v, global, locals); err != nil {
		return err
	}
	*temps = append(*temps, name)
	return nil
}

func (rt *Runtime) execMoveVar(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}
	src, dst := in.Args[0], in.Args[1]

	rt.mu.Lock()
	defer rt.mu.Unlock()
	v, err := rt.getVar(src, locals)
	if err != nil {
		return err
	}
	if err := rt.assignVar(dst, v, global, locals); err != nil {
		return err
	}
	return rt.dropVar(src, locals)
}

func (rt *Runtime) execCopyVar(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	v, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(in.Args[1], v, global, locals)
}

func (rt *Runtime) execDropVar(in *script.Instruction, locals map[string]value.Value) error {
	if err := needArgs(in, 1); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.dropVar(in.Args[0], locals)
}

func (rt *Runtime) execHasVar(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	_, err := rt.getVar(in.Args[0], locals)
	return rt.assignVar(in.Args[1], value.NewBool(err == nil), global, locals)
}
