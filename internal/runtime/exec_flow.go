package runtime

import (
	"github.com/MeexReay/sustlang/internal/config"
	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/value"
)

// Control-flow instructions resolve their operands under the lock,
// then run the body function with the lock released: the body takes
// and drops the lock per instruction like everything else.

func (rt *Runtime) execIf(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	cond, err := rt.boolOperand(in.Args[0], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	fn, err := rt.function(in.Args[1])
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	if !cond {
		return nil
	}
	return rt.callFunction(fn, config.DiscardVar, nil, global, locals)
}

func (rt *Runtime) execFor(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	fn, err := rt.function(in.Args[0])
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	start, err := rt.intOperand(in.Args[1], locals)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	end, err := rt.intOperand(in.Args[2], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	for idx := start; idx <= end; idx++ {
		args := []value.Value{value.NewInteger(idx)}
		if err := rt.callFunction(fn, config.DiscardVar, args, global, locals); err != nil {
			return err
		}
	}
	return nil
}

func (rt *Runtime) execForList(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	fn, err := rt.function(in.Args[0])
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	src, err := rt.getVar(in.Args[1], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}
	list, err := value.AsList(src)
	if err != nil {
		return wrap(err, in.Args[1])
	}

	// src is a snapshot clone: mutating the variable mid-loop does not
	// change the iteration
	for _, item := range list.Items {
		if err := rt.callFunction(fn, config.DiscardVar, []value.Value{item}, global, locals); err != nil {
			return err
		}
	}
	return nil
}

func (rt *Runtime) execForMap(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	fn, err := rt.function(in.Args[0])
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	src, err := rt.getVar(in.Args[1], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}
	m, err := value.AsMap(src)
	if err != nil {
		return wrap(err, in.Args[1])
	}

	var pairs [][2]value.Value
	m.Each(func(k, v value.Value) bool {
		pairs = append(pairs, [2]value.Value{k, v})
		return true
	})
	for _, p := range pairs {
		if err := rt.callFunction(fn, config.DiscardVar, []value.Value{p[0], p[1]}, global, locals); err != nil {
			return err
		}
	}
	return nil
}

func (rt *Runtime) execForString(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	fn, err := rt.function(in.Args[0])
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	text, err := rt.strOperand(in.Args[1], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	for i := 0; i < len(text); i++ {
		args := []value.Value{value.NewChar(text[i])}
		if err := rt.callFunction(fn, config.DiscardVar, args, global, locals); err != nil {
			return err
		}
	}
	return nil
}

// execWhile seeds the shared predicate slot with true, then runs the
// body until the slot reads false after a pass. The body's result is
// delivered into the slot, so either the implicit result or an
// explicit write to it ends the loop.
func (rt *Runtime) execWhile(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 1); err != nil {
		return err
	}

	rt.mu.Lock()
	fn, err := rt.function(in.Args[0])
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	rt.putVar(config.WhileVar, value.NewBool(true), global, locals)
	rt.mu.Unlock()

	for {
		if err := rt.callFunction(fn, config.WhileVar, nil, global, locals); err != nil {
			return err
		}
		rt.mu.Lock()
		cond, err := rt.boolOperand(config.WhileVar, locals)
		rt.mu.Unlock()
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
	}
}

func (rt *Runtime) execUseFunc(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgsAtLeast(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	fn, err := rt.function(in.Args[0])
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	args := make([]value.Value, 0, len(in.Args)-2)
	for _, name := range in.Args[2:] {
		v, err := rt.getVar(name, locals)
		if err != nil {
			rt.mu.Unlock()
			return err
		}
		args = append(args, v)
	}
	rt.mu.Unlock()

	return rt.callFunction(fn, in.Args[1], args, global, locals)
}
