package runtime

import (
	"strings"

	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/value"
)

func (rt *Runtime) execGetSymbol(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
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
	idx, err := rt.intOperand(in.Args[1], locals)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= int64(len(text)) {
		return errf(KindBadArgs, "index %d out of range in %q", idx, in.Args[0])
	}
	return rt.assignVar(in.Args[2], value.NewChar(text[idx]), global, locals)
}

func (rt *Runtime) execGetItem(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	list, err := value.AsList(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	idx, err := rt.intOperand(in.Args[1], locals)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= int64(len(list.Items)) {
		return errf(KindBadArgs, "index %d out of range in %q", idx, in.Args[0])
	}
	return rt.assignVar(in.Args[2], list.Items[idx], global, locals)
}

func (rt *Runtime) execGetValue(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	m, err := value.AsMap(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	key, err := rt.getVar(in.Args[1], locals)
	if err != nil {
		return err
	}
	v, ok := m.Get(key)
	if !ok {
		return errf(KindUnknownVar, "key %q not in %q", in.Args[1], in.Args[0])
	}
	return rt.assignVar(in.Args[2], v, global, locals)
}

func (rt *Runtime) execListSize(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	list, err := value.AsList(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	return rt.assignVar(in.Args[1], value.NewInteger(int64(len(list.Items))), global, locals)
}

func (rt *Runtime) execMapSize(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 2); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	m, err := value.AsMap(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	return rt.assignVar(in.Args[1], value.NewInteger(int64(m.Len())), global, locals)
}

func (rt *Runtime) execStringSize(in *script.Instruction, global bool, locals map[string]value.Value) error {
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
	return rt.assignVar(in.Args[1], value.NewInteger(int64(len(text))), global, locals)
}

func (rt *Runtime) execSubStr(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}
	name := in.Args[0]

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(name, locals)
	if err != nil {
		return err
	}
	text, err := value.AsString(src)
	if err != nil {
		return wrap(err, name)
	}
	start, end, err := rt.sliceBounds(in.Args[1], in.Args[2], int64(len(text)), locals)
	if err != nil {
		return err
	}
	return rt.assignVar(name, value.NewString(text[start:end]), global, locals)
}

func (rt *Runtime) execSubList(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}
	name := in.Args[0]

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(name, locals)
	if err != nil {
		return err
	}
	list, err := value.AsList(src)
	if err != nil {
		return wrap(err, name)
	}
	start, end, err := rt.sliceBounds(in.Args[1], in.Args[2], int64(len(list.Items)), locals)
	if err != nil {
		return err
	}
	sub := value.NewList(list.T, append([]value.Value{}, list.Items[start:end]...))
	return rt.assignVar(name, sub, global, locals)
}

// sliceBounds reads two integer variables and checks them against the
// sequence length as a half-open range. Caller holds rt.mu.
func (rt *Runtime) sliceBounds(startVar, endVar string, size int64, locals map[string]value.Value) (int64, int64, error) {
	start, err := rt.intOperand(startVar, locals)
	if err != nil {
		return 0, 0, err
	}
	end, err := rt.intOperand(endVar, locals)
	if err != nil {
		return 0, 0, err
	}
	if start < 0 || end < start || end > size {
		return 0, 0, errf(KindBadArgs, "range %d..%d out of bounds for size %d", start, end, size)
	}
	return start, end, nil
}

// intOperand resolves a variable and reads it as an integer. Caller
// holds rt.mu.
func (rt *Runtime) intOperand(name string, locals map[string]value.Value) (int64, error) {
	v, err := rt.getVar(name, locals)
	if err != nil {
		return 0, err
	}
	n, err := value.AsInteger(v)
	if err != nil {
		return 0, wrap(err, name)
	}
	return n, nil
}

func (rt *Runtime) execHasStr(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	hay, err := rt.strOperand(in.Args[0], locals)
	if err != nil {
		return err
	}
	needle, err := rt.strOperand(in.Args[1], locals)
	if err != nil {
		return err
	}
	return rt.assignVar(in.Args[2], value.NewBool(strings.Contains(hay, needle)), global, locals)
}

func (rt *Runtime) strOperand(name string, locals map[string]value.Value) (string, error) {
	v, err := rt.getVar(name, locals)
	if err != nil {
		return "", err
	}
	s, err := value.AsString(v)
	if err != nil {
		return "", wrap(err, name)
	}
	return s, nil
}

func (rt *Runtime) execHasItem(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	list, err := value.AsList(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	item, err := rt.getVar(in.Args[1], locals)
	if err != nil {
		return err
	}
	found := false
	for _, it := range list.Items {
		if value.Equal(it, item) {
			found = true
			break
		}
	}
	return rt.assignVar(in.Args[2], value.NewBool(found), global, locals)
}

func (rt *Runtime) execHasEntry(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 4); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	m, err := value.AsMap(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	key, err := rt.getVar(in.Args[1], locals)
	if err != nil {
		return err
	}
	want, err := rt.getVar(in.Args[2], locals)
	if err != nil {
		return err
	}
	got, ok := m.Get(key)
	found := ok && value.Equal(got, want)
	return rt.assignVar(in.Args[3], value.NewBool(found), global, locals)
}

func (rt *Runtime) execHasKey(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	m, err := value.AsMap(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	key, err := rt.getVar(in.Args[1], locals)
	if err != nil {
		return err
	}
	_, ok := m.Get(key)
	return rt.assignVar(in.Args[2], value.NewBool(ok), global, locals)
}

func (rt *Runtime) execHasValue(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	src, err := rt.getVar(in.Args[0], locals)
	if err != nil {
		return err
	}
	m, err := value.AsMap(src)
	if err != nil {
		return wrap(err, in.Args[0])
	}
	want, err := rt.getVar(in.Args[1], locals)
	if err != nil {
		return err
	}
	found := false
	m.Each(func(_, v value.Value) bool {
		if value.Equal(v, want) {
			found = true
			return false
		}
		return true
	})
	return rt.assignVar(in.Args[2], value.NewBool(found), global, locals)
}
