package runtime

import (
	"strconv"
	"strings"

	"github.com/MeexReay/sustlang/internal/value"
)

// The store is two flat tables, globals on the runtime and locals per
// call frame. Names are dotted paths: the first segment picks a table
// entry, each further segment descends into a list by index or a map
// by parsed key. All store methods expect rt.mu held by the caller.

// getVar resolves a dotted path and returns a deep clone of the value.
func (rt *Runtime) getVar(path string, locals map[string]value.Value) (value.Value, error) {
	parts := strings.Split(path, ".")

	cur, ok := locals[parts[0]]
	if !ok {
		cur, ok = rt.globals[parts[0]]
	}
	if !ok {
		return nil, errUnknownVar(parts[0])
	}

	for _, part := range parts[1:] {
		next, err := descend(cur, part, path)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur.Clone(), nil
}

// descend steps one path segment into a container value.
func descend(cur value.Value, part, path string) (value.Value, error) {
	switch c := cur.(type) {
	case *value.List:
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, errf(KindParse, "index %q in %q", part, path)
		}
		if idx < 0 || idx >= len(c.Items) {
			return nil, errf(KindUnknownVar, "index %d in %q", idx, path)
		}
		return c.Items[idx], nil
	case *value.Map:
		key, err := value.Parse(c.T.Key, part)
		if err != nil {
			return nil, wrap(err, path)
		}
		v, ok := c.Get(key)
		if !ok {
			return nil, errf(KindUnknownVar, "key %q in %q", part, path)
		}
		return v, nil
	}
	return nil, errf(KindTypeMismatch, "%q is not indexable at %q", path, part)
}

// resolves reports whether a bare name is visible in either table.
func (rt *Runtime) resolves(name string, locals map[string]value.Value) bool {
	if _, ok := locals[name]; ok {
		return true
	}
	_, ok := rt.globals[name]
	return ok
}

// declareVar binds a fresh name. Declarations never promote to the
// global table: the scope flag alone picks the table.
func (rt *Runtime) declareVar(name string, v value.Value, global bool, locals map[string]value.Value) error {
	if strings.Contains(name, ".") {
		return errf(KindBadArgs, "cannot declare a path %q", name)
	}
	if rt.resolves(name, locals) {
		return errf(KindVarExists, "%q", name)
	}
	if global {
		rt.globals[name] = v
	} else {
		locals[name] = v
	}
	return nil
}

// route picks the table for a write: global scope, or a name that is
// visible only in the global table, writes globally.
func (rt *Runtime) route(name string, global bool, locals map[string]value.Value) bool {
	if global {
		return true
	}
	if _, ok := locals[name]; ok {
		return false
	}
	_, ok := rt.globals[name]
	return ok
}

// assignVar overwrites an existing binding or container slot. A bare
// name must already exist and keep its declared type; a map path
// upserts the final key.
func (rt *Runtime) assignVar(path string, v value.Value, global bool, locals map[string]value.Value) error {
	parts := strings.Split(path, ".")
	toGlobal := rt.route(parts[0], global, locals)

	table := locals
	if toGlobal {
		table = rt.globals
	}

	cur, ok := table[parts[0]]
	if !ok {
		return errUnknownVar(parts[0])
	}

	if len(parts) == 1 {
		if !cur.Type().Equal(v.Type()) {
			return errf(KindTypeMismatch, "%q is %s, not %s", path, cur.Type(), v.Type())
		}
		table[parts[0]] = v
		return nil
	}

	for _, part := range parts[1 : len(parts)-1] {
		next, err := descend(cur, part, path)
		if err != nil {
			return err
		}
		cur = next
	}
	return assignSlot(cur, parts[len(parts)-1], path, v)
}

// assignSlot writes the final segment of a path into its container.
func assignSlot(cur value.Value, part, path string, v value.Value) error {
	switch c := cur.(type) {
	case *value.List:
		idx, err := strconv.Atoi(part)
		if err != nil {
			return errf(KindParse, "index %q in %q", part, path)
		}
		if idx < 0 || idx >= len(c.Items) {
			return errf(KindUnknownVar, "index %d in %q", idx, path)
		}
		if !c.T.Elem.Equal(v.Type()) {
			return errf(KindTypeMismatch, "%q holds %s, not %s", path, c.T.Elem, v.Type())
		}
		c.Items[idx] = v
		return nil
	case *value.Map:
		key, err := value.Parse(c.T.Key, part)
		if err != nil {
			return wrap(err, path)
		}
		if !c.T.Val.Equal(v.Type()) {
			return errf(KindTypeMismatch, "%q holds %s, not %s", path, c.T.Val, v.Type())
		}
		c.Put(key, v)
		return nil
	}
	return errf(KindTypeMismatch, "%q is not indexable at %q", path, part)
}

// putVar writes a bare name without existence or type checks, routed
// like an assignment. Used for delivering function results and the
// standard bindings.
func (rt *Runtime) putVar(name string, v value.Value, global bool, locals map[string]value.Value) {
	if rt.route(name, global, locals) {
		rt.globals[name] = v
	} else {
		locals[name] = v
	}
}

// dropVar removes a binding, a list element or a map entry. Dropping
// an output stream flushes it first.
func (rt *Runtime) dropVar(path string, locals map[string]value.Value) error {
	parts := strings.Split(path, ".")

	if len(parts) == 1 {
		if v, ok := locals[path]; ok {
			flushOnDrop(v)
			delete(locals, path)
			return nil
		}
		if v, ok := rt.globals[path]; ok {
			flushOnDrop(v)
			delete(rt.globals, path)
			return nil
		}
		return errUnknownVar(path)
	}

	cur, ok := locals[parts[0]]
	if !ok {
		cur, ok = rt.globals[parts[0]]
	}
	if !ok {
		return errUnknownVar(parts[0])
	}
	for _, part := range parts[1 : len(parts)-1] {
		next, err := descend(cur, part, path)
		if err != nil {
			return err
		}
		cur = next
	}
	return dropSlot(cur, parts[len(parts)-1], path)
}

func dropSlot(cur value.Value, part, path string) error {
	switch c := cur.(type) {
	case *value.List:
		idx, err := strconv.Atoi(part)
		if err != nil {
			return errf(KindParse, "index %q in %q", part, path)
		}
		if idx < 0 || idx >= len(c.Items) {
			return errf(KindUnknownVar, "index %d in %q", idx, path)
		}
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return nil
	case *value.Map:
		key, err := value.Parse(c.T.Key, part)
		if err != nil {
			return wrap(err, path)
		}
		if !c.Remove(key) {
			return errf(KindUnknownVar, "key %q in %q", part, path)
		}
		return nil
	}
	return errf(KindTypeMismatch, "%q is not indexable at %q", path, part)
}

func flushOnDrop(v value.Value) {
	if out, ok := v.(*value.OutStream); ok && out.H != nil {
		out.H.Flush()
	}
}
