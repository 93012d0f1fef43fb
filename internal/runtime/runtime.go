// Package runtime executes a translated script: a shared global
// variable table, per-call local tables, and one handler per
// instruction. A single mutex guards the tables; handlers hold it for
// a whole instruction and release it around anything that blocks.
package runtime

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/MeexReay/sustlang/internal/config"
	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/stream"
	"github.com/MeexReay/sustlang/internal/types"
	"github.com/MeexReay/sustlang/internal/value"
)

type Runtime struct {
	mu      sync.Mutex
	globals map[string]value.Value
	funcs   map[string]*script.Function

	body    []script.Instruction
	baseDir string
	errOut  io.Writer
	rng     *rand.Rand
}

func New(prog *script.Program) *Runtime {
	funcs := make(map[string]*script.Function, len(prog.Functions))
	for name, fn := range prog.Functions {
		funcs[name] = fn
	}
	return &Runtime{
		globals: make(map[string]value.Value),
		funcs:   funcs,
		body:    prog.Body,
		baseDir: ".",
		errOut:  os.Stderr,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetBaseDir sets the directory IMPORT paths resolve against.
func (rt *Runtime) SetBaseDir(dir string) { rt.baseDir = dir }

// SetErrOut redirects background task failure reports.
func (rt *Runtime) SetErrOut(w io.Writer) { rt.errOut = w }

// SetStandardVars installs the conventional bindings every script can
// rely on: the argument list, standard output and standard input.
func (rt *Runtime) SetStandardVars(args []string, cout io.Writer, cin io.Reader) {
	items := make([]value.Value, len(args))
	for i, a := range args {
		items[i] = value.NewString(a)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.globals[config.ArgsVar] = value.NewList(types.NewList(types.StringType), items)
	rt.globals[config.CoutVar] = value.NewOutStream(stream.NewOut(cout))
	rt.globals[config.CinVar] = value.NewInStream(stream.NewIn(cin))
}

// Run executes the top-level body as an implicit zero-argument
// function at global scope. The returned error, if any, is an *Error
// carrying the failing instruction.
func (rt *Runtime) Run() error {
	main := &script.Function{
		Name:   config.MainFuncName,
		Result: types.NullType,
		Body:   rt.body,
	}
	return rt.execList(main.Body, true, map[string]value.Value{})
}

// Flush flushes every output stream still bound in the global table.
func (rt *Runtime) Flush() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for _, v := range rt.globals {
		flushOnDrop(v)
	}
}

// function looks up a name in the function table. Caller holds rt.mu.
func (rt *Runtime) function(name string) (*script.Function, error) {
	fn, ok := rt.funcs[name]
	if !ok {
		return nil, errUnknownFunc(name)
	}
	return fn, nil
}

// callFunction runs fn with a fresh local table: positional arguments
// bound by name, the result slot declared absent. Unless the target is
// the discard name, the result is delivered into the caller's scope
// after the body finishes.
func (rt *Runtime) callFunction(fn *script.Function, resultVar string, args []value.Value, callerGlobal bool, callerLocals map[string]value.Value) error {
	if len(args) != len(fn.Params) {
		return errf(KindBadArgs, "function %q takes %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}

	locals := make(map[string]value.Value, len(fn.Params)+1)
	for i, p := range fn.Params {
		if !p.Type.Equal(args[i].Type()) {
			return errf(KindTypeMismatch, "argument %q of %q is %s, not %s", p.Name, fn.Name, p.Type, args[i].Type())
		}
		locals[p.Name] = args[i]
	}
	locals[config.ResultVar] = value.Declared(fn.Result)

	if err := rt.execList(fn.Body, false, locals); err != nil {
		return err
	}

	if resultVar != config.DiscardVar {
		if res, ok := locals[config.ResultVar]; ok {
			rt.mu.Lock()
			rt.putVar(resultVar, res, callerGlobal, callerLocals)
			rt.mu.Unlock()
		}
	}
	return nil
}

// reportTaskError is the failure sink for background goroutines, which
// have no caller to unwind to.
func (rt *Runtime) reportTaskError(task string, err error) {
	fmt.Fprintf(rt.errOut, "task %s failed: %v\n", task, err)
}
