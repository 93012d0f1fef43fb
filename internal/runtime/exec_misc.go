package runtime

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/MeexReay/sustlang/internal/config"
	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/value"
)

func (rt *Runtime) execSleep(in *script.Instruction, locals map[string]value.Value) error {
	if err := needArgs(in, 1); err != nil {
		return err
	}

	rt.mu.Lock()
	src, err := rt.getVar(in.Args[0], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	var d time.Duration
	switch v := src.(type) {
	case *value.Integer:
		if !v.Ok {
			return errf(KindNotInited, "%q", in.Args[0])
		}
		d = time.Duration(v.V) * time.Millisecond
	case *value.Float:
		if !v.Ok {
			return errf(KindNotInited, "%q", in.Args[0])
		}
		d = time.Duration(v.V * float64(time.Millisecond))
	default:
		return errf(KindTypeMismatch, "%q is %s, not a duration", in.Args[0], src.Type())
	}

	time.Sleep(d)
	return nil
}

// execNewThread runs a zero-argument function on its own goroutine.
// The task shares the global table; its failures go to the error sink
// since there is no caller to unwind to.
func (rt *Runtime) execNewThread(in *script.Instruction, locals map[string]value.Value) error {
	if err := needArgs(in, 1); err != nil {
		return err
	}

	rt.mu.Lock()
	fn, err := rt.function(in.Args[0])
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	task := fn.Name + "/" + uuid.NewString()[:8]
	go func() {
		if err := rt.callFunction(fn, config.DiscardVar, nil, false, map[string]value.Value{}); err != nil {
			rt.reportTaskError(task, err)
		}
	}()
	return nil
}

func (rt *Runtime) execRandom(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 3); err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	min, err := rt.intOperand(in.Args[0], locals)
	if err != nil {
		return err
	}
	max, err := rt.intOperand(in.Args[1], locals)
	if err != nil {
		return err
	}
	if max < min {
		return errf(KindBadArgs, "range %d..%d is empty", min, max)
	}
	n := min + int64(rt.randSpan(uint64(max)-uint64(min)+1))
	return rt.assignVar(in.Args[2], value.NewInteger(n), global, locals)
}

// randSpan draws uniformly from [0, span). span == 0 means the full
// 64-bit range; the unsigned arithmetic keeps extreme bounds from
// overflowing int64.
func (rt *Runtime) randSpan(span uint64) uint64 {
	switch {
	case span == 0:
		return rt.rng.Uint64()
	case span <= math.MaxInt64:
		return uint64(rt.rng.Int63n(int64(span)))
	}
	// span covers more than half the 64-bit range, so rejection
	// sampling accepts on the first draw more often than not
	for {
		if v := rt.rng.Uint64(); v < span {
			return v
		}
	}
}

func (rt *Runtime) execImport(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 1); err != nil {
		return err
	}

	rt.mu.Lock()
	path, err := rt.strOperand(in.Args[0], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(rt.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errIO("import "+path, err)
	}
	return rt.importSource(string(data), global, locals)
}

func (rt *Runtime) execImportText(in *script.Instruction, global bool, locals map[string]value.Value) error {
	if err := needArgs(in, 1); err != nil {
		return err
	}

	rt.mu.Lock()
	text, err := rt.strOperand(in.Args[0], locals)
	rt.mu.Unlock()
	if err != nil {
		return err
	}
	return rt.importSource(text, global, locals)
}

// importSource translates extra source, merges its functions into the
// table (later imports win) and runs its top-level body in the current
// scope.
func (rt *Runtime) importSource(src string, global bool, locals map[string]value.Value) error {
	prog, err := script.Translate(src)
	if err != nil {
		return &Error{Kind: KindParse, Detail: "import", Err: err}
	}

	rt.mu.Lock()
	for name, fn := range prog.Functions {
		rt.funcs[name] = fn
	}
	rt.mu.Unlock()

	return rt.execList(prog.Body, global, locals)
}
