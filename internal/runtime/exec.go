package runtime

import (
	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/value"
)

// execList runs one instruction list. Temp variables declared by
// TEMP_VAR survive exactly one following instruction: after each
// non-TEMP_VAR instruction the pending set is dropped and cleared.
// RETURN ends the list immediately.
func (rt *Runtime) execList(list []script.Instruction, global bool, locals map[string]value.Value) error {
	var temps []string
	for i := range list {
		in := &list[i]
		if in.Op == script.OpReturn {
			return nil
		}
		if err := rt.execInstr(in, global, locals, &temps); err != nil {
			return attach(err, in)
		}
		if in.Op == script.OpTempVar {
			continue
		}
		if len(temps) > 0 {
			rt.mu.Lock()
			for _, name := range temps {
				// already gone if the instruction moved or dropped it
				_ = rt.dropVar(name, locals)
			}
			rt.mu.Unlock()
			temps = temps[:0]
		}
	}
	return nil
}

// needArgs enforces an exact operand count.
func needArgs(in *script.Instruction, n int) error {
	if len(in.Args) != n {
		return errf(KindBadArgs, "%s takes %d operands, got %d", in.Op, n, len(in.Args))
	}
	return nil
}

// needArgsAtLeast enforces a minimum operand count, for instructions
// with a trailing literal or argument list.
func needArgsAtLeast(in *script.Instruction, n int) error {
	if len(in.Args) < n {
		return errf(KindBadArgs, "%s takes at least %d operands, got %d", in.Op, n, len(in.Args))
	}
	return nil
}

func (rt *Runtime) execInstr(in *script.Instruction, global bool, locals map[string]value.Value, temps *[]string) error {
	switch in.Op {
	case script.OpInitVar:
		return rt.execInitVar(in, global, locals)
	case script.OpSetVar:
		return rt.execSetVar(in, global, locals)
	case script.OpTempVar:
		return rt.execTempVar(in, global, locals, temps)
	case script.OpMoveVar:
		return rt.execMoveVar(in, global, locals)
	case script.OpCopyVar:
		return rt.execCopyVar(in, global, locals)
	case script.OpDropVar:
		return rt.execDropVar(in, locals)
	case script.OpHasVar:
		return rt.execHasVar(in, global, locals)

	case script.OpToString:
		return rt.execToString(in, global, locals)
	case script.OpToChars:
		return rt.execToChars(in, global, locals)
	case script.OpToChar:
		return rt.execToChar(in, global, locals)
	case script.OpToInteger:
		return rt.execToInteger(in, global, locals)
	case script.OpToFloat:
		return rt.execToFloat(in, global, locals)
	case script.OpToBool:
		return rt.execToBool(in, global, locals)

	case script.OpGetSymbol:
		return rt.execGetSymbol(in, global, locals)
	case script.OpGetItem:
		return rt.execGetItem(in, global, locals)
	case script.OpGetValue:
		return rt.execGetValue(in, global, locals)
	case script.OpListSize:
		return rt.execListSize(in, global, locals)
	case script.OpMapSize:
		return rt.execMapSize(in, global, locals)
	case script.OpStringSize:
		return rt.execStringSize(in, global, locals)
	case script.OpSubStr:
		return rt.execSubStr(in, global, locals)
	case script.OpSubList:
		return rt.execSubList(in, global, locals)

	case script.OpAddInt:
		return rt.execAddInt(in, global, locals)
	case script.OpAddFloat:
		return rt.execAddFloat(in, global, locals)
	case script.OpAddStr:
		return rt.execAddStr(in, global, locals)

	case script.OpEquals:
		return rt.execEquals(in, global, locals)
	case script.OpMore:
		return rt.execCompare(in, global, locals, true)
	case script.OpLess:
		return rt.execCompare(in, global, locals, false)
	case script.OpAnd:
		return rt.execAnd(in, global, locals)
	case script.OpOr:
		return rt.execOr(in, global, locals)
	case script.OpNot:
		return rt.execNot(in, global, locals)

	case script.OpHasStr:
		return rt.execHasStr(in, global, locals)
	case script.OpHasItem:
		return rt.execHasItem(in, global, locals)
	case script.OpHasEntry:
		return rt.execHasEntry(in, global, locals)
	case script.OpHasKey:
		return rt.execHasKey(in, global, locals)
	case script.OpHasValue:
		return rt.execHasValue(in, global, locals)

	case script.OpHasOptional:
		return rt.execHasOptional(in, global, locals)
	case script.OpUnpackOptional:
		return rt.execUnpackOptional(in, global, locals)
	case script.OpPackOptional:
		return rt.execPackOptional(in, global, locals)
	case script.OpNoneOptional:
		return rt.execNoneOptional(in, global, locals)

	case script.OpWrite:
		return rt.execWrite(in, locals)
	case script.OpRead:
		return rt.execRead(in, global, locals)
	case script.OpReadAll:
		return rt.execReadAll(in, global, locals)
	case script.OpOpenFileIn:
		return rt.execOpenFileIn(in, global, locals)
	case script.OpOpenFileOut:
		return rt.execOpenFileOut(in, global, locals)
	case script.OpOpenTCPConnection:
		return rt.execOpenTCPConnection(in, global, locals)
	case script.OpOpenTCPListener:
		return rt.execOpenTCPListener(in, locals)

	case script.OpIf:
		return rt.execIf(in, global, locals)
	case script.OpFor:
		return rt.execFor(in, global, locals)
	case script.OpForList:
		return rt.execForList(in, global, locals)
	case script.OpForMap:
		return rt.execForMap(in, global, locals)
	case script.OpForString:
		return rt.execForString(in, global, locals)
	case script.OpWhile:
		return rt.execWhile(in, global, locals)
	case script.OpUseFunc:
		return rt.execUseFunc(in, global, locals)

	case script.OpNewThread:
		return rt.execNewThread(in, locals)
	case script.OpSleep:
		return rt.execSleep(in, locals)
	case script.OpRandom:
		return rt.execRandom(in, global, locals)
	case script.OpImport:
		return rt.execImport(in, global, locals)
	case script.OpImportText:
		return rt.execImportText(in, global, locals)
	}
	return errf(KindBadArgs, "%s cannot execute here", in.Op)
}
