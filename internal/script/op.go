package script

// Op is an instruction tag. The vocabulary is fixed; the translator
// rejects anything else at load time.
type Op int

const (
	OpInitVar Op = iota
	OpSetVar
	OpTempVar
	OpMoveVar
	OpCopyVar
	OpDropVar
	OpHasVar

	OpToString
	OpToChars
	OpToChar
	OpToInteger
	OpToFloat
	OpToBool

	OpGetSymbol
	OpGetItem
	OpGetValue
	OpListSize
	OpMapSize
	OpStringSize
	OpSubStr
	OpSubList

	OpAddInt
	OpAddFloat
	OpAddStr

	OpEquals
	OpMore
	OpLess
	OpAnd
	OpOr
	OpNot

	OpHasStr
	OpHasItem
	OpHasEntry
	OpHasKey
	OpHasValue

	OpHasOptional
	OpUnpackOptional
	OpPackOptional
	OpNoneOptional

	OpWrite
	OpRead
	OpReadAll
	OpOpenFileIn
	OpOpenFileOut
	OpOpenTCPConnection
	OpOpenTCPListener

	OpIf
	OpFor
	OpForList
	OpForMap
	OpForString
	OpWhile
	OpUseFunc
	OpFunc
	OpFuncEnd
	OpReturn

	OpNewThread
	OpSleep
	OpRandom
	OpImport
	OpImportText
)

var opNames = map[Op]string{
	OpInitVar:           "INIT_VAR",
	OpSetVar:            "SET_VAR",
	OpTempVar:           "TEMP_VAR",
	OpMoveVar:           "MOVE_VAR",
	OpCopyVar:           "COPY_VAR",
	OpDropVar:           "DROP_VAR",
	OpHasVar:            "HAS_VAR",
	OpToString:          "TO_STRING",
	OpToChars:           "TO_CHARS",
	OpToChar:            "TO_CHAR",
	OpToInteger:         "TO_INTEGER",
	OpToFloat:           "TO_FLOAT",
	OpToBool:            "TO_BOOL",
	OpGetSymbol:         "GET_SYMBOL",
	OpGetItem:           "GET_ITEM",
	OpGetValue:          "GET_VALUE",
	OpListSize:          "LIST_SIZE",
	OpMapSize:           "MAP_SIZE",
	OpStringSize:        "STRING_SIZE",
	OpSubStr:            "SUB_STR",
	OpSubList:           "SUB_LIST",
	OpAddInt:            "ADD_INT",
	OpAddFloat:          "ADD_FLOAT",
	OpAddStr:            "ADD_STR",
	OpEquals:            "EQUALS",
	OpMore:              "MORE",
	OpLess:              "LESS",
	OpAnd:               "AND",
	OpOr:                "OR",
	OpNot:               "NOT",
	OpHasStr:            "HAS_STR",
	OpHasItem:           "HAS_ITEM",
	OpHasEntry:          "HAS_ENTRY",
	OpHasKey:            "HAS_KEY",
	OpHasValue:          "HAS_VALUE",
	OpHasOptional:       "HAS_OPTIONAL",
	OpUnpackOptional:    "UNPACK_OPTIONAL",
	OpPackOptional:      "PACK_OPTIONAL",
	OpNoneOptional:      "NONE_OPTIONAL",
	OpWrite:             "WRITE",
	OpRead:              "READ",
	OpReadAll:           "READ_ALL",
	OpOpenFileIn:        "OPEN_FILE_IN",
	OpOpenFileOut:       "OPEN_FILE_OUT",
	OpOpenTCPConnection: "OPEN_TCP_CONNECTION",
	OpOpenTCPListener:   "OPEN_TCP_LISTENER",
	OpIf:                "IF",
	OpFor:               "FOR",
	OpForList:           "FOR_LIST",
	OpForMap:            "FOR_MAP",
	OpForString:         "FOR_STRING",
	OpWhile:             "WHILE",
	OpUseFunc:           "USE_FUNC",
	OpFunc:              "FUNC",
	OpFuncEnd:           "FUNC_END",
	OpReturn:            "RETURN",
	OpNewThread:         "NEW_THREAD",
	OpSleep:             "SLEEP",
	OpRandom:            "RANDOM",
	OpImport:            "IMPORT",
	OpImportText:        "IMPORT_TEXT",
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

// OpFromName resolves an instruction tag.
func OpFromName(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "UNKNOWN_OP"
}
