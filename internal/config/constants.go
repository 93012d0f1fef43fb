package config

// SourceFileExt is the recognized script file extension.
const SourceFileExt = ".sust"

// CommentMark starts a comment; everything from it to the end of the
// line is stripped before translation, even inside literals.
const CommentMark = "#"

// Names with fixed meaning inside a running script.
const (
	// ResultVar is the implicit output slot of every function.
	ResultVar = "result"
	// DiscardVar is the sentinel result target that throws the value away.
	DiscardVar = "null"
	// WhileVar is the shared predicate slot of the WHILE instruction.
	WhileVar = "while"
	// MainFuncName names the implicit function wrapping the top-level body.
	MainFuncName = "main"
)

// Standard variables the process entry point pre-declares.
const (
	ArgsVar = "args"
	CoutVar = "cout"
	CinVar  = "cin"
)
