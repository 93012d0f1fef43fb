package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/MeexReay/sustlang/internal/config"
	"github.com/MeexReay/sustlang/internal/runtime"
	"github.com/MeexReay/sustlang/internal/script"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: sust <script%s> [args...]\n", config.SourceFileExt)
	fmt.Fprintf(os.Stderr, "       sust            (runs the script named in %s)\n", config.ProjectFile)
}

// fail prints an error and exits. On a terminal it uses pterm's error
// prefix, otherwise a plain line so piped output stays parseable.
func fail(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		pterm.Error.Println(msg)
	} else {
		fmt.Fprintln(os.Stderr, "error: "+msg)
	}
	os.Exit(code)
}

// resolveScript picks the script path and its arguments: the command
// line wins, the project file is the fallback.
func resolveScript(args []string) (string, []string) {
	if len(args) > 0 {
		return args[0], args[1:]
	}
	proj, err := config.LoadProject(config.ProjectFile)
	if err != nil {
		fail(2, "%v", err)
	}
	if proj == nil {
		usage()
		os.Exit(2)
	}
	return proj.Script, proj.Args
}

func main() {
	path, scriptArgs := resolveScript(os.Args[1:])

	data, err := os.ReadFile(path)
	if err != nil {
		fail(2, "read %s: %v", path, err)
	}

	prog, err := script.Translate(string(data))
	if err != nil {
		fail(2, "%s: %v", path, err)
	}

	rt := runtime.New(prog)
	rt.SetBaseDir(filepath.Dir(path))
	rt.SetStandardVars(scriptArgs, os.Stdout, os.Stdin)

	runErr := rt.Run()
	rt.Flush()
	if runErr != nil {
		fail(1, "%s: %v", path, runErr)
	}
}
