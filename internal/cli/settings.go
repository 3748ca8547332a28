// Package cli is the command line front end: it parses the tool's own
// flags, loads the TypeScript project behind them, and drives emit.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/scythejs/scythe/internal/errors"
)

// Version is stamped into --version output.
const Version = "0.3.0"

// Settings holds the tool's own flags, kept apart from the compiler
// arguments that pass through to the project loader.
type Settings struct {
	// Module is the prefix prepended to every generated goog.module name.
	Module string

	// ModuleRenames maps the name a file would get by default to the name
	// to emit instead, used verbatim.
	ModuleRenames map[string]string

	// Verbose enables detailed output and error reporting.
	Verbose bool

	// DepsFile, when set, is where the Closure dependency file is written.
	DepsFile string

	// TSVersion pins the embedded compiler to a TypeScript release tag.
	TSVersion string

	// Clean removes the configured output directory before emitting.
	Clean bool
}

// SettingsLoader parses the tool's command line. The output writers and the
// exit function default to the process's own; tests substitute buffers and a
// recording exit.
type SettingsLoader struct {
	Output    io.Writer
	ErrOutput io.Writer
	Exit      func(int)
}

// NewSettingsLoader creates a loader wired to the process streams.
func NewSettingsLoader() *SettingsLoader {
	return &SettingsLoader{
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
		Exit:      os.Exit,
	}
}

// Load splits argv into the tool's settings and the compiler arguments.
// Everything after a bare "--" passes through verbatim; everything before it
// must be one of the tool's flags. Usage problems print usage and exit 1;
// help and version requests exit 0.
func (l *SettingsLoader) Load(args []string) (*Settings, []string) {
	settings := &Settings{ModuleRenames: map[string]string{}}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			l.printUsage(l.Output)
			l.Exit(0)
			return settings, nil

		case "--version":
			fmt.Fprintf(l.Output, "scythe %s\n", Version)
			l.Exit(0)
			return settings, nil

		case "-m", "--module":
			value, ok := flagValue(args, &i)
			if !ok {
				return l.usageError("flag %s needs a value", arg)
			}
			settings.Module = value

		case "-mr", "--module_renames":
			value, ok := flagValue(args, &i)
			if !ok {
				return l.usageError("flag %s needs a value", arg)
			}
			from, to, ok := splitRename(value)
			if !ok {
				return l.usageError("invalid module rename %q, want FROM/TO", value)
			}
			settings.ModuleRenames[from] = to

		case "--deps_file":
			value, ok := flagValue(args, &i)
			if !ok {
				return l.usageError("flag %s needs a value", arg)
			}
			settings.DepsFile = value

		case "--ts_version":
			value, ok := flagValue(args, &i)
			if !ok {
				return l.usageError("flag %s needs a value", arg)
			}
			if !strings.HasPrefix(value, "v") {
				value = "v" + value
			}
			if !semver.IsValid(value) {
				return l.usageError("invalid TypeScript version %q", value)
			}
			settings.TSVersion = value

		case "-v", "--verbose":
			settings.Verbose = true

		case "--clean":
			settings.Clean = true

		case "--":
			return settings, args[i+1:]

		default:
			if strings.HasPrefix(arg, "-") {
				return l.usageError("unknown flag %s", arg)
			}
			return l.usageError("unexpected argument %q, compiler arguments go after --", arg)
		}
	}
	return settings, nil
}

// flagValue consumes the next argument as this flag's value.
func flagValue(args []string, i *int) (string, bool) {
	if *i+1 >= len(args) {
		return "", false
	}
	*i++
	return args[*i], true
}

// splitRename splits a FROM/TO pair on its first slash. Both halves must be
// non-empty; the TO half is used verbatim and may itself contain slashes.
func splitRename(value string) (from, to string, ok bool) {
	idx := strings.Index(value, "/")
	if idx <= 0 || idx == len(value)-1 {
		return "", "", false
	}
	return value[:idx], value[idx+1:], true
}

func (l *SettingsLoader) usageError(format string, args ...interface{}) (*Settings, []string) {
	err := errors.UsageError(format, args...)
	fmt.Fprintf(l.ErrOutput, "scythe: %s\n\n", err.Error())
	l.printUsage(l.ErrOutput)
	l.Exit(1)
	return nil, nil
}
