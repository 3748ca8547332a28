package cli

import "io"

const usageText = `Usage: scythe [options] -- [tsc options]

Scythe compiles TypeScript projects to Closure-compatible JavaScript.
Arguments after -- are interpreted the way tsc interprets them: name a
project with -p, pass compiler options such as --outDir, or list source
files directly.

Options:
  -m, --module NAME       Prefix every generated goog.module name with NAME
  -mr, --module_renames FROM/TO
                          Emit the module that would be named FROM under the
                          name TO instead; may be repeated
  --deps_file PATH        Write a Closure deps file for the emitted modules
                          to PATH
  --ts_version VERSION    Pin the embedded TypeScript compiler to VERSION
  --clean                 Remove the configured outDir before emitting
  -v, --verbose           Enable detailed output
  --version               Print the version and exit
  -h, --help              Show this help

Examples:
  scythe -- -p .
  scythe -m myapp -- -p src --outDir build
  scythe -mr myapp.main/entry --deps_file build/deps.js -- -p .
  scythe --clean -v -- --outDir build src/index.ts
`

func (l *SettingsLoader) printUsage(w io.Writer) {
	io.WriteString(w, usageText)
}
