// Package emit drives the embedded TypeScript compiler over a project's
// input files and shapes the output for Closure: goog.module headers,
// rewritten requires, and a manifest of the modules produced.
package emit

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scythejs/scythe/internal/diag"
)

// ModuleNameFunc maps a source file to its goog.module name. The context is
// the file the name is being computed for, which for imports is the
// importing file.
type ModuleNameFunc func(context, fileName string) string

// Host carries the per-project callbacks and switches the engine consults
// while emitting: which files to skip, what to call their modules, and how
// aggressively to shape output for Closure.
type Host struct {
	// Root is the directory output paths and module identifiers are
	// computed relative to.
	Root       string
	ModuleName ModuleNameFunc
	LogWarning func(diag.Diagnostic)

	GoogModule                bool
	TransformDecorators       bool
	TransformTypesToClosure   bool
	GenerateExtraSuppressions bool

	inputs map[string]bool
}

// NewHost builds a host over the project's input files with every Closure
// transformation enabled.
func NewHost(root string, inputs []string, moduleName ModuleNameFunc, logWarning func(diag.Diagnostic)) *Host {
	set := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		set[filepath.Clean(input)] = true
	}
	return &Host{
		Root:                      root,
		ModuleName:                moduleName,
		LogWarning:                logWarning,
		GoogModule:                true,
		TransformDecorators:       true,
		TransformTypesToClosure:   true,
		GenerateExtraSuppressions: true,
		inputs:                    set,
	}
}

// ShouldSkip reports whether a file must not be transpiled: declaration
// files and anything outside the project's input set.
func (h *Host) ShouldSkip(fileName string) bool {
	if strings.HasSuffix(fileName, ".d.ts") {
		return true
	}
	return !h.inputs[filepath.Clean(fileName)]
}

// FileNameToModuleID returns the stable identifier recorded for a module,
// its slash-separated path relative to the root.
func (h *Host) FileNameToModuleID(fileName string) string {
	if rel, err := filepath.Rel(h.Root, fileName); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(fileName)
}

var (
	moduleExtension = regexp.MustCompile(`(\.d)?\.[tj]sx?$`)
	invalidFirst    = regexp.MustCompile(`^[^a-zA-Z_$]`)
	invalidChars    = regexp.MustCompile(`[^a-zA-Z0-9._$]`)
)

// DefaultModuleName derives a goog.module name from a file path: the
// extension is stripped, the path is made relative to root, separators
// become dots, and characters goog.module does not accept become
// underscores.
func DefaultModuleName(root, fileName string) string {
	name := moduleExtension.ReplaceAllString(fileName, "")
	if rel, err := filepath.Rel(root, name); err == nil && !strings.HasPrefix(rel, "..") {
		name = rel
	}
	name = strings.ReplaceAll(filepath.ToSlash(name), "/", ".")
	name = invalidFirst.ReplaceAllString(name, "_")
	return invalidChars.ReplaceAllString(name, "_")
}

// ModuleNamer builds the naming function from the module flag settings.
// Renames are keyed by the name a file would get by default and their
// replacement is used verbatim; the prefix applies to everything else.
func ModuleNamer(prefix string, renames map[string]string, defaultName ModuleNameFunc) ModuleNameFunc {
	return func(context, fileName string) string {
		name := defaultName(context, fileName)
		if renamed, ok := renames[name]; ok {
			return renamed
		}
		if prefix != "" {
			return prefix + "." + name
		}
		return name
	}
}
