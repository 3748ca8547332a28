// Package tsconfig loads TypeScript project configuration: tsconfig.json
// discovery, JWCC parsing, extends chains, compiler option merging, and
// input file expansion from files, include, and exclude specifications.
package tsconfig

import (
	"strings"

	"github.com/scythejs/scythe/internal/diag"
)

// CompilerOptions is the subset of tsconfig compiler options the tool acts
// on. Everything else in compilerOptions is passed through to the
// transpilation engine untouched.
type CompilerOptions struct {
	Module                 string
	ModuleResolution       string
	Target                 string
	OutDir                 string
	RootDir                string
	ExperimentalDecorators bool
	NoImplicitAny          bool
	Strict                 bool
	RemoveComments         bool
}

// EffectiveModuleKind returns the lower-cased module kind, applying the
// compiler's default of commonjs for ES3 and ES5 targets when "module" is
// unset.
func (o CompilerOptions) EffectiveModuleKind() string {
	if o.Module != "" {
		return strings.ToLower(o.Module)
	}
	switch strings.ToLower(o.Target) {
	case "", "es3", "es5":
		return "commonjs"
	default:
		return "es2015"
	}
}

// ParsedProject is the result of interpreting the compiler's command line:
// the resolved options, the expanded input file set, and every diagnostic
// produced along the way.
type ParsedProject struct {
	ConfigPath string
	Options    CompilerOptions
	FileNames  []string
	Errors     []diag.Diagnostic
}

// HasErrors reports whether any configuration diagnostic is an error.
func (p *ParsedProject) HasErrors() bool {
	return diag.HasErrors(p.Errors)
}

// rawCompilerOptions mirrors the compilerOptions object of a config file.
// Pointer fields distinguish "absent" from zero values so extends chains and
// command line overrides merge correctly.
type rawCompilerOptions struct {
	Module                 *string `json:"module"`
	ModuleResolution       *string `json:"moduleResolution"`
	Target                 *string `json:"target"`
	OutDir                 *string `json:"outDir"`
	RootDir                *string `json:"rootDir"`
	ExperimentalDecorators *bool   `json:"experimentalDecorators"`
	NoImplicitAny          *bool   `json:"noImplicitAny"`
	Strict                 *bool   `json:"strict"`
	RemoveComments         *bool   `json:"removeComments"`
}

// configFile mirrors the top level of a tsconfig.json. Files, include, and
// exclude are pointers because an empty list and an absent one mean
// different things.
type configFile struct {
	Extends         string             `json:"extends"`
	CompilerOptions rawCompilerOptions `json:"compilerOptions"`
	Files           *[]string          `json:"files"`
	Include         *[]string          `json:"include"`
	Exclude         *[]string          `json:"exclude"`
}

// stringList is a list of paths or patterns together with the directory they
// are relative to. Specifications from an extended config stay relative to
// the config that declared them.
type stringList struct {
	dir   string
	items []string
}

// mergedConfig is a config file with its extends chain folded in.
type mergedConfig struct {
	options rawCompilerOptions
	files   *stringList
	include *stringList
	exclude *stringList
}

func finalOptions(raw rawCompilerOptions) CompilerOptions {
	var options CompilerOptions
	if raw.Module != nil {
		options.Module = *raw.Module
	}
	if raw.ModuleResolution != nil {
		options.ModuleResolution = *raw.ModuleResolution
	}
	if raw.Target != nil {
		options.Target = *raw.Target
	}
	if raw.OutDir != nil {
		options.OutDir = *raw.OutDir
	}
	if raw.RootDir != nil {
		options.RootDir = *raw.RootDir
	}
	if raw.ExperimentalDecorators != nil {
		options.ExperimentalDecorators = *raw.ExperimentalDecorators
	}
	if raw.NoImplicitAny != nil {
		options.NoImplicitAny = *raw.NoImplicitAny
	}
	if raw.Strict != nil {
		options.Strict = *raw.Strict
	}
	if raw.RemoveComments != nil {
		options.RemoveComments = *raw.RemoveComments
	}
	return options
}
