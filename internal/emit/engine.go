package emit

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	typescript "github.com/clarkmcc/go-typescript"

	"github.com/scythejs/scythe/internal/diag"
	"github.com/scythejs/scythe/internal/source"
	"github.com/scythejs/scythe/internal/tsconfig"
)

// TranspileFunc turns one TypeScript source into JavaScript. The default is
// the embedded TypeScript compiler; tests substitute deterministic
// implementations.
type TranspileFunc func(ctx context.Context, src io.Reader, opts ...typescript.TranspileOptionFunc) (string, error)

// WriteFunc persists one emitted output file.
type WriteFunc func(path string, contents []byte) error

// Engine transpiles project inputs one file at a time and applies the
// Closure shaping the host asks for.
type Engine struct {
	Options   tsconfig.CompilerOptions
	TSVersion string
	Sources   *source.Cache

	transpile TranspileFunc
}

// NewEngine builds an engine over the resolved compiler options. A non-empty
// tsVersion pins the embedded compiler to that TypeScript release.
func NewEngine(options tsconfig.CompilerOptions, tsVersion string, sources *source.Cache) *Engine {
	return NewEngineWithTranspile(options, tsVersion, sources, typescript.TranspileCtx)
}

// NewEngineWithTranspile builds an engine with a caller-provided transpiler.
func NewEngineWithTranspile(options tsconfig.CompilerOptions, tsVersion string, sources *source.Cache, transpile TranspileFunc) *Engine {
	return &Engine{
		Options:   options,
		TSVersion: tsVersion,
		Sources:   sources,
		transpile: transpile,
	}
}

// EmitProject transpiles every input the host does not skip, writing outputs
// through write. Failures become diagnostics on the result; the run
// continues so one broken file does not hide problems in the rest.
func (e *Engine) EmitProject(ctx context.Context, fileNames []string, host *Host, write WriteFunc) *EmitResult {
	result := &EmitResult{Manifest: NewModulesManifest()}
	for _, fileName := range fileNames {
		if ctx.Err() != nil {
			result.EmitSkipped = true
			break
		}
		if host.ShouldSkip(fileName) {
			continue
		}
		e.emitFile(ctx, fileName, host, write, result)
	}
	return result
}

func (e *Engine) emitFile(ctx context.Context, fileName string, host *Host, write WriteFunc, result *EmitResult) {
	file, err := e.Sources.Load(fileName)
	if err != nil {
		result.EmitSkipped = true
		result.Diagnostics = append(result.Diagnostics,
			diag.NewError(diag.CodeCannotReadFile, "Cannot read file '%s'.", fileName))
		return
	}

	opts := []typescript.TranspileOptionFunc{
		typescript.WithCompileOptions(e.compileOptions(host)),
	}
	if e.TSVersion != "" {
		opts = append(opts, typescript.WithVersion(e.TSVersion))
	}
	js, err := e.transpile(ctx, strings.NewReader(file.Text), opts...)
	if err != nil {
		result.EmitSkipped = true
		result.Diagnostics = append(result.Diagnostics, transpileDiagnostic(fileName, err))
		return
	}

	outPath := e.outputPath(fileName, host.Root)
	moduleName := host.ModuleName(fileName, fileName)
	contents := js
	if host.GoogModule {
		contents = toGoogModule(js, fileName, moduleName, host, func(ref string) {
			result.Manifest.AddReferencedModule(outPath, ref)
		})
	}
	if host.GenerateExtraSuppressions {
		contents = suppressionsHeader + contents
	}

	if err := write(outPath, []byte(contents)); err != nil {
		result.EmitSkipped = true
		result.Diagnostics = append(result.Diagnostics,
			diag.NewError(diag.CodeCannotWriteFile, "Could not write file '%s': %v.", outPath, err))
		return
	}
	result.EmittedFiles = append(result.EmittedFiles, outPath)
	result.Manifest.AddModule(outPath, moduleName)
}

// compileOptions assembles the options handed to the embedded compiler.
// Module output is always commonjs; the goog.module shaping depends on it.
func (e *Engine) compileOptions(host *Host) map[string]interface{} {
	options := map[string]interface{}{
		"module": "commonjs",
	}
	if e.Options.Target != "" {
		options["target"] = e.Options.Target
	}
	if e.Options.NoImplicitAny {
		options["noImplicitAny"] = true
	}
	if e.Options.Strict {
		options["strict"] = true
	}
	if e.Options.ExperimentalDecorators || host.TransformDecorators {
		options["experimentalDecorators"] = true
	}
	if e.Options.RemoveComments && !host.TransformTypesToClosure {
		// Closure reads types from JSDoc, so comments survive whenever
		// type transformation is on.
		options["removeComments"] = true
	}
	return options
}

// outputPath maps an input to its output file: extension rewritten to .js,
// laid out under outDir relative to the root when outDir is set, alongside
// the source otherwise.
func (e *Engine) outputPath(fileName, root string) string {
	if e.Options.OutDir == "" {
		return replaceExtension(fileName)
	}
	rel, err := filepath.Rel(root, fileName)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(fileName)
	}
	return filepath.Join(e.Options.OutDir, replaceExtension(rel))
}

func replaceExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".js"
}

var tsErrorPattern = regexp.MustCompile(`TS(\d+):\s*`)

// transpileDiagnostic converts an engine failure into a diagnostic,
// recovering the original TS error code when the message carries one.
func transpileDiagnostic(fileName string, err error) diag.Diagnostic {
	message := strings.TrimPrefix(err.Error(), "Error: ")
	code := 0
	if m := tsErrorPattern.FindStringSubmatch(message); m != nil {
		if parsed, convErr := strconv.Atoi(m[1]); convErr == nil {
			code = parsed
			message = strings.Replace(message, m[0], "", 1)
		}
	}
	return diag.New(diag.Error, code, "%s", message).WithFile(fileName, -1)
}
