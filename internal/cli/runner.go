package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/scythejs/scythe/internal/closure"
	"github.com/scythejs/scythe/internal/diag"
	"github.com/scythejs/scythe/internal/emit"
	"github.com/scythejs/scythe/internal/pathutil"
	"github.com/scythejs/scythe/internal/source"
	"github.com/scythejs/scythe/internal/tsconfig"
)

// commonJSRequired is printed plainly when the project's module kind is
// incompatible. It is operator guidance, not a compiler diagnostic.
const commonJSRequired = `scythe converts TypeScript modules to Closure modules via CommonJS internally. Set tsconfig.json "module": "commonjs".`

// Runner drives one invocation end to end: load the project, validate it,
// optionally clean, emit every input, and report what happened.
type Runner struct {
	Settings    *Settings
	Diagnostics *DiagnosticSystem
	Reporter    *Reporter
	ErrOutput   io.Writer
	Sources     *source.Cache

	// NewEngine is swapped by tests for engines with canned transpilers.
	NewEngine func(options tsconfig.CompilerOptions, tsVersion string, sources *source.Cache) *emit.Engine
}

// NewRunner wires a runner to the process streams.
func NewRunner(settings *Settings, diagnostics *DiagnosticSystem) *Runner {
	return &Runner{
		Settings:    settings,
		Diagnostics: diagnostics,
		Reporter:    NewReporter(os.Stderr, settings.Verbose),
		ErrOutput:   os.Stderr,
		Sources:     source.NewCache(0),
		NewEngine:   emit.NewEngine,
	}
}

// Run executes one invocation over the given compiler arguments and returns
// the process exit code. Outputs written before a failure stay on disk.
func (r *Runner) Run(ctx context.Context, tscArgs []string, cwd string) int {
	started := time.Now()
	project := tsconfig.ParseCommandLine(tscArgs, cwd, r.Sources)
	if len(project.Errors) > 0 {
		r.Reporter.ReportDiagnostics(project.Errors)
		if project.HasErrors() {
			return 1
		}
	}
	if project.ConfigPath != "" {
		r.Diagnostics.Verbose("config file: %s", project.ConfigPath)
	}
	r.Diagnostics.Verbose("loaded project with %d inputs", len(project.FileNames))
	if r.Settings.Verbose {
		for _, name := range project.FileNames {
			r.Diagnostics.List("%s", name)
		}
	}

	if project.Options.EffectiveModuleKind() != "commonjs" {
		fmt.Fprintln(r.ErrOutput, commonJSRequired)
		return 1
	}

	root := project.Options.RootDir
	if root == "" {
		root = pathutil.CommonParentDirectory(project.FileNames)
	}
	r.Diagnostics.Verbose("root directory: %s", root)

	configDir := ""
	if project.ConfigPath != "" {
		configDir = filepath.Dir(project.ConfigPath)
	}
	if r.Settings.Clean {
		if err := NewCleaner().Clean(project.Options.OutDir, cwd, configDir, root); err != nil {
			r.Reporter.ReportError(err)
			return 1
		}
		r.Diagnostics.Verbose("cleaned %s", project.Options.OutDir)
	}

	namer := emit.ModuleNamer(r.Settings.Module, r.Settings.ModuleRenames, func(context, fileName string) string {
		return emit.DefaultModuleName(root, fileName)
	})
	// Warnings are advisory and only surface in verbose runs.
	host := emit.NewHost(root, project.FileNames, namer, func(d diag.Diagnostic) {
		if r.Settings.Verbose {
			r.Diagnostics.Warn("%s", d.String())
		}
	})

	engine := r.NewEngine(project.Options, r.Settings.TSVersion, r.Sources)
	write := func(path string, contents []byte) error {
		if err := emit.WriteFile(path, contents); err != nil {
			return err
		}
		r.Diagnostics.Verbose("wrote %s", path)
		return nil
	}
	result := engine.EmitProject(ctx, project.FileNames, host, write)

	if len(result.Diagnostics) > 0 {
		diag.Resolve(result.Diagnostics, r.Sources)
		r.Reporter.ReportDiagnostics(result.Diagnostics)
		return 1
	}

	if r.Settings.DepsFile != "" {
		if err := r.writeDepsFile(result.Manifest, cwd); err != nil {
			r.Reporter.ReportError(err)
			return 1
		}
	}

	if r.Settings.Verbose {
		r.Diagnostics.Summary("Emit complete", map[string]interface{}{
			"Inputs":        len(project.FileNames),
			"Files emitted": len(result.EmittedFiles),
			"Root":          root,
			"Duration":      time.Since(started).Round(time.Millisecond),
		})
	}
	return 0
}

// writeDepsFile renders the Closure deps file and writes it where the
// settings point, relative paths anchored at cwd.
func (r *Runner) writeDepsFile(manifest *emit.ModulesManifest, cwd string) error {
	depsPath := r.Settings.DepsFile
	if !filepath.IsAbs(depsPath) {
		depsPath = filepath.Join(cwd, depsPath)
	}
	load := func(path string) (string, error) {
		file, err := r.Sources.Load(path)
		if err != nil {
			return "", err
		}
		return file.Text, nil
	}
	deps, err := closure.Deps(manifest, load, filepath.Dir(depsPath))
	if err != nil {
		return err
	}
	if err := emit.WriteFile(depsPath, []byte(deps)); err != nil {
		return err
	}
	r.Diagnostics.Verbose("wrote %s", depsPath)
	return nil
}
