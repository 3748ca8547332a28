package tsconfig

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/scythejs/scythe/internal/diag"
	"github.com/scythejs/scythe/internal/source"
)

const configName = "tsconfig.json"

type stringOption struct {
	name string
	set  func(*rawCompilerOptions, string)
}

type boolOption struct {
	name string
	set  func(*rawCompilerOptions, bool)
}

// Option names are matched case-insensitively, the way tsc matches them.
var stringOptions = map[string]stringOption{
	"module":           {"module", func(o *rawCompilerOptions, v string) { o.Module = &v }},
	"moduleresolution": {"moduleResolution", func(o *rawCompilerOptions, v string) { o.ModuleResolution = &v }},
	"target":           {"target", func(o *rawCompilerOptions, v string) { o.Target = &v }},
	"outdir":           {"outDir", func(o *rawCompilerOptions, v string) { o.OutDir = &v }},
	"rootdir":          {"rootDir", func(o *rawCompilerOptions, v string) { o.RootDir = &v }},
}

var boolOptions = map[string]boolOption{
	"experimentaldecorators": {"experimentalDecorators", func(o *rawCompilerOptions, v bool) { o.ExperimentalDecorators = &v }},
	"noimplicitany":          {"noImplicitAny", func(o *rawCompilerOptions, v bool) { o.NoImplicitAny = &v }},
	"strict":                 {"strict", func(o *rawCompilerOptions, v bool) { o.Strict = &v }},
	"removecomments":         {"removeComments", func(o *rawCompilerOptions, v bool) { o.RemoveComments = &v }},
}

// ParseCommandLine interprets compiler arguments the way tsc does: options
// and source files may be mixed, -p selects a project directory or config
// file, and with neither a project nor files the config is discovered by
// walking up from cwd. Problems are reported as diagnostics on the returned
// project, never as Go errors.
func ParseCommandLine(args []string, cwd string, cache *source.Cache) *ParsedProject {
	project := &ParsedProject{}
	var (
		projectPath string
		cliFiles    []string
		cliOptions  rawCompilerOptions
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			cliFiles = append(cliFiles, arg)
			continue
		}
		name := strings.ToLower(strings.TrimLeft(arg, "-"))

		if name == "p" || name == "project" {
			if value, ok := optionValue(args, &i); ok {
				projectPath = value
			} else {
				project.Errors = append(project.Errors,
					diag.NewError(diag.CodeOptionRequiresValue, "Compiler option '--project' expects an argument."))
			}
			continue
		}
		if option, ok := stringOptions[name]; ok {
			if value, ok := optionValue(args, &i); ok {
				option.set(&cliOptions, value)
			} else {
				project.Errors = append(project.Errors,
					diag.NewError(diag.CodeOptionRequiresValue, "Compiler option '--%s' expects an argument.", option.name))
			}
			continue
		}
		if option, ok := boolOptions[name]; ok {
			value := true
			if i+1 < len(args) && (args[i+1] == "true" || args[i+1] == "false") {
				i++
				value = args[i] == "true"
			}
			option.set(&cliOptions, value)
			continue
		}
		project.Errors = append(project.Errors,
			diag.NewError(diag.CodeUnknownCompilerOption, "Unknown compiler option '%s'.", arg))
	}

	if projectPath != "" && len(cliFiles) > 0 {
		project.Errors = append(project.Errors,
			diag.NewError(diag.CodeProjectConflictsWith, "Option 'project' cannot be mixed with source files on a command line."))
		return project
	}

	switch {
	case projectPath != "":
		resolved := absPath(projectPath, cwd)
		info, err := os.Stat(resolved)
		if err != nil {
			project.Errors = append(project.Errors,
				diag.NewError(diag.CodeProjectPathMissing, "The specified path does not exist: '%s'.", projectPath))
			return project
		}
		if info.IsDir() {
			candidate := filepath.Join(resolved, configName)
			if _, err := os.Stat(candidate); err != nil {
				project.Errors = append(project.Errors,
					diag.NewError(diag.CodeCannotFindProject, "Cannot find a tsconfig.json file at the specified directory: '%s'.", projectPath))
				return project
			}
			project.ConfigPath = candidate
		} else {
			project.ConfigPath = resolved
		}
	case len(cliFiles) == 0:
		found, ok := FindConfigFile(cwd)
		if !ok {
			project.Errors = append(project.Errors,
				diag.NewError(diag.CodeCannotFindProject, "Cannot find a tsconfig.json file at the specified directory: '%s'.", cwd))
			return project
		}
		project.ConfigPath = found
	}

	var merged mergedConfig
	if project.ConfigPath != "" {
		loaded, ok := loadChain(project.ConfigPath, cache, map[string]bool{}, &project.Errors)
		if !ok {
			diag.Resolve(project.Errors, cache)
			return project
		}
		merged = loaded
	}

	// Command line options win over everything the config chain resolved.
	resolveRawPaths(&cliOptions, cwd)
	mergeRawOptions(&merged.options, cliOptions)
	project.Options = finalOptions(merged.options)

	if len(cliFiles) > 0 {
		project.FileNames = resolveExplicitFiles(cliFiles, cwd, &project.Errors)
	} else {
		project.FileNames = resolveConfigFiles(merged, project.Options.OutDir, project.ConfigPath, &project.Errors)
	}

	diag.Resolve(project.Errors, cache)
	return project
}

// optionValue consumes the next argument as an option value unless it looks
// like another option.
func optionValue(args []string, i *int) (string, bool) {
	if *i+1 >= len(args) || strings.HasPrefix(args[*i+1], "-") {
		return "", false
	}
	*i++
	return args[*i], true
}

// FindConfigFile walks from dir toward the filesystem root looking for a
// tsconfig.json, the discovery tsc performs when no project is given.
func FindConfigFile(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, configName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// loadChain reads the config at path and folds in its extends chain, base
// first. The visiting set breaks extends cycles.
func loadChain(path string, cache *source.Cache, visiting map[string]bool, errs *[]diag.Diagnostic) (mergedConfig, bool) {
	clean := filepath.Clean(path)
	if visiting[clean] {
		*errs = append(*errs,
			diag.NewError(diag.CodeCircularExtends, "Circularity detected while resolving configuration: %s", clean).WithFile(clean, -1))
		return mergedConfig{}, false
	}
	visiting[clean] = true
	defer delete(visiting, clean)

	file, err := cache.Load(clean)
	if err != nil {
		*errs = append(*errs, diag.NewError(diag.CodeCannotReadFile, "Cannot read file '%s'.", clean))
		return mergedConfig{}, false
	}
	raw, parseErr := decodeConfig(file)
	if parseErr != nil {
		*errs = append(*errs, *parseErr)
		return mergedConfig{}, false
	}

	dir := filepath.Dir(clean)
	var merged mergedConfig
	if raw.Extends != "" {
		base := raw.Extends
		if filepath.Ext(base) != ".json" {
			base += ".json"
		}
		baseConfig, ok := loadChain(absPath(base, dir), cache, visiting, errs)
		if !ok {
			return mergedConfig{}, false
		}
		merged = baseConfig
	}
	overlayConfig(&merged, raw, dir)
	return merged, true
}

// decodeConfig parses tsconfig text, which allows comments and trailing
// commas, by standardizing it to plain JSON first. Standardization replaces
// stripped syntax with whitespace, so byte offsets in parse errors still
// point into the original text.
func decodeConfig(file *source.File) (*configFile, *diag.Diagnostic) {
	standardized, err := hujson.Standardize([]byte(file.Text))
	if err != nil {
		d := diag.NewError(diag.CodeFailedToParseFile, "Failed to parse file '%s': %v.", file.Name, err).WithFile(file.Name, -1)
		return nil, &d
	}
	var raw configFile
	if err := json.Unmarshal(standardized, &raw); err != nil {
		pos := -1
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &syntaxErr) {
			pos = int(syntaxErr.Offset) - 1
		} else if stderrors.As(err, &typeErr) {
			pos = int(typeErr.Offset) - 1
		}
		d := diag.NewError(diag.CodeFailedToParseFile, "Failed to parse file '%s': %v.", file.Name, err).WithFile(file.Name, pos)
		return nil, &d
	}
	return &raw, nil
}

// overlayConfig applies one config file on top of the merge so far. File
// lists replace wholesale and remember the directory they are relative to.
func overlayConfig(merged *mergedConfig, raw *configFile, dir string) {
	options := raw.CompilerOptions
	resolveRawPaths(&options, dir)
	mergeRawOptions(&merged.options, options)
	if raw.Files != nil {
		merged.files = &stringList{dir: dir, items: *raw.Files}
	}
	if raw.Include != nil {
		merged.include = &stringList{dir: dir, items: *raw.Include}
	}
	if raw.Exclude != nil {
		merged.exclude = &stringList{dir: dir, items: *raw.Exclude}
	}
}

// resolveRawPaths anchors path-valued options to the directory of the config
// that declared them before merging.
func resolveRawPaths(options *rawCompilerOptions, dir string) {
	if options.OutDir != nil {
		v := absPath(*options.OutDir, dir)
		options.OutDir = &v
	}
	if options.RootDir != nil {
		v := absPath(*options.RootDir, dir)
		options.RootDir = &v
	}
}

func mergeRawOptions(dst *rawCompilerOptions, src rawCompilerOptions) {
	if src.Module != nil {
		dst.Module = src.Module
	}
	if src.ModuleResolution != nil {
		dst.ModuleResolution = src.ModuleResolution
	}
	if src.Target != nil {
		dst.Target = src.Target
	}
	if src.OutDir != nil {
		dst.OutDir = src.OutDir
	}
	if src.RootDir != nil {
		dst.RootDir = src.RootDir
	}
	if src.ExperimentalDecorators != nil {
		dst.ExperimentalDecorators = src.ExperimentalDecorators
	}
	if src.NoImplicitAny != nil {
		dst.NoImplicitAny = src.NoImplicitAny
	}
	if src.Strict != nil {
		dst.Strict = src.Strict
	}
	if src.RemoveComments != nil {
		dst.RemoveComments = src.RemoveComments
	}
}

func absPath(path, base string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
